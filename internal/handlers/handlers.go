package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"fitblog/internal/engine"
	"fitblog/internal/middleware"
	"fitblog/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Server holds all server dependencies, including the actor system and engine
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	Metrics        *utils.MetricsCollector
	Sessions       *middleware.SessionManager
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	engine *engine.Engine,
	metrics *utils.MetricsCollector,
	sessions *middleware.SessionManager,
) *Server {
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         engine,
		Metrics:        metrics,
		Sessions:       sessions,
		RequestTimeout: 5 * time.Second, // Default timeout for actor requests
	}
}

// request sends a message to an actor and waits for the reply.
func (s *Server) request(pid *actor.PID, msg interface{}) (interface{}, error) {
	future := s.Context.RequestFuture(pid, msg, s.RequestTimeout)
	result, err := future.Result()
	if err != nil {
		return nil, utils.NewActorTimeoutError(pid.Id)
	}
	return result, nil
}

// respond writes an actor result as JSON, translating AppError replies and
// transport failures into the matching HTTP status.
func (s *Server) respond(w http.ResponseWriter, result interface{}, err error) {
	if s.Metrics != nil {
		s.Metrics.IncrementRequests()
	}
	if err == nil {
		if appErr, ok := result.(*utils.AppError); ok {
			err = appErr
		} else if resErr, ok := result.(error); ok {
			err = resErr
		}
	}

	if err != nil {
		if s.Metrics != nil {
			s.Metrics.IncrementErrors()
		}
		if appErr, ok := err.(*utils.AppError); ok {
			http.Error(w, appErr.Message, utils.AppErrorToHTTPStatus(appErr.Code))
			return
		}
		log.Printf("HTTP Handler: unexpected error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if encErr := json.NewEncoder(w).Encode(result); encErr != nil {
		log.Printf("HTTP Handler: Failed to encode response: %v", encErr)
	}
}
