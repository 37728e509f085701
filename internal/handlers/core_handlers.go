package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"fitblog/internal/engine/actors"
)

// HandleHealth handles health check requests
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userResult, err := s.request(s.Engine.GetUserActor(), &actors.GetCountsMsg{})
		if err != nil {
			http.Error(w, "Failed to get user count", http.StatusInternalServerError)
			return
		}
		userCount, ok := userResult.(int)
		if !ok {
			http.Error(w, "Failed to get user count", http.StatusInternalServerError)
			return
		}

		postResult, err := s.request(s.Engine.GetPostActor(), &actors.GetCountsMsg{})
		if err != nil {
			http.Error(w, "Failed to get post count", http.StatusInternalServerError)
			return
		}
		postCount, ok := postResult.(int)
		if !ok {
			http.Error(w, "Failed to get post count", http.StatusInternalServerError)
			return
		}

		payload := map[string]interface{}{
			"status":      "healthy",
			"user_count":  userCount,
			"post_count":  postCount,
			"server_time": time.Now().UTC(),
		}
		if s.Metrics != nil {
			payload["metrics"] = s.Metrics.Snapshot()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}
}

// HandleSimpleHealth is a liveness probe that touches no dependencies
func (s *Server) HandleSimpleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
		})
	}
}
