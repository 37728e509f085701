package engine

import (
	"log"

	"fitblog/internal/database"
	"fitblog/internal/engine/actors"
	"fitblog/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine coordinates the actor hierarchy. Handlers never talk to the store
// directly; they message the actors owned here.
type Engine struct {
	system    *actor.ActorSystem
	postActor *actor.PID
	userActor *actor.PID
}

// NewEngine spawns the domain actors on the given system.
func NewEngine(system *actor.ActorSystem, store database.Store, metrics *utils.MetricsCollector) *Engine {
	context := system.Root

	postProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewPostActor(store, metrics)
	})
	postPID := context.Spawn(postProps)

	userProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewUserActor(store, metrics)
	})
	userPID := context.Spawn(userProps)

	log.Printf("Engine: spawned post actor %s and user actor %s", postPID.Id, userPID.Id)

	return &Engine{
		system:    system,
		postActor: postPID,
		userActor: userPID,
	}
}

// GetPostActor returns the post actor PID
func (e *Engine) GetPostActor() *actor.PID {
	return e.postActor
}

// GetUserActor returns the user actor PID
func (e *Engine) GetUserActor() *actor.PID {
	return e.userActor
}
