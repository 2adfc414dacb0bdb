// Package engine wires up the actor system. All domain mutations flow
// through the actors it spawns; handlers only ever hold the PIDs.
package engine

import (
	"qalam/internal/database"
	"qalam/internal/engine/actors"
	"qalam/internal/storage"
	"qalam/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine coordinates communication between actors
type Engine struct {
	postActor     *actor.PID
	commentActor  *actor.PID
	categoryActor *actor.PID
	userActor     *actor.PID
}

func NewEngine(system *actor.ActorSystem, store database.Store, images storage.ImageStore, metrics *utils.MetricsCollector) *Engine {
	context := system.Root

	postProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewPostActor(store, images, metrics)
	})
	postPID := context.Spawn(postProps)

	commentProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewCommentActor(store, metrics)
	})
	commentPID := context.Spawn(commentProps)

	categoryProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewCategoryActor(store, metrics)
	})
	categoryPID := context.Spawn(categoryProps)

	userProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewUserActor(store, metrics)
	})
	userPID := context.Spawn(userProps)

	return &Engine{
		postActor:     postPID,
		commentActor:  commentPID,
		categoryActor: categoryPID,
		userActor:     userPID,
	}
}

// GetPostActor returns the PID of the post actor
func (e *Engine) GetPostActor() *actor.PID {
	return e.postActor
}

// GetCommentActor returns the PID of the comment actor
func (e *Engine) GetCommentActor() *actor.PID {
	return e.commentActor
}

// GetCategoryActor returns the PID of the category actor
func (e *Engine) GetCategoryActor() *actor.PID {
	return e.categoryActor
}

// GetUserActor returns the PID of the user actor
func (e *Engine) GetUserActor() *actor.PID {
	return e.userActor
}
