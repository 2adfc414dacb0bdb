package actors

import (
	"context"
	"testing"
	"time"

	"qalam/internal/auth"
	"qalam/internal/database"
	"qalam/internal/models"
	"qalam/internal/storage"
	"qalam/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const askTimeout = 5 * time.Second

type testRig struct {
	system *actor.ActorSystem
	store  *database.MemoryStore
	images storage.ImageStore
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	images, err := storage.NewLocalImageStore(t.TempDir())
	require.NoError(t, err)
	return &testRig{
		system: actor.NewActorSystem(),
		store:  database.NewMemoryStore(),
		images: images,
	}
}

func (r *testRig) spawnPostActor() *actor.PID {
	return r.system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewPostActor(r.store, r.images, utils.NewMetricsCollector())
	}))
}

func (r *testRig) spawnCommentActor() *actor.PID {
	return r.system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewCommentActor(r.store, utils.NewMetricsCollector())
	}))
}

func (r *testRig) spawnCategoryActor() *actor.PID {
	return r.system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewCategoryActor(r.store, utils.NewMetricsCollector())
	}))
}

func (r *testRig) spawnUserActor() *actor.PID {
	return r.system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewUserActor(r.store, utils.NewMetricsCollector())
	}))
}

func (r *testRig) ask(t *testing.T, pid *actor.PID, msg interface{}) interface{} {
	t.Helper()
	result, err := r.system.Root.RequestFuture(pid, msg, askTimeout).Result()
	require.NoError(t, err)
	return result
}

// askErr asserts that the actor responded with an AppError and returns it.
func (r *testRig) askErr(t *testing.T, pid *actor.PID, msg interface{}) *utils.AppError {
	t.Helper()
	result := r.ask(t, pid, msg)
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "expected an AppError, got %T", result)
	return appErr
}

func (r *testRig) seedUser(t *testing.T, role models.Role) *auth.Principal {
	t.Helper()
	user := &models.User{
		ID:        uuid.New(),
		Username:  "user-" + uuid.New().String()[:8],
		Email:     uuid.New().String() + "@example.com",
		Role:      role,
		CreatedAt: time.Now(),
	}
	require.NoError(t, r.store.SaveUser(context.Background(), user))
	return &auth.Principal{ID: user.ID, Role: user.Role}
}
