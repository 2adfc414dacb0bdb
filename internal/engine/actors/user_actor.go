package actors

import (
	stdctx "context"
	"log/slog"
	"time"

	"qalam/internal/database"
	"qalam/internal/models"
	"qalam/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Message types for UserActor
type (
	RegisterUserMsg struct {
		Username string
		Email    string
		Password string
		Role     string
	}

	LoginMsg struct {
		Email    string
		Password string
	}

	GetUserProfileMsg struct {
		UserID uuid.UUID
	}
)

// UserActor owns registration, credential checks, and profile reads.
type UserActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
}

func NewUserActor(store database.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &UserActor{store: store, metrics: metrics}
}

func (a *UserActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		slog.Info("UserActor started", "pid", context.Self().String())

	case *RegisterUserMsg:
		a.handleRegister(context, msg)
	case *LoginMsg:
		a.handleLogin(context, msg)
	case *GetUserProfileMsg:
		a.handleGetProfile(context, msg)
	}
}

func (a *UserActor) handleRegister(context actor.Context, msg *RegisterUserMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if existing, _ := a.store.GetUserByEmail(ctx, msg.Email); existing != nil {
		context.Respond(utils.NewAppError(utils.ErrDuplicate, "email already registered", nil))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(msg.Password), bcrypt.DefaultCost)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "failed to hash password", err))
		return
	}

	// Admins are promoted out-of-band; registration only hands out the
	// reader and writer roles.
	role := models.ParseRole(msg.Role)
	if role == models.RoleAdmin {
		role = models.RoleReader
	}

	user := &models.User{
		ID:             uuid.New(),
		Username:       msg.Username,
		Email:          msg.Email,
		HashedPassword: string(hashed),
		Role:           role,
		CreatedAt:      time.Now(),
	}

	if err := a.store.SaveUser(ctx, user); err != nil {
		context.Respond(storeError(err, "failed to save user"))
		return
	}

	a.metrics.AddOperationLatency("register_user", time.Since(startTime))
	context.Respond(user)
}

func (a *UserActor) handleLogin(context actor.Context, msg *LoginMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	user, err := a.store.GetUserByEmail(ctx, msg.Email)
	if err != nil {
		// Same response for unknown email and bad password.
		context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "invalid credentials", nil))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(msg.Password)); err != nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "invalid credentials", nil))
		return
	}

	a.metrics.AddOperationLatency("login", time.Since(startTime))
	context.Respond(user)
}

func (a *UserActor) handleGetProfile(context actor.Context, msg *GetUserProfileMsg) {
	ctx := stdctx.Background()

	user, err := a.store.GetUser(ctx, msg.UserID)
	if err != nil {
		context.Respond(storeError(err, "failed to load user"))
		return
	}
	context.Respond(user)
}
