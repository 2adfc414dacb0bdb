// Package handlers is the HTTP boundary. Handlers translate requests
// into actor messages, wait on a RequestFuture, and map AppError codes
// to HTTP statuses. No domain logic lives here.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"qalam/internal/auth"
	"qalam/internal/database"
	"qalam/internal/engine"
	"qalam/internal/middleware"
	"qalam/internal/storage"
	"qalam/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Server holds all server dependencies, including the actor system and engine
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	Store          database.Store
	Images         storage.ImageStore
	Metrics        *utils.MetricsCollector
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	eng *engine.Engine,
	store database.Store,
	images storage.ImageStore,
	metrics *utils.MetricsCollector,
) *Server {
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         eng,
		Store:          store,
		Images:         images,
		Metrics:        metrics,
		RequestTimeout: 5 * time.Second, // Default timeout for actor requests
	}
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeAppError(w http.ResponseWriter, appErr *utils.AppError) {
	writeJSON(w, utils.AppErrorToHTTPStatus(appErr.Code), errorEnvelope{
		Error: errorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Fields:  appErr.Fields,
		},
	})
}

// ask sends msg to the actor and waits for its response. A timeout or a
// responded *utils.AppError is written to w and reported with ok=false.
func (s *Server) ask(w http.ResponseWriter, pid *actor.PID, msg interface{}) (interface{}, bool) {
	s.Metrics.IncrementRequests()

	future := s.Context.RequestFuture(pid, msg, s.RequestTimeout)
	result, err := future.Result()
	if err != nil {
		s.Metrics.IncrementErrors()
		writeAppError(w, utils.NewAppError(utils.ErrActorTimeout, "request timed out", err))
		return nil, false
	}

	if appErr, ok := result.(*utils.AppError); ok {
		s.Metrics.IncrementErrors()
		writeAppError(w, appErr)
		return nil, false
	}
	return result, true
}

// principal returns the authenticated principal or nil for anonymous
// requests; RequireAuth guarantees non-nil on protected routes.
func principal(r *http.Request) *auth.Principal {
	return middleware.GetPrincipalFromContext(r.Context())
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeAppError(w, utils.NewAppError(utils.ErrValidation, "invalid request body", err))
		return false
	}
	return true
}
