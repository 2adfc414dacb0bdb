package handlers

import (
	"net/http"

	"qalam/internal/engine/actors"
	"qalam/internal/middleware"
	"qalam/internal/models"
	"qalam/internal/utils"
	"qalam/internal/validation"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// HandleRegister creates a new account and signs the caller in.
func (s *Server) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var input validation.RegisterUserInput
	if !decodeBody(w, r, &input) {
		return
	}
	if appErr := validation.Check(&input); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	result, ok := s.ask(w, s.Engine.GetUserActor(), &actors.RegisterUserMsg{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if !ok {
		return
	}
	user := result.(*models.User)

	token, err := middleware.GenerateToken(user)
	if err != nil {
		writeAppError(w, utils.NewAppError(utils.ErrInvalidToken, "failed to issue token", err))
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// HandleLogin checks credentials and issues a JWT.
func (s *Server) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input validation.LoginInput
	if !decodeBody(w, r, &input) {
		return
	}
	if appErr := validation.Check(&input); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	result, ok := s.ask(w, s.Engine.GetUserActor(), &actors.LoginMsg{
		Email:    input.Email,
		Password: input.Password,
	})
	if !ok {
		return
	}
	user := result.(*models.User)

	token, err := middleware.GenerateToken(user)
	if err != nil {
		writeAppError(w, utils.NewAppError(utils.ErrInvalidToken, "failed to issue token", err))
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// HandleGetUser returns a user's public profile.
func (s *Server) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, utils.NewFieldError("id", "must be a valid id"))
		return
	}

	result, ok := s.ask(w, s.Engine.GetUserActor(), &actors.GetUserProfileMsg{UserID: userID})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleMe returns the authenticated caller's own profile.
func (s *Server) HandleMe(w http.ResponseWriter, r *http.Request) {
	p := principal(r)

	result, ok := s.ask(w, s.Engine.GetUserActor(), &actors.GetUserProfileMsg{UserID: p.ID})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}
