package handlers

import (
	"net/http"

	"qalam/internal/engine/actors"
	"qalam/internal/utils"
	"qalam/internal/validation"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// HandleCreateComment adds a comment, or a reply when parentId is set.
func (s *Server) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, utils.NewFieldError("id", "must be a valid id"))
		return
	}

	var input validation.CreateCommentInput
	if !decodeBody(w, r, &input) {
		return
	}
	if appErr := validation.Check(&input); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	msg := &actors.CreateCommentMsg{
		PostID:   postID,
		AuthorID: principal(r).ID,
		Content:  input.Content,
	}
	if input.ParentID != "" {
		parentID, err := uuid.Parse(input.ParentID)
		if err != nil {
			writeAppError(w, utils.NewFieldError("parentId", "must be a valid id"))
			return
		}
		msg.ParentID = &parentID
	}

	result, ok := s.ask(w, s.Engine.GetCommentActor(), msg)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// HandleDeleteComment removes the caller's own comment and its replies.
func (s *Server) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, utils.NewFieldError("id", "must be a valid id"))
		return
	}

	if _, ok := s.ask(w, s.Engine.GetCommentActor(), &actors.DeleteCommentMsg{
		Principal: principal(r),
		CommentID: commentID,
	}); !ok {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleToggleCommentReaction flips the caller's like or dislike on a
// comment.
func (s *Server) HandleToggleCommentReaction(w http.ResponseWriter, r *http.Request) {
	commentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, utils.NewFieldError("id", "must be a valid id"))
		return
	}

	var input validation.ToggleReactionInput
	if !decodeBody(w, r, &input) {
		return
	}

	result, ok := s.ask(w, s.Engine.GetCommentActor(), &actors.ToggleCommentReactionMsg{
		CommentID: commentID,
		UserID:    principal(r).ID,
		IsDislike: input.IsDislike,
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}
