package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"qalam/internal/engine/actors"
	"qalam/internal/models"
	"qalam/internal/utils"
	"qalam/internal/validation"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// postDetailResponse bundles the post with its comment tree so the
// detail page needs a single request.
type postDetailResponse struct {
	Post     *models.Post      `json:"post"`
	Comments []*models.Comment `json:"comments"`
}

// readPostInput accepts either a JSON body or a multipart form with an
// optional image part. Uploaded images are stored immediately and their
// reference travels on as the image field.
func (s *Server) readPostInput(w http.ResponseWriter, r *http.Request) (*validation.PostInput, bool) {
	var input validation.PostInput

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(storageFormLimit); err != nil {
			writeAppError(w, utils.NewAppError(utils.ErrValidation, "invalid multipart form", err))
			return nil, false
		}

		input.Title = r.FormValue("title")
		input.Slug = r.FormValue("slug")
		input.Content = r.FormValue("content")
		input.Excerpt = r.FormValue("excerpt")
		input.CategoryID = r.FormValue("categoryId")

		if v := r.FormValue("publishedAt"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				writeAppError(w, utils.NewFieldError("publishedAt", "must be an RFC 3339 timestamp"))
				return nil, false
			}
			input.PublishedAt = &t
		}

		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()
			data, readErr := io.ReadAll(file)
			if readErr != nil {
				writeAppError(w, utils.NewAppError(utils.ErrStorage, "failed to read uploaded image", readErr))
				return nil, false
			}
			ref, putErr := s.Images.Put(header.Filename, data)
			if putErr != nil {
				writeAppError(w, storeError(putErr))
				return nil, false
			}
			input.Image = ref
		}
	} else if !decodeBody(w, r, &input) {
		return nil, false
	}

	if appErr := validation.Check(&input); appErr != nil {
		writeAppError(w, appErr)
		return nil, false
	}
	return &input, true
}

// storageFormLimit leaves headroom over the image cap for text fields.
const storageFormLimit = 3 << 20

func storeError(err error) *utils.AppError {
	if appErr, ok := err.(*utils.AppError); ok {
		return appErr
	}
	return utils.NewAppError(utils.ErrStorage, "storage operation failed", err)
}

func parseCategoryID(raw string) *uuid.UUID {
	if raw == "" {
		return nil
	}
	if id, err := uuid.Parse(raw); err == nil {
		return &id
	}
	return nil
}

// HandleListPosts returns a page of posts, optionally filtered by
// category id.
func (s *Server) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("perPage"))

	msg := &actors.ListPostsMsg{Page: page, PerPage: perPage}
	if p := principal(r); p != nil {
		msg.ViewerID = &p.ID
	}
	if raw := q.Get("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeAppError(w, utils.NewFieldError("category", "must be a valid id"))
			return
		}
		msg.CategoryID = &id
	}

	result, ok := s.ask(w, s.Engine.GetPostActor(), msg)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleGetPost returns a single post with its comment tree. The post
// is addressable by slug or id, and an authenticated viewer also gets
// their own reaction on the post.
func (s *Server) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	msg := &actors.GetPostMsg{SlugOrID: mux.Vars(r)["slugOrId"]}
	if p := principal(r); p != nil {
		msg.ViewerID = &p.ID
	}

	result, ok := s.ask(w, s.Engine.GetPostActor(), msg)
	if !ok {
		return
	}
	post := result.(*models.Post)

	commentsResult, ok := s.ask(w, s.Engine.GetCommentActor(), &actors.GetCommentsForPostMsg{PostID: post.ID})
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, postDetailResponse{
		Post:     post,
		Comments: commentsResult.([]*models.Comment),
	})
}

// HandleCreatePost creates a post for the authenticated writer.
func (s *Server) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	input, ok := s.readPostInput(w, r)
	if !ok {
		return
	}

	result, ok := s.ask(w, s.Engine.GetPostActor(), &actors.CreatePostMsg{
		Principal:   principal(r),
		Title:       input.Title,
		Slug:        input.Slug,
		Content:     input.Content,
		Excerpt:     input.Excerpt,
		Image:       input.Image,
		PublishedAt: input.PublishedAt,
		CategoryID:  parseCategoryID(input.CategoryID),
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// HandleUpdatePost replaces a post's editable fields.
func (s *Server) HandleUpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, utils.NewFieldError("id", "must be a valid id"))
		return
	}

	input, ok := s.readPostInput(w, r)
	if !ok {
		return
	}

	result, ok := s.ask(w, s.Engine.GetPostActor(), &actors.UpdatePostMsg{
		Principal:   principal(r),
		PostID:      postID,
		Title:       input.Title,
		Slug:        input.Slug,
		Content:     input.Content,
		Excerpt:     input.Excerpt,
		Image:       input.Image,
		PublishedAt: input.PublishedAt,
		CategoryID:  parseCategoryID(input.CategoryID),
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleDeletePost removes a post and everything hanging off it.
func (s *Server) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, utils.NewFieldError("id", "must be a valid id"))
		return
	}

	if _, ok := s.ask(w, s.Engine.GetPostActor(), &actors.DeletePostMsg{
		Principal: principal(r),
		PostID:    postID,
	}); !ok {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleTogglePostReaction flips the caller's like or dislike on a post.
func (s *Server) HandleTogglePostReaction(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, utils.NewFieldError("id", "must be a valid id"))
		return
	}

	var input validation.ToggleReactionInput
	if !decodeBody(w, r, &input) {
		return
	}

	result, ok := s.ask(w, s.Engine.GetPostActor(), &actors.TogglePostReactionMsg{
		PostID:    postID,
		UserID:    principal(r).ID,
		IsDislike: input.IsDislike,
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleAdminListPosts returns every post regardless of status.
func (s *Server) HandleAdminListPosts(w http.ResponseWriter, r *http.Request) {
	result, ok := s.ask(w, s.Engine.GetPostActor(), &actors.AdminListPostsMsg{Principal: principal(r)})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"posts": result})
}
