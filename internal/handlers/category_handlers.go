package handlers

import (
	"net/http"
	"strconv"

	"qalam/internal/engine/actors"
	"qalam/internal/models"
	"qalam/internal/utils"
	"qalam/internal/validation"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// categoryDetailResponse pairs a category with its posts for the
// category page.
type categoryDetailResponse struct {
	Category *models.Category        `json:"category"`
	Posts    *actors.ListPostsResult `json:"posts"`
}

// HandleListCategories returns categories matching the optional search
// term, sorted and paginated per the query parameters.
func (s *Server) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("perPage"))

	result, ok := s.ask(w, s.Engine.GetCategoryActor(), &actors.ListCategoriesMsg{
		Search:    q.Get("search"),
		Sort:      q.Get("sort"),
		Direction: q.Get("direction"),
		Page:      page,
		PerPage:   perPage,
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleGetCategory returns a category by slug or id, along with a page
// of its posts.
func (s *Server) HandleGetCategory(w http.ResponseWriter, r *http.Request) {
	result, ok := s.ask(w, s.Engine.GetCategoryActor(), &actors.GetCategoryMsg{
		SlugOrID: mux.Vars(r)["slugOrId"],
	})
	if !ok {
		return
	}
	category := result.(*models.Category)

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("perPage"))

	postsResult, ok := s.ask(w, s.Engine.GetPostActor(), &actors.ListPostsMsg{
		Page:       page,
		PerPage:    perPage,
		CategoryID: &category.ID,
	})
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, categoryDetailResponse{
		Category: category,
		Posts:    postsResult.(*actors.ListPostsResult),
	})
}

// HandleCreateCategory creates a category. Admin only.
func (s *Server) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var input validation.CategoryInput
	if !decodeBody(w, r, &input) {
		return
	}
	if appErr := validation.Check(&input); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	result, ok := s.ask(w, s.Engine.GetCategoryActor(), &actors.CreateCategoryMsg{
		Principal:   principal(r),
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Color:       input.Color,
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// HandleUpdateCategory replaces a category's fields. Admin only.
func (s *Server) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, utils.NewFieldError("id", "must be a valid id"))
		return
	}

	var input validation.CategoryInput
	if !decodeBody(w, r, &input) {
		return
	}
	if appErr := validation.Check(&input); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	result, ok := s.ask(w, s.Engine.GetCategoryActor(), &actors.UpdateCategoryMsg{
		Principal:   principal(r),
		CategoryID:  categoryID,
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Color:       input.Color,
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleDeleteCategory removes an empty category. Admin only.
func (s *Server) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, utils.NewFieldError("id", "must be a valid id"))
		return
	}

	if _, ok := s.ask(w, s.Engine.GetCategoryActor(), &actors.DeleteCategoryMsg{
		Principal:  principal(r),
		CategoryID: categoryID,
	}); !ok {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
