package actors

import (
	stdctx "context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"qalam/internal/auth"
	"qalam/internal/database"
	"qalam/internal/models"
	"qalam/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for Category operations
type (
	CreateCategoryMsg struct {
		Principal   *auth.Principal
		Name        string
		Slug        string
		Description string
		Color       string
	}

	UpdateCategoryMsg struct {
		Principal   *auth.Principal
		CategoryID  uuid.UUID
		Name        string
		Slug        string
		Description string
		Color       string
	}

	DeleteCategoryMsg struct {
		Principal  *auth.Principal
		CategoryID uuid.UUID
	}

	GetCategoryMsg struct {
		SlugOrID string
	}

	ListCategoriesMsg struct {
		Search    string
		Sort      string // name | created_at | posts_count
		Direction string // asc | desc
		Page      int
		PerPage   int
	}
)

// ListCategoriesResult is the paginated response for category listings
type ListCategoriesResult struct {
	Categories []*models.Category `json:"categories"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"perPage"`
}

// CategoryActor owns category CRUD and the posts-exist delete guard.
type CategoryActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
}

func NewCategoryActor(store database.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &CategoryActor{store: store, metrics: metrics}
}

func (a *CategoryActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		slog.Info("CategoryActor started", "pid", context.Self().String())

	case *CreateCategoryMsg:
		a.handleCreateCategory(context, msg)
	case *UpdateCategoryMsg:
		a.handleUpdateCategory(context, msg)
	case *DeleteCategoryMsg:
		a.handleDeleteCategory(context, msg)
	case *GetCategoryMsg:
		a.handleGetCategory(context, msg)
	case *ListCategoriesMsg:
		a.handleListCategories(context, msg)
	}
}

func (a *CategoryActor) annotate(ctx stdctx.Context, category *models.Category) *utils.AppError {
	count, err := a.store.CountPostsByCategory(ctx, category.ID)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to count posts", err)
	}
	category.PostsCount = int(count)
	return nil
}

func (a *CategoryActor) uniqueSlug(ctx stdctx.Context, slug string, selfID uuid.UUID) *utils.AppError {
	existing, err := a.store.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			return nil
		}
		return utils.NewAppError(utils.ErrDatabase, "failed to check slug", err)
	}
	if existing.ID != selfID {
		return utils.NewFieldError("slug", "this slug is already taken")
	}
	return nil
}

func (a *CategoryActor) handleCreateCategory(context actor.Context, msg *CreateCategoryMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if err := auth.Authorize(auth.ActionManageCategories, msg.Principal, uuid.Nil); err != nil {
		context.Respond(err)
		return
	}

	slug := msg.Slug
	if slug == "" {
		slug = utils.Slugify(msg.Name)
	}
	if appErr := a.uniqueSlug(ctx, slug, uuid.Nil); appErr != nil {
		context.Respond(appErr)
		return
	}

	color := msg.Color
	if color == "" {
		color = models.DefaultCategoryColor
	}

	now := time.Now()
	category := &models.Category{
		ID:          uuid.New(),
		Name:        msg.Name,
		Slug:        slug,
		Description: msg.Description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := a.store.SaveCategory(ctx, category); err != nil {
		context.Respond(storeError(err, "failed to save category"))
		return
	}

	a.metrics.AddOperationLatency("create_category", time.Since(startTime))
	context.Respond(category)
}

func (a *CategoryActor) handleUpdateCategory(context actor.Context, msg *UpdateCategoryMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if err := auth.Authorize(auth.ActionManageCategories, msg.Principal, uuid.Nil); err != nil {
		context.Respond(err)
		return
	}

	category, err := a.store.GetCategory(ctx, msg.CategoryID)
	if err != nil {
		context.Respond(storeError(err, "failed to load category"))
		return
	}

	slug := msg.Slug
	if slug == "" {
		slug = utils.Slugify(msg.Name)
	}
	if appErr := a.uniqueSlug(ctx, slug, category.ID); appErr != nil {
		context.Respond(appErr)
		return
	}

	category.Name = msg.Name
	category.Slug = slug
	category.Description = msg.Description
	if msg.Color != "" {
		category.Color = msg.Color
	}
	category.UpdatedAt = time.Now()

	if err := a.store.SaveCategory(ctx, category); err != nil {
		context.Respond(storeError(err, "failed to save category"))
		return
	}

	if appErr := a.annotate(ctx, category); appErr != nil {
		context.Respond(appErr)
		return
	}

	a.metrics.AddOperationLatency("update_category", time.Since(startTime))
	context.Respond(category)
}

func (a *CategoryActor) handleDeleteCategory(context actor.Context, msg *DeleteCategoryMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if err := auth.Authorize(auth.ActionManageCategories, msg.Principal, uuid.Nil); err != nil {
		context.Respond(err)
		return
	}

	category, err := a.store.GetCategory(ctx, msg.CategoryID)
	if err != nil {
		context.Respond(storeError(err, "failed to load category"))
		return
	}

	// Referential integrity: a category with posts cannot be removed.
	count, err := a.store.CountPostsByCategory(ctx, category.ID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "failed to count posts", err))
		return
	}
	if count > 0 {
		context.Respond(utils.NewConflictError("cannot delete a category that still has posts"))
		return
	}

	if err := a.store.DeleteCategory(ctx, category.ID); err != nil {
		context.Respond(storeError(err, "failed to delete category"))
		return
	}

	a.metrics.AddOperationLatency("delete_category", time.Since(startTime))
	context.Respond(true)
}

func (a *CategoryActor) handleGetCategory(context actor.Context, msg *GetCategoryMsg) {
	ctx := stdctx.Background()

	var category *models.Category
	var err error
	if id, parseErr := uuid.Parse(msg.SlugOrID); parseErr == nil {
		category, err = a.store.GetCategory(ctx, id)
	} else {
		category, err = a.store.GetCategoryBySlug(ctx, strings.ToLower(msg.SlugOrID))
	}
	if err != nil {
		context.Respond(storeError(err, "failed to load category"))
		return
	}

	if appErr := a.annotate(ctx, category); appErr != nil {
		context.Respond(appErr)
		return
	}
	context.Respond(category)
}

func (a *CategoryActor) handleListCategories(context actor.Context, msg *ListCategoriesMsg) {
	ctx := stdctx.Background()

	categories, err := a.store.ListCategories(ctx, msg.Search)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "failed to list categories", err))
		return
	}

	for _, category := range categories {
		if appErr := a.annotate(ctx, category); appErr != nil {
			context.Respond(appErr)
			return
		}
	}

	// Sorting happens after counts are attached because posts_count is
	// a derived value the store never sees.
	desc := msg.Direction != "asc"
	less := func(i, j int) bool { return categories[i].CreatedAt.Before(categories[j].CreatedAt) }
	switch msg.Sort {
	case "name":
		less = func(i, j int) bool {
			return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
		}
	case "posts_count":
		less = func(i, j int) bool { return categories[i].PostsCount < categories[j].PostsCount }
	}
	if desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(categories, less)

	page := msg.Page
	if page < 1 {
		page = 1
	}
	perPage := msg.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 12
	}

	total := len(categories)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	context.Respond(&ListCategoriesResult{
		Categories: categories[start:end],
		Total:      total,
		Page:       page,
		PerPage:    perPage,
	})
}
