package actors

import (
	stdctx "context"
	"log/slog"
	"strings"
	"time"

	"qalam/internal/auth"
	"qalam/internal/database"
	"qalam/internal/models"
	"qalam/internal/storage"
	"qalam/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for Post operations
type (
	CreatePostMsg struct {
		Principal   *auth.Principal
		Title       string
		Slug        string
		Content     string
		Excerpt     string
		Image       string
		PublishedAt *time.Time
		CategoryID  *uuid.UUID
	}

	UpdatePostMsg struct {
		Principal   *auth.Principal
		PostID      uuid.UUID
		Title       string
		Slug        string
		Content     string
		Excerpt     string
		Image       string
		PublishedAt *time.Time
		CategoryID  *uuid.UUID
	}

	DeletePostMsg struct {
		Principal *auth.Principal
		PostID    uuid.UUID
	}

	GetPostMsg struct {
		SlugOrID string
		ViewerID *uuid.UUID
	}

	ListPostsMsg struct {
		Page       int
		PerPage    int
		CategoryID *uuid.UUID
		ViewerID   *uuid.UUID
	}

	AdminListPostsMsg struct {
		Principal *auth.Principal
	}

	TogglePostReactionMsg struct {
		PostID    uuid.UUID
		UserID    uuid.UUID
		IsDislike bool
	}
)

// ListPostsResult is the paginated response for post listings
type ListPostsResult struct {
	Posts   []*models.Post `json:"posts"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"perPage"`
}

// ReactionResult reports the caller's new state and the fresh counts
// after a toggle.
type ReactionResult struct {
	State        models.ReactionState `json:"state"`
	LikeCount    int                  `json:"likeCount"`
	DislikeCount int                  `json:"dislikeCount"`
}

// PostActor owns all post mutations and post-level reaction toggles.
type PostActor struct {
	store     database.Store
	images    storage.ImageStore
	metrics   *utils.MetricsCollector
	userCache map[uuid.UUID]string
}

func NewPostActor(store database.Store, images storage.ImageStore, metrics *utils.MetricsCollector) actor.Actor {
	return &PostActor{
		store:     store,
		images:    images,
		metrics:   metrics,
		userCache: make(map[uuid.UUID]string),
	}
}

func (a *PostActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		slog.Info("PostActor started", "pid", context.Self().String())

	case *CreatePostMsg:
		a.handleCreatePost(context, msg)
	case *UpdatePostMsg:
		a.handleUpdatePost(context, msg)
	case *DeletePostMsg:
		a.handleDeletePost(context, msg)
	case *GetPostMsg:
		a.handleGetPost(context, msg)
	case *ListPostsMsg:
		a.handleListPosts(context, msg)
	case *AdminListPostsMsg:
		a.handleAdminListPosts(context, msg)
	case *TogglePostReactionMsg:
		a.handleToggleReaction(context, msg)
	}
}

func (a *PostActor) username(ctx stdctx.Context, userID uuid.UUID) string {
	if username, ok := a.userCache[userID]; ok {
		return username
	}
	user, err := a.store.GetUser(ctx, userID)
	if err != nil {
		slog.Warn("failed to resolve author username", "userId", userID, "error", err)
		return "[unknown]"
	}
	a.userCache[user.ID] = user.Username
	return user.Username
}

// annotate fills every derived field on a post: counts, status, author
// username, category, and the viewer's own reaction. Counts are always
// recomputed; nothing here is cached or stored.
func (a *PostActor) annotate(ctx stdctx.Context, post *models.Post, viewerID *uuid.UUID) *utils.AppError {
	subject := models.PostSubject(post.ID)

	commentCount, err := a.store.CountPostComments(ctx, post.ID)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to count comments", err)
	}
	likeCount, err := a.store.CountReactions(ctx, subject, false)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to count likes", err)
	}
	dislikeCount, err := a.store.CountReactions(ctx, subject, true)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to count dislikes", err)
	}

	post.CommentCount = int(commentCount)
	post.LikeCount = int(likeCount)
	post.DislikeCount = int(dislikeCount)
	post.Status = post.StatusAt(time.Now())
	post.AuthorUsername = a.username(ctx, post.AuthorID)

	if post.CategoryID != nil {
		if category, err := a.store.GetCategory(ctx, *post.CategoryID); err == nil {
			post.Category = category
		}
	}

	if viewerID != nil {
		reaction, err := a.store.GetReaction(ctx, subject, *viewerID)
		if err != nil {
			return utils.NewAppError(utils.ErrDatabase, "failed to load viewer reaction", err)
		}
		post.UserReaction = reaction
	}

	return nil
}

// uniqueSlug rejects a slug already used by a different post.
func (a *PostActor) uniqueSlug(ctx stdctx.Context, slug string, selfID uuid.UUID) *utils.AppError {
	existing, err := a.store.GetPostBySlug(ctx, slug)
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

func (a *PostActor) handleCreatePost(context actor.Context, msg *CreatePostMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if err := auth.Authorize(auth.ActionCreatePost, msg.Principal, uuid.Nil); err != nil {
		context.Respond(err)
		return
	}

	slug := msg.Slug
	if slug == "" {
		slug = utils.Slugify(msg.Title)
	}
	if slug == "" {
		context.Respond(utils.NewFieldError("slug", "a slug could not be derived from the title"))
		return
	}
	if err := a.uniqueSlug(ctx, slug, uuid.Nil); err != nil {
		context.Respond(err)
		return
	}

	if msg.CategoryID != nil {
		if _, err := a.store.GetCategory(ctx, *msg.CategoryID); err != nil {
			context.Respond(utils.NewFieldError("categoryId", "category does not exist"))
			return
		}
	}

	now := time.Now()
	post := &models.Post{
		ID:          uuid.New(),
		Title:       msg.Title,
		Slug:        slug,
		Content:     msg.Content,
		Excerpt:     msg.Excerpt,
		Image:       msg.Image,
		PublishedAt: msg.PublishedAt,
		CategoryID:  msg.CategoryID,
		AuthorID:    msg.Principal.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := a.store.SavePost(ctx, post); err != nil {
		context.Respond(storeError(err, "failed to save post"))
		return
	}

	if err := a.annotate(ctx, post, nil); err != nil {
		context.Respond(err)
		return
	}

	a.metrics.AddOperationLatency("create_post", time.Since(startTime))
	context.Respond(post)
}

func (a *PostActor) handleUpdatePost(context actor.Context, msg *UpdatePostMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	post, err := a.store.GetPost(ctx, msg.PostID)
	if err != nil {
		context.Respond(storeError(err, "failed to load post"))
		return
	}

	if appErr := auth.Authorize(auth.ActionUpdatePost, msg.Principal, post.AuthorID); appErr != nil {
		context.Respond(appErr)
		return
	}

	slug := msg.Slug
	if slug == "" {
		slug = post.Slug
	}
	if appErr := a.uniqueSlug(ctx, slug, post.ID); appErr != nil {
		context.Respond(appErr)
		return
	}

	if msg.CategoryID != nil {
		if _, err := a.store.GetCategory(ctx, *msg.CategoryID); err != nil {
			context.Respond(utils.NewFieldError("categoryId", "category does not exist"))
			return
		}
	}

	// Image replacement is best-effort: the database write is
	// authoritative, a failed delete of the old file is only logged.
	oldImage := post.Image
	if msg.Image != "" && msg.Image != oldImage && oldImage != "" {
		if err := a.images.Delete(oldImage); err != nil {
			slog.Warn("failed to delete replaced image", "image", oldImage, "error", err)
		}
	}

	post.Title = msg.Title
	post.Slug = slug
	post.Content = msg.Content
	post.Excerpt = msg.Excerpt
	if msg.Image != "" {
		post.Image = msg.Image
	}
	post.PublishedAt = msg.PublishedAt
	post.CategoryID = msg.CategoryID
	post.UpdatedAt = time.Now()

	if err := a.store.SavePost(ctx, post); err != nil {
		context.Respond(storeError(err, "failed to save post"))
		return
	}

	if appErr := a.annotate(ctx, post, nil); appErr != nil {
		context.Respond(appErr)
		return
	}

	a.metrics.AddOperationLatency("update_post", time.Since(startTime))
	context.Respond(post)
}

func (a *PostActor) handleDeletePost(context actor.Context, msg *DeletePostMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	post, err := a.store.GetPost(ctx, msg.PostID)
	if err != nil {
		context.Respond(storeError(err, "failed to load post"))
		return
	}

	if appErr := auth.Authorize(auth.ActionDeletePost, msg.Principal, post.AuthorID); appErr != nil {
		context.Respond(appErr)
		return
	}

	// Cascade: the post's comments, every reaction on the post and on
	// those comments, then the post itself.
	comments, err := a.store.GetPostComments(ctx, post.ID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "failed to load comments for cascade", err))
		return
	}

	subjects := []models.Subject{models.PostSubject(post.ID)}
	commentIDs := make([]uuid.UUID, 0, len(comments))
	for _, comment := range comments {
		commentIDs = append(commentIDs, comment.ID)
		subjects = append(subjects, models.CommentSubject(comment.ID))
	}

	if err := a.store.DeleteComments(ctx, commentIDs); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "failed to delete comments", err))
		return
	}
	if err := a.store.DeleteReactionsForSubjects(ctx, subjects); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "failed to delete reactions", err))
		return
	}
	if err := a.store.DeletePost(ctx, post.ID); err != nil {
		context.Respond(storeError(err, "failed to delete post"))
		return
	}

	if post.Image != "" {
		if err := a.images.Delete(post.Image); err != nil {
			slog.Warn("failed to delete post image", "image", post.Image, "error", err)
		}
	}

	a.metrics.AddOperationLatency("delete_post", time.Since(startTime))
	context.Respond(true)
}

func (a *PostActor) handleGetPost(context actor.Context, msg *GetPostMsg) {
	ctx := stdctx.Background()

	var post *models.Post
	var err error
	if id, parseErr := uuid.Parse(msg.SlugOrID); parseErr == nil {
		post, err = a.store.GetPost(ctx, id)
	} else {
		post, err = a.store.GetPostBySlug(ctx, strings.ToLower(msg.SlugOrID))
	}
	if err != nil {
		context.Respond(storeError(err, "failed to load post"))
		return
	}

	if appErr := a.annotate(ctx, post, msg.ViewerID); appErr != nil {
		context.Respond(appErr)
		return
	}
	context.Respond(post)
}

func (a *PostActor) handleListPosts(context actor.Context, msg *ListPostsMsg) {
	ctx := stdctx.Background()

	page := msg.Page
	if page < 1 {
		page = 1
	}
	perPage := msg.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	filter := database.PostFilter{
		CategoryID: msg.CategoryID,
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
	}

	posts, total, err := a.store.ListPosts(ctx, filter)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "failed to list posts", err))
		return
	}

	for _, post := range posts {
		if appErr := a.annotate(ctx, post, msg.ViewerID); appErr != nil {
			context.Respond(appErr)
			return
		}
	}

	context.Respond(&ListPostsResult{
		Posts:   posts,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

func (a *PostActor) handleAdminListPosts(context actor.Context, msg *AdminListPostsMsg) {
	ctx := stdctx.Background()

	if err := auth.Authorize(auth.ActionViewAdminPosts, msg.Principal, uuid.Nil); err != nil {
		context.Respond(err)
		return
	}

	posts, err := a.store.GetAllPosts(ctx)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "failed to list posts", err))
		return
	}

	for _, post := range posts {
		if appErr := a.annotate(ctx, post, nil); appErr != nil {
			context.Respond(appErr)
			return
		}
	}
	context.Respond(posts)
}

func (a *PostActor) handleToggleReaction(context actor.Context, msg *TogglePostReactionMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if _, err := a.store.GetPost(ctx, msg.PostID); err != nil {
		context.Respond(storeError(err, "failed to load post"))
		return
	}

	subject := models.PostSubject(msg.PostID)
	state, err := a.store.ToggleReaction(ctx, subject, msg.UserID, msg.IsDislike)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "failed to toggle reaction", err))
		return
	}

	result, appErr := reactionCounts(ctx, a.store, subject, state)
	if appErr != nil {
		context.Respond(appErr)
		return
	}

	a.metrics.AddOperationLatency("toggle_post_reaction", time.Since(startTime))
	context.Respond(result)
}
