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

// Message types for CommentActor
type (
	CreateCommentMsg struct {
		PostID   uuid.UUID
		AuthorID uuid.UUID
		Content  string
		ParentID *uuid.UUID
	}

	DeleteCommentMsg struct {
		Principal *auth.Principal
		CommentID uuid.UUID
	}

	GetCommentsForPostMsg struct {
		PostID uuid.UUID
	}

	ToggleCommentReactionMsg struct {
		CommentID uuid.UUID
		UserID    uuid.UUID
		IsDislike bool
	}
)

// CommentActor owns the comment tree and comment-level reaction toggles.
type CommentActor struct {
	store     database.Store
	metrics   *utils.MetricsCollector
	userCache map[uuid.UUID]string
}

func NewCommentActor(store database.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &CommentActor{
		store:     store,
		metrics:   metrics,
		userCache: make(map[uuid.UUID]string),
	}
}

func (a *CommentActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		slog.Info("CommentActor started", "pid", context.Self().String())

	case *CreateCommentMsg:
		a.handleCreateComment(context, msg)
	case *DeleteCommentMsg:
		a.handleDeleteComment(context, msg)
	case *GetCommentsForPostMsg:
		a.handleGetPostComments(context, msg)
	case *ToggleCommentReactionMsg:
		a.handleToggleReaction(context, msg)
	}
}

func (a *CommentActor) username(ctx stdctx.Context, userID uuid.UUID) string {
	if username, ok := a.userCache[userID]; ok {
		return username
	}
	user, err := a.store.GetUser(ctx, userID)
	if err != nil {
		slog.Warn("failed to resolve comment author", "userId", userID, "error", err)
		return "[unknown]"
	}
	a.userCache[user.ID] = user.Username
	return user.Username
}

func (a *CommentActor) annotate(ctx stdctx.Context, comment *models.Comment) *utils.AppError {
	subject := models.CommentSubject(comment.ID)

	likeCount, err := a.store.CountReactions(ctx, subject, false)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to count likes", err)
	}
	dislikeCount, err := a.store.CountReactions(ctx, subject, true)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to count dislikes", err)
	}

	comment.LikeCount = int(likeCount)
	comment.DislikeCount = int(dislikeCount)
	comment.AuthorUsername = a.username(ctx, comment.AuthorID)
	return nil
}

func (a *CommentActor) handleCreateComment(context actor.Context, msg *CreateCommentMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if strings.TrimSpace(msg.Content) == "" {
		context.Respond(utils.NewFieldError("content", "this field is required"))
		return
	}

	if _, err := a.store.GetPost(ctx, msg.PostID); err != nil {
		context.Respond(storeError(err, "failed to load post"))
		return
	}

	if msg.ParentID != nil {
		parent, err := a.store.GetComment(ctx, *msg.ParentID)
		if err != nil {
			context.Respond(utils.NewFieldError("parentId", "invalid parent comment"))
			return
		}
		if parent.PostID != msg.PostID {
			context.Respond(utils.NewFieldError("parentId", "invalid parent comment"))
			return
		}
		// One level of nesting only: replying to a reply is rejected
		// rather than silently flattened.
		if parent.IsReply() {
			context.Respond(utils.NewFieldError("parentId", "replies cannot be nested"))
			return
		}
	}

	comment := &models.Comment{
		ID:        uuid.New(),
		PostID:    msg.PostID,
		AuthorID:  msg.AuthorID,
		Content:   msg.Content,
		ParentID:  msg.ParentID,
		CreatedAt: time.Now(),
	}

	if err := a.store.SaveComment(ctx, comment); err != nil {
		context.Respond(storeError(err, "failed to save comment"))
		return
	}

	if appErr := a.annotate(ctx, comment); appErr != nil {
		context.Respond(appErr)
		return
	}

	a.metrics.AddOperationLatency("create_comment", time.Since(startTime))
	context.Respond(comment)
}

func (a *CommentActor) handleDeleteComment(context actor.Context, msg *DeleteCommentMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	comment, err := a.store.GetComment(ctx, msg.CommentID)
	if err != nil {
		context.Respond(storeError(err, "failed to load comment"))
		return
	}

	if appErr := auth.Authorize(auth.ActionDeleteComment, msg.Principal, comment.AuthorID); appErr != nil {
		context.Respond(appErr)
		return
	}

	// Cascade: replies go with their parent, and every reaction on the
	// removed comments goes too.
	replies, err := a.store.GetReplies(ctx, comment.ID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "failed to load replies", err))
		return
	}

	ids := []uuid.UUID{comment.ID}
	subjects := []models.Subject{models.CommentSubject(comment.ID)}
	for _, reply := range replies {
		ids = append(ids, reply.ID)
		subjects = append(subjects, models.CommentSubject(reply.ID))
	}

	if err := a.store.DeleteComments(ctx, ids); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "failed to delete comments", err))
		return
	}
	if err := a.store.DeleteReactionsForSubjects(ctx, subjects); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "failed to delete reactions", err))
		return
	}

	a.metrics.AddOperationLatency("delete_comment", time.Since(startTime))
	context.Respond(true)
}

// handleGetPostComments builds the display tree: top-level comments
// newest first, replies under their parent in creation order, every node
// carrying fresh like/dislike counts. Ordering is purely chronological
// and therefore identical in every locale.
func (a *CommentActor) handleGetPostComments(context actor.Context, msg *GetCommentsForPostMsg) {
	ctx := stdctx.Background()

	comments, err := a.store.GetPostComments(ctx, msg.PostID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "failed to load comments", err))
		return
	}

	byID := make(map[uuid.UUID]*models.Comment, len(comments))
	for _, comment := range comments {
		if appErr := a.annotate(ctx, comment); appErr != nil {
			context.Respond(appErr)
			return
		}
		byID[comment.ID] = comment
	}

	topLevel := make([]*models.Comment, 0, len(comments))
	for _, comment := range comments {
		if comment.ParentID == nil {
			topLevel = append(topLevel, comment)
			continue
		}
		if parent, ok := byID[*comment.ParentID]; ok {
			// Store order is oldest first, so replies arrive in
			// creation order already.
			parent.Replies = append(parent.Replies, comment)
		}
	}

	sort.SliceStable(topLevel, func(i, j int) bool {
		return topLevel[i].CreatedAt.After(topLevel[j].CreatedAt)
	})

	context.Respond(topLevel)
}

func (a *CommentActor) handleToggleReaction(context actor.Context, msg *ToggleCommentReactionMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if _, err := a.store.GetComment(ctx, msg.CommentID); err != nil {
		context.Respond(storeError(err, "failed to load comment"))
		return
	}

	subject := models.CommentSubject(msg.CommentID)
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

	a.metrics.AddOperationLatency("toggle_comment_reaction", time.Since(startTime))
	context.Respond(result)
}
