package actors

import (
	"testing"
	"time"

	"qalam/internal/models"
	"qalam/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostDerivesSlugFromTitle(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnPostActor()
	writer := rig.seedUser(t, models.RoleWriter)

	result := rig.ask(t, pid, &CreatePostMsg{
		Principal: writer,
		Title:     "Web Development!",
		Content:   "Some content",
	})

	post, ok := result.(*models.Post)
	require.True(t, ok, "expected a post, got %T", result)
	assert.Equal(t, "web-development", post.Slug)
	assert.Equal(t, writer.ID, post.AuthorID)
	assert.Equal(t, models.StatusDraft, post.Status)
}

func TestCreatePostRejectsReaders(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnPostActor()
	reader := rig.seedUser(t, models.RoleReader)

	appErr := rig.askErr(t, pid, &CreatePostMsg{
		Principal: reader,
		Title:     "Not allowed",
		Content:   "content",
	})
	assert.Equal(t, utils.ErrForbidden, appErr.Code)
}

func TestCreatePostRejectsDuplicateSlug(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnPostActor()
	writer := rig.seedUser(t, models.RoleWriter)

	rig.ask(t, pid, &CreatePostMsg{Principal: writer, Title: "Same Title", Content: "one"})
	appErr := rig.askErr(t, pid, &CreatePostMsg{Principal: writer, Title: "Same Title", Content: "two"})

	assert.Equal(t, utils.ErrValidation, appErr.Code)
	assert.Contains(t, appErr.Fields, "slug")
}

func TestCreatePostRejectsUnknownCategory(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnPostActor()
	writer := rig.seedUser(t, models.RoleWriter)
	missing := uuid.New()

	appErr := rig.askErr(t, pid, &CreatePostMsg{
		Principal:  writer,
		Title:      "Categorized",
		Content:    "content",
		CategoryID: &missing,
	})
	assert.Equal(t, utils.ErrValidation, appErr.Code)
	assert.Contains(t, appErr.Fields, "categoryId")
}

func TestGetPostBySlugWithViewerReaction(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnPostActor()
	writer := rig.seedUser(t, models.RoleWriter)
	viewer := rig.seedUser(t, models.RoleReader)

	created := rig.ask(t, pid, &CreatePostMsg{
		Principal: writer,
		Title:     "Readable Post",
		Content:   "content",
	}).(*models.Post)

	rig.ask(t, pid, &TogglePostReactionMsg{PostID: created.ID, UserID: viewer.ID, IsDislike: false})

	result := rig.ask(t, pid, &GetPostMsg{SlugOrID: "readable-post", ViewerID: &viewer.ID})
	post, ok := result.(*models.Post)
	require.True(t, ok, "expected a post, got %T", result)

	assert.Equal(t, created.ID, post.ID)
	assert.Equal(t, 1, post.LikeCount)
	require.NotNil(t, post.UserReaction)
	assert.False(t, post.UserReaction.IsDislike)

	// An anonymous read of the same post carries no viewer reaction.
	anonymous := rig.ask(t, pid, &GetPostMsg{SlugOrID: created.ID.String()}).(*models.Post)
	assert.Nil(t, anonymous.UserReaction)
}

func TestUpdatePostOwnership(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnPostActor()
	owner := rig.seedUser(t, models.RoleWriter)
	other := rig.seedUser(t, models.RoleWriter)
	admin := rig.seedUser(t, models.RoleAdmin)

	post := rig.ask(t, pid, &CreatePostMsg{
		Principal: owner,
		Title:     "Original Title",
		Content:   "content",
	}).(*models.Post)

	appErr := rig.askErr(t, pid, &UpdatePostMsg{
		Principal: other,
		PostID:    post.ID,
		Title:     "Hijacked",
		Content:   "content",
	})
	assert.Equal(t, utils.ErrForbidden, appErr.Code)

	updated := rig.ask(t, pid, &UpdatePostMsg{
		Principal: admin,
		PostID:    post.ID,
		Title:     "Moderated Title",
		Content:   "content",
	}).(*models.Post)
	assert.Equal(t, "Moderated Title", updated.Title)
	// A blank slug on update keeps the existing one.
	assert.Equal(t, "original-title", updated.Slug)
}

func TestPublishScheduling(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnPostActor()
	writer := rig.seedUser(t, models.RoleWriter)

	future := time.Now().Add(48 * time.Hour)
	scheduled := rig.ask(t, pid, &CreatePostMsg{
		Principal:   writer,
		Title:       "Tomorrow's News",
		Content:     "content",
		PublishedAt: &future,
	}).(*models.Post)
	assert.Equal(t, models.StatusScheduled, scheduled.Status)

	past := time.Now().Add(-time.Hour)
	published := rig.ask(t, pid, &CreatePostMsg{
		Principal:   writer,
		Title:       "Yesterday's News",
		Content:     "content",
		PublishedAt: &past,
	}).(*models.Post)
	assert.Equal(t, models.StatusPublished, published.Status)
}

func TestTogglePostReaction(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnPostActor()
	writer := rig.seedUser(t, models.RoleWriter)
	alice := rig.seedUser(t, models.RoleReader)
	bob := rig.seedUser(t, models.RoleReader)

	post := rig.ask(t, pid, &CreatePostMsg{
		Principal: writer,
		Title:     "Reactable",
		Content:   "content",
	}).(*models.Post)

	// Alice likes, Bob dislikes.
	result := rig.ask(t, pid, &TogglePostReactionMsg{PostID: post.ID, UserID: alice.ID}).(*ReactionResult)
	assert.Equal(t, models.ReactionLiked, result.State)
	assert.Equal(t, 1, result.LikeCount)

	result = rig.ask(t, pid, &TogglePostReactionMsg{PostID: post.ID, UserID: bob.ID, IsDislike: true}).(*ReactionResult)
	assert.Equal(t, models.ReactionDisliked, result.State)
	assert.Equal(t, 1, result.LikeCount)
	assert.Equal(t, 1, result.DislikeCount)

	// Alice switches to dislike; her like disappears.
	result = rig.ask(t, pid, &TogglePostReactionMsg{PostID: post.ID, UserID: alice.ID, IsDislike: true}).(*ReactionResult)
	assert.Equal(t, models.ReactionDisliked, result.State)
	assert.Equal(t, 0, result.LikeCount)
	assert.Equal(t, 2, result.DislikeCount)

	// Alice taps dislike again; back to none.
	result = rig.ask(t, pid, &TogglePostReactionMsg{PostID: post.ID, UserID: alice.ID, IsDislike: true}).(*ReactionResult)
	assert.Equal(t, models.ReactionNone, result.State)
	assert.Equal(t, 1, result.DislikeCount)
}

func TestToggleReactionOnMissingPost(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnPostActor()
	reader := rig.seedUser(t, models.RoleReader)

	appErr := rig.askErr(t, pid, &TogglePostReactionMsg{PostID: reader.ID, UserID: reader.ID})
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
}

func TestDeletePostCascades(t *testing.T) {
	rig := newTestRig(t)
	postPID := rig.spawnPostActor()
	commentPID := rig.spawnCommentActor()
	writer := rig.seedUser(t, models.RoleWriter)
	reader := rig.seedUser(t, models.RoleReader)

	post := rig.ask(t, postPID, &CreatePostMsg{
		Principal: writer,
		Title:     "Doomed Post",
		Content:   "content",
	}).(*models.Post)

	comment := rig.ask(t, commentPID, &CreateCommentMsg{
		PostID:   post.ID,
		AuthorID: reader.ID,
		Content:  "a comment",
	}).(*models.Comment)

	rig.ask(t, postPID, &TogglePostReactionMsg{PostID: post.ID, UserID: reader.ID})
	rig.ask(t, commentPID, &ToggleCommentReactionMsg{CommentID: comment.ID, UserID: reader.ID})

	result := rig.ask(t, postPID, &DeletePostMsg{Principal: writer, PostID: post.ID})
	assert.Equal(t, true, result)

	// Post, comments, and every reaction are gone.
	appErr := rig.askErr(t, postPID, &GetPostMsg{SlugOrID: post.ID.String()})
	assert.Equal(t, utils.ErrNotFound, appErr.Code)

	appErr = rig.askErr(t, commentPID, &ToggleCommentReactionMsg{CommentID: comment.ID, UserID: reader.ID})
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
}

func TestListPostsPaginationAndFilter(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnPostActor()
	categoryPID := rig.spawnCategoryActor()
	writer := rig.seedUser(t, models.RoleWriter)
	admin := rig.seedUser(t, models.RoleAdmin)

	category := rig.ask(t, categoryPID, &CreateCategoryMsg{
		Principal: admin,
		Name:      "Tech",
	}).(*models.Category)

	for i := 0; i < 3; i++ {
		msg := &CreatePostMsg{
			Principal: writer,
			Title:     "Post " + string(rune('A'+i)),
			Content:   "content",
		}
		if i == 0 {
			msg.CategoryID = &category.ID
		}
		rig.ask(t, pid, msg)
	}

	all := rig.ask(t, pid, &ListPostsMsg{Page: 1, PerPage: 2}).(*ListPostsResult)
	assert.Equal(t, int64(3), all.Total)
	assert.Len(t, all.Posts, 2)

	filtered := rig.ask(t, pid, &ListPostsMsg{CategoryID: &category.ID}).(*ListPostsResult)
	assert.Equal(t, int64(1), filtered.Total)
	require.Len(t, filtered.Posts, 1)
	require.NotNil(t, filtered.Posts[0].Category)
	assert.Equal(t, "Tech", filtered.Posts[0].Category.Name)
}

func TestAdminListPostsIsAdminOnly(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnPostActor()
	writer := rig.seedUser(t, models.RoleWriter)
	admin := rig.seedUser(t, models.RoleAdmin)

	rig.ask(t, pid, &CreatePostMsg{Principal: writer, Title: "Draft Post", Content: "content"})

	appErr := rig.askErr(t, pid, &AdminListPostsMsg{Principal: writer})
	assert.Equal(t, utils.ErrForbidden, appErr.Code)

	posts := rig.ask(t, pid, &AdminListPostsMsg{Principal: admin}).([]*models.Post)
	require.Len(t, posts, 1)
	assert.Equal(t, models.StatusDraft, posts[0].Status)
}
