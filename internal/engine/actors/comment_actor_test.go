package actors

import (
	"testing"

	"qalam/internal/models"
	"qalam/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (r *testRig) seedPost(t *testing.T) *models.Post {
	t.Helper()
	writer := r.seedUser(t, models.RoleWriter)
	postPID := r.spawnPostActor()
	return r.ask(t, postPID, &CreatePostMsg{
		Principal: writer,
		Title:     "Host Post " + uuid.New().String()[:8],
		Content:   "content",
	}).(*models.Post)
}

func TestCreateCommentAndReply(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnCommentActor()
	post := rig.seedPost(t)
	alice := rig.seedUser(t, models.RoleReader)
	bob := rig.seedUser(t, models.RoleReader)

	comment := rig.ask(t, pid, &CreateCommentMsg{
		PostID:   post.ID,
		AuthorID: alice.ID,
		Content:  "top-level comment",
	}).(*models.Comment)
	assert.Nil(t, comment.ParentID)

	reply := rig.ask(t, pid, &CreateCommentMsg{
		PostID:   post.ID,
		AuthorID: bob.ID,
		Content:  "a reply",
		ParentID: &comment.ID,
	}).(*models.Comment)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, comment.ID, *reply.ParentID)
}

func TestCreateCommentRequiresExistingPost(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnCommentActor()
	alice := rig.seedUser(t, models.RoleReader)

	appErr := rig.askErr(t, pid, &CreateCommentMsg{
		PostID:   uuid.New(),
		AuthorID: alice.ID,
		Content:  "orphaned",
	})
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
}

func TestCreateCommentRejectsBlankContent(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnCommentActor()
	post := rig.seedPost(t)
	alice := rig.seedUser(t, models.RoleReader)

	appErr := rig.askErr(t, pid, &CreateCommentMsg{
		PostID:   post.ID,
		AuthorID: alice.ID,
		Content:  "   ",
	})
	assert.Equal(t, utils.ErrValidation, appErr.Code)
}

func TestReplyValidation(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnCommentActor()
	post := rig.seedPost(t)
	otherPost := rig.seedPost(t)
	alice := rig.seedUser(t, models.RoleReader)

	comment := rig.ask(t, pid, &CreateCommentMsg{
		PostID:   post.ID,
		AuthorID: alice.ID,
		Content:  "parent",
	}).(*models.Comment)

	// Unknown parent.
	missing := uuid.New()
	appErr := rig.askErr(t, pid, &CreateCommentMsg{
		PostID:   post.ID,
		AuthorID: alice.ID,
		Content:  "reply",
		ParentID: &missing,
	})
	assert.Contains(t, appErr.Fields, "parentId")

	// Parent belongs to a different post.
	appErr = rig.askErr(t, pid, &CreateCommentMsg{
		PostID:   otherPost.ID,
		AuthorID: alice.ID,
		Content:  "reply",
		ParentID: &comment.ID,
	})
	assert.Contains(t, appErr.Fields, "parentId")

	// Replying to a reply is rejected, not flattened.
	reply := rig.ask(t, pid, &CreateCommentMsg{
		PostID:   post.ID,
		AuthorID: alice.ID,
		Content:  "first level",
		ParentID: &comment.ID,
	}).(*models.Comment)

	appErr = rig.askErr(t, pid, &CreateCommentMsg{
		PostID:   post.ID,
		AuthorID: alice.ID,
		Content:  "second level",
		ParentID: &reply.ID,
	})
	assert.Contains(t, appErr.Fields, "parentId")
}

func TestGetPostCommentsTreeShape(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnCommentActor()
	post := rig.seedPost(t)
	alice := rig.seedUser(t, models.RoleReader)

	first := rig.ask(t, pid, &CreateCommentMsg{PostID: post.ID, AuthorID: alice.ID, Content: "first"}).(*models.Comment)
	second := rig.ask(t, pid, &CreateCommentMsg{PostID: post.ID, AuthorID: alice.ID, Content: "second"}).(*models.Comment)
	replyA := rig.ask(t, pid, &CreateCommentMsg{PostID: post.ID, AuthorID: alice.ID, Content: "reply a", ParentID: &first.ID}).(*models.Comment)
	replyB := rig.ask(t, pid, &CreateCommentMsg{PostID: post.ID, AuthorID: alice.ID, Content: "reply b", ParentID: &first.ID}).(*models.Comment)

	tree := rig.ask(t, pid, &GetCommentsForPostMsg{PostID: post.ID}).([]*models.Comment)
	require.Len(t, tree, 2)

	// Top level newest first; replies under their parent oldest first.
	assert.Equal(t, second.ID, tree[0].ID)
	assert.Equal(t, first.ID, tree[1].ID)
	require.Len(t, tree[1].Replies, 2)
	assert.Equal(t, replyA.ID, tree[1].Replies[0].ID)
	assert.Equal(t, replyB.ID, tree[1].Replies[1].ID)
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnCommentActor()
	post := rig.seedPost(t)
	alice := rig.seedUser(t, models.RoleReader)
	admin := rig.seedUser(t, models.RoleAdmin)

	comment := rig.ask(t, pid, &CreateCommentMsg{
		PostID:   post.ID,
		AuthorID: alice.ID,
		Content:  "mine",
	}).(*models.Comment)

	// Even an admin cannot remove someone else's comment.
	appErr := rig.askErr(t, pid, &DeleteCommentMsg{Principal: admin, CommentID: comment.ID})
	assert.Equal(t, utils.ErrForbidden, appErr.Code)

	result := rig.ask(t, pid, &DeleteCommentMsg{Principal: alice, CommentID: comment.ID})
	assert.Equal(t, true, result)
}

func TestDeleteCommentCascadesToReplies(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnCommentActor()
	post := rig.seedPost(t)
	alice := rig.seedUser(t, models.RoleReader)
	bob := rig.seedUser(t, models.RoleReader)

	parent := rig.ask(t, pid, &CreateCommentMsg{PostID: post.ID, AuthorID: alice.ID, Content: "parent"}).(*models.Comment)
	reply := rig.ask(t, pid, &CreateCommentMsg{PostID: post.ID, AuthorID: bob.ID, Content: "reply", ParentID: &parent.ID}).(*models.Comment)

	rig.ask(t, pid, &ToggleCommentReactionMsg{CommentID: reply.ID, UserID: bob.ID})

	rig.ask(t, pid, &DeleteCommentMsg{Principal: alice, CommentID: parent.ID})

	tree := rig.ask(t, pid, &GetCommentsForPostMsg{PostID: post.ID}).([]*models.Comment)
	assert.Empty(t, tree)

	appErr := rig.askErr(t, pid, &ToggleCommentReactionMsg{CommentID: reply.ID, UserID: bob.ID})
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
}

func TestToggleCommentReaction(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnCommentActor()
	post := rig.seedPost(t)
	alice := rig.seedUser(t, models.RoleReader)

	comment := rig.ask(t, pid, &CreateCommentMsg{
		PostID:   post.ID,
		AuthorID: alice.ID,
		Content:  "react to me",
	}).(*models.Comment)

	result := rig.ask(t, pid, &ToggleCommentReactionMsg{CommentID: comment.ID, UserID: alice.ID}).(*ReactionResult)
	assert.Equal(t, models.ReactionLiked, result.State)
	assert.Equal(t, 1, result.LikeCount)

	result = rig.ask(t, pid, &ToggleCommentReactionMsg{CommentID: comment.ID, UserID: alice.ID}).(*ReactionResult)
	assert.Equal(t, models.ReactionNone, result.State)
	assert.Equal(t, 0, result.LikeCount)
}
