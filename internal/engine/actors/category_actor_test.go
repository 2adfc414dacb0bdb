package actors

import (
	"testing"

	"qalam/internal/models"
	"qalam/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryDefaults(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnCategoryActor()
	admin := rig.seedUser(t, models.RoleAdmin)

	result := rig.ask(t, pid, &CreateCategoryMsg{
		Principal: admin,
		Name:      "Web Development!",
	})

	category, ok := result.(*models.Category)
	require.True(t, ok, "expected a category, got %T", result)
	assert.Equal(t, "web-development", category.Slug)
	assert.Equal(t, models.DefaultCategoryColor, category.Color)
}

func TestCategoryManagementIsAdminOnly(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnCategoryActor()
	writer := rig.seedUser(t, models.RoleWriter)

	appErr := rig.askErr(t, pid, &CreateCategoryMsg{Principal: writer, Name: "Nope"})
	assert.Equal(t, utils.ErrForbidden, appErr.Code)
}

func TestCreateCategoryRejectsDuplicateSlug(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnCategoryActor()
	admin := rig.seedUser(t, models.RoleAdmin)

	rig.ask(t, pid, &CreateCategoryMsg{Principal: admin, Name: "Tech"})
	appErr := rig.askErr(t, pid, &CreateCategoryMsg{Principal: admin, Name: "Tech"})

	assert.Equal(t, utils.ErrValidation, appErr.Code)
	assert.Contains(t, appErr.Fields, "slug")
}

func TestUpdateCategoryKeepsColorWhenBlank(t *testing.T) {
	rig := newTestRig(t)
	pid := rig.spawnCategoryActor()
	admin := rig.seedUser(t, models.RoleAdmin)

	category := rig.ask(t, pid, &CreateCategoryMsg{
		Principal: admin,
		Name:      "Design",
		Color:     "#FF0000",
	}).(*models.Category)

	updated := rig.ask(t, pid, &UpdateCategoryMsg{
		Principal:  admin,
		CategoryID: category.ID,
		Name:       "Design & UX",
	}).(*models.Category)

	assert.Equal(t, "design-ux", updated.Slug)
	assert.Equal(t, "#FF0000", updated.Color)
}

func TestDeleteCategoryGuardedByPosts(t *testing.T) {
	rig := newTestRig(t)
	categoryPID := rig.spawnCategoryActor()
	postPID := rig.spawnPostActor()
	admin := rig.seedUser(t, models.RoleAdmin)
	writer := rig.seedUser(t, models.RoleWriter)

	category := rig.ask(t, categoryPID, &CreateCategoryMsg{
		Principal: admin,
		Name:      "Guarded",
	}).(*models.Category)

	post := rig.ask(t, postPID, &CreatePostMsg{
		Principal:  writer,
		Title:      "In Guarded",
		Content:    "content",
		CategoryID: &category.ID,
	}).(*models.Post)

	appErr := rig.askErr(t, categoryPID, &DeleteCategoryMsg{Principal: admin, CategoryID: category.ID})
	assert.Equal(t, utils.ErrConflict, appErr.Code)

	// Once the category is empty the delete goes through.
	rig.ask(t, postPID, &DeletePostMsg{Principal: writer, PostID: post.ID})
	result := rig.ask(t, categoryPID, &DeleteCategoryMsg{Principal: admin, CategoryID: category.ID})
	assert.Equal(t, true, result)
}

func TestGetCategoryBySlugWithPostsCount(t *testing.T) {
	rig := newTestRig(t)
	categoryPID := rig.spawnCategoryActor()
	postPID := rig.spawnPostActor()
	admin := rig.seedUser(t, models.RoleAdmin)
	writer := rig.seedUser(t, models.RoleWriter)

	category := rig.ask(t, categoryPID, &CreateCategoryMsg{
		Principal: admin,
		Name:      "Counted",
	}).(*models.Category)

	rig.ask(t, postPID, &CreatePostMsg{
		Principal:  writer,
		Title:      "Counted Post",
		Content:    "content",
		CategoryID: &category.ID,
	})

	fetched := rig.ask(t, categoryPID, &GetCategoryMsg{SlugOrID: "counted"}).(*models.Category)
	assert.Equal(t, category.ID, fetched.ID)
	assert.Equal(t, 1, fetched.PostsCount)
}

func TestListCategoriesSortAndSearch(t *testing.T) {
	rig := newTestRig(t)
	categoryPID := rig.spawnCategoryActor()
	postPID := rig.spawnPostActor()
	admin := rig.seedUser(t, models.RoleAdmin)
	writer := rig.seedUser(t, models.RoleWriter)

	popular := rig.ask(t, categoryPID, &CreateCategoryMsg{Principal: admin, Name: "Popular"}).(*models.Category)
	rig.ask(t, categoryPID, &CreateCategoryMsg{Principal: admin, Name: "Quiet"})

	rig.ask(t, postPID, &CreatePostMsg{
		Principal:  writer,
		Title:      "Popular Post",
		Content:    "content",
		CategoryID: &popular.ID,
	})

	// posts_count desc puts the category with posts first.
	byCount := rig.ask(t, categoryPID, &ListCategoriesMsg{Sort: "posts_count"}).(*ListCategoriesResult)
	require.Len(t, byCount.Categories, 2)
	assert.Equal(t, popular.ID, byCount.Categories[0].ID)
	assert.Equal(t, 1, byCount.Categories[0].PostsCount)

	byName := rig.ask(t, categoryPID, &ListCategoriesMsg{Sort: "name", Direction: "asc"}).(*ListCategoriesResult)
	require.Len(t, byName.Categories, 2)
	assert.Equal(t, "Popular", byName.Categories[0].Name)

	searched := rig.ask(t, categoryPID, &ListCategoriesMsg{Search: "quiet"}).(*ListCategoriesResult)
	require.Len(t, searched.Categories, 1)
	assert.Equal(t, "Quiet", searched.Categories[0].Name)
}
