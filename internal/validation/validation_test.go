package validation

import (
	"testing"

	"qalam/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPostInput(t *testing.T) {
	valid := &PostInput{
		Title:   "A Title",
		Content: "Some content",
	}
	assert.Nil(t, Check(valid))

	invalid := &PostInput{
		Slug:       "Not A Slug",
		CategoryID: "not-a-uuid",
	}
	appErr := Check(invalid)
	require.NotNil(t, appErr)
	assert.Equal(t, utils.ErrValidation, appErr.Code)
	assert.Contains(t, appErr.Fields, "title")
	assert.Contains(t, appErr.Fields, "content")
	assert.Contains(t, appErr.Fields, "slug")
	assert.Contains(t, appErr.Fields, "categoryId")
}

func TestCheckCategoryInput(t *testing.T) {
	assert.Nil(t, Check(&CategoryInput{Name: "Tech", Color: "#3B82F6"}))

	appErr := Check(&CategoryInput{Name: "T", Color: "blue"})
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Fields, "name")
	assert.Contains(t, appErr.Fields, "color")
}

func TestCheckRegisterInput(t *testing.T) {
	appErr := Check(&RegisterUserInput{
		Username: "ok-name",
		Email:    "ok@example.com",
		Password: "long-enough-1",
		Role:     "superuser",
	})
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Fields, "role")
}
