package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is applied when a category is created without one.
const DefaultCategoryColor = "#3B82F6"

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Derived on read.
	PostsCount int `json:"postsCount"`
}
