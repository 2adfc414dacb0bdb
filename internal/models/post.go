package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus is derived from PublishedAt and never stored.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusScheduled PostStatus = "scheduled"
	StatusPublished PostStatus = "published"
)

type Post struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Content        string     `json:"content"`
	Excerpt        string     `json:"excerpt,omitempty"`
	Image          string     `json:"image,omitempty"`
	PublishedAt    *time.Time `json:"publishedAt,omitempty"`
	CategoryID     *uuid.UUID `json:"categoryId,omitempty"`
	AuthorID       uuid.UUID  `json:"authorId"`
	AuthorUsername string     `json:"authorUsername,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	// Derived on read, never persisted.
	CommentCount int        `json:"commentCount"`
	LikeCount    int        `json:"likeCount"`
	DislikeCount int        `json:"dislikeCount"`
	UserReaction *Reaction  `json:"userReaction,omitempty"`
	Status       PostStatus `json:"status,omitempty"`
	Category     *Category  `json:"category,omitempty"`
}

// StatusAt derives the publication status relative to now.
func (p *Post) StatusAt(now time.Time) PostStatus {
	if p.PublishedAt == nil {
		return StatusDraft
	}
	if p.PublishedAt.After(now) {
		return StatusScheduled
	}
	return StatusPublished
}
