package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID             uuid.UUID  `json:"id"`
	PostID         uuid.UUID  `json:"postId"`
	AuthorID       uuid.UUID  `json:"authorId"`
	AuthorUsername string     `json:"authorUsername,omitempty"`
	Content        string     `json:"content"`
	ParentID       *uuid.UUID `json:"parentId,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`

	// Derived on read, never persisted.
	LikeCount    int        `json:"likeCount"`
	DislikeCount int        `json:"dislikeCount"`
	Replies      []*Comment `json:"replies,omitempty"`
}

// IsReply reports whether the comment is nested under another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
