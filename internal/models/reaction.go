package models

import (
	"time"

	"github.com/google/uuid"
)

// SubjectType tags what a reaction points at.
type SubjectType string

const (
	SubjectPost    SubjectType = "post"
	SubjectComment SubjectType = "comment"
)

// Subject identifies a reactable entity as a tagged pair instead of a
// polymorphic parent type.
type Subject struct {
	Type SubjectType
	ID   uuid.UUID
}

func PostSubject(id uuid.UUID) Subject    { return Subject{Type: SubjectPost, ID: id} }
func CommentSubject(id uuid.UUID) Subject { return Subject{Type: SubjectComment, ID: id} }

// Reaction is a single user's like or dislike on a subject. At most one
// reaction exists per (subject, user); the store enforces this with a
// unique index.
type Reaction struct {
	ID          uuid.UUID   `json:"id"`
	SubjectType SubjectType `json:"subjectType"`
	SubjectID   uuid.UUID   `json:"subjectId"`
	UserID      uuid.UUID   `json:"userId"`
	IsDislike   bool        `json:"isDislike"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ReactionState is the per-user toggle state for one subject.
type ReactionState string

const (
	ReactionNone     ReactionState = "none"
	ReactionLiked    ReactionState = "liked"
	ReactionDisliked ReactionState = "disliked"
)

// StateFor converts a stored reaction (possibly nil) to its state.
func StateFor(r *Reaction) ReactionState {
	if r == nil {
		return ReactionNone
	}
	if r.IsDislike {
		return ReactionDisliked
	}
	return ReactionLiked
}
