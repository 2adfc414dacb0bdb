package database

import (
	"context"

	"qalam/internal/models"

	"github.com/google/uuid"
)

// PostFilter narrows and pages post listings.
type PostFilter struct {
	CategoryID *uuid.UUID
	Limit      int
	Offset     int
}

// Store is the persistence boundary used by the engine actors. The Mongo
// implementation is the production backend; the in-memory implementation
// backs the actor tests.
type Store interface {
	Close(ctx context.Context) error

	// Users
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)

	// Categories
	SaveCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListCategories(ctx context.Context, search string) ([]*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// Posts
	SavePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]*models.Post, int64, error)
	GetAllPosts(ctx context.Context) ([]*models.Post, error)
	RecentPosts(ctx context.Context, limit int) ([]*models.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	CountPostsByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	DeletePost(ctx context.Context, id uuid.UUID) error

	// Comments
	SaveComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	GetPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
	GetReplies(ctx context.Context, parentID uuid.UUID) ([]*models.Comment, error)
	DeleteComments(ctx context.Context, ids []uuid.UUID) error
	CountComments(ctx context.Context) (int64, error)
	CountPostComments(ctx context.Context, postID uuid.UUID) (int64, error)
	RecentComments(ctx context.Context, limit int) ([]*models.Comment, error)

	// Reactions. ToggleReaction applies the three-state toggle: an existing
	// reaction of the requested polarity is removed, anything else is
	// upserted to the requested polarity. GetReaction returns (nil, nil)
	// when the user has no reaction on the subject.
	ToggleReaction(ctx context.Context, subject models.Subject, userID uuid.UUID, isDislike bool) (models.ReactionState, error)
	GetReaction(ctx context.Context, subject models.Subject, userID uuid.UUID) (*models.Reaction, error)
	CountReactions(ctx context.Context, subject models.Subject, isDislike bool) (int64, error)
	CountAllReactions(ctx context.Context, isDislike bool) (int64, error)
	DeleteReactionsForSubjects(ctx context.Context, subjects []models.Subject) error
}
