package database

import (
	"context"
	"fmt"
	"time"

	"qalam/internal/models"
	"qalam/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostDocument represents post data in MongoDB
type PostDocument struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Slug        string     `bson:"slug"`
	Content     string     `bson:"content"`
	Excerpt     string     `bson:"excerpt,omitempty"`
	Image       string     `bson:"image,omitempty"`
	PublishedAt *time.Time `bson:"publishedAt,omitempty"`
	CategoryID  *string    `bson:"categoryId,omitempty"`
	AuthorID    string     `bson:"authorId"`
	CreatedAt   time.Time  `bson:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}

// SavePost creates or updates a post in MongoDB
func (m *MongoDB) SavePost(ctx context.Context, post *models.Post) error {
	doc := PostDocument{
		ID:          post.ID.String(),
		Title:       post.Title,
		Slug:        post.Slug,
		Content:     post.Content,
		Excerpt:     post.Excerpt,
		Image:       post.Image,
		PublishedAt: post.PublishedAt,
		AuthorID:    post.AuthorID.String(),
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
	if post.CategoryID != nil {
		categoryID := post.CategoryID.String()
		doc.CategoryID = &categoryID
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	if _, err := m.Posts.UpdateOne(ctx, filter, update, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewAppError(utils.ErrDuplicate, "slug already in use", err)
		}
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

// GetPost retrieves a post by ID
func (m *MongoDB) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return m.findPost(ctx, bson.M{"_id": id.String()})
}

// GetPostBySlug retrieves a post by its slug
func (m *MongoDB) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return m.findPost(ctx, bson.M{"slug": slug})
}

func (m *MongoDB) findPost(ctx context.Context, filter bson.M) (*models.Post, error) {
	var doc PostDocument
	err := m.Posts.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("post")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return convertPostDocumentToModel(&doc)
}

// ListPosts returns a page of posts, newest first, with the total count
// for the filter.
func (m *MongoDB) ListPosts(ctx context.Context, filter PostFilter) ([]*models.Post, int64, error) {
	query := bson.M{}
	if filter.CategoryID != nil {
		query["categoryId"] = filter.CategoryID.String()
	}

	total, err := m.Posts.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))

	posts, err := m.decodePosts(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetAllPosts retrieves every post, newest first
func (m *MongoDB) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return m.decodePosts(ctx, bson.M{}, opts)
}

// RecentPosts returns the latest posts up to limit
func (m *MongoDB) RecentPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	return m.decodePosts(ctx, bson.M{}, opts)
}

func (m *MongoDB) decodePosts(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*models.Post, error) {
	cursor, err := m.Posts.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []*models.Post
	for cursor.Next(ctx) {
		var doc PostDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode post: %w", err)
		}
		post, err := convertPostDocumentToModel(&doc)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// CountPosts returns the total number of posts
func (m *MongoDB) CountPosts(ctx context.Context) (int64, error) {
	count, err := m.Posts.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// CountPostsByCategory returns how many posts reference a category
func (m *MongoDB) CountPostsByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	count, err := m.Posts.CountDocuments(ctx, bson.M{"categoryId": categoryID.String()})
	if err != nil {
		return 0, fmt.Errorf("failed to count posts by category: %w", err)
	}
	return count, nil
}

// DeletePost removes a post document. Cascades are handled by the caller.
func (m *MongoDB) DeletePost(ctx context.Context, id uuid.UUID) error {
	result, err := m.Posts.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if result.DeletedCount == 0 {
		return utils.NewNotFoundError("post")
	}
	return nil
}

func convertPostDocumentToModel(doc *PostDocument) (*models.Post, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID: %w", err)
	}

	authorID, err := uuid.Parse(doc.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author ID: %w", err)
	}

	var categoryID *uuid.UUID
	if doc.CategoryID != nil {
		parsed, err := uuid.Parse(*doc.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category ID: %w", err)
		}
		categoryID = &parsed
	}

	return &models.Post{
		ID:          id,
		Title:       doc.Title,
		Slug:        doc.Slug,
		Content:     doc.Content,
		Excerpt:     doc.Excerpt,
		Image:       doc.Image,
		PublishedAt: doc.PublishedAt,
		CategoryID:  categoryID,
		AuthorID:    authorID,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
