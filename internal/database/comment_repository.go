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

// CommentDocument represents comment data in MongoDB
type CommentDocument struct {
	ID        string    `bson:"_id"`
	PostID    string    `bson:"postId"`
	AuthorID  string    `bson:"authorId"`
	Content   string    `bson:"content"`
	ParentID  *string   `bson:"parentId,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
}

// SaveComment creates or updates a comment in MongoDB
func (m *MongoDB) SaveComment(ctx context.Context, comment *models.Comment) error {
	doc := CommentDocument{
		ID:        comment.ID.String(),
		PostID:    comment.PostID.String(),
		AuthorID:  comment.AuthorID.String(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.ParentID != nil {
		parentID := comment.ParentID.String()
		doc.ParentID = &parentID
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	if _, err := m.Comments.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

// GetComment retrieves a comment by ID
func (m *MongoDB) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var doc CommentDocument
	err := m.Comments.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("comment")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return convertCommentDocumentToModel(&doc)
}

// GetPostComments retrieves all comments for a post in creation order.
// The actor builds the display tree and applies its ordering.
func (m *MongoDB) GetPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return m.decodeComments(ctx, bson.M{"postId": postID.String()}, opts)
}

// GetReplies retrieves the direct replies of a comment in creation order
func (m *MongoDB) GetReplies(ctx context.Context, parentID uuid.UUID) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return m.decodeComments(ctx, bson.M{"parentId": parentID.String()}, opts)
}

// RecentComments returns the latest comments up to limit
func (m *MongoDB) RecentComments(ctx context.Context, limit int) ([]*models.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	return m.decodeComments(ctx, bson.M{}, opts)
}

func (m *MongoDB) decodeComments(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*models.Comment, error) {
	cursor, err := m.Comments.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	for cursor.Next(ctx) {
		var doc CommentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode comment: %w", err)
		}
		comment, err := convertCommentDocumentToModel(&doc)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// DeleteComments removes a batch of comments by ID
func (m *MongoDB) DeleteComments(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	stringIDs := make([]string, len(ids))
	for i, id := range ids {
		stringIDs[i] = id.String()
	}

	if _, err := m.Comments.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": stringIDs}}); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}

// CountComments returns the total number of comments
func (m *MongoDB) CountComments(ctx context.Context) (int64, error) {
	count, err := m.Comments.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}

// CountPostComments returns how many comments a post has, replies included
func (m *MongoDB) CountPostComments(ctx context.Context, postID uuid.UUID) (int64, error) {
	count, err := m.Comments.CountDocuments(ctx, bson.M{"postId": postID.String()})
	if err != nil {
		return 0, fmt.Errorf("failed to count post comments: %w", err)
	}
	return count, nil
}

func convertCommentDocumentToModel(doc *CommentDocument) (*models.Comment, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID: %w", err)
	}

	postID, err := uuid.Parse(doc.PostID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID: %w", err)
	}

	authorID, err := uuid.Parse(doc.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author ID: %w", err)
	}

	var parentID *uuid.UUID
	if doc.ParentID != nil {
		parsed, err := uuid.Parse(*doc.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent ID: %w", err)
		}
		parentID = &parsed
	}

	return &models.Comment{
		ID:        id,
		PostID:    postID,
		AuthorID:  authorID,
		Content:   doc.Content,
		ParentID:  parentID,
		CreatedAt: doc.CreatedAt,
	}, nil
}
