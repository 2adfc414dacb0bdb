package database

import (
	"context"
	"fmt"
	"time"

	"qalam/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReactionDocument represents a like/dislike row in MongoDB
type ReactionDocument struct {
	ID          string    `bson:"_id"`
	SubjectType string    `bson:"subjectType"`
	SubjectID   string    `bson:"subjectId"`
	UserID      string    `bson:"userId"`
	IsDislike   bool      `bson:"isDislike"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func subjectFilter(subject models.Subject, userID uuid.UUID) bson.M {
	return bson.M{
		"subjectType": string(subject.Type),
		"subjectId":   subject.ID.String(),
		"userId":      userID.String(),
	}
}

// ToggleReaction applies the three-state toggle in two storage operations:
// a delete keyed on (subject, user, requested polarity), then an upsert
// keyed on (subject, user). The unique index on (subjectType, subjectId,
// userId) keeps concurrent toggles from ever producing a second row.
func (m *MongoDB) ToggleReaction(ctx context.Context, subject models.Subject, userID uuid.UUID, isDislike bool) (models.ReactionState, error) {
	// Retraction: same polarity already recorded.
	retract := subjectFilter(subject, userID)
	retract["isDislike"] = isDislike

	err := m.Reactions.FindOneAndDelete(ctx, retract).Err()
	if err == nil {
		return models.ReactionNone, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.ReactionNone, fmt.Errorf("failed to toggle reaction: %w", err)
	}

	// Create or flip in place.
	now := time.Now()
	filter := subjectFilter(subject, userID)
	update := bson.M{
		"$set": bson.M{
			"isDislike": isDislike,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"_id":         uuid.New().String(),
			"subjectType": string(subject.Type),
			"subjectId":   subject.ID.String(),
			"userId":      userID.String(),
			"createdAt":   now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := m.Reactions.UpdateOne(ctx, filter, update, opts); err != nil {
		return models.ReactionNone, fmt.Errorf("failed to toggle reaction: %w", err)
	}

	if isDislike {
		return models.ReactionDisliked, nil
	}
	return models.ReactionLiked, nil
}

// GetReaction returns the user's reaction on a subject, or (nil, nil)
// when there is none.
func (m *MongoDB) GetReaction(ctx context.Context, subject models.Subject, userID uuid.UUID) (*models.Reaction, error) {
	var doc ReactionDocument
	err := m.Reactions.FindOne(ctx, subjectFilter(subject, userID)).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reaction: %w", err)
	}
	return convertReactionDocumentToModel(&doc)
}

// CountReactions counts reactions of one polarity on a subject
func (m *MongoDB) CountReactions(ctx context.Context, subject models.Subject, isDislike bool) (int64, error) {
	filter := bson.M{
		"subjectType": string(subject.Type),
		"subjectId":   subject.ID.String(),
		"isDislike":   isDislike,
	}
	count, err := m.Reactions.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count reactions: %w", err)
	}
	return count, nil
}

// CountAllReactions counts reactions of one polarity across all subjects
func (m *MongoDB) CountAllReactions(ctx context.Context, isDislike bool) (int64, error) {
	count, err := m.Reactions.CountDocuments(ctx, bson.M{"isDislike": isDislike})
	if err != nil {
		return 0, fmt.Errorf("failed to count reactions: %w", err)
	}
	return count, nil
}

// DeleteReactionsForSubjects removes every reaction attached to the given
// subjects. Used by the cascade when posts or comments are deleted.
func (m *MongoDB) DeleteReactionsForSubjects(ctx context.Context, subjects []models.Subject) error {
	if len(subjects) == 0 {
		return nil
	}

	clauses := make([]bson.M, len(subjects))
	for i, subject := range subjects {
		clauses[i] = bson.M{
			"subjectType": string(subject.Type),
			"subjectId":   subject.ID.String(),
		}
	}

	if _, err := m.Reactions.DeleteMany(ctx, bson.M{"$or": clauses}); err != nil {
		return fmt.Errorf("failed to delete reactions: %w", err)
	}
	return nil
}

func convertReactionDocumentToModel(doc *ReactionDocument) (*models.Reaction, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid reaction ID: %w", err)
	}

	subjectID, err := uuid.Parse(doc.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("invalid subject ID: %w", err)
	}

	userID, err := uuid.Parse(doc.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	return &models.Reaction{
		ID:          id,
		SubjectType: models.SubjectType(doc.SubjectType),
		SubjectID:   subjectID,
		UserID:      userID,
		IsDislike:   doc.IsDislike,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
