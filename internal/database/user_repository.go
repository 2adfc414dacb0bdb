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

// UserDocument represents user data in MongoDB
type UserDocument struct {
	ID             string    `bson:"_id"`
	Username       string    `bson:"username"`
	Email          string    `bson:"email"`
	HashedPassword string    `bson:"passwordHash"`
	Role           string    `bson:"role"`
	CreatedAt      time.Time `bson:"createdAt"`
}

// SaveUser creates or updates a user in MongoDB
func (m *MongoDB) SaveUser(ctx context.Context, user *models.User) error {
	doc := UserDocument{
		ID:             user.ID.String(),
		Username:       user.Username,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		Role:           string(user.Role),
		CreatedAt:      user.CreatedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	if _, err := m.Users.UpdateOne(ctx, filter, update, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewAppError(utils.ErrDuplicate, "email already registered", err)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID
func (m *MongoDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var doc UserDocument
	err := m.Users.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("user")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return convertUserDocumentToModel(&doc)
}

// GetUserByEmail retrieves a user by email
func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc UserDocument
	err := m.Users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("user")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return convertUserDocumentToModel(&doc)
}

// CountUsers returns the total number of registered users
func (m *MongoDB) CountUsers(ctx context.Context) (int64, error) {
	count, err := m.Users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func convertUserDocumentToModel(doc *UserDocument) (*models.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	return &models.User{
		ID:             id,
		Username:       doc.Username,
		Email:          doc.Email,
		HashedPassword: doc.HashedPassword,
		Role:           models.ParseRole(doc.Role),
		CreatedAt:      doc.CreatedAt,
	}, nil
}
