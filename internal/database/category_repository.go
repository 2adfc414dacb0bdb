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

// CategoryDocument represents category data in MongoDB
type CategoryDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Slug        string    `bson:"slug"`
	Description string    `bson:"description,omitempty"`
	Color       string    `bson:"color"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

// SaveCategory creates or updates a category in MongoDB
func (m *MongoDB) SaveCategory(ctx context.Context, category *models.Category) error {
	doc := CategoryDocument{
		ID:          category.ID.String(),
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		Color:       category.Color,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	if _, err := m.Categories.UpdateOne(ctx, filter, update, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewAppError(utils.ErrDuplicate, "slug already in use", err)
		}
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

// GetCategory retrieves a category by ID
func (m *MongoDB) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return m.findCategory(ctx, bson.M{"_id": id.String()})
}

// GetCategoryBySlug retrieves a category by its slug
func (m *MongoDB) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return m.findCategory(ctx, bson.M{"slug": slug})
}

func (m *MongoDB) findCategory(ctx context.Context, filter bson.M) (*models.Category, error) {
	var doc CategoryDocument
	err := m.Categories.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("category")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return convertCategoryDocumentToModel(&doc)
}

// ListCategories returns every category matching the search term in name
// or description. Sorting and pagination happen in the actor because the
// posts-count sort needs derived counts.
func (m *MongoDB) ListCategories(ctx context.Context, search string) ([]*models.Category, error) {
	query := bson.M{}
	if search != "" {
		pattern := bson.M{"$regex": search, "$options": "i"}
		query["$or"] = []bson.M{
			{"name": pattern},
			{"description": pattern},
		}
	}

	cursor, err := m.Categories.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []*models.Category
	for cursor.Next(ctx) {
		var doc CategoryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode category: %w", err)
		}
		category, err := convertCategoryDocumentToModel(&doc)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// DeleteCategory removes a category document. The posts-exist guard is
// enforced by the category actor before calling this.
func (m *MongoDB) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result, err := m.Categories.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return utils.NewNotFoundError("category")
	}
	return nil
}

func convertCategoryDocumentToModel(doc *CategoryDocument) (*models.Category, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid category ID: %w", err)
	}

	return &models.Category{
		ID:          id,
		Name:        doc.Name,
		Slug:        doc.Slug,
		Description: doc.Description,
		Color:       doc.Color,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
