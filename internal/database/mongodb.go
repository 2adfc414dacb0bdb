package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB wraps the client and the collections the repositories use.
type MongoDB struct {
	Client     *mongo.Client
	Users      *mongo.Collection
	Posts      *mongo.Collection
	Categories *mongo.Collection
	Comments   *mongo.Collection
	Reactions  *mongo.Collection
}

var _ Store = (*MongoDB)(nil)

func NewMongoDB(uri, dbName string) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	slog.Info("connected to MongoDB", "database", dbName)

	db := client.Database(dbName)
	return &MongoDB{
		Client:     client,
		Users:      db.Collection("users"),
		Posts:      db.Collection("posts"),
		Categories: db.Collection("categories"),
		Comments:   db.Collection("comments"),
		Reactions:  db.Collection("reactions"),
	}, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// EnsureIndexes creates every index the application relies on. The unique
// reactions index is load-bearing: it is what makes the toggle upsert safe
// against concurrent requests from the same user.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	if _, err := m.Users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "username", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	if _, err := m.Posts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "categoryId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}

	if _, err := m.Categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create category indexes: %w", err)
	}

	if _, err := m.Comments.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "postId", Value: 1},
			{Key: "createdAt", Value: -1},
		}},
		{Keys: bson.D{{Key: "parentId", Value: 1}}},
		{Keys: bson.D{{Key: "authorId", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create comment indexes: %w", err)
	}

	if _, err := m.Reactions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "subjectType", Value: 1},
			{Key: "subjectId", Value: 1},
			{Key: "userId", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create reaction indexes: %w", err)
	}

	return nil
}
