package repository

import (
	"context"
	"fmt"
	"time"

	"shopify-template-sync/internal/domain"
	"shopify-template-sync/internal/infrastructure/repository/entity"
	"shopify-template-sync/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SyncRunCollection holds one document per sync run
const SyncRunCollection = "sync_runs"

// MongoSyncRunRepository implements SyncRunRepository using MongoDB
type MongoSyncRunRepository struct {
	collection *mongo.Collection
}

// NewMongoSyncRunRepository creates a new MongoDB run history repository
func NewMongoSyncRunRepository(db *mongo.Database) ports.SyncRunRepository {
	return &MongoSyncRunRepository{
		collection: db.Collection(SyncRunCollection),
	}
}

// Connect opens a MongoDB client for uri and pings it
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Save inserts run and sets its ID
func (r *MongoSyncRunRepository) Save(ctx context.Context, run *domain.SyncRun) error {
	doc := entity.MongoSyncRunDocFromDomain(run)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.FinishedAt.IsZero() {
		doc.FinishedAt = time.Now()
	}

	// history is always read newest first
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "startedAt", Value: -1}},
	}
	_, _ = r.collection.Indexes().CreateOne(ctx, indexModel)

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to save sync run: %w", err)
	}

	run.ID = doc.ID.Hex()
	return nil
}

// ListRecent returns the latest runs, newest first
func (r *MongoSyncRunRepository) ListRecent(ctx context.Context, limit int64) ([]*domain.SyncRun, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	defer cursor.Close(ctx)

	var runs []*domain.SyncRun
	for cursor.Next(ctx) {
		var doc entity.MongoSyncRunDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode sync run: %w", err)
		}
		runs = append(runs, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return runs, nil
}
