package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

const resultsCollection = "results"

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	ListRecent(ctx context.Context, kind string, limit int64) ([]*entity.Result, error)
}

type dbResult struct {
	collection *mongo.Collection
}

func NewResultRepository(db *mongo.Database) ResultRepository {
	return &dbResult{
		collection: db.Collection(resultsCollection),
	}
}

// Save inserts result. Saving the same ID twice is a no-op.
func (that *dbResult) Save(ctx context.Context, result *entity.Result) error {
	_, err := that.collection.InsertOne(ctx, result)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}

	return nil
}

// ListRecent returns the newest results first. Empty kind matches every game.
func (that *dbResult) ListRecent(ctx context.Context, kind string, limit int64) ([]*entity.Result, error) {
	filter := bson.M{}
	if kind != "" {
		filter["kind"] = kind
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "finished_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := that.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find results: %w", err)
	}
	defer cursor.Close(ctx)

	results := make([]*entity.Result, 0)
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}

	return results, nil
}
