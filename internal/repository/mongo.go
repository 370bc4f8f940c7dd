package repository

import (
	"context"
	"errors"
	"fmt"

	"WebNews/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoArticleRepository struct {
	col *mongo.Collection
}

func NewMongoArticleRepository(col *mongo.Collection) *MongoArticleRepository {
	return &MongoArticleRepository{col: col}
}

func (r *MongoArticleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Article, error) {
	var doc bson.M
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: find %s: %w", id.Hex(), err)
	}
	return models.Article(doc), nil
}

func (r *MongoArticleRepository) FindAt(ctx context.Context, skip int64) (models.Article, error) {
	opts := options.Find().SetSkip(skip).SetLimit(1)
	cursor, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: find at %d: %w", skip, err)
	}
	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: read cursor: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrArticleNotFound
	}
	return models.Article(docs[0]), nil
}

func (r *MongoArticleRepository) EstimatedCount(ctx context.Context) (int64, error) {
	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("mongo: estimated count: %w", err)
	}
	return n, nil
}

func (r *MongoArticleRepository) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, readpref.Primary())
}
