package repository

import (
	"context"
	"errors"

	"WebNews/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrArticleNotFound is returned when no document matches, including
// offsets past the end of the collection.
var ErrArticleNotFound = errors.New("article not found")

//go:generate mockgen -source=./article.go -package=repomocks -destination=mocks/article.mock.go ArticleRepository
type ArticleRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Article, error)
	// FindAt returns the document at zero-based offset skip in the store's
	// natural order.
	FindAt(ctx context.Context, skip int64) (models.Article, error)
	// EstimatedCount is fast and may lag the real document count.
	EstimatedCount(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}
