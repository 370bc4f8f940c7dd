package service

import (
	"context"
	"errors"
	"fmt"

	"WebNews/internal/logger"
	"WebNews/internal/models"
	"WebNews/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// PageSize is fixed: one article per page.
const PageSize = 1

var (
	ErrInvalidIdentifier = errors.New("invalid article identifier")
	ErrNotFound          = repository.ErrArticleNotFound
)

//go:generate mockgen -source=./article.go -package=svcmocks -destination=mocks/article.mock.go ArticleService
type ArticleService interface {
	GetByID(ctx context.Context, id string) (models.Article, error)
	GetPage(ctx context.Context, page int) (models.Page, error)
	Ping(ctx context.Context) error
}

type ArticleAccessor struct {
	repo repository.ArticleRepository
	l    logger.LoggerV1
}

func NewArticleAccessor(repo repository.ArticleRepository, l logger.LoggerV1) *ArticleAccessor {
	return &ArticleAccessor{
		repo: repo,
		l:    l,
	}
}

// GetByID never touches the store when id is not a 24-hex ObjectID.
func (s *ArticleAccessor) GetByID(ctx context.Context, id string) (models.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	art, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	return art, nil
}

// GetPage reads the article at offset page-1 and the estimated total in
// parallel. Either failure fails the whole page.
// page is echoed back as is, out-of-range values included.
func (s *ArticleAccessor) GetPage(ctx context.Context, page int) (models.Page, error) {
	skip := int64(page-1) * PageSize
	if skip < 0 {
		skip = 0
	}

	eg, egCtx := errgroup.WithContext(ctx)
	var (
		art   models.Article
		total int64
	)
	eg.Go(func() error {
		a, err := s.repo.FindAt(egCtx, skip)
		if errors.Is(err, repository.ErrArticleNotFound) {
			return nil
		}
		art = a
		return err
	})
	eg.Go(func() error {
		n, err := s.repo.EstimatedCount(egCtx)
		total = n
		return err
	})
	if err := eg.Wait(); err != nil {
		return models.Page{}, fmt.Errorf("page %d: %w", page, err)
	}

	totalPages := (total + PageSize - 1) / PageSize
	res := models.Page{
		CurrentArticle: art,
		CurrentPage:    page,
		TotalPages:     totalPages,
	}
	if int64(page) < totalPages {
		next := page + 1
		res.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		res.PrevPage = &prev
	}
	s.l.Debug("page served",
		logger.Int("page", page),
		logger.Int64("total", total),
		logger.Bool("found", art != nil),
		logger.String("title", art.Title()))
	return res, nil
}

func (s *ArticleAccessor) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
