package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"WebNews/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPgRepo(t *testing.T) (*PostgresArticleRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresArticleRepository(db, "articles"), mock
}

func TestPostgresArticleRepository_FindByID(t *testing.T) {
	oid, err := primitive.ObjectIDFromHex("65a1f0c2e4b0a1b2c3d4e5f6")
	require.NoError(t, err)

	testCases := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    models.Article
		wantErr error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT doc FROM "articles" WHERE id = $1`).
					WithArgs(oid.Hex()).
					WillReturnRows(sqlmock.NewRows([]string{"doc"}).
						AddRow([]byte(`{"title":"Titulek","content":"Text","views":12,"tags":["a"]}`)))
			},
			want: models.Article{
				"_id":     oid,
				"title":   "Titulek",
				"content": "Text",
				"views":   json.Number("12"),
				"tags":    []any{"a"},
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT doc FROM "articles" WHERE id = $1`).
					WithArgs(oid.Hex()).
					WillReturnRows(sqlmock.NewRows([]string{"doc"}))
			},
			wantErr: ErrArticleNotFound,
		},
		{
			name: "query failed",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT doc FROM "articles" WHERE id = $1`).
					WithArgs(oid.Hex()).
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: errors.New("connection reset"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newPgRepo(t)
			tc.mock(mock)

			got, err := repo.FindByID(context.Background(), oid)
			switch {
			case tc.wantErr == nil:
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			case errors.Is(tc.wantErr, ErrArticleNotFound):
				assert.ErrorIs(t, err, ErrArticleNotFound)
			default:
				assert.ErrorContains(t, err, tc.wantErr.Error())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresArticleRepository_FindAt(t *testing.T) {
	repo, mock := newPgRepo(t)
	mock.ExpectQuery(`SELECT id, doc FROM "articles" ORDER BY id LIMIT 1 OFFSET $1`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doc"}).
			AddRow("legacy-key", []byte(`{"title":"Třetí"}`)))
	mock.ExpectQuery(`SELECT id, doc FROM "articles" ORDER BY id LIMIT 1 OFFSET $1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doc"}))

	got, err := repo.FindAt(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, models.Article{"_id": "legacy-key", "title": "Třetí"}, got)

	_, err = repo.FindAt(context.Background(), 3)
	assert.ErrorIs(t, err, ErrArticleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresArticleRepository_EstimatedCount(t *testing.T) {
	const statsQuery = `SELECT reltuples::bigint FROM pg_class WHERE oid = to_regclass($1)`

	t.Run("statistics", func(t *testing.T) {
		repo, mock := newPgRepo(t)
		mock.ExpectQuery(statsQuery).
			WithArgs(`"articles"`).
			WillReturnRows(sqlmock.NewRows([]string{"reltuples"}).AddRow(int64(1500)))

		n, err := repo.EstimatedCount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1500), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("never analyzed", func(t *testing.T) {
		repo, mock := newPgRepo(t)
		mock.ExpectQuery(statsQuery).
			WithArgs(`"articles"`).
			WillReturnRows(sqlmock.NewRows([]string{"reltuples"}).AddRow(int64(-1)))
		mock.ExpectQuery(`SELECT count(*) FROM "articles"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

		n, err := repo.EstimatedCount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing table", func(t *testing.T) {
		repo, mock := newPgRepo(t)
		mock.ExpectQuery(statsQuery).
			WithArgs(`"articles"`).
			WillReturnRows(sqlmock.NewRows([]string{"reltuples"}))

		_, err := repo.EstimatedCount(context.Background())
		assert.Error(t, err)
	})
}
