package repository

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"WebNews/internal/models"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostgresArticleRepository reads articles kept as JSONB rows:
//
//	CREATE TABLE articles (id text PRIMARY KEY, doc jsonb NOT NULL);
//
// id holds the 24-hex ObjectID; doc is the document without "_id".
type PostgresArticleRepository struct {
	db    *sql.DB
	table string
}

func NewPostgresArticleRepository(db *sql.DB, table string) *PostgresArticleRepository {
	return &PostgresArticleRepository{db: db, table: table}
}

func (r *PostgresArticleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Article, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT doc FROM `+pq.QuoteIdentifier(r.table)+` WHERE id = $1`, id.Hex()).
		Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: find %s: %w", id.Hex(), err)
	}
	return decodeDoc(id.Hex(), raw)
}

func (r *PostgresArticleRepository) FindAt(ctx context.Context, skip int64) (models.Article, error) {
	var (
		id  string
		raw []byte
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, doc FROM `+pq.QuoteIdentifier(r.table)+` ORDER BY id LIMIT 1 OFFSET $1`, skip).
		Scan(&id, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: find at %d: %w", skip, err)
	}
	return decodeDoc(id, raw)
}

// EstimatedCount reads the planner statistics. A table that was never
// analyzed reports -1 and falls back to an exact count.
func (r *PostgresArticleRepository) EstimatedCount(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT reltuples::bigint FROM pg_class WHERE oid = to_regclass($1)`,
		pq.QuoteIdentifier(r.table)).
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres: estimated count: %w", err)
	}
	if n >= 0 {
		return n, nil
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM `+pq.QuoteIdentifier(r.table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count: %w", err)
	}
	return n, nil
}

func (r *PostgresArticleRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func decodeDoc(id string, raw []byte) (models.Article, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var a models.Article
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("postgres: decode %s: %w", id, err)
	}
	if a == nil {
		a = models.Article{}
	}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		a["_id"] = oid
	} else {
		a["_id"] = id
	}
	return a, nil
}
