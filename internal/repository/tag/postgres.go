package tag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"graetzlmap/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, data FROM tags ORDER BY key ASC`)
	if err != nil {
		r.logger.Printf("tag repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Tag, 0)
	for rows.Next() {
		var (
			key string
			raw []byte
		)
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, err
		}
		var c domain.Tag
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode tag %s: %w", key, err)
		}
		c.Key = key
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Get(ctx context.Context, key string) (*domain.Tag, error) {
	var raw []byte
	if err := r.pool.QueryRow(ctx, `SELECT data FROM tags WHERE key = $1`, key).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("tag repo: get key=%s error=%v", key, err)
		return nil, err
	}
	var c domain.Tag
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode tag %s: %w", key, err)
	}
	c.Key = key
	return &c, nil
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Tag) (*domain.Tag, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	if _, err := r.pool.Exec(ctx, `INSERT INTO tags (key, data) VALUES ($1, $2)`, c.Key, raw); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("tag %s: %w", c.Key, domain.ErrConflict)
		}
		r.logger.Printf("tag repo: create key=%s error=%v", c.Key, err)
		return nil, err
	}
	r.logger.Printf("tag repo: created key=%s", c.Key)
	return &c, nil
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Tag) (*domain.Tag, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE tags SET data = $2 WHERE key = $1`, c.Key, raw)
	if err != nil {
		r.logger.Printf("tag repo: update key=%s error=%v", c.Key, err)
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	r.logger.Printf("tag repo: updated key=%s", c.Key)
	return &c, nil
}
