package collection

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

func (r *postgresRepo) List(ctx context.Context, kind domain.CollectionKind) ([]domain.Collection, error) {
	const q = `
SELECT id, data
FROM collections
WHERE kind = $1
ORDER BY created_at ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q, string(kind))
	if err != nil {
		r.logger.Printf("collection repo: list kind=%s error=%v", kind, err)
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Collection, 0)
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		c, err := decode(kind, id, raw)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, kind domain.CollectionKind, id string) (*domain.Collection, error) {
	return r.getOne(ctx, kind, `SELECT id, data FROM collections WHERE kind = $1 AND id = $2`, id)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, kind domain.CollectionKind, slug string) (*domain.Collection, error) {
	const q = `SELECT id, data FROM collections WHERE kind = $1 AND slug = $2 ORDER BY created_at ASC LIMIT 1`
	return r.getOne(ctx, kind, q, slug)
}

func (r *postgresRepo) getOne(ctx context.Context, kind domain.CollectionKind, q, arg string) (*domain.Collection, error) {
	var (
		id  string
		raw []byte
	)
	if err := r.pool.QueryRow(ctx, q, string(kind), arg).Scan(&id, &raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("collection repo: get kind=%s arg=%s error=%v", kind, arg, err)
		return nil, err
	}
	c, err := decode(kind, id, raw)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// slugVariants returns the collections whose slug is base or base-N.
func slugVariants(ctx context.Context, q querier, kind domain.CollectionKind, base string) ([]domain.Collection, error) {
	rows, err := q.Query(ctx, `SELECT id, slug FROM collections WHERE kind = $1 AND (slug = $2 OR slug LIKE $3)`,
		string(kind), base, base+"-%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Collection
	for rows.Next() {
		var c domain.Collection
		if err := rows.Scan(&c.ID, &c.Slug); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// withKindLock runs fn in a transaction holding an advisory lock per kind, so
// slug allocation is serialized across processes. The unique (kind, slug)
// index backs it up.
func (r *postgresRepo) withKindLock(ctx context.Context, kind domain.CollectionKind, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('collections:' || $1::text))`, string(kind)); err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Collection) (*domain.Collection, error) {
	err := r.withKindLock(ctx, c.Kind, func(tx pgx.Tx) error {
		taken, err := slugVariants(ctx, tx, c.Kind, c.Slug)
		if err != nil {
			return err
		}
		c.Slug = UniqueSlug(taken, c.ID, c.Slug)
		raw, err := json.Marshal(c)
		if err != nil {
			return err
		}
		const q = `INSERT INTO collections (id, kind, slug, data) VALUES ($1, $2, $3, $4)`
		_, err = tx.Exec(ctx, q, c.ID, string(c.Kind), c.Slug, raw)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%s %s: %w", c.Kind, c.ID, domain.ErrConflict)
		}
		r.logger.Printf("collection repo: create kind=%s id=%s error=%v", c.Kind, c.ID, err)
		return nil, err
	}
	r.logger.Printf("collection repo: created kind=%s id=%s slug=%s", c.Kind, c.ID, c.Slug)
	return &c, nil
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Collection) (*domain.Collection, error) {
	err := r.withKindLock(ctx, c.Kind, func(tx pgx.Tx) error {
		var raw []byte
		err := tx.QueryRow(ctx, `SELECT data FROM collections WHERE kind = $1 AND id = $2`, string(c.Kind), c.ID).Scan(&raw)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		stored, err := decode(c.Kind, c.ID, raw)
		if err != nil {
			return err
		}
		taken, err := slugVariants(ctx, tx, c.Kind, c.Slug)
		if err != nil {
			return err
		}
		c.Slug = UniqueSlug(taken, c.ID, c.Slug)
		carryOver(&c, stored)
		if raw, err = json.Marshal(c); err != nil {
			return err
		}
		const q = `
UPDATE collections
SET slug = $3, data = $4::jsonb,
    updated_at = CASE WHEN data = $4::jsonb THEN updated_at ELSE now() END
WHERE kind = $1 AND id = $2
`
		_, err = tx.Exec(ctx, q, string(c.Kind), c.ID, c.Slug, raw)
		return err
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Printf("collection repo: update kind=%s id=%s error=%v", c.Kind, c.ID, err)
		}
		return nil, err
	}
	r.logger.Printf("collection repo: updated kind=%s id=%s", c.Kind, c.ID)
	return &c, nil
}

func (r *postgresRepo) Delete(ctx context.Context, kind domain.CollectionKind, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM collections WHERE kind = $1 AND id = $2`, string(kind), id)
	if err != nil {
		r.logger.Printf("collection repo: delete kind=%s id=%s error=%v", kind, id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("collection repo: deleted kind=%s id=%s", kind, id)
	return nil
}

func decode(kind domain.CollectionKind, id string, raw []byte) (domain.Collection, error) {
	var c domain.Collection
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.Collection{}, fmt.Errorf("decode %s %s: %w", kind, id, err)
	}
	c.ID = id
	c.Kind = kind
	return c, nil
}
