package poi

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
	"github.com/paulmach/orb/geojson"

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

func (r *postgresRepo) List(ctx context.Context) ([]domain.POI, error) {
	const q = `
SELECT id, feature
FROM pois
ORDER BY created_at ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("poi repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.POI, 0)
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		p, err := decodeFeature(id, raw)
		if err != nil {
			r.logger.Printf("poi repo: list skip id=%s error=%v", id, err)
			continue
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("poi repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("poi repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.POI, error) {
	const q = `SELECT feature FROM pois WHERE id = $1`
	var raw []byte
	if err := r.pool.QueryRow(ctx, q, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("poi repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("poi repo: get id=%s error=%v", id, err)
		return nil, err
	}
	p, err := decodeFeature(id, raw)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.POI) (*domain.POI, error) {
	raw, err := json.Marshal(p.Feature())
	if err != nil {
		return nil, err
	}
	const q = `INSERT INTO pois (id, feature) VALUES ($1, $2)`
	if _, err := r.pool.Exec(ctx, q, p.ID, raw); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("poi %s: %w", p.ID, domain.ErrConflict)
		}
		r.logger.Printf("poi repo: create id=%s error=%v", p.ID, err)
		return nil, err
	}
	r.logger.Printf("poi repo: created id=%s", p.ID)
	return &p, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.POI) (*domain.POI, error) {
	raw, err := json.Marshal(p.Feature())
	if err != nil {
		return nil, err
	}
	const q = `UPDATE pois SET feature = $2, updated_at = now() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, p.ID, raw)
	if err != nil {
		r.logger.Printf("poi repo: update id=%s error=%v", p.ID, err)
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	r.logger.Printf("poi repo: updated id=%s", p.ID)
	return &p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pois WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("poi repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("poi repo: deleted id=%s", id)
	return nil
}

func decodeFeature(id string, raw []byte) (domain.POI, error) {
	f, err := geojson.UnmarshalFeature(raw)
	if err != nil {
		return domain.POI{}, fmt.Errorf("decode poi %s: %w", id, err)
	}
	p, err := domain.POIFromFeature(f)
	if err != nil {
		return domain.POI{}, err
	}
	p.ID = id
	return p, nil
}
