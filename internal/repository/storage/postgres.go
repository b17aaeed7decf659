package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"toyshop/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `
SELECT value
FROM storage
WHERE key = $1
`
	var value []byte
	if err := r.pool.QueryRow(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *postgresRepo) Put(ctx context.Context, key string, value []byte) error {
	const q = `
INSERT INTO storage (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
`
	_, err := r.pool.Exec(ctx, q, key, value)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, key string) error {
	const q = `
DELETE FROM storage
WHERE key = $1
`
	_, err := r.pool.Exec(ctx, q, key)
	return err
}
