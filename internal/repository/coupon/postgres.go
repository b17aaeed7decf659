package coupon

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

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	const q = `
SELECT code, discount, message
FROM coupons
WHERE code = $1 AND active
`
	var c domain.Coupon
	var message *string
	if err := r.pool.QueryRow(ctx, q, code).Scan(&c.Code, &c.Discount, &message); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if message != nil {
		c.Message = *message
	}
	return &c, nil
}
