package coupon

import (
	"context"

	"toyshop/internal/domain"
)

type Repository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}
