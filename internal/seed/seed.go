package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type couponSeed struct {
	Code     string
	Discount int64
	Message  string
}

// Apply inserts the storefront's standing promo codes. It is idempotent via
// ON CONFLICT, and keeps the table in line with the resolver's built-in set.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	coupons := []couponSeed{
		{Code: "SAVE10", Discount: 100, Message: "100 off your order"},
		{Code: "WELCOME50", Discount: 50, Message: "Welcome! 50 off your first order"},
		{Code: "TOYFEST200", Discount: 200, Message: "Toy Fest special: 200 off"},
	}

	for _, c := range coupons {
		if err := upsertCoupon(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert coupon %s: %w", c.Code, err)
		}
	}
	return nil
}

func upsertCoupon(ctx context.Context, pool *pgxpool.Pool, c couponSeed) error {
	const q = `
INSERT INTO coupons (code, discount, message, active)
VALUES ($1, $2, $3, true)
ON CONFLICT (code) DO UPDATE SET discount = EXCLUDED.discount, message = EXCLUDED.message, active = true
`
	_, err := pool.Exec(ctx, q, c.Code, c.Discount, c.Message)
	return err
}
