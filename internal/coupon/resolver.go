// Package coupon resolves promo codes to discount amounts.
package coupon

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"toyshop/internal/domain"
)

// Repository looks a code up in the coupons table.
type Repository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}

// Resolver validates promo codes. When built with a repository the table is
// authoritative; without one it answers from the built-in codes, which keeps
// dev setups and tests working without a database.
type Resolver struct {
	repo   Repository
	logger *log.Logger
	static map[string]domain.Coupon
}

// New builds a Resolver. repo may be nil.
func New(repo Repository, logger *log.Logger) *Resolver {
	return &Resolver{
		repo:   repo,
		logger: logger,
		static: builtinCoupons(),
	}
}

func builtinCoupons() map[string]domain.Coupon {
	return map[string]domain.Coupon{
		"SAVE10":     {Code: "SAVE10", Discount: 100},
		"WELCOME50":  {Code: "WELCOME50", Discount: 50},
		"TOYFEST200": {Code: "TOYFEST200", Discount: 200},
	}
}

// Resolve validates code and returns the result. It never returns an error:
// malformed or unknown codes yield an invalid result, and a repository
// failure degrades to the built-in table after logging.
func (r *Resolver) Resolve(ctx context.Context, code string) domain.CouponResult {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return invalid(normalized)
	}

	if r.repo != nil {
		c, err := r.repo.GetByCode(ctx, normalized)
		switch {
		case err == nil:
			return valid(*c)
		case errors.Is(err, domain.ErrNotFound):
			return invalid(normalized)
		default:
			if r.logger != nil {
				r.logger.Printf("coupon lookup %q failed, using built-in table: %v", normalized, err)
			}
		}
	}

	if c, ok := r.static[normalized]; ok {
		return valid(c)
	}
	return invalid(normalized)
}

func valid(c domain.Coupon) domain.CouponResult {
	msg := c.Message
	if msg == "" {
		msg = fmt.Sprintf("Coupon %s applied: %d off", c.Code, c.Discount)
	}
	return domain.CouponResult{Code: c.Code, Valid: true, Discount: c.Discount, Message: msg}
}

func invalid(code string) domain.CouponResult {
	return domain.CouponResult{Code: code, Valid: false, Discount: 0, Message: "Invalid promo code"}
}
