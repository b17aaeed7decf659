// Package cart owns the session's cart: the authoritative list of selected
// products and quantities, persisted to durable storage on every mutation.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"toyshop/internal/domain"
	"toyshop/internal/pricing"
	"toyshop/internal/repository/storage"
	"toyshop/internal/tracking"
)

type catalogClient interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type couponResolver interface {
	Resolve(ctx context.Context, code string) domain.CouponResult
}

type Service struct {
	store    storage.Repository
	catalog  catalogClient
	resolver couponResolver
	tracker  tracking.Tracker
	logger   *log.Logger
	now      func() time.Time
}

func New(store storage.Repository, catalog catalogClient, resolver couponResolver, tracker tracking.Tracker, logger *log.Logger) *Service {
	return &Service{
		store:    store,
		catalog:  catalog,
		resolver: resolver,
		tracker:  tracker,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Get loads the session's cart. A missing or unreadable record is an empty
// cart, never an error.
func (s *Service) Get(ctx context.Context, sessionID string) *domain.Cart {
	raw, err := s.store.Get(ctx, storage.CartKey(sessionID))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("cart %s: load failed, starting empty: %v", sessionID, err)
		}
		return &domain.Cart{SessionID: sessionID}
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		s.logger.Printf("cart %s: corrupt record, starting empty: %v", sessionID, err)
		return &domain.Cart{SessionID: sessionID}
	}
	cart.SessionID = sessionID
	return &cart
}

// AddItem adds quantity of productID to the cart, merging into the existing
// line when the product is already present. The display snapshot is taken
// from the catalog at add time. quantity <= 0 defaults to 1.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		quantity = 1
	}

	cart := s.Get(ctx, sessionID)
	if line := cart.Line(productID); line != nil {
		line.Quantity += quantity
	} else {
		product, err := s.catalog.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
			}
			return nil, fmt.Errorf("fetch product %s: %w", productID, err)
		}
		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductID:    product.ID,
			ProductName:  product.Name,
			Image:        product.Image(),
			Category:     product.Category,
			Slug:         product.Slug,
			RegularPrice: product.RegularPrice,
			SalePrice:    product.SalePrice,
			Quantity:     quantity,
		})
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	line := cart.Line(productID)
	s.tracker.Publish(ctx, tracking.NewEvent(
		tracking.EventAddToCart,
		sessionID,
		[]tracking.Item{{ID: productID, Quantity: quantity, ItemPrice: line.UnitPrice()}},
		pricing.LineTotal(*line),
	))
	return cart, nil
}

// UpdateQuantity sets the line's quantity. Values below 1 are rejected with
// ErrQuantityTooLow and leave the cart untouched; removal is only explicit.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.ErrQuantityTooLow
	}

	cart := s.Get(ctx, sessionID)
	line := cart.Line(productID)
	if line == nil {
		return nil, fmt.Errorf("line %s: %w", productID, domain.ErrNotFound)
	}
	line.Quantity = quantity

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes the line if present. Removing an absent product is a
// no-op, not an error.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	cart := s.Get(ctx, sessionID)
	kept := cart.Lines[:0]
	removed := false
	for _, line := range cart.Lines {
		if line.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return cart, nil
	}
	cart.Lines = kept

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart and persists the empty state.
func (s *Service) Clear(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart := s.Get(ctx, sessionID)
	cart.Lines = nil
	cart.Coupon = nil
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SaveForLater moves productID out of the cart into the saved set. Pricing is
// unaffected: saved items carry no quantity or price.
func (s *Service) SaveForLater(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	cart := s.Get(ctx, sessionID)
	if cart.Line(productID) == nil {
		return nil, fmt.Errorf("line %s: %w", productID, domain.ErrNotFound)
	}

	saved := s.Saved(ctx, sessionID)
	if !saved.Contains(productID) {
		saved.ProductIDs = append(saved.ProductIDs, productID)
	}
	saved.UpdatedAt = s.now()
	raw, err := json.Marshal(saved)
	if err != nil {
		return nil, fmt.Errorf("encode saved items: %w", err)
	}
	if err := s.store.Put(ctx, storage.SavedKey(sessionID), raw); err != nil {
		return nil, fmt.Errorf("persist saved items: %w", err)
	}

	return s.RemoveItem(ctx, sessionID, productID)
}

// Saved loads the session's saved-for-later set, empty when missing or
// unreadable.
func (s *Service) Saved(ctx context.Context, sessionID string) *domain.SavedItems {
	raw, err := s.store.Get(ctx, storage.SavedKey(sessionID))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("saved %s: load failed, starting empty: %v", sessionID, err)
		}
		return &domain.SavedItems{SessionID: sessionID}
	}
	var saved domain.SavedItems
	if err := json.Unmarshal(raw, &saved); err != nil {
		s.logger.Printf("saved %s: corrupt record, starting empty: %v", sessionID, err)
		return &domain.SavedItems{SessionID: sessionID}
	}
	saved.SessionID = sessionID
	return &saved
}

// IsInCart reports whether productID has a line in the session's cart.
func (s *Service) IsInCart(ctx context.Context, sessionID, productID string) bool {
	return s.Get(ctx, sessionID).Line(productID) != nil
}

// ApplyCoupon resolves code and attaches the result to the cart. The result
// is pinned to the cart revision it was computed against; if the cart moved
// while resolution was in flight the result is returned to the caller but
// not attached, so a newer mutation is never overwritten by a stale answer.
func (s *Service) ApplyCoupon(ctx context.Context, sessionID, code string) (*domain.Cart, domain.CouponResult, error) {
	before := s.Get(ctx, sessionID)
	result := s.resolver.Resolve(ctx, code)
	result.CartRevision = before.Revision

	cart := s.Get(ctx, sessionID)
	if cart.Revision != before.Revision {
		s.logger.Printf("cart %s: dropping stale coupon result for revision %d (now %d)", sessionID, before.Revision, cart.Revision)
		return cart, result, nil
	}

	if result.Valid {
		cart.Coupon = &result
	} else {
		cart.Coupon = nil
	}
	if err := s.saveKeepingRevision(ctx, cart); err != nil {
		return nil, result, err
	}
	return cart, result, nil
}

// save persists the cart, bumping its revision. Persistence completes before
// the mutating call returns.
func (s *Service) save(ctx context.Context, cart *domain.Cart) error {
	cart.Revision++
	return s.write(ctx, cart)
}

// saveKeepingRevision persists without a revision bump: attaching a coupon
// result is not a line mutation and must not invalidate itself.
func (s *Service) saveKeepingRevision(ctx context.Context, cart *domain.Cart) error {
	return s.write(ctx, cart)
}

func (s *Service) write(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = s.now()
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.store.Put(ctx, storage.CartKey(cart.SessionID), raw); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
