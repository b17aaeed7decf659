// Package checkout orchestrates the checkout session: step persistence,
// pricing, and final order submission.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"toyshop/internal/domain"
	"toyshop/internal/pricing"
	"toyshop/internal/repository/storage"
	"toyshop/internal/tracking"
)

type cartStore interface {
	Get(ctx context.Context, sessionID string) *domain.Cart
	Clear(ctx context.Context, sessionID string) (*domain.Cart, error)
}

type orderSubmitter interface {
	Submit(ctx context.Context, payload domain.OrderPayload) (*domain.OrderConfirmation, error)
}

type Service struct {
	store   storage.Repository
	carts   cartStore
	orders  orderSubmitter
	tracker tracking.Tracker
	rules   pricing.Rules
	logger  *log.Logger
}

func New(store storage.Repository, carts cartStore, orders orderSubmitter, tracker tracking.Tracker, rules pricing.Rules, logger *log.Logger) *Service {
	return &Service{
		store:   store,
		carts:   carts,
		orders:  orders,
		tracker: tracker,
		rules:   rules,
		logger:  logger,
	}
}

// State loads the session's checkout state. ErrNoCheckout when checkout has
// not begun; a corrupt record reads the same way, logged.
func (s *Service) State(ctx context.Context, sessionID string) (*domain.CheckoutState, error) {
	raw, err := s.store.Get(ctx, storage.CheckoutKey(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoCheckout
		}
		return nil, fmt.Errorf("load checkout state: %w", err)
	}
	var state domain.CheckoutState
	if err := json.Unmarshal(raw, &state); err != nil {
		s.logger.Printf("checkout %s: corrupt state, treating as not started: %v", sessionID, err)
		return nil, domain.ErrNoCheckout
	}
	state.SessionID = sessionID
	return &state, nil
}

// Begin enters checkout. The cart must be non-empty; an empty cart is the
// caller's cue to redirect away. Re-entering an already started checkout
// returns the existing state, and begin_checkout is reported exactly once
// per session.
func (s *Service) Begin(ctx context.Context, sessionID string) (*domain.CheckoutState, error) {
	cart := s.carts.Get(ctx, sessionID)
	if cart.IsEmpty() {
		return nil, domain.ErrCartEmpty
	}

	state, err := s.State(ctx, sessionID)
	if err != nil && !errors.Is(err, domain.ErrNoCheckout) {
		return nil, err
	}
	if state == nil {
		state = NewState(sessionID)
	}

	if !state.BeginTracked {
		s.tracker.Publish(ctx, tracking.NewEvent(
			tracking.EventBeginCheckout,
			sessionID,
			tracking.ItemsFromLines(cart.Lines),
			pricing.Subtotal(cart.Lines),
		))
		state.BeginTracked = true
	}

	if err := s.persist(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SubmitShipping runs the shipping step. A ValidationError is returned with
// the updated state so inline messages and the typed data both reach the UI.
func (s *Service) SubmitShipping(ctx context.Context, sessionID string, data domain.ShippingData) (*domain.CheckoutState, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	stepErr := ApplyShipping(state, data)
	if err := s.persist(ctx, state); err != nil {
		return nil, err
	}
	return state, stepErr
}

// SubmitPayment runs the payment step.
func (s *Service) SubmitPayment(ctx context.Context, sessionID string, data domain.PaymentData) (*domain.CheckoutState, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	stepErr := ApplyPayment(state, data)
	if errors.Is(stepErr, domain.ErrInvalidStep) {
		return state, stepErr
	}
	if err := s.persist(ctx, state); err != nil {
		return nil, err
	}
	return state, stepErr
}

// SetConsents records the review step's acknowledgements.
func (s *Service) SetConsents(ctx context.Context, sessionID string, consents domain.Consents) (*domain.CheckoutState, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state.Consents = consents
	if err := s.persist(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// GoTo navigates backward to an earlier step.
func (s *Service) GoTo(ctx context.Context, sessionID string, step domain.CheckoutStep) (*domain.CheckoutState, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := GoBack(state, step); err != nil {
		return state, err
	}
	if err := s.persist(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Abandon drops the checkout state, leaving the cart as it is.
func (s *Service) Abandon(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, storage.CheckoutKey(sessionID))
}

// Totals computes the current price breakdown from the cart and whatever
// checkout state exists. The same calculation backs every place a total is
// shown, so the free-shipping override can never diverge between views.
func (s *Service) Totals(ctx context.Context, sessionID string) pricing.Breakdown {
	cart := s.carts.Get(ctx, sessionID)
	in := pricing.Input{Lines: cart.Lines, Coupon: cart.Coupon}
	if state, err := s.State(ctx, sessionID); err == nil {
		in.Delivery = state.Shipping.Delivery
		in.GiftWrap = state.Shipping.GiftWrap
	}
	return pricing.Calculate(s.rules, in)
}

// Submit places the order. On success the cart and checkout state are
// cleared and the confirmation is stored for the success page; on failure
// both are left untouched so the customer retries without re-entering
// anything.
func (s *Service) Submit(ctx context.Context, sessionID string) (*domain.OrderConfirmation, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Submitting {
		return nil, domain.ErrSubmissionInFlight
	}
	if !CanSubmit(state) {
		return nil, domain.ErrInvalidStep
	}

	cart := s.carts.Get(ctx, sessionID)
	if cart.IsEmpty() {
		return nil, domain.ErrCartEmpty
	}

	state.Submitting = true
	if err := s.persist(ctx, state); err != nil {
		return nil, err
	}

	breakdown := pricing.Calculate(s.rules, pricing.Input{
		Lines:    cart.Lines,
		Delivery: state.Shipping.Delivery,
		GiftWrap: state.Shipping.GiftWrap,
		Coupon:   cart.Coupon,
	})
	payload := buildPayload(cart, state, breakdown)

	confirmation, err := s.orders.Submit(ctx, payload)
	if err != nil {
		state.Submitting = false
		if perr := s.persist(ctx, state); perr != nil {
			s.logger.Printf("checkout %s: reset submitting flag: %v", sessionID, perr)
		}
		return nil, err
	}

	if raw, merr := json.Marshal(confirmation); merr == nil {
		if perr := s.store.Put(ctx, storage.OrderKey(sessionID), raw); perr != nil {
			s.logger.Printf("checkout %s: persist confirmation: %v", sessionID, perr)
		}
	}
	if _, cerr := s.carts.Clear(ctx, sessionID); cerr != nil {
		s.logger.Printf("checkout %s: clear cart after order %s: %v", sessionID, confirmation.OrderID, cerr)
	}
	if derr := s.store.Delete(ctx, storage.CheckoutKey(sessionID)); derr != nil {
		s.logger.Printf("checkout %s: drop state: %v", sessionID, derr)
	}

	s.tracker.Publish(ctx, tracking.NewEvent(
		tracking.EventPurchase,
		sessionID,
		tracking.ItemsFromLines(cart.Lines),
		breakdown.Total,
	))

	return confirmation, nil
}

// Confirmation loads the last order confirmation for the success page.
func (s *Service) Confirmation(ctx context.Context, sessionID string) (*domain.OrderConfirmation, error) {
	raw, err := s.store.Get(ctx, storage.OrderKey(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load confirmation: %w", err)
	}
	var confirmation domain.OrderConfirmation
	if err := json.Unmarshal(raw, &confirmation); err != nil {
		s.logger.Printf("checkout %s: corrupt confirmation: %v", sessionID, err)
		return nil, domain.ErrNotFound
	}
	return &confirmation, nil
}

func buildPayload(cart *domain.Cart, state *domain.CheckoutState, breakdown pricing.Breakdown) domain.OrderPayload {
	products := make([]domain.OrderProduct, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		products = append(products, domain.OrderProduct{
			ProductID: line.ProductID,
			Name:      line.ProductName,
			Price:     line.UnitPrice(),
			Quantity:  line.Quantity,
			Category:  line.Category,
		})
	}

	couponCode := ""
	if cart.Coupon != nil && cart.Coupon.Valid {
		couponCode = cart.Coupon.Code
	}

	return domain.OrderPayload{
		CustomerName:  state.Shipping.FullName,
		MobileNumber:  state.Shipping.MobileNumber,
		Address:       state.Shipping.Address,
		City:          state.Shipping.City,
		Notes:         state.Shipping.Notes,
		Products:      products,
		ItemsQty:      cart.TotalQuantity(),
		ProductPrice:  breakdown.Subtotal,
		ShippingCost:  breakdown.DeliveryCharge,
		GiftWrapCost:  breakdown.GiftWrapCharge,
		Discount:      breakdown.Discount,
		CouponCode:    couponCode,
		TotalAmount:   breakdown.Total,
		DeliveryOpt:   string(state.Shipping.Delivery.Method),
		GiftWrap:      state.Shipping.GiftWrap,
		PaymentMethod: string(state.Payment.Method),
		PaymentStatus: state.Payment.Method.PaymentStatus(),
		WalletNumber:  state.Payment.WalletNumber,
		TransactionID: state.Payment.TransactionID,
	}
}

func (s *Service) persist(ctx context.Context, state *domain.CheckoutState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode checkout state: %w", err)
	}
	if err := s.store.Put(ctx, storage.CheckoutKey(state.SessionID), raw); err != nil {
		return fmt.Errorf("persist checkout state: %w", err)
	}
	return nil
}
