package checkout

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toyshop/internal/domain"
	"toyshop/internal/pricing"
	"toyshop/internal/repository/storage"
	"toyshop/internal/tracking"
)

type stubCarts struct {
	cart    *domain.Cart
	cleared bool
}

func (s *stubCarts) Get(_ context.Context, sessionID string) *domain.Cart {
	if s.cart == nil {
		return &domain.Cart{SessionID: sessionID}
	}
	return s.cart
}

func (s *stubCarts) Clear(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.cleared = true
	s.cart = &domain.Cart{SessionID: sessionID}
	return s.cart, nil
}

type stubOrders struct {
	confirmation *domain.OrderConfirmation
	err          error
	lastPayload  domain.OrderPayload
	calls        int
}

func (s *stubOrders) Submit(_ context.Context, payload domain.OrderPayload) (*domain.OrderConfirmation, error) {
	s.lastPayload = payload
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.confirmation, nil
}

type recordingTracker struct {
	events []tracking.Event
}

func (r *recordingTracker) Publish(_ context.Context, e tracking.Event) {
	r.events = append(r.events, e)
}

func (r *recordingTracker) count(name string) int {
	n := 0
	for _, e := range r.events {
		if e.Name == name {
			n++
		}
	}
	return n
}

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func twoLineCart() *domain.Cart {
	return &domain.Cart{
		SessionID: "s1",
		Lines: []domain.CartLine{
			{ProductID: "a", ProductName: "Robot Kit", Category: "stem", RegularPrice: 500, Quantity: 1},
			{ProductID: "b", ProductName: "Plush Bear", Category: "plush", RegularPrice: 250, Quantity: 2},
		},
	}
}

func newService(carts *stubCarts, orders *stubOrders, tracker tracking.Tracker) *Service {
	if tracker == nil {
		tracker = tracking.NewNoop()
	}
	return New(storage.NewMemory(), carts, orders, tracker, pricing.DefaultRules(), logDiscard())
}

func advanceToReview(t *testing.T, svc *Service) *domain.CheckoutState {
	t.Helper()
	ctx := context.Background()

	_, err := svc.Begin(ctx, "s1")
	require.NoError(t, err)

	_, err = svc.SubmitShipping(ctx, "s1", domain.ShippingData{
		FullName:     "Rahim Uddin",
		MobileNumber: "01712345678",
		Address:      "12/3 Green Road",
		Delivery:     domain.DeliverySelection{Region: domain.RegionLocal, Method: domain.DeliveryLocalStandard},
	})
	require.NoError(t, err)

	_, err = svc.SubmitPayment(ctx, "s1", domain.PaymentData{Method: domain.PaymentCashOnDelivery})
	require.NoError(t, err)

	state, err := svc.SetConsents(ctx, "s1", domain.Consents{Terms: true, Privacy: true})
	require.NoError(t, err)
	return state
}

func TestBeginRequiresNonEmptyCart(t *testing.T) {
	svc := newService(&stubCarts{}, &stubOrders{}, nil)
	_, err := svc.Begin(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrCartEmpty)
}

func TestBeginTracksOncePerSession(t *testing.T) {
	tracker := &recordingTracker{}
	svc := newService(&stubCarts{cart: twoLineCart()}, &stubOrders{}, tracker)
	ctx := context.Background()

	state, err := svc.Begin(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepShipping, state.Step)

	_, err = svc.Begin(ctx, "s1")
	require.NoError(t, err)

	assert.Equal(t, 1, tracker.count(tracking.EventBeginCheckout))
}

func TestStateBeforeBegin(t *testing.T) {
	svc := newService(&stubCarts{cart: twoLineCart()}, &stubOrders{}, nil)
	_, err := svc.State(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrNoCheckout)
}

func TestShippingValidationSurfacesAndPersists(t *testing.T) {
	svc := newService(&stubCarts{cart: twoLineCart()}, &stubOrders{}, nil)
	ctx := context.Background()
	_, err := svc.Begin(ctx, "s1")
	require.NoError(t, err)

	state, err := svc.SubmitShipping(ctx, "s1", domain.ShippingData{FullName: "Rahim"})
	require.Error(t, err)
	assert.Equal(t, domain.StepShipping, state.Step)

	// Typed data survives the failed submit.
	reloaded, err := svc.State(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Rahim", reloaded.Shipping.FullName)
}

func TestTotalsConsistentWithSubmitPayload(t *testing.T) {
	carts := &stubCarts{cart: twoLineCart()}
	orders := &stubOrders{confirmation: &domain.OrderConfirmation{OrderID: "o1"}}
	svc := newService(carts, orders, nil)
	ctx := context.Background()

	advanceToReview(t, svc)

	totals := svc.Totals(ctx, "s1")
	require.Equal(t, int64(1000), totals.Subtotal)
	require.Equal(t, int64(60), totals.DeliveryCharge)
	require.Equal(t, int64(1060), totals.Total)

	_, err := svc.Submit(ctx, "s1")
	require.NoError(t, err)

	assert.Equal(t, totals.Subtotal, orders.lastPayload.ProductPrice)
	assert.Equal(t, totals.DeliveryCharge, orders.lastPayload.ShippingCost)
	assert.Equal(t, totals.Total, orders.lastPayload.TotalAmount)
}

func TestSubmitPayloadItemization(t *testing.T) {
	carts := &stubCarts{cart: twoLineCart()}
	orders := &stubOrders{confirmation: &domain.OrderConfirmation{OrderID: "o1"}}
	svc := newService(carts, orders, nil)

	advanceToReview(t, svc)
	_, err := svc.Submit(context.Background(), "s1")
	require.NoError(t, err)

	p := orders.lastPayload
	assert.Equal(t, 3, p.ItemsQty)
	require.Len(t, p.Products, 2)
	assert.Equal(t, 1, p.Products[0].Quantity)
	assert.Equal(t, 2, p.Products[1].Quantity)
	assert.Equal(t, "unpaid", p.PaymentStatus, "cash on delivery is unpaid at submission")
	assert.Equal(t, string(domain.DeliveryLocalStandard), p.DeliveryOpt)
}

func TestSubmitSuccessClearsCartAndState(t *testing.T) {
	carts := &stubCarts{cart: twoLineCart()}
	orders := &stubOrders{confirmation: &domain.OrderConfirmation{OrderID: "o1"}}
	tracker := &recordingTracker{}
	svc := newService(carts, orders, tracker)
	ctx := context.Background()

	advanceToReview(t, svc)
	confirmation, err := svc.Submit(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "o1", confirmation.OrderID)

	assert.True(t, carts.cleared)
	_, err = svc.State(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrNoCheckout)

	stored, err := svc.Confirmation(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "o1", stored.OrderID)

	assert.Equal(t, 1, tracker.count(tracking.EventPurchase))
}

func TestSubmitFailureLeavesEverythingForRetry(t *testing.T) {
	carts := &stubCarts{cart: twoLineCart()}
	orders := &stubOrders{err: &domain.SubmissionError{StatusCode: 502, Message: "upstream unavailable"}}
	svc := newService(carts, orders, nil)
	ctx := context.Background()

	advanceToReview(t, svc)
	_, err := svc.Submit(ctx, "s1")
	require.Error(t, err)
	assert.Equal(t, "upstream unavailable", err.Error())

	assert.False(t, carts.cleared)
	state, serr := svc.State(ctx, "s1")
	require.NoError(t, serr)
	assert.Equal(t, domain.StepReview, state.Step)
	assert.False(t, state.Submitting, "flag must reset so the retry is accepted")

	// Idempotent retry succeeds without re-entering anything.
	orders.err = nil
	orders.confirmation = &domain.OrderConfirmation{OrderID: "o2"}
	confirmation, err := svc.Submit(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "o2", confirmation.OrderID)
}

func TestSubmitRequiresConsents(t *testing.T) {
	carts := &stubCarts{cart: twoLineCart()}
	svc := newService(carts, &stubOrders{}, nil)
	ctx := context.Background()

	advanceToReview(t, svc)
	_, err := svc.SetConsents(ctx, "s1", domain.Consents{Terms: true})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrInvalidStep)
}

func TestSubmitRequiresReviewStep(t *testing.T) {
	carts := &stubCarts{cart: twoLineCart()}
	svc := newService(carts, &stubOrders{}, nil)
	ctx := context.Background()

	_, err := svc.Begin(ctx, "s1")
	require.NoError(t, err)

	_, err = svc.Submit(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrInvalidStep)
}

func TestGoToBackwardFromReview(t *testing.T) {
	carts := &stubCarts{cart: twoLineCart()}
	svc := newService(carts, &stubOrders{}, nil)
	ctx := context.Background()

	advanceToReview(t, svc)
	state, err := svc.GoTo(ctx, "s1", domain.StepPayment)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, state.Step)
	assert.Equal(t, "Rahim Uddin", state.Shipping.FullName)

	_, err = svc.GoTo(ctx, "s1", domain.StepReview)
	assert.ErrorIs(t, err, domain.ErrInvalidStep, "forward jump needs validation, not navigation")
}

func TestAbandonDropsState(t *testing.T) {
	carts := &stubCarts{cart: twoLineCart()}
	svc := newService(carts, &stubOrders{}, nil)
	ctx := context.Background()

	advanceToReview(t, svc)
	require.NoError(t, svc.Abandon(ctx, "s1"))

	_, err := svc.State(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrNoCheckout)
	assert.False(t, carts.cleared, "abandoning checkout keeps the cart")
}

func TestConfirmationMissing(t *testing.T) {
	svc := newService(&stubCarts{}, &stubOrders{}, nil)
	_, err := svc.Confirmation(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTotalsFreeShippingAboveThreshold(t *testing.T) {
	cart := &domain.Cart{
		SessionID: "s1",
		Lines:     []domain.CartLine{{ProductID: "a", RegularPrice: 2600, Quantity: 2}},
	}
	carts := &stubCarts{cart: cart}
	orders := &stubOrders{confirmation: &domain.OrderConfirmation{OrderID: "o1"}}
	svc := newService(carts, orders, nil)
	ctx := context.Background()

	advanceToReview(t, svc)
	totals := svc.Totals(ctx, "s1")
	assert.Equal(t, int64(0), totals.DeliveryCharge)
	assert.Equal(t, int64(5200), totals.Total)

	_, err := svc.Submit(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), orders.lastPayload.ShippingCost)
	assert.Equal(t, int64(5200), orders.lastPayload.TotalAmount)
}
