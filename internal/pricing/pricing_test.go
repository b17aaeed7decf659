package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toyshop/internal/domain"
)

func line(id string, regular, sale int64, qty int) domain.CartLine {
	return domain.CartLine{ProductID: id, RegularPrice: regular, SalePrice: sale, Quantity: qty}
}

func TestLineTotalPrefersSalePrice(t *testing.T) {
	assert.Equal(t, int64(800), LineTotal(line("p1", 500, 400, 2)))
	assert.Equal(t, int64(1000), LineTotal(line("p1", 500, 0, 2)))
}

func TestSubtotalOrderIndependent(t *testing.T) {
	a := line("a", 500, 0, 2)
	b := line("b", 300, 250, 1)
	c := line("c", 120, 0, 3)

	want := Subtotal([]domain.CartLine{a, b, c})
	assert.Equal(t, want, Subtotal([]domain.CartLine{c, a, b}))
	assert.Equal(t, int64(1000+250+360), want)
}

func TestCalculateBelowThreshold(t *testing.T) {
	got := Calculate(DefaultRules(), Input{
		Lines:    []domain.CartLine{line("p1", 500, 0, 2)},
		Delivery: domain.DeliverySelection{Region: domain.RegionLocal, Method: domain.DeliveryLocalStandard},
	})

	require.Equal(t, int64(1000), got.Subtotal)
	assert.Equal(t, int64(60), got.DeliveryCharge)
	assert.False(t, got.FreeShipping)
	assert.Equal(t, int64(1060), got.Total)
}

func TestCalculateFreeShippingOverride(t *testing.T) {
	for _, sel := range []domain.DeliverySelection{
		{Region: domain.RegionLocal, Method: domain.DeliveryLocalStandard},
		{Region: domain.RegionLocal, Method: domain.DeliveryLocalExpress},
		{Region: domain.RegionRemote, Method: domain.DeliveryRemoteCourier},
		{Region: domain.RegionRemote, Method: domain.DeliveryRemoteStandard},
	} {
		got := Calculate(DefaultRules(), Input{
			Lines:    []domain.CartLine{line("p1", 2600, 0, 2)},
			Delivery: sel,
		})
		assert.Equal(t, int64(0), got.DeliveryCharge, "method %s", sel.Method)
		assert.True(t, got.FreeShipping)
		assert.Equal(t, int64(5200), got.Total)
	}
}

func TestCalculateThresholdBoundary(t *testing.T) {
	got := Calculate(DefaultRules(), Input{
		Lines:    []domain.CartLine{line("p1", 5000, 0, 1)},
		Delivery: domain.DeliverySelection{Region: domain.RegionLocal, Method: domain.DeliveryLocalExpress},
	})
	assert.True(t, got.FreeShipping)
	assert.Equal(t, int64(5000), got.Total)
}

func TestCalculateGiftWrap(t *testing.T) {
	got := Calculate(DefaultRules(), Input{
		Lines:    []domain.CartLine{line("p1", 2600, 0, 2)},
		GiftWrap: true,
	})
	assert.Equal(t, int64(50), got.GiftWrapCharge)
	assert.Equal(t, int64(5250), got.Total)
}

func TestCalculateCouponDiscount(t *testing.T) {
	got := Calculate(DefaultRules(), Input{
		Lines:    []domain.CartLine{line("p1", 500, 0, 2)},
		Delivery: domain.DeliverySelection{Region: domain.RegionLocal, Method: domain.DeliveryLocalStandard},
		Coupon:   &domain.CouponResult{Valid: true, Discount: 100},
	})
	assert.Equal(t, int64(100), got.Discount)
	assert.Equal(t, int64(960), got.Total)
}

func TestCalculateInvalidCouponIgnored(t *testing.T) {
	got := Calculate(DefaultRules(), Input{
		Lines:  []domain.CartLine{line("p1", 500, 0, 2)},
		Coupon: &domain.CouponResult{Valid: false, Discount: 100},
	})
	assert.Equal(t, int64(0), got.Discount)
	assert.Equal(t, int64(1000), got.Total)
}

func TestCalculateDiscountClampedToGross(t *testing.T) {
	got := Calculate(DefaultRules(), Input{
		Lines:    []domain.CartLine{line("p1", 100, 0, 1)},
		Delivery: domain.DeliverySelection{Region: domain.RegionLocal, Method: domain.DeliveryLocalStandard},
		Coupon:   &domain.CouponResult{Valid: true, Discount: 10000},
	})
	assert.Equal(t, int64(160), got.Discount)
	assert.Equal(t, int64(0), got.Total)
}

func TestCalculateEmptyCart(t *testing.T) {
	got := Calculate(DefaultRules(), Input{})
	assert.Equal(t, Breakdown{}, got)
}

func TestCalculateUnknownMethodChargesNothing(t *testing.T) {
	// A method that does not belong to the region prices as no selection.
	got := Calculate(DefaultRules(), Input{
		Lines:    []domain.CartLine{line("p1", 500, 0, 1)},
		Delivery: domain.DeliverySelection{Region: domain.RegionRemote, Method: domain.DeliveryLocalExpress},
	})
	assert.Equal(t, int64(0), got.DeliveryCharge)
	assert.Equal(t, int64(500), got.Total)
}
