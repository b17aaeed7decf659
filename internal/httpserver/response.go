package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"toyshop/internal/domain"
	"toyshop/internal/pricing"
	checkoutsvc "toyshop/internal/service/checkout"
)

// cartResponse pairs the cart with its current totals so every cart view
// shows the same breakdown.
type cartResponse struct {
	Cart   *domain.Cart      `json:"cart"`
	Totals pricing.Breakdown `json:"totals"`
}

type checkoutResponse struct {
	Checkout *domain.CheckoutState `json:"checkout"`
	Totals   pricing.Breakdown     `json:"totals"`
}

// respondError maps service errors to HTTP statuses. Validation failures
// carry their per-field messages; everything unexpected is a bare 500.
func respondError(c *gin.Context, err error) {
	var validation checkoutsvc.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"fields": validation,
		})
		return
	}

	var submission *domain.SubmissionError
	if errors.As(err, &submission) {
		c.JSON(http.StatusBadGateway, gin.H{"error": submission.Error()})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrQuantityTooLow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCartEmpty):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoCheckout):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidStep):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
