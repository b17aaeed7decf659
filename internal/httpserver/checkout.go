package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"toyshop/internal/domain"
)

type shippingRequest struct {
	FullName     string `json:"fullName"`
	MobileNumber string `json:"mobileNumber"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Notes        string `json:"notes"`
	Region       string `json:"region"`
	Method       string `json:"deliveryMethod"`
	GiftWrap     bool   `json:"giftWrap"`
}

type paymentRequest struct {
	Method        string `json:"method"`
	WalletNumber  string `json:"walletNumber"`
	TransactionID string `json:"transactionId"`
}

type consentsRequest struct {
	Terms   bool `json:"terms"`
	Privacy bool `json:"privacy"`
}

func deliveryOptionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"local":  domain.DeliveryOptionsFor(domain.RegionLocal),
		"remote": domain.DeliveryOptionsFor(domain.RegionRemote),
	})
}

func beginCheckoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)
		state, err := deps.CheckoutSvc.Begin(c.Request.Context(), sid)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, checkoutResponse{Checkout: state, Totals: deps.CheckoutSvc.Totals(c.Request.Context(), sid)})
	}
}

func checkoutStateHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)
		state, err := deps.CheckoutSvc.State(c.Request.Context(), sid)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, checkoutResponse{Checkout: state, Totals: deps.CheckoutSvc.Totals(c.Request.Context(), sid)})
	}
}

func abandonCheckoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.CheckoutSvc.Abandon(c.Request.Context(), sessionID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func shippingHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shippingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		data := domain.ShippingData{
			FullName:     req.FullName,
			MobileNumber: strings.TrimSpace(req.MobileNumber),
			Address:      req.Address,
			City:         req.City,
			Notes:        req.Notes,
			Delivery: domain.DeliverySelection{
				Region: domain.Region(strings.ToLower(strings.TrimSpace(req.Region))),
				Method: domain.DeliveryMethod(strings.ToLower(strings.TrimSpace(req.Method))),
			},
			GiftWrap: req.GiftWrap,
		}
		sid := sessionID(c)
		state, err := deps.CheckoutSvc.SubmitShipping(c.Request.Context(), sid, data)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, checkoutResponse{Checkout: state, Totals: deps.CheckoutSvc.Totals(c.Request.Context(), sid)})
	}
}

func paymentHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		data := domain.PaymentData{
			Method:        domain.PaymentMethod(strings.ToLower(strings.TrimSpace(req.Method))),
			WalletNumber:  strings.TrimSpace(req.WalletNumber),
			TransactionID: strings.TrimSpace(req.TransactionID),
		}
		sid := sessionID(c)
		state, err := deps.CheckoutSvc.SubmitPayment(c.Request.Context(), sid, data)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, checkoutResponse{Checkout: state, Totals: deps.CheckoutSvc.Totals(c.Request.Context(), sid)})
	}
}

func consentsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req consentsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		sid := sessionID(c)
		state, err := deps.CheckoutSvc.SetConsents(c.Request.Context(), sid, domain.Consents{Terms: req.Terms, Privacy: req.Privacy})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, checkoutResponse{Checkout: state, Totals: deps.CheckoutSvc.Totals(c.Request.Context(), sid)})
	}
}

func goToStepHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		step, ok := domain.ParseCheckoutStep(c.Param("step"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown step"})
			return
		}
		sid := sessionID(c)
		state, err := deps.CheckoutSvc.GoTo(c.Request.Context(), sid, step)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, checkoutResponse{Checkout: state, Totals: deps.CheckoutSvc.Totals(c.Request.Context(), sid)})
	}
}

func submitHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		confirmation, err := deps.CheckoutSvc.Submit(c.Request.Context(), sessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": confirmation})
	}
}

func latestOrderHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		confirmation, err := deps.CheckoutSvc.Confirmation(c.Request.Context(), sessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": confirmation})
	}
}
