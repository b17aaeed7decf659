package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

func getCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)
		c.JSON(http.StatusOK, cartResponse{
			Cart:   deps.CartSvc.Get(c.Request.Context(), sid),
			Totals: deps.CheckoutSvc.Totals(c.Request.Context(), sid),
		})
	}
}

func addItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		sid := sessionID(c)
		cart, err := deps.CartSvc.AddItem(c.Request.Context(), sid, req.ProductID, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse{Cart: cart, Totals: deps.CheckoutSvc.Totals(c.Request.Context(), sid)})
	}
}

func updateQuantityHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}
		sid := sessionID(c)
		cart, err := deps.CartSvc.UpdateQuantity(c.Request.Context(), sid, c.Param("productId"), req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse{Cart: cart, Totals: deps.CheckoutSvc.Totals(c.Request.Context(), sid)})
	}
}

func removeItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)
		cart, err := deps.CartSvc.RemoveItem(c.Request.Context(), sid, c.Param("productId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse{Cart: cart, Totals: deps.CheckoutSvc.Totals(c.Request.Context(), sid)})
	}
}

func clearCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)
		cart, err := deps.CartSvc.Clear(c.Request.Context(), sid)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse{Cart: cart, Totals: deps.CheckoutSvc.Totals(c.Request.Context(), sid)})
	}
}

func saveForLaterHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)
		cart, err := deps.CartSvc.SaveForLater(c.Request.Context(), sid, c.Param("productId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"cart":   cart,
			"saved":  deps.CartSvc.Saved(c.Request.Context(), sid),
			"totals": deps.CheckoutSvc.Totals(c.Request.Context(), sid),
		})
	}
}

func savedItemsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"saved": deps.CartSvc.Saved(c.Request.Context(), sessionID(c))})
	}
}

func applyCouponHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req applyCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code required"})
			return
		}
		sid := sessionID(c)
		cart, result, err := deps.CartSvc.ApplyCoupon(c.Request.Context(), sid, req.Code)
		if err != nil {
			respondError(c, err)
			return
		}
		// An unknown code is a normal response, not an error status.
		c.JSON(http.StatusOK, gin.H{
			"result": result,
			"cart":   cart,
			"totals": deps.CheckoutSvc.Totals(c.Request.Context(), sid),
		})
	}
}

func totalsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"totals": deps.CheckoutSvc.Totals(c.Request.Context(), sessionID(c))})
	}
}
