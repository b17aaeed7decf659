package httpserver

import (
	"context"
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"toyshop/internal/domain"
	"toyshop/internal/pricing"
)

const sessionHeader = "X-Session-ID"

type cartService interface {
	Get(ctx context.Context, sessionID string) *domain.Cart
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) (*domain.Cart, error)
	SaveForLater(ctx context.Context, sessionID, productID string) (*domain.Cart, error)
	Saved(ctx context.Context, sessionID string) *domain.SavedItems
	ApplyCoupon(ctx context.Context, sessionID, code string) (*domain.Cart, domain.CouponResult, error)
}

type checkoutService interface {
	State(ctx context.Context, sessionID string) (*domain.CheckoutState, error)
	Begin(ctx context.Context, sessionID string) (*domain.CheckoutState, error)
	SubmitShipping(ctx context.Context, sessionID string, data domain.ShippingData) (*domain.CheckoutState, error)
	SubmitPayment(ctx context.Context, sessionID string, data domain.PaymentData) (*domain.CheckoutState, error)
	SetConsents(ctx context.Context, sessionID string, consents domain.Consents) (*domain.CheckoutState, error)
	GoTo(ctx context.Context, sessionID string, step domain.CheckoutStep) (*domain.CheckoutState, error)
	Abandon(ctx context.Context, sessionID string) error
	Totals(ctx context.Context, sessionID string) pricing.Breakdown
	Submit(ctx context.Context, sessionID string) (*domain.OrderConfirmation, error)
	Confirmation(ctx context.Context, sessionID string) (*domain.OrderConfirmation, error)
}

// Deps carries the services the router needs.
type Deps struct {
	CartSvc     cartService
	CheckoutSvc checkoutService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if deps.CartSvc == nil || deps.CheckoutSvc == nil {
		return nil, errors.New("cart and checkout services required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(corsOrigins) == 1 && corsOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = corsOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, sessionHeader)
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/delivery-options", deliveryOptionsHandler)

	session := router.Group("/", sessionMiddleware())
	{
		session.GET("/cart", getCartHandler(deps))
		session.DELETE("/cart", clearCartHandler(deps))
		session.POST("/cart/items", addItemHandler(deps))
		session.PUT("/cart/items/:productId", updateQuantityHandler(deps))
		session.DELETE("/cart/items/:productId", removeItemHandler(deps))
		session.POST("/cart/items/:productId/save", saveForLaterHandler(deps))
		session.GET("/cart/saved", savedItemsHandler(deps))
		session.POST("/cart/coupon", applyCouponHandler(deps))
		session.GET("/cart/totals", totalsHandler(deps))

		session.POST("/checkout", beginCheckoutHandler(deps))
		session.GET("/checkout", checkoutStateHandler(deps))
		session.DELETE("/checkout", abandonCheckoutHandler(deps))
		session.PUT("/checkout/shipping", shippingHandler(deps))
		session.PUT("/checkout/payment", paymentHandler(deps))
		session.PUT("/checkout/consents", consentsHandler(deps))
		session.POST("/checkout/step/:step", goToStepHandler(deps))
		session.POST("/checkout/submit", submitHandler(deps))

		session.GET("/orders/latest", latestOrderHandler(deps))
	}

	return router, nil
}

// sessionMiddleware reads the session ID header, minting a fresh one when the
// client has none yet. The ID is echoed back so the client can persist it.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(sessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		c.Set("sessionID", sessionID)
		c.Header(sessionHeader, sessionID)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString("sessionID")
}
