package domain

import "time"

// OrderProduct is one itemized line in the order-creation payload.
type OrderProduct struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Category  string `json:"category,omitempty"`
}

// OrderPayload is the request body sent to the order-creation service.
type OrderPayload struct {
	CustomerName  string         `json:"customerName"`
	MobileNumber  string         `json:"mobileNumber"`
	Address       string         `json:"address"`
	City          string         `json:"city,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Products      []OrderProduct `json:"products"`
	ItemsQty      int            `json:"itemsQty"`
	ProductPrice  int64          `json:"productPrice"`
	ShippingCost  int64          `json:"shippingCost"`
	GiftWrapCost  int64          `json:"giftWrapCost,omitempty"`
	Discount      int64          `json:"discount,omitempty"`
	CouponCode    string         `json:"couponCode,omitempty"`
	TotalAmount   int64          `json:"totalAmount"`
	DeliveryOpt   string         `json:"deliveryOption"`
	GiftWrap      bool           `json:"giftWrap"`
	PaymentMethod string         `json:"paymentMethod"`
	PaymentStatus string         `json:"paymentStatus"`
	WalletNumber  string         `json:"walletNumber,omitempty"`
	TransactionID string         `json:"transactionId,omitempty"`
}

// OrderConfirmation is kept for the success page after submission.
type OrderConfirmation struct {
	OrderID     string    `json:"orderId"`
	TotalAmount int64     `json:"totalAmount"`
	ItemsQty    int       `json:"itemsQty"`
	PlacedAt    time.Time `json:"placedAt"`
}

// SubmissionError carries the order service's failure message when one was
// provided, plus the HTTP status it answered with.
type SubmissionError struct {
	StatusCode int
	Message    string
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "order submission failed"
}
