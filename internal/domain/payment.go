package domain

import "strings"

// PaymentMethod is a closed set; each method knows which extra fields it
// requires at the payment step.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentBkash          PaymentMethod = "bkash"
	PaymentNagad          PaymentMethod = "nagad"
	PaymentCard           PaymentMethod = "card"
)

// ParsePaymentMethod maps a user-supplied method string to a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentCashOnDelivery:
		return PaymentCashOnDelivery, true
	case PaymentBkash:
		return PaymentBkash, true
	case PaymentNagad:
		return PaymentNagad, true
	case PaymentCard:
		return PaymentCard, true
	}
	return "", false
}

// IsWallet reports whether the method is a mobile wallet, which requires a
// wallet number and a transaction reference.
func (m PaymentMethod) IsWallet() bool {
	return m == PaymentBkash || m == PaymentNagad
}

// PaymentStatus derives the recorded status for a new order. Cash on delivery
// is unpaid at submission time; everything else is recorded as paid. This is
// a bookkeeping convention, not a gateway confirmation.
func (m PaymentMethod) PaymentStatus() string {
	if m == PaymentCashOnDelivery {
		return "unpaid"
	}
	return "paid"
}
