package domain

import "strings"

// CheckoutStep is one stage of the linear checkout progression.
type CheckoutStep string

const (
	StepShipping CheckoutStep = "shipping"
	StepPayment  CheckoutStep = "payment"
	StepReview   CheckoutStep = "review"
)

var stepOrder = []CheckoutStep{StepShipping, StepPayment, StepReview}

// ParseCheckoutStep maps a user-supplied step name to a CheckoutStep.
func ParseCheckoutStep(s string) (CheckoutStep, bool) {
	switch CheckoutStep(strings.ToLower(strings.TrimSpace(s))) {
	case StepShipping:
		return StepShipping, true
	case StepPayment:
		return StepPayment, true
	case StepReview:
		return StepReview, true
	}
	return "", false
}

// Index returns the step's position in the progression.
func (s CheckoutStep) Index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Before reports whether s comes before other in the progression.
func (s CheckoutStep) Before(other CheckoutStep) bool {
	return s.Index() < other.Index()
}

// ShippingData is the shipping step's form data.
type ShippingData struct {
	FullName     string            `json:"fullName"`
	MobileNumber string            `json:"mobileNumber"`
	Address      string            `json:"address"`
	City         string            `json:"city,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	Delivery     DeliverySelection `json:"delivery"`
	GiftWrap     bool              `json:"giftWrap"`
}

// PaymentData is the payment step's form data. WalletNumber and TransactionID
// are required only for wallet methods.
type PaymentData struct {
	Method        PaymentMethod `json:"method"`
	WalletNumber  string        `json:"walletNumber,omitempty"`
	TransactionID string        `json:"transactionId,omitempty"`
}

// Consents are the two acknowledgements gating final submission.
type Consents struct {
	Terms   bool `json:"terms"`
	Privacy bool `json:"privacy"`
}

// CheckoutState is the per-session state of the step machine. It exists only
// between Begin and a successful submission (or abandonment).
type CheckoutState struct {
	SessionID string       `json:"sessionId"`
	Step      CheckoutStep `json:"currentStep"`
	Shipping  ShippingData `json:"shippingData"`
	Payment   PaymentData  `json:"paymentData"`
	Consents  Consents     `json:"consents"`
	// BeginTracked flags that begin_checkout was already reported for this
	// session, so re-entering checkout does not report it again.
	BeginTracked bool `json:"beginTracked"`
	Submitting   bool `json:"isSubmitting"`
}
