// The step machine driving the linear shipping, payment, review progression.
// Functions here mutate only the passed state; persistence and orchestration
// live in service.go.

package checkout

import (
	"fmt"
	"regexp"
	"strings"

	"toyshop/internal/domain"
)

// mobilePattern matches local mobile numbers: operator prefix 013-019
// followed by eight digits.
var mobilePattern = regexp.MustCompile(`^01[3-9]\d{8}$`)

// FieldError is one per-field validation failure, shown inline next to the
// offending input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates the failures that block a step advancement.
type ValidationError []FieldError

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e))
	for _, f := range e {
		fields = append(fields, f.Field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// NewState starts a checkout session at the shipping step.
func NewState(sessionID string) *domain.CheckoutState {
	return &domain.CheckoutState{SessionID: sessionID, Step: domain.StepShipping}
}

// ValidMobile reports whether number matches the local mobile pattern.
func ValidMobile(number string) bool {
	return mobilePattern.MatchString(strings.TrimSpace(number))
}

// ValidateShipping checks the shipping form. The returned slice is nil when
// the form passes.
func ValidateShipping(data domain.ShippingData) ValidationError {
	var errs ValidationError
	if strings.TrimSpace(data.FullName) == "" {
		errs = append(errs, FieldError{Field: "fullName", Message: "Full name is required"})
	}
	if !ValidMobile(data.MobileNumber) {
		errs = append(errs, FieldError{Field: "mobileNumber", Message: "Enter a valid mobile number"})
	}
	if strings.TrimSpace(data.Address) == "" {
		errs = append(errs, FieldError{Field: "address", Message: "Address is required"})
	}
	if _, ok := domain.ParseRegion(string(data.Delivery.Region)); !ok {
		errs = append(errs, FieldError{Field: "region", Message: "Select a delivery region"})
		return errs
	}
	if data.Delivery.Method == "" {
		errs = append(errs, FieldError{Field: "deliveryMethod", Message: "Select a delivery method"})
	} else if _, ok := domain.LookupDelivery(data.Delivery.Region, data.Delivery.Method); !ok {
		errs = append(errs, FieldError{Field: "deliveryMethod", Message: "Delivery method is not available in the selected region"})
	}
	return errs
}

// ApplyShipping validates data and, on success, stores it and advances the
// machine to the payment step. When the submitted region differs from the
// stored one, any previously chosen method is discarded first: a method only
// survives a region change if it belongs to the new region's set, and the
// submitted form must re-state it explicitly.
func ApplyShipping(state *domain.CheckoutState, data domain.ShippingData) error {
	if state.Shipping.Delivery.Region != "" && data.Delivery.Region != state.Shipping.Delivery.Region {
		if _, ok := domain.LookupDelivery(data.Delivery.Region, data.Delivery.Method); !ok {
			data.Delivery.Method = ""
		}
	}

	if errs := ValidateShipping(data); errs != nil {
		// Keep what the customer typed so nothing is lost, but pull the
		// machine back to shipping: later steps must not sit on top of
		// an invalid shipping form.
		state.Shipping = data
		state.Step = domain.StepShipping
		return errs
	}

	state.Shipping = data
	if state.Step == domain.StepShipping {
		state.Step = domain.StepPayment
	}
	return nil
}

// ValidatePayment checks the payment form against the method's required
// field set.
func ValidatePayment(data domain.PaymentData) ValidationError {
	var errs ValidationError
	if _, ok := domain.ParsePaymentMethod(string(data.Method)); !ok {
		errs = append(errs, FieldError{Field: "method", Message: "Select a payment method"})
		return errs
	}
	if data.Method.IsWallet() {
		if !ValidMobile(data.WalletNumber) {
			errs = append(errs, FieldError{Field: "walletNumber", Message: "Enter the wallet mobile number"})
		}
		if strings.TrimSpace(data.TransactionID) == "" {
			errs = append(errs, FieldError{Field: "transactionId", Message: "Transaction reference is required"})
		}
	}
	return errs
}

// ApplyPayment validates data and advances to review. The machine must have
// passed the shipping step already.
func ApplyPayment(state *domain.CheckoutState, data domain.PaymentData) error {
	if state.Step == domain.StepShipping {
		return domain.ErrInvalidStep
	}
	if errs := ValidatePayment(data); errs != nil {
		state.Payment = data
		state.Step = domain.StepPayment
		return errs
	}
	state.Payment = data
	if state.Step == domain.StepPayment {
		state.Step = domain.StepReview
	}
	return nil
}

// GoBack moves the machine to an earlier step. Data entered on later steps is
// retained. Forward jumps are rejected; the only way forward is passing the
// current step's validation.
func GoBack(state *domain.CheckoutState, target domain.CheckoutStep) error {
	if target.Index() < 0 {
		return domain.ErrInvalidStep
	}
	if state.Step.Before(target) {
		return domain.ErrInvalidStep
	}
	state.Step = target
	return nil
}

// CanSubmit reports whether the final submit action is enabled: the machine
// is at review, both consents are given and no submission is in flight.
func CanSubmit(state *domain.CheckoutState) bool {
	return state.Step == domain.StepReview &&
		state.Consents.Terms &&
		state.Consents.Privacy &&
		!state.Submitting
}
