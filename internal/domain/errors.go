package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrCartEmpty indicates an operation that requires cart lines ran
	// against an empty cart.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrQuantityTooLow indicates a quantity update below the minimum of 1.
	ErrQuantityTooLow = errors.New("quantity must be at least 1")
	// ErrInvalidStep indicates a checkout step name outside the known set.
	ErrInvalidStep = errors.New("invalid checkout step")
	// ErrNoCheckout indicates no checkout session has been started.
	ErrNoCheckout = errors.New("checkout not started")
	// ErrSubmissionInFlight indicates an order submission is already running
	// for this session.
	ErrSubmissionInFlight = errors.New("submission already in progress")
)
