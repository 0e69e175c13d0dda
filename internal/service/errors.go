package service

import "errors"

var (
	ErrAlreadyEntitled    = errors.New("user already has a paid entitlement")
	ErrCheckoutInFlight   = errors.New("a checkout attempt is already in progress")
	ErrNoPendingCheckout  = errors.New("no checkout is awaiting gateway completion")
	ErrOrderCreation      = errors.New("could not create payment order")
	ErrVerificationFailed = errors.New("payment verification failed")
	// ErrEntitlementWrite is the one failure needing manual reconciliation:
	// the gateway captured funds but the paid record was not persisted.
	ErrEntitlementWrite = errors.New("payment verified but entitlement not recorded")
)

// User-facing status messages for the flow state.
const (
	msgOrderFailed  = "Failed to create order. Please try again."
	msgVerifyFailed = "Payment verification failed. Please contact support."
	msgWriteFailed  = "Payment verified but failed to update your status. Please contact support."
	msgSucceeded    = "Payment completed successfully! You now have access to premium features."
)
