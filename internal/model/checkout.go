package model

// FlowStatus tracks one user's checkout attempt from order creation through
// gateway completion and verification.
type FlowStatus string

const (
	FlowStatusIdle      FlowStatus = "IDLE"
	FlowStatusAwaiting  FlowStatus = "AWAITING_GATEWAY_COMPLETION"
	FlowStatusVerifying FlowStatus = "VERIFYING"
	FlowStatusSucceeded FlowStatus = "SUCCEEDED"
	FlowStatusFailed    FlowStatus = "FAILED"
)

// InFlight reports whether a new checkout attempt must be rejected because an
// earlier one has not resolved yet.
func (s FlowStatus) InFlight() bool {
	return s == FlowStatusAwaiting || s == FlowStatusVerifying
}

// String representation (for logging)
func (s FlowStatus) String() string {
	return string(s)
}

// Order is one gateway order, ephemeral to a single checkout attempt.
type Order struct {
	ID       string
	Amount   int64 // minor currency unit
	Currency string
	Receipt  string
}

// PaymentConfirmation is the signed result the gateway hands back after the
// user completes payment. Consumed exactly once by verification.
type PaymentConfirmation struct {
	OrderID   string
	PaymentID string
	Signature string
}
