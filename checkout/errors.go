package checkout

import "fmt"

// ValidationError means the cart failed a pre-condition; nothing was
// sent to the gateway or the store.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// GatewayError covers gateway order creation failures and rejected
// payment verification. No order has been persisted.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// PersistenceError is the serious one: payment was captured but the
// order record could not be written. PaymentID identifies the captured
// payment for out-of-band reconciliation.
type PersistenceError struct {
	PaymentID string
	Receipt   string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order not persisted for payment %s: %v", e.PaymentID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
