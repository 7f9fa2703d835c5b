package workflow

import (
	"context"
	"errors"
	"time"
)

var ErrNoPaymentMethod = errors.New("please select a payment method")

var paymentMethods = map[string]bool{
	"paystack":   true,
	"opay":       true,
	"moniepoint": true,
	"transfer":   true,
}

// PaymentGate simulates the registration payment processor. It always
// succeeds after a fixed delay; a real gateway slots in here later.
type PaymentGate struct {
	Delay time.Duration
}

type PaymentReceipt struct {
	Method string    `json:"method"`
	Amount int64     `json:"amount"`
	PaidAt time.Time `json:"paid_at"`
}

// Pay validates the method, waits out the simulated processing delay, and
// resolves success. Context cancellation is the only failure besides a
// missing/unknown method.
func (g PaymentGate) Pay(ctx context.Context, amount int64, method string) (PaymentReceipt, error) {
	if !paymentMethods[method] {
		return PaymentReceipt{}, ErrNoPaymentMethod
	}
	select {
	case <-time.After(g.Delay):
	case <-ctx.Done():
		return PaymentReceipt{}, ctx.Err()
	}
	return PaymentReceipt{Method: method, Amount: amount, PaidAt: time.Now()}, nil
}
