package workflow

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPayRejectsUnknownMethod(t *testing.T) {
	g := PaymentGate{Delay: time.Millisecond}
	for _, m := range []string{"", "cash", "visa"} {
		if _, err := g.Pay(context.Background(), 25000, m); !errors.Is(err, ErrNoPaymentMethod) {
			t.Errorf("method %q: expected ErrNoPaymentMethod, got %v", m, err)
		}
	}
}

func TestPayAlwaysSucceedsForKnownMethods(t *testing.T) {
	g := PaymentGate{Delay: time.Millisecond}
	for _, m := range []string{"paystack", "opay", "moniepoint", "transfer"} {
		r, err := g.Pay(context.Background(), 25000, m)
		if err != nil {
			t.Fatalf("method %q: %v", m, err)
		}
		if r.Method != m || r.Amount != 25000 || r.PaidAt.IsZero() {
			t.Errorf("method %q: bad receipt %+v", m, r)
		}
	}
}

func TestPayWaitsOutDelay(t *testing.T) {
	g := PaymentGate{Delay: 50 * time.Millisecond}
	start := time.Now()
	if _, err := g.Pay(context.Background(), 1, "paystack"); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < g.Delay {
		t.Fatalf("paid after %v, before the %v delay", elapsed, g.Delay)
	}
}

func TestPayHonorsContextCancellation(t *testing.T) {
	g := PaymentGate{Delay: time.Minute}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := g.Pay(ctx, 1, "opay"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
