package services

import (
	"context"
	"fmt"
	"time"

	"swiftdine/models"
)

// Payment methods the checkout screen offers. Method-specific field
// syntax is a form concern; the core only records the intent.
const (
	PaymentUPI    = "upi"
	PaymentCard   = "card"
	PaymentWallet = "wallet"
	PaymentCOD    = "cod"
)

var (
	UPIApps = []string{"Google Pay", "PhonePe", "Paytm", "BHIM"}
	Wallets = []string{"MobiKwik", "Ola Money", "JioMoney"}
)

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentUPI, PaymentCard, PaymentWallet, PaymentCOD:
		return true
	}
	return false
}

// PaymentResult reports whether the order was placed, and if not, the
// checkout rejection reason.
type PaymentResult struct {
	Placed  bool           `json:"placed"`
	Reason  string         `json:"reason,omitempty"`
	Session models.Session `json:"session"`
}

// Processor simulates the payment gateway round trip: a fixed delay
// followed by order placement. No real gateway protocol is modeled.
type Processor struct {
	machine *Machine
	delay   time.Duration
}

func NewProcessor(machine *Machine, delay time.Duration) *Processor {
	return &Processor{machine: machine, delay: delay}
}

// Confirm runs the simulated processing delay and then attempts to
// place the order. A checkout rejection is a result, not an error; the
// error return is for a malformed method or a cancelled context.
func (p *Processor) Confirm(ctx context.Context, method string) (PaymentResult, error) {
	if !ValidPaymentMethod(method) {
		return PaymentResult{}, fmt.Errorf("confirm payment: unknown method %q", method)
	}

	if res := ValidateCheckout(p.machine.Snapshot()); !res.OK {
		return PaymentResult{Reason: res.Reason, Session: p.machine.Snapshot()}, nil
	}

	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return PaymentResult{}, ctx.Err()
	case <-t.C:
	}

	// The address may have changed during the delay; placement itself
	// re-validates and silently no-ops on rejection.
	s, err := p.machine.Dispatch(Action{Type: ActionPlaceOrder})
	if err != nil {
		return PaymentResult{}, fmt.Errorf("confirm payment: %w", err)
	}
	res := PaymentResult{Placed: s.Stage == models.StageSuccess, Session: s}
	if !res.Placed {
		res.Reason = ValidateCheckout(s).Reason
	}
	return res, nil
}
