// Package payment simulates the payment backend used at checkout.
package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	applog "artvista/internal/log"
)

// SecretPrefix starts every client secret issued by MockGateway.
const SecretPrefix = "pi_mock_secret_"

var (
	// ErrInvalidAmount is returned for non-positive charges.
	ErrInvalidAmount = errors.New("payment amount must be greater than zero")
	// ErrUnknownIntent is returned when verifying a blank intent id.
	ErrUnknownIntent = errors.New("payment intent id is required")
)

// Intent is the result of creating a payment intent.
type Intent struct {
	ClientSecret string  `json:"clientSecret"`
	Amount       float64 `json:"amount"`
	Success      bool    `json:"success"`
}

// Verification is the result of confirming a payment.
type Verification struct {
	Success bool `json:"success"`
}

// MockGateway stands in for a real payment provider. Both calls wait for a fixed delay
// and then succeed.
type MockGateway struct {
	IntentDelay time.Duration
	VerifyDelay time.Duration
}

// NewMockGateway builds a gateway with the given delays.
func NewMockGateway(intentDelay, verifyDelay time.Duration) *MockGateway {
	return &MockGateway{IntentDelay: intentDelay, VerifyDelay: verifyDelay}
}

// CreatePaymentIntent registers a charge of amount and returns its client secret.
func (g *MockGateway) CreatePaymentIntent(ctx context.Context, amount float64) (Intent, error) {
	if amount <= 0 {
		return Intent{}, ErrInvalidAmount
	}
	applog.Info(ctx, "creating mock payment intent", "amount", amount)
	if err := wait(ctx, g.IntentDelay); err != nil {
		return Intent{}, err
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return Intent{ClientSecret: SecretPrefix + token, Amount: amount, Success: true}, nil
}

// VerifyPayment confirms the intent identified by intentID.
func (g *MockGateway) VerifyPayment(ctx context.Context, intentID string) (Verification, error) {
	if strings.TrimSpace(intentID) == "" {
		return Verification{}, ErrUnknownIntent
	}
	applog.Info(ctx, "verifying mock payment", "intent", intentID)
	if err := wait(ctx, g.VerifyDelay); err != nil {
		return Verification{}, err
	}
	return Verification{Success: true}, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
