// Package checkout turns a cart into a paid order through the payment gateway.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	applog "artvista/internal/log"
	"artvista/internal/payment"
	"artvista/models"
)

var (
	// ErrEmptyCart is returned when there is nothing to pay for.
	ErrEmptyCart = errors.New("your cart is empty")
	// ErrPaymentDeclined is returned when the gateway refuses the payment.
	ErrPaymentDeclined = errors.New("payment was declined")
)

// Gateway is the payment backend used by Service.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, amount float64) (payment.Intent, error)
	VerifyPayment(ctx context.Context, intentID string) (payment.Verification, error)
}

// Cart is the part of a cart store a checkout needs.
type Cart interface {
	Items() []models.Artwork
	Total() float64
	Settle(ctx context.Context, paid []models.Artwork) (int, error)
}

// DefaultTimeout bounds a payment once it has been started.
const DefaultTimeout = 30 * time.Second

// Receipt describes a completed checkout.
type Receipt struct {
	IntentID string           `json:"intentId"`
	Amount   float64          `json:"amount"`
	Items    []models.Artwork `json:"items"`
	PaidAt   time.Time        `json:"paidAt"`
}

// Service runs checkouts. At most one payment is in flight per cart key; callers that
// arrive while one is running share its outcome.
type Service struct {
	gateway Gateway
	group   singleflight.Group
	timeout time.Duration
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewService builds a Service charging through gateway.
func NewService(gateway Gateway, opts ...Option) *Service {
	s := &Service{
		gateway: gateway,
		timeout: DefaultTimeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout charges the cart total, verifies the payment and removes the paid entries
// from the cart. key identifies the cart for coalescing concurrent submissions.
//
// A started payment ignores the starting caller's cancellation and is bounded by the
// service timeout instead. A caller whose ctx ends stops waiting for it.
func (s *Service) Checkout(ctx context.Context, key string, cart Cart) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	ch := s.group.DoChan(key, func() (any, error) {
		payCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.run(payCtx, cart)
	})

	select {
	case res := <-ch:
		if res.Shared {
			applog.Debug(ctx, "checkout coalesced", "cart", key)
		}
		if res.Err != nil {
			return Receipt{}, res.Err
		}
		return res.Val.(Receipt), nil
	case <-ctx.Done():
		applog.Warn(ctx, "checkout caller left before payment finished", "cart", key)
		return Receipt{}, ctx.Err()
	}
}

func (s *Service) run(ctx context.Context, cart Cart) (Receipt, error) {
	items := cart.Items()
	if len(items) == 0 {
		return Receipt{}, ErrEmptyCart
	}
	total := cart.Total()

	intent, err := s.gateway.CreatePaymentIntent(ctx, total)
	if err != nil {
		return Receipt{}, fmt.Errorf("create payment intent: %w", err)
	}
	if !intent.Success {
		return Receipt{}, ErrPaymentDeclined
	}

	verification, err := s.gateway.VerifyPayment(ctx, intent.ClientSecret)
	if err != nil {
		return Receipt{}, fmt.Errorf("verify payment: %w", err)
	}
	if !verification.Success {
		return Receipt{}, ErrPaymentDeclined
	}

	if _, err := cart.Settle(ctx, items); err != nil {
		return Receipt{}, fmt.Errorf("settle cart: %w", err)
	}

	applog.Info(ctx, "checkout completed", "intent", intent.ClientSecret, "amount", total, "items", len(items))
	return Receipt{
		IntentID: intent.ClientSecret,
		Amount:   total,
		Items:    items,
		PaidAt:   s.now(),
	}, nil
}
