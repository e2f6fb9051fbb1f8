// Package payment wraps the card-charging side of checkout behind a small
// interface so the order service never talks to Stripe directly.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Charge is the outcome of a successful card charge.
type Charge struct {
	ID     string
	Amount int64
}

// Processor charges a card token for the given amount in cents.
type Processor interface {
	Charge(ctx context.Context, amount int64, currency, cardToken string) (*Charge, error)
}

// StripeProcessor charges cards through the Stripe API.
type StripeProcessor struct {
	api *client.API
}

// NewStripeProcessor creates a processor bound to the given secret key.
func NewStripeProcessor(apiKey string) *StripeProcessor {
	return &StripeProcessor{api: client.New(apiKey, nil)}
}

// Charge creates a Stripe charge for the card token.
func (p *StripeProcessor) Charge(ctx context.Context, amount int64, currency, cardToken string) (*Charge, error) {
	params := &stripe.ChargeParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	if err := params.SetSource(cardToken); err != nil {
		return nil, fmt.Errorf("setting charge source: %w", err)
	}

	ch, err := p.api.Charges.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating stripe charge: %w", err)
	}

	return &Charge{ID: ch.ID, Amount: ch.Amount}, nil
}
