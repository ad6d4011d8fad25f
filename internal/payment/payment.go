package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// IntentRequest describes a card payment to be prepared by the provider.
// Amount is in minor currency units.
type IntentRequest struct {
	Amount   int64
	Currency string
	Metadata map[string]string
}

// Provider creates payment intents and returns the client-side secret.
type Provider interface {
	CreateIntent(ctx context.Context, req IntentRequest) (clientSecret string, err error)
}

type Stripe struct {
	api *client.API
}

func NewStripe(secretKey string) *Stripe {
	return newStripe(secretKey, nil)
}

// newStripe with nil backends talks to api.stripe.com.
func newStripe(secretKey string, backends *stripe.Backends) *Stripe {
	sc := &client.API{}
	sc.Init(secretKey, backends)
	return &Stripe{api: sc}
}

func (s *Stripe) CreateIntent(ctx context.Context, req IntentRequest) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.Amount),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
