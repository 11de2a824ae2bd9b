package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Stripe implements Provider with Stripe Checkout.
type Stripe struct {
	api           *client.API
	webhookSecret string
}

// NewStripe creates a Stripe provider. backends may be nil to use the live
// Stripe endpoints.
func NewStripe(secretKey, webhookSecret string, backends *stripe.Backends) *Stripe {
	api := &client.API{}
	api.Init(secretKey, backends)
	return &Stripe{api: api, webhookSecret: webhookSecret}
}

// CreateCheckoutSession creates a one-off card payment session.
func (s *Stripe) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
	}
	params.Context = ctx
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	for _, line := range req.Lines {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(req.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Title),
				},
				UnitAmount: stripe.Int64(line.UnitAmount),
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return nil, fmt.Errorf("create checkout session: %s", stripeErr.Msg)
		}
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes the event.
func (s *Stripe) ParseWebhook(payload []byte, signature string) (*Event, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &Event{ID: ev.ID, Type: string(ev.Type)}
	if out.Type != EventCheckoutCompleted || ev.Data == nil {
		return out, nil
	}
	var cs stripe.CheckoutSession
	if err := json.Unmarshal(ev.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("%w: decode checkout session: %v", ErrMalformedEvent, err)
	}
	out.Session = &CompletedSession{
		ID:          cs.ID,
		AmountTotal: cs.AmountTotal,
		Metadata:    cs.Metadata,
	}
	return out, nil
}
