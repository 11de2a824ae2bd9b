// Package payment talks to the hosted checkout provider.
package payment

import (
	"context"
	"errors"

	"github.com/simp-lee/photostore/internal/cart"
)

// EventCheckoutCompleted is the only webhook event that creates orders.
const EventCheckoutCompleted = "checkout.session.completed"

// ErrInvalidSignature is returned by ParseWebhook for payloads whose
// signature does not verify against the shared secret.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// ErrMalformedEvent is returned by ParseWebhook for correctly signed events
// whose body cannot be decoded.
var ErrMalformedEvent = errors.New("malformed webhook event")

// SessionRequest describes a hosted checkout session to create.
type SessionRequest struct {
	Lines         []cart.LineItem
	Currency      string
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	Metadata      map[string]string
}

// Session is a created checkout session.
type Session struct {
	ID  string
	URL string
}

// CompletedSession is the payload of a completed checkout.
type CompletedSession struct {
	ID          string
	AmountTotal int64
	Metadata    map[string]string
}

// Event is a verified webhook event. Session is set only for
// EventCheckoutCompleted.
type Event struct {
	ID      string
	Type    string
	Session *CompletedSession
}

// Provider creates checkout sessions and verifies webhook deliveries.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
	ParseWebhook(payload []byte, signature string) (*Event, error)
}
