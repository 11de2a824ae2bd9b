package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simp-lee/photostore/internal/cart"
	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/events"
	"github.com/simp-lee/photostore/internal/payment"
	"github.com/simp-lee/photostore/internal/pkg"
)

// Metadata keys linking a payment session back to its cart.
const (
	metaUserID = "userId"
	metaCart   = "cart"
)

// Config holds the checkout settings.
type Config struct {
	Currency    string
	BaseURL     string
	SuccessPath string
	CancelPath  string
}

func (c Config) successURL() string {
	path := c.SuccessPath
	if path == "" {
		path = "/checkout/success"
	}
	return strings.TrimRight(c.BaseURL, "/") + path + "?session_id={CHECKOUT_SESSION_ID}"
}

func (c Config) cancelURL() string {
	path := c.CancelPath
	if path == "" {
		path = "/checkout/cancel"
	}
	return strings.TrimRight(c.BaseURL, "/") + path
}

// Service starts payments and turns completed payments into orders.
type Service struct {
	db        *gorm.DB
	provider  payment.Provider
	publisher events.Publisher
	cfg       Config
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a checkout Service.
// Panics if db or provider is nil.
func NewService(db *gorm.DB, provider payment.Provider, publisher events.Publisher, cfg Config, logger *slog.Logger) *Service {
	if db == nil || provider == nil {
		panic("checkout.NewService: db and provider must not be nil")
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	return &Service{
		db:        db,
		provider:  provider,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "checkout")),
		now:       time.Now,
	}
}

// Checkout creates a hosted payment session for the caller's cart and returns
// its redirect URL.
func (s *Service) Checkout(ctx context.Context, identity *domain.Identity, req CheckoutRequest) (string, error) {
	if identity == nil {
		return "", domain.NewAppError(domain.CodeUnauthenticated, "User not authenticated", nil)
	}
	if req.UserID != 0 && req.UserID.Uint() != identity.ID {
		return "", domain.NewFieldError(domain.CodeForbidden, "You can't check out for another user",
			"userId", "must match the signed-in user")
	}

	c := cart.New(req.Cart...)
	lines, err := c.LineItems()
	if err != nil {
		return "", cartError(err)
	}
	snapshot, err := c.Snapshot()
	if err != nil {
		return "", domain.NewAppError(domain.CodeInternal, "failed to encode cart", err)
	}

	sess, err := s.provider.CreateCheckoutSession(ctx, payment.SessionRequest{
		Lines:         lines,
		Currency:      s.cfg.Currency,
		SuccessURL:    s.cfg.successURL(),
		CancelURL:     s.cfg.cancelURL(),
		CustomerEmail: identity.Email,
		Metadata: map[string]string{
			metaUserID: strconv.FormatUint(uint64(identity.ID), 10),
			metaCart:   snapshot,
		},
	})
	if err != nil {
		return "", domain.NewAppError(domain.CodeExternal, err.Error(), err)
	}
	return sess.URL, nil
}

func cartError(err error) error {
	var pe *cart.PriceError
	switch {
	case errors.Is(err, cart.ErrEmpty):
		return domain.NewAppError(domain.CodeBadRequest, "Cart is empty", err)
	case errors.As(err, &pe):
		return domain.NewAppError(domain.CodeBadRequest, "Invalid price for "+pe.Title, err)
	default:
		return domain.NewAppError(domain.CodeBadRequest, err.Error(), err)
	}
}

// HandleWebhook verifies a provider delivery and records the order of a
// completed checkout. It returns the created order, or nil when the event is
// ignored or was already processed.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) (*domain.Order, error) {
	ev, err := s.provider.ParseWebhook(payload, signature)
	if errors.Is(err, payment.ErrMalformedEvent) {
		return nil, domain.NewAppError(domain.CodeBadRequest, "Malformed webhook payload", err)
	}
	if err != nil {
		return nil, domain.NewAppError(domain.CodeBadRequest, "Webhook signature verification failed", err)
	}
	if ev.Type != payment.EventCheckoutCompleted || ev.Session == nil {
		return nil, nil
	}

	log := s.logger.With(slog.String("event_id", ev.ID), slog.String("session_id", ev.Session.ID))

	userID, err := strconv.ParseUint(ev.Session.Metadata[metaUserID], 10, 64)
	if err != nil || userID == 0 {
		log.WarnContext(ctx, "checkout session without a user, ignored")
		return nil, nil
	}
	known, err := crud.LiveExists(s.db.WithContext(ctx), &domain.User{}, uint(userID))
	if err != nil {
		return nil, err
	}
	if !known {
		log.WarnContext(ctx, "checkout session for unknown user, ignored", slog.Uint64("user_id", userID))
		return nil, nil
	}
	c, err := cart.FromSnapshot(ev.Session.Metadata[metaCart])
	if err != nil {
		log.WarnContext(ctx, "checkout session without a usable cart, ignored", slog.String("error", err.Error()))
		return nil, nil
	}
	lines, err := c.LineItems()
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to price paid cart", err)
	}

	order := &domain.Order{
		UserID:          uint(userID),
		StripeSessionID: ev.Session.ID,
		Total:           pkg.FromMinorUnits(ev.Session.AmountTotal),
		Status:          domain.OrderStatusPaid,
		PurchaseDate:    s.now(),
	}
	created, err := s.record(ctx, order, lines)
	if err != nil {
		return nil, err
	}
	if !created {
		log.InfoContext(ctx, "duplicate webhook delivery, order already recorded")
		return nil, nil
	}

	log.InfoContext(ctx, "order recorded",
		slog.Uint64("order_id", uint64(order.ID)),
		slog.Uint64("user_id", userID),
		slog.String("total", order.Total.StringFixed(2)),
	)
	if err := s.publisher.PublishOrderPaid(ctx, events.OrderPaid{
		OrderID:         order.ID,
		UserID:          order.UserID,
		StripeSessionID: order.StripeSessionID,
		Total:           order.Total.StringFixed(2),
		Items:           len(order.Items),
		PaidAt:          order.PurchaseDate,
	}); err != nil {
		log.ErrorContext(ctx, "publish order event failed", slog.String("error", err.Error()))
	}
	return order, nil
}

// record inserts the order and its items in one transaction. created is false
// when an order for the same session already exists.
func (s *Service) record(ctx context.Context, order *domain.Order, lines []cart.LineItem) (created bool, err error) {
	err = pkg.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		res := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "stripe_session_id"}},
				DoNothing: true,
			}).
			Create(order)
		if res.Error != nil {
			return crud.MapError(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}

		items := make([]domain.OrderItem, 0, len(lines))
		for _, l := range lines {
			items = append(items, domain.OrderItem{
				OrderID:  order.ID,
				ItemID:   l.ItemID,
				ItemSlug: l.Slug,
				Title:    l.Title,
				Price:    l.Price,
				Quantity: int(l.Quantity),
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return crud.MapError(err)
		}
		order.Items = items
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("record order for session %s: %w", order.StripeSessionID, err)
	}
	return created, nil
}
