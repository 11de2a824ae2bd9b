package checkout

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/middleware"
	"github.com/simp-lee/photostore/internal/pkg"
)

// maxWebhookBody caps webhook payloads; provider events are far smaller.
const maxWebhookBody = 64 << 10

// CheckoutHandler handles REST API requests for payments. Both routes answer
// with bare JSON objects rather than the standard envelope, matching what the
// storefront and the payment provider expect.
type CheckoutHandler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler creates a new CheckoutHandler.
func NewHandler(svc *Service, logger *slog.Logger) *CheckoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{svc: svc, logger: logger}
}

func fail(c *gin.Context, err error) {
	msg := err.Error()
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	c.JSON(domain.HTTPStatusCode(err), gin.H{"error": msg})
}

// Checkout handles POST /api/v1/users/checkout.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := pkg.Bind(c, &req); err != nil {
		fail(c, err)
		return
	}

	url, err := h.svc.Checkout(c.Request.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		if domain.HTTPStatusCode(err) >= http.StatusInternalServerError {
			h.logger.ErrorContext(c.Request.Context(), "checkout failed", slog.String("error", err.Error()))
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Webhook handles POST /api/v1/users/webhook/stripe.
func (h *CheckoutHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		fail(c, domain.NewAppError(domain.CodeBadRequest, "unreadable webhook body", err))
		return
	}

	if _, err := h.svc.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		h.logger.WarnContext(c.Request.Context(), "webhook rejected", slog.String("error", err.Error()))
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
