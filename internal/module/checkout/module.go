package checkout

import (
	"github.com/gin-gonic/gin"
)

// Module wires the checkout and payment webhook routes.
type Module struct {
	handler *CheckoutHandler
}

// NewModule creates the checkout Module.
// Panics if h is nil.
func NewModule(h *CheckoutHandler) *Module {
	if h == nil {
		panic("checkout.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers the checkout routes on the API group. The webhook
// route is public and authenticated by its signature header.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	users.POST("/checkout", m.handler.Checkout)
	users.POST("/webhook/stripe", m.handler.Webhook)
}
