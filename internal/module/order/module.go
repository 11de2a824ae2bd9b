package order

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
)

// Module serves the caller's order history. Orders are only ever written by
// the payment webhook.
type Module struct {
	ctl *crud.Controller[domain.Order]
}

// NewModule creates the order module.
func NewModule(db *gorm.DB, logger *slog.Logger) *Module {
	ctl := crud.NewController(db, crud.Definition[domain.Order]{
		Name:       "order",
		Query:      Query{},
		Resource:   Resource,
		SortFields: []string{"id", "total", "purchase_date", "created_at"},
	}, logger)
	return &Module{ctl: ctl}
}

// RegisterRoutes registers the read-only order routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/users/orders", m.ctl.List)
	api.GET("/users/orders/:id", m.ctl.Show(crud.ByID("id")))
}
