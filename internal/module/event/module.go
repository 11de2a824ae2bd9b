package event

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/middleware"
)

// Module serves events, the purchasable products of the store.
type Module struct {
	ctl *crud.Controller[domain.Event]
}

// NewModule creates the event module.
func NewModule(db *gorm.DB, assetBase string, logger *slog.Logger) *Module {
	ctl := crud.NewController(db, crud.Definition[domain.Event]{
		Name:       "event",
		Query:      Query{},
		Hooks:      Hooks{},
		Resource:   NewResource(assetBase),
		NewCreate:  func() crud.Input[domain.Event] { return &CreateRequest{} },
		NewUpdate:  func() crud.Input[domain.Event] { return &UpdateRequest{} },
		SortFields: []string{"id", "title", "price", "created_at"},
	}, logger)
	return &Module{ctl: ctl}
}

// RegisterRoutes registers the storefront and admin routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/users/events", m.ctl.List)
	api.GET("/users/events/:slug", m.ctl.Show(crud.BySlug("slug")))

	admin := api.Group("/admin/events", middleware.RequireAdmin())
	admin.GET("", m.ctl.List)
	admin.POST("", m.ctl.Create)
	admin.GET("/:slug", m.ctl.Show(crud.BySlug("slug")))
	admin.PATCH("/:slug", m.ctl.Update(crud.BySlug("slug")))
	admin.DELETE("/:slug", m.ctl.Destroy(crud.BySlug("slug")))
}
