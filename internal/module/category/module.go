package category

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/middleware"
)

// Module serves event categories.
type Module struct {
	ctl *crud.Controller[domain.EventCategory]
}

// NewModule creates the category module.
func NewModule(db *gorm.DB, assetBase string, logger *slog.Logger) *Module {
	ctl := crud.NewController(db, crud.Definition[domain.EventCategory]{
		Name:       "category",
		Query:      Query{},
		Hooks:      Hooks{},
		Resource:   NewResource(assetBase),
		NewCreate:  func() crud.Input[domain.EventCategory] { return &CreateRequest{} },
		NewUpdate:  func() crud.Input[domain.EventCategory] { return &UpdateRequest{} },
		SortFields: []string{"id", "name", "created_at"},
	}, logger)
	return &Module{ctl: ctl}
}

// RegisterRoutes registers the public listing and the admin CRUD routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/users/events/category", m.ctl.List)

	admin := api.Group("/admin/events/category", middleware.RequireAdmin())
	admin.GET("", m.ctl.List)
	admin.POST("", m.ctl.Create)
	admin.GET("/:slug", m.ctl.Show(crud.BySlug("slug")))
	admin.PATCH("/:slug", m.ctl.Update(crud.BySlug("slug")))
	admin.DELETE("/:slug", m.ctl.Destroy(crud.BySlug("slug")))
}
