package gallery

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/middleware"
)

// Module serves galleries.
type Module struct {
	ctl *crud.Controller[domain.Gallery]
}

// NewModule creates the gallery module.
func NewModule(db *gorm.DB, assetBase string, logger *slog.Logger) *Module {
	ctl := crud.NewController(db, crud.Definition[domain.Gallery]{
		Name:       "gallery",
		Query:      Query{},
		Hooks:      Hooks{},
		Resource:   NewResource(assetBase),
		NewCreate:  func() crud.Input[domain.Gallery] { return &CreateRequest{} },
		NewUpdate:  func() crud.Input[domain.Gallery] { return &UpdateRequest{} },
		SortFields: []string{"id", "title", "created_at"},
	}, logger)
	return &Module{ctl: ctl}
}

// RegisterRoutes registers the customer listing and the admin CRUD routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/users/gallery", m.ctl.List)

	admin := api.Group("/admin/gallery", middleware.RequireAdmin())
	admin.GET("", m.ctl.List)
	admin.POST("", m.ctl.Create)
	admin.GET("/:slug", m.ctl.Show(crud.BySlug("slug")))
	admin.PATCH("/:slug", m.ctl.Update(crud.BySlug("slug")))
	admin.DELETE("/:slug", m.ctl.Destroy(crud.BySlug("slug")))
}
