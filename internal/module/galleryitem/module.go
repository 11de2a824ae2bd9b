package galleryitem

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/middleware"
)

// Module serves gallery items and the per-gallery image counts.
type Module struct {
	db  *gorm.DB
	ctl *crud.Controller[domain.GalleryItem]
}

// NewModule creates the gallery item module.
func NewModule(db *gorm.DB, assetBase string, logger *slog.Logger) *Module {
	ctl := crud.NewController(db, crud.Definition[domain.GalleryItem]{
		Name:       "gallery-item",
		Query:      Query{},
		Hooks:      Hooks{},
		Resource:   NewResource(assetBase),
		NewCreate:  func() crud.Input[domain.GalleryItem] { return &CreateRequest{} },
		NewUpdate:  func() crud.Input[domain.GalleryItem] { return &UpdateRequest{} },
		SortFields: []string{"id", "sort_order", "created_at"},
	}, logger)
	return &Module{db: db, ctl: ctl}
}

// RegisterRoutes registers the customer listing and the admin routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/users/gallery-items", m.ctl.List)

	admin := api.Group("/admin/gallery-items", middleware.RequireAdmin())
	admin.GET("", m.ctl.List)
	admin.GET("/list", m.listSummaries)
	admin.POST("", m.ctl.Create)
	admin.GET("/:id", m.ctl.Show(crud.ByID("id")))
	admin.PATCH("/:id", m.ctl.Update(crud.ByID("id")))
	admin.DELETE("/:id", m.ctl.Destroy(crud.ByID("id")))
}
