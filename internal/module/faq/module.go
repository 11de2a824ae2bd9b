package faq

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/middleware"
)

// Module serves category FAQs.
type Module struct {
	ctl *crud.Controller[domain.EventCategoryFaq]
}

// NewModule creates the FAQ module.
func NewModule(db *gorm.DB, logger *slog.Logger) *Module {
	ctl := crud.NewController(db, crud.Definition[domain.EventCategoryFaq]{
		Name:       "faq",
		Query:      Query{},
		Hooks:      Hooks{},
		Resource:   Resource,
		NewCreate:  func() crud.Input[domain.EventCategoryFaq] { return &CreateRequest{} },
		NewUpdate:  func() crud.Input[domain.EventCategoryFaq] { return &UpdateRequest{} },
		SortFields: []string{"id", "created_at"},
	}, logger)
	return &Module{ctl: ctl}
}

// RegisterRoutes registers the public listing and the admin CRUD routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/users/events/category/faq", m.ctl.List)

	admin := api.Group("/admin/events/category/faq", middleware.RequireAdmin())
	admin.GET("", m.ctl.List)
	admin.POST("", m.ctl.Create)
	admin.GET("/:slug", m.ctl.Show(crud.BySlug("slug")))
	admin.PATCH("/:slug", m.ctl.Update(crud.BySlug("slug")))
	admin.DELETE("/:slug", m.ctl.Destroy(crud.BySlug("slug")))
}
