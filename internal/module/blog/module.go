package blog

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/middleware"
)

// Module serves blog posts.
type Module struct {
	ctl *crud.Controller[domain.Blog]
}

// NewModule creates the blog module.
func NewModule(db *gorm.DB, assetBase string, logger *slog.Logger) *Module {
	ctl := crud.NewController(db, crud.Definition[domain.Blog]{
		Name:       "blog",
		Query:      Query{},
		Hooks:      Hooks{},
		Resource:   NewResource(assetBase),
		NewCreate:  func() crud.Input[domain.Blog] { return &CreateRequest{} },
		NewUpdate:  func() crud.Input[domain.Blog] { return &UpdateRequest{} },
		SortFields: []string{"id", "title", "created_at"},
	}, logger)
	return &Module{ctl: ctl}
}

// RegisterRoutes registers the blog routes. Reads under /admin/blog are
// public; writes need an administrator.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/users/blog", m.ctl.List)
	api.GET("/users/blog/:slug", m.ctl.Show(crud.BySlug("slug")))

	api.GET("/admin/blog", m.ctl.List)
	api.GET("/admin/blog/:slug", m.ctl.Show(crud.BySlug("slug")))

	admin := api.Group("/admin/blog", middleware.RequireAdmin())
	admin.POST("", m.ctl.Create)
	admin.PATCH("/:slug", m.ctl.Update(crud.BySlug("slug")))
	admin.DELETE("/:slug", m.ctl.Destroy(crud.BySlug("slug")))
}
