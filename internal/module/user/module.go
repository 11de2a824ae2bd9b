package user

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/middleware"
)

// Module serves registration, profiles and admin user management.
type Module struct {
	ctl      *crud.Controller[domain.User]
	resource crud.Resource[domain.User]
}

// NewModule creates the user module. tokens may be nil, in which case
// registration does not sign the new user in.
func NewModule(db *gorm.DB, tokens TokenIssuer, assetBase string, logger *slog.Logger) *Module {
	resource := NewResource(assetBase)
	ctl := crud.NewController(db, crud.Definition[domain.User]{
		Name:       "user",
		Query:      Query{},
		Hooks:      Hooks{tokens: tokens},
		Resource:   resource,
		NewCreate:  func() crud.Input[domain.User] { return &RegisterRequest{} },
		NewUpdate:  func() crud.Input[domain.User] { return &UpdateRequest{} },
		SortFields: []string{"id", "name", "email", "created_at"},
	}, logger)
	return &Module{ctl: ctl, resource: resource}
}

// Resource returns the user transformer for other modules that render users.
func (m *Module) Resource() crud.Resource[domain.User] {
	return m.resource
}

// RegisterRoutes registers the user routes. PATCH /admin/users/:slug is open
// to customers editing themselves; the update hook enforces ownership.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/users", m.ctl.Create)
	api.GET("/currentuser", m.ctl.Show(crud.Self()))

	for _, path := range []string{"/users/profile", "/admin/profile"} {
		api.GET(path, m.ctl.Show(crud.Self()))
		api.PATCH(path, m.ctl.Update(crud.Self()))
	}

	admin := api.Group("/admin/users")
	admin.GET("", middleware.RequireAdmin(), m.ctl.List)
	admin.GET("/:slug", middleware.RequireAdmin(), m.ctl.Show(crud.BySlug("slug")))
	admin.PATCH("/:slug", m.ctl.Update(crud.BySlug("slug")))
	admin.DELETE("/:slug", middleware.RequireAdmin(), m.ctl.Destroy(crud.BySlug("slug")))
}
