package address

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
)

// Module serves user addresses.
type Module struct {
	ctl *crud.Controller[domain.UserAddress]
}

// NewModule creates the address module.
func NewModule(db *gorm.DB, logger *slog.Logger) *Module {
	ctl := crud.NewController(db, crud.Definition[domain.UserAddress]{
		Name:       "address",
		Query:      Query{},
		Hooks:      Hooks{},
		Resource:   Resource,
		NewCreate:  func() crud.Input[domain.UserAddress] { return &Request{} },
		NewUpdate:  func() crud.Input[domain.UserAddress] { return &Request{} },
		SortFields: []string{"id", "created_at"},
	}, logger)
	return &Module{ctl: ctl}
}

// RegisterRoutes registers the address routes. Every method needs a signed-in caller.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/admin/address")
	g.GET("", m.ctl.List)
	g.POST("", m.ctl.Create)
	g.GET("/:id", m.ctl.Show(crud.ByID("id")))
	g.PATCH("/:id", m.ctl.Update(crud.ByID("id")))
	g.DELETE("/:id", m.ctl.Destroy(crud.ByID("id")))
}
