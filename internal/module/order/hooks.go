package order

import (
	"net/url"
	"strings"

	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/pkg"
)

// Query shapes order reads. Every caller, administrators included, sees only
// their own purchase history here.
type Query struct{}

func ownOrders(hc *crud.HookContext) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(crud.NotDeleted).
			Preload("User", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "name", "email")
			}).
			Preload("Items", func(db *gorm.DB) *gorm.DB {
				return db.Order("id ASC")
			})
		if hc.Identity == nil {
			return db.Where("1 = 0")
		}
		return db.Where("user_id = ?", hc.Identity.ID)
	}
}

// Index lists the caller's orders, optionally narrowed by status.
func (Query) Index(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	db = db.Scopes(ownOrders(hc))
	// Statuses are stored upper case; the filter accepts any case.
	filters := url.Values{"status": {strings.ToUpper(hc.Query.Get("status"))}}
	db = db.Scopes(pkg.Filter(filters, map[string]string{"status": "status"}))
	return crud.NewestFirst(db)
}

// Show fetches one of the caller's orders.
func (Query) Show(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	return db.Scopes(ownOrders(hc))
}
