package address

import (
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
)

// Query shapes address reads. Customers only ever see their own rows.
type Query struct{}

func ownedUnlessAdmin(hc *crud.HookContext) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if hc.IsAdmin() {
			return db
		}
		if hc.Identity == nil {
			return db.Where("1 = 0")
		}
		return db.Where("user_id = ?", hc.Identity.ID)
	}
}

// Index lists the live addresses visible to the caller.
func (Query) Index(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	return crud.NewestFirst(db.Scopes(crud.NotDeleted, ownedUnlessAdmin(hc)))
}

// Show fetches a live address visible to the caller.
func (Query) Show(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	return db.Scopes(crud.NotDeleted, ownedUnlessAdmin(hc))
}

// StampCreate assigns the address to the caller.
func (Query) StampCreate(hc *crud.HookContext, rec *domain.UserAddress) {
	if hc.Identity != nil {
		rec.UserID = hc.Identity.ID
	}
}

// Hooks implements the address lifecycle.
type Hooks struct {
	crud.NopLifecycle[domain.UserAddress]
}

func checkOwner(hc *crud.HookContext, rec *domain.UserAddress) error {
	if hc.Identity == nil {
		return domain.ErrUnauthenticated
	}
	if rec.UserID != hc.Identity.ID && !hc.IsAdmin() {
		return domain.NewFieldError(domain.CodeForbidden, "Forbidden",
			"authentication", "This address belongs to another user")
	}
	return nil
}

// BeforeCreate requires a signed-in caller.
func (Hooks) BeforeCreate(hc *crud.HookContext, rec *domain.UserAddress) error {
	if hc.Identity == nil {
		return domain.ErrUnauthenticated
	}
	return nil
}

// AfterCreate retires the caller's other addresses; a user keeps one.
func (Hooks) AfterCreate(hc *crud.HookContext, rec *domain.UserAddress) error {
	return crud.SoftDeleteWhere(hc.DB, &domain.UserAddress{}, "user_id = ? AND id <> ?", rec.UserID, rec.ID)
}

// BeforeUpdate enforces ownership.
func (Hooks) BeforeUpdate(hc *crud.HookContext, rec *domain.UserAddress) error {
	return checkOwner(hc, rec)
}

// BeforeDestroy enforces ownership.
func (Hooks) BeforeDestroy(hc *crud.HookContext, rec *domain.UserAddress) error {
	return checkOwner(hc, rec)
}
