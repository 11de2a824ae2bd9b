package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// TokenIssuer issues a session token inside an open transaction, replacing
// any token the user already holds.
type TokenIssuer interface {
	IssueTx(ctx context.Context, tx *gorm.DB, userID uint, client domain.ClientInfo) (string, error)
}

// Query shapes user reads. The collection is the admin customer list.
type Query struct{}

// Index lists live customers other than the caller, newest first.
func (Query) Index(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	db = db.Scopes(crud.NotDeleted).
		Preload("Role").
		Where("user_group_id = ?", domain.RoleUser)
	if hc.Identity != nil {
		db = db.Where("id <> ?", hc.Identity.ID)
	}
	db = db.Scopes(pkg.Contains("name", hc.Query.Get("q")))
	db = db.Scopes(pkg.Filter(hc.Query, map[string]string{"userType": "user_type"}))
	return crud.NewestFirst(db)
}

// Show fetches a live user with its role.
func (Query) Show(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	return db.Scopes(crud.NotDeleted).Preload("Role")
}

// StampCreate makes every self-registered account a customer.
func (Query) StampCreate(hc *crud.HookContext, rec *domain.User) {
	rec.UserGroupID = domain.RoleUser
	rec.UserType = domain.UserTypeUser
}

// Hooks implements the user lifecycle.
type Hooks struct {
	crud.NopLifecycle[domain.User]
	tokens TokenIssuer
}

// BeforeCreate rejects a taken email, derives slug and username from the
// name and hashes the password.
func (h Hooks) BeforeCreate(hc *crud.HookContext, rec *domain.User) error {
	taken, err := NewUserRepository(hc.DB).EmailTaken(hc.Ctx, rec.Email)
	if err != nil {
		return err
	}
	if taken {
		return domain.NewValidationError(map[string]string{"email": "Email already exists"})
	}

	slug, err := pkg.UniqueSlug(hc.DB, &domain.User{}, rec.Name, 0)
	if err != nil {
		return err
	}
	rec.Slug = slug
	rec.Username = slug

	hash, err := bcrypt.GenerateFromPassword([]byte(rec.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
	}
	rec.Password = string(hash)
	return nil
}

// AfterCreate signs the new user in and returns the token alongside the record.
func (h Hooks) AfterCreate(hc *crud.HookContext, rec *domain.User) error {
	if h.tokens == nil {
		return nil
	}
	token, err := h.tokens.IssueTx(hc.Ctx, hc.DB, rec.ID, domain.ClientInfo{
		DeviceType: "web",
		IPAddress:  hc.ClientIP,
		UserAgent:  hc.UserAgent,
	})
	if err != nil {
		return err
	}
	hc.SetExtra("token", token)
	return nil
}

// BeforeUpdate only lets administrators edit someone else's profile.
func (Hooks) BeforeUpdate(hc *crud.HookContext, rec *domain.User) error {
	if hc.Identity == nil {
		return domain.ErrUnauthenticated
	}
	if rec.ID != hc.Identity.ID && !hc.IsAdmin() {
		return domain.NewFieldError(domain.CodeForbidden, "Forbidden",
			"authentication", "You can't update another user's profile")
	}
	return nil
}

// BeforeDestroy stops an administrator from deleting their own account.
func (Hooks) BeforeDestroy(hc *crud.HookContext, rec *domain.User) error {
	if hc.Identity != nil && rec.ID == hc.Identity.ID {
		return domain.NewFieldError(domain.CodeForbidden, "Forbidden",
			"authentication", "You can't delete your own account")
	}
	return nil
}

// AfterDestroy revokes the user's sessions and retires their addresses.
func (Hooks) AfterDestroy(hc *crud.HookContext, rec *domain.User) error {
	if err := hc.DB.Where("user_id = ?", rec.ID).Delete(&domain.UserAPIToken{}).Error; err != nil {
		return crud.MapError(err)
	}
	return crud.SoftDeleteWhere(hc.DB, &domain.UserAddress{}, "user_id = ?", rec.ID)
}
