package crud

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simp-lee/photostore/internal/domain"
)

// HookContext is the request state handed to query hooks and lifecycle hooks.
// DB is the transaction for mutating operations and the base handle otherwise.
type HookContext struct {
	Ctx       context.Context
	DB        *gorm.DB
	Identity  *domain.Identity
	User      *domain.User
	Query     url.Values
	Header    http.Header
	Params    gin.Params
	Method    string
	ClientIP  string
	UserAgent string

	// Extra is merged into a single-record response after transformation.
	Extra gin.H
}

// IsAdmin reports whether the caller is an administrator.
func (hc *HookContext) IsAdmin() bool {
	return hc != nil && hc.Identity.IsAdmin()
}

// SetExtra attaches a top-level field to the single-record response.
func (hc *HookContext) SetExtra(key string, value any) {
	if hc.Extra == nil {
		hc.Extra = gin.H{}
	}
	hc.Extra[key] = value
}

// QueryHook shapes the ORM query for reads. Every implementation must exclude
// soft-deleted rows.
type QueryHook interface {
	Index(db *gorm.DB, hc *HookContext) *gorm.DB
	Show(db *gorm.DB, hc *HookContext) *gorm.DB
}

// CreateStamper is an optional QueryHook extension that forces fields on a
// record about to be inserted, after the lifecycle hook has run.
type CreateStamper[T any] interface {
	StampCreate(hc *HookContext, rec *T)
}

// Lifecycle is the set of extension points around the five operations.
// Any non-nil error short-circuits the operation and is rendered as-is.
type Lifecycle[T any] interface {
	BeforeList(hc *HookContext) error
	AfterList(hc *HookContext, recs []T) ([]T, error)
	BeforeShow(hc *HookContext, key Key) error
	AfterShow(hc *HookContext, rec *T) error
	BeforeCreate(hc *HookContext, rec *T) error
	AfterCreate(hc *HookContext, rec *T) error
	BeforeUpdate(hc *HookContext, rec *T) error
	AfterUpdate(hc *HookContext, rec *T) error
	BeforeDestroy(hc *HookContext, rec *T) error
	AfterDestroy(hc *HookContext, rec *T) error
}

// NopLifecycle implements every Lifecycle method as a no-op. Embed it and
// override only what an entity needs.
type NopLifecycle[T any] struct{}

func (NopLifecycle[T]) BeforeList(*HookContext) error                   { return nil }
func (NopLifecycle[T]) AfterList(_ *HookContext, recs []T) ([]T, error) { return recs, nil }
func (NopLifecycle[T]) BeforeShow(*HookContext, Key) error              { return nil }
func (NopLifecycle[T]) AfterShow(*HookContext, *T) error                { return nil }
func (NopLifecycle[T]) BeforeCreate(*HookContext, *T) error             { return nil }
func (NopLifecycle[T]) AfterCreate(*HookContext, *T) error              { return nil }
func (NopLifecycle[T]) BeforeUpdate(*HookContext, *T) error             { return nil }
func (NopLifecycle[T]) AfterUpdate(*HookContext, *T) error              { return nil }
func (NopLifecycle[T]) BeforeDestroy(*HookContext, *T) error            { return nil }
func (NopLifecycle[T]) AfterDestroy(*HookContext, *T) error             { return nil }

// NotDeleted is the soft-delete predicate every QueryHook applies.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "deleted_at"}, Value: nil})
}

// ActiveUnlessAdmin hides rows with status = false from non-admin callers.
func ActiveUnlessAdmin(hc *HookContext) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if hc.IsAdmin() {
			return db
		}
		return db.Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "status"}, Value: true})
	}
}

// NewestFirst orders by creation time, latest first.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "created_at"}, Desc: true})
}
