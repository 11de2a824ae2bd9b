package blog

import (
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// Query shapes blog reads.
type Query struct{}

// Index lists live posts, newest first; q searches titles.
func (Query) Index(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	db = db.Scopes(crud.NotDeleted, crud.ActiveUnlessAdmin(hc), pkg.Contains("title", hc.Query.Get("q")))
	return crud.NewestFirst(db)
}

// Show fetches a live post. Drafts are visible to administrators only.
func (Query) Show(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	return db.Scopes(crud.NotDeleted, crud.ActiveUnlessAdmin(hc))
}

// Hooks implements the blog lifecycle.
type Hooks struct {
	crud.NopLifecycle[domain.Blog]
}

// BeforeCreate derives a unique slug from the title.
func (Hooks) BeforeCreate(hc *crud.HookContext, rec *domain.Blog) error {
	if hc.Identity == nil {
		return domain.ErrUnauthenticated
	}
	slug, err := pkg.UniqueSlug(hc.DB, &domain.Blog{}, rec.Title, 0)
	if err != nil {
		return err
	}
	rec.Slug = slug
	return nil
}
