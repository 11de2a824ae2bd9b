package event

import (
	"strings"

	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// Query shapes event reads.
type Query struct{}

// Index lists live events. cat_id narrows to a category slug; an unknown slug
// yields an empty list. q matches titles case-insensitively.
func (Query) Index(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	db = db.Scopes(crud.NotDeleted, crud.ActiveUnlessAdmin(hc)).Preload("Category")

	if slug := strings.TrimSpace(hc.Query.Get("cat_id")); slug != "" {
		var ids []uint
		err := hc.DB.Session(&gorm.Session{NewDB: true}).Model(&domain.EventCategory{}).
			Where("slug = ? AND deleted_at IS NULL", slug).
			Limit(1).Pluck("id", &ids).Error
		if err != nil || len(ids) == 0 {
			db = db.Where("1 = 0")
		} else {
			db = db.Where("category_id = ?", ids[0])
		}
	}

	db = db.Scopes(pkg.Contains("title", hc.Query.Get("q")))
	return crud.NewestFirst(db)
}

// Show fetches a live event with its category.
func (Query) Show(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	return db.Scopes(crud.NotDeleted, crud.ActiveUnlessAdmin(hc)).Preload("Category")
}

// Hooks implements the event lifecycle.
type Hooks struct {
	crud.NopLifecycle[domain.Event]
}

// BeforeCreate checks the category and derives a slug from the title.
func (Hooks) BeforeCreate(hc *crud.HookContext, rec *domain.Event) error {
	if err := checkCategory(hc, rec.CategoryID); err != nil {
		return err
	}
	slug, err := pkg.UniqueSlug(hc.DB, &domain.Event{}, rec.Title, 0)
	if err != nil {
		return err
	}
	rec.Slug = slug
	return nil
}

// BeforeUpdate re-checks the category.
func (Hooks) BeforeUpdate(hc *crud.HookContext, rec *domain.Event) error {
	return checkCategory(hc, rec.CategoryID)
}

// AfterDestroy soft deletes the event's galleries and their items.
func (Hooks) AfterDestroy(hc *crud.HookContext, rec *domain.Event) error {
	var galleryIDs []uint
	if err := hc.DB.Model(&domain.Gallery{}).
		Where("event_id = ? AND deleted_at IS NULL", rec.ID).
		Pluck("id", &galleryIDs).Error; err != nil {
		return crud.MapError(err)
	}
	if len(galleryIDs) == 0 {
		return nil
	}
	if err := crud.SoftDeleteWhere(hc.DB, &domain.GalleryItem{}, "gallery_id IN ?", galleryIDs); err != nil {
		return err
	}
	return crud.SoftDeleteWhere(hc.DB, &domain.Gallery{}, "id IN ?", galleryIDs)
}

func checkCategory(hc *crud.HookContext, id uint) error {
	ok, err := crud.LiveExists(hc.DB, &domain.EventCategory{}, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewFieldError(domain.CodeValidation, "Validation failed", "categoryId", "Event category does not exist")
	}
	return nil
}
