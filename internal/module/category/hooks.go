package category

import (
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// Query shapes category reads.
type Query struct{}

// Index lists live categories, active ones only for non-admins.
func (Query) Index(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	return crud.NewestFirst(db.Scopes(crud.NotDeleted, crud.ActiveUnlessAdmin(hc)))
}

// Show fetches a live category.
func (Query) Show(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	return db.Scopes(crud.NotDeleted)
}

// Hooks implements the category lifecycle.
type Hooks struct {
	crud.NopLifecycle[domain.EventCategory]
}

// BeforeCreate derives a unique slug from the name.
func (Hooks) BeforeCreate(hc *crud.HookContext, rec *domain.EventCategory) error {
	if hc.Identity == nil {
		return domain.ErrUnauthenticated
	}
	slug, err := pkg.UniqueSlug(hc.DB, &domain.EventCategory{}, rec.Name, 0)
	if err != nil {
		return err
	}
	rec.Slug = slug
	return nil
}

// AfterDestroy soft deletes the category's events, FAQs and galleries with it.
func (Hooks) AfterDestroy(hc *crud.HookContext, rec *domain.EventCategory) error {
	if err := crud.SoftDeleteWhere(hc.DB, &domain.Event{}, "category_id = ?", rec.ID); err != nil {
		return err
	}
	if err := crud.SoftDeleteWhere(hc.DB, &domain.EventCategoryFaq{}, "event_category_id = ?", rec.ID); err != nil {
		return err
	}
	var galleryIDs []uint
	if err := hc.DB.Model(&domain.Gallery{}).
		Where("event_category_id = ? AND deleted_at IS NULL", rec.ID).
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
