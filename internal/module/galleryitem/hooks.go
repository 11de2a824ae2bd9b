package galleryitem

import (
	"errors"

	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

func withGallery(db *gorm.DB) *gorm.DB {
	return db.Preload("Gallery", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "title", "slug")
	})
}

// Query shapes gallery item reads.
type Query struct{}

// Index lists live items, optionally for one gallery, in display order.
func (Query) Index(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	db = db.Scopes(crud.NotDeleted, crud.ActiveUnlessAdmin(hc), withGallery)
	if id, ok := pkg.QueryUint(hc.Query, "galleryId"); ok {
		db = db.Where("gallery_id = ?", id)
	}
	return crud.NewestFirst(db.Order("sort_order ASC"))
}

// Show fetches a live item with its gallery.
func (Query) Show(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	return db.Scopes(crud.NotDeleted, withGallery)
}

// Hooks implements the gallery item lifecycle.
type Hooks struct {
	crud.NopLifecycle[domain.GalleryItem]
}

// BeforeCreate checks the gallery and derives a slug from the item title,
// falling back to the gallery title.
func (Hooks) BeforeCreate(hc *crud.HookContext, rec *domain.GalleryItem) error {
	gallery, err := liveGallery(hc, rec.GalleryID)
	if err != nil {
		return err
	}
	source := rec.Title
	if source == "" {
		source = gallery.Title
	}
	slug, err := pkg.UniqueSlug(hc.DB, &domain.GalleryItem{}, source, 0)
	if err != nil {
		return err
	}
	rec.Slug = slug
	return nil
}

// BeforeUpdate re-checks the gallery.
func (Hooks) BeforeUpdate(hc *crud.HookContext, rec *domain.GalleryItem) error {
	_, err := liveGallery(hc, rec.GalleryID)
	return err
}

func liveGallery(hc *crud.HookContext, id uint) (*domain.Gallery, error) {
	var gallery domain.Gallery
	err := hc.DB.Session(&gorm.Session{NewDB: true}).
		Where("id = ? AND deleted_at IS NULL", id).Take(&gallery).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewFieldError(domain.CodeValidation, "Validation failed", "galleryId", "Gallery does not exist")
	}
	if err != nil {
		return nil, crud.MapError(err)
	}
	return &gallery, nil
}
