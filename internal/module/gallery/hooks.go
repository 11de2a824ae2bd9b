package gallery

import (
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("EventCategory", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "slug")
		}).
		Preload("Event", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "slug")
		}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("deleted_at IS NULL AND status = ?", true).Order("sort_order ASC").Order("id ASC")
		})
}

// Query shapes gallery reads.
type Query struct{}

// Index lists live galleries with their visible items, optionally narrowed by
// eventId or eventCategoryId.
func (Query) Index(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	db = db.Scopes(crud.NotDeleted, crud.ActiveUnlessAdmin(hc), withRelations)
	if id, ok := pkg.QueryUint(hc.Query, "eventId"); ok {
		db = db.Where("event_id = ?", id)
	}
	if id, ok := pkg.QueryUint(hc.Query, "eventCategoryId"); ok {
		db = db.Where("event_category_id = ?", id)
	}
	return crud.NewestFirst(db)
}

// Show fetches a live gallery with its relations.
func (Query) Show(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	return db.Scopes(crud.NotDeleted, crud.ActiveUnlessAdmin(hc), withRelations)
}

// Hooks implements the gallery lifecycle.
type Hooks struct {
	crud.NopLifecycle[domain.Gallery]
}

// BeforeCreate checks the parents and derives a slug from the title.
func (Hooks) BeforeCreate(hc *crud.HookContext, rec *domain.Gallery) error {
	if err := checkParents(hc, rec); err != nil {
		return err
	}
	slug, err := pkg.UniqueSlug(hc.DB, &domain.Gallery{}, rec.Title, 0)
	if err != nil {
		return err
	}
	rec.Slug = slug
	return nil
}

// BeforeUpdate re-checks the parents.
func (Hooks) BeforeUpdate(hc *crud.HookContext, rec *domain.Gallery) error {
	return checkParents(hc, rec)
}

// AfterDestroy soft deletes the gallery's items.
func (Hooks) AfterDestroy(hc *crud.HookContext, rec *domain.Gallery) error {
	return crud.SoftDeleteWhere(hc.DB, &domain.GalleryItem{}, "gallery_id = ?", rec.ID)
}

func checkParents(hc *crud.HookContext, rec *domain.Gallery) error {
	fields := map[string]string{}
	if rec.EventCategoryID != nil {
		ok, err := crud.LiveExists(hc.DB, &domain.EventCategory{}, *rec.EventCategoryID)
		if err != nil {
			return err
		}
		if !ok {
			fields["eventCategoryId"] = "Event category does not exist"
		}
	}
	if rec.EventID != nil {
		ok, err := crud.LiveExists(hc.DB, &domain.Event{}, *rec.EventID)
		if err != nil {
			return err
		}
		if !ok {
			fields["eventId"] = "Event does not exist"
		}
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}
