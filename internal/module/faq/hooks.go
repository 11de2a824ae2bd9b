package faq

import (
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

func withCategory(db *gorm.DB) *gorm.DB {
	return db.Preload("EventCategory", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "slug")
	})
}

// Query shapes FAQ reads.
type Query struct{}

// Index lists live FAQs, optionally for one category.
func (Query) Index(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	db = db.Scopes(crud.NotDeleted, crud.ActiveUnlessAdmin(hc), withCategory)
	if id, ok := pkg.QueryUint(hc.Query, "eventCategoryId"); ok {
		db = db.Where("event_category_id = ?", id)
	}
	return crud.NewestFirst(db)
}

// Show fetches a live FAQ with its category.
func (Query) Show(db *gorm.DB, hc *crud.HookContext) *gorm.DB {
	return db.Scopes(crud.NotDeleted, withCategory)
}

// Hooks implements the FAQ lifecycle.
type Hooks struct {
	crud.NopLifecycle[domain.EventCategoryFaq]
}

// BeforeCreate checks the category and derives a slug from the question.
func (Hooks) BeforeCreate(hc *crud.HookContext, rec *domain.EventCategoryFaq) error {
	if err := checkCategory(hc, rec.EventCategoryID); err != nil {
		return err
	}
	slug, err := pkg.UniqueSlug(hc.DB, &domain.EventCategoryFaq{}, rec.Question, 0)
	if err != nil {
		return err
	}
	rec.Slug = slug
	return nil
}

// BeforeUpdate re-checks the category when it may have changed.
func (Hooks) BeforeUpdate(hc *crud.HookContext, rec *domain.EventCategoryFaq) error {
	return checkCategory(hc, rec.EventCategoryID)
}

func checkCategory(hc *crud.HookContext, id uint) error {
	ok, err := crud.LiveExists(hc.DB, &domain.EventCategory{}, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewFieldError(domain.CodeValidation, "Validation failed", "eventCategoryId", "Event category does not exist")
	}
	return nil
}
