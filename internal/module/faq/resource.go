package faq

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
)

// Resource renders an FAQ with its category when loaded.
var Resource = crud.ResourceFunc[domain.EventCategoryFaq](func(f *domain.EventCategoryFaq) gin.H {
	out := gin.H{
		"id":              f.ID,
		"eventCategoryId": f.EventCategoryID,
		"slug":            f.Slug,
		"question":        f.Question,
		"answer":          f.Answer,
		"status":          f.Status,
		"createdAt":       f.CreatedAt,
		"updatedAt":       f.UpdatedAt,
	}
	if f.EventCategory != nil {
		out["eventCategory"] = gin.H{
			"id":   f.EventCategory.ID,
			"name": f.EventCategory.Name,
			"slug": f.EventCategory.Slug,
		}
	}
	return out
})
