package event

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// NewResource returns the event transformer. The title is exposed as "name"
// and the category is flattened to {id, title, slug}.
func NewResource(assetBase string) crud.Resource[domain.Event] {
	return crud.ResourceFunc[domain.Event](func(e *domain.Event) gin.H {
		var category any
		if e.Category != nil {
			category = gin.H{
				"id":    e.Category.ID,
				"title": e.Category.Name,
				"slug":  e.Category.Slug,
			}
		}
		return gin.H{
			"id":          e.ID,
			"name":        e.Title,
			"slug":        e.Slug,
			"categoryId":  e.CategoryID,
			"price":       e.Price,
			"imageUrl":    pkg.AssetURL(assetBase, e.ImageURL),
			"description": e.Description,
			"is_manual":   e.IsManual,
			"is_face":     e.IsFace,
			"category":    category,
			"status":      e.Status,
			"createdAt":   e.CreatedAt,
		}
	})
}
