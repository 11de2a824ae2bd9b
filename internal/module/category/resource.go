package category

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// NewResource returns the category transformer. Image paths are resolved against assetBase.
func NewResource(assetBase string) crud.Resource[domain.EventCategory] {
	return crud.ResourceFunc[domain.EventCategory](func(c *domain.EventCategory) gin.H {
		return gin.H{
			"id":          c.ID,
			"name":        c.Name,
			"slug":        c.Slug,
			"imageUrl":    pkg.AssetURL(assetBase, c.ImageURL),
			"description": c.Description,
			"status":      c.Status,
			"createdAt":   c.CreatedAt,
		}
	})
}
