package blog

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// NewResource returns the blog transformer.
func NewResource(assetBase string) crud.Resource[domain.Blog] {
	return crud.ResourceFunc[domain.Blog](func(b *domain.Blog) gin.H {
		return gin.H{
			"id":             b.ID,
			"title":          b.Title,
			"slug":           b.Slug,
			"description":    b.Description,
			"imageUrl":       pkg.AssetURL(assetBase, b.ImageURL),
			"seoTitle":       b.SEOTitle,
			"seoDescription": b.SEODescription,
			"status":         b.Status,
			"createdAt":      b.CreatedAt,
			"updatedAt":      b.UpdatedAt,
		}
	})
}
