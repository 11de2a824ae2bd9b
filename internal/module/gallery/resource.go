package gallery

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// NewResource returns the gallery transformer.
func NewResource(assetBase string) crud.Resource[domain.Gallery] {
	return crud.ResourceFunc[domain.Gallery](func(g *domain.Gallery) gin.H {
		var category, event any
		if g.EventCategory != nil {
			category = gin.H{"id": g.EventCategory.ID, "name": g.EventCategory.Name, "slug": g.EventCategory.Slug}
		}
		if g.Event != nil {
			event = gin.H{"id": g.Event.ID, "title": g.Event.Title, "slug": g.Event.Slug}
		}

		items := make([]gin.H, 0, len(g.Items))
		for _, item := range g.Items {
			items = append(items, gin.H{
				"id":          item.ID,
				"title":       item.Title,
				"description": item.Description,
				"imageUrl":    pkg.AssetURL(assetBase, item.ImageURL),
				"sortOrder":   item.SortOrder,
			})
		}

		return gin.H{
			"id":            g.ID,
			"title":         g.Title,
			"slug":          g.Slug,
			"description":   g.Description,
			"imageUrl":      pkg.AssetURL(assetBase, g.ImageURL),
			"galleryPath":   g.GalleryPath,
			"status":        g.Status,
			"createdAt":     g.CreatedAt,
			"updatedAt":     g.UpdatedAt,
			"eventCategory": category,
			"event":         event,
			"items":         items,
		}
	})
}
