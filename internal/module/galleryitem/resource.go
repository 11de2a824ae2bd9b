package galleryitem

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// NewResource returns the gallery item transformer.
func NewResource(assetBase string) crud.Resource[domain.GalleryItem] {
	return crud.ResourceFunc[domain.GalleryItem](func(item *domain.GalleryItem) gin.H {
		var gallery any
		if item.Gallery != nil {
			gallery = gin.H{"id": item.Gallery.ID, "title": item.Gallery.Title, "slug": item.Gallery.Slug}
		}
		return gin.H{
			"id":          item.ID,
			"slug":        item.Slug,
			"title":       item.Title,
			"description": item.Description,
			"sortOrder":   item.SortOrder,
			"imageUrl":    pkg.AssetURL(assetBase, item.ImageURL),
			"gallery":     gallery,
		}
	})
}
