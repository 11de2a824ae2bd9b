package galleryitem

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// Summaries returns every live, active gallery with the number of live,
// active items it holds. Galleries without items are included with zero.
func Summaries(ctx context.Context, db *gorm.DB) ([]domain.GallerySummary, error) {
	summaries := []domain.GallerySummary{}
	err := db.WithContext(ctx).
		Table("galleries").
		Select("galleries.id AS id, galleries.title AS title, COUNT(gallery_items.id) AS total_images").
		Joins("LEFT JOIN gallery_items ON gallery_items.gallery_id = galleries.id"+
			" AND gallery_items.deleted_at IS NULL AND gallery_items.status = ?", true).
		Where("galleries.deleted_at IS NULL AND galleries.status = ?", true).
		Group("galleries.id, galleries.title").
		Order("galleries.id DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, crud.MapError(err)
	}
	return summaries, nil
}

func (m *Module) listSummaries(c *gin.Context) {
	summaries, err := Summaries(c.Request.Context(), m.db)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, crud.MsgList, summaries)
}
