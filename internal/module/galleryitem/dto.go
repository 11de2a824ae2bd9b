package galleryitem

import (
	"strings"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// CreateRequest is the body of POST /admin/gallery-items.
type CreateRequest struct {
	GalleryID   pkg.ID    `json:"galleryId" form:"galleryId" binding:"required"`
	Title       string    `json:"title" form:"title" binding:"max=200"`
	Description string    `json:"description" form:"description"`
	ImageURL    string    `json:"imageUrl" form:"imageUrl" binding:"required,image"`
	SortOrder   int       `json:"sortOrder" form:"sortOrder" binding:"gte=0"`
	Status      *pkg.Flag `json:"status" form:"status"`
}

// Apply copies the request onto rec.
func (r *CreateRequest) Apply(rec *domain.GalleryItem) {
	rec.GalleryID = r.GalleryID.Uint()
	rec.Title = strings.TrimSpace(r.Title)
	rec.Description = r.Description
	rec.ImageURL = r.ImageURL
	rec.SortOrder = r.SortOrder
	rec.Status = r.Status.Or(true)
}

// UpdateRequest is the body of PATCH /admin/gallery-items/:id.
type UpdateRequest struct {
	GalleryID   *pkg.ID   `json:"galleryId" form:"galleryId" binding:"omitempty,gt=0"`
	Title       *string   `json:"title" form:"title" binding:"omitempty,max=200"`
	Description *string   `json:"description" form:"description"`
	ImageURL    *string   `json:"imageUrl" form:"imageUrl" binding:"omitempty,image"`
	SortOrder   *int      `json:"sortOrder" form:"sortOrder" binding:"omitempty,gte=0"`
	Status      *pkg.Flag `json:"status" form:"status"`
}

// Apply copies the supplied fields onto rec.
func (r *UpdateRequest) Apply(rec *domain.GalleryItem) {
	if r.GalleryID != nil {
		rec.GalleryID = r.GalleryID.Uint()
	}
	if r.Title != nil {
		rec.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		rec.Description = *r.Description
	}
	if r.ImageURL != nil {
		rec.ImageURL = *r.ImageURL
	}
	if r.SortOrder != nil {
		rec.SortOrder = *r.SortOrder
	}
	if r.Status != nil {
		rec.Status = r.Status.Bool()
	}
}
