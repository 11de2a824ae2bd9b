package gallery

import (
	"strings"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// CreateRequest is the body of POST /admin/gallery.
type CreateRequest struct {
	EventCategoryID pkg.ID    `json:"eventCategoryId" form:"eventCategoryId" binding:"required"`
	EventID         pkg.ID    `json:"eventId" form:"eventId" binding:"required"`
	Title           string    `json:"title" form:"title" binding:"required,max=200"`
	Description     string    `json:"description" form:"description"`
	ImageURL        string    `json:"imageUrl" form:"imageUrl" binding:"omitempty,image"`
	GalleryPath     string    `json:"galleryPath" form:"galleryPath" binding:"max=255"`
	Status          *pkg.Flag `json:"status" form:"status"`
}

// Apply copies the request onto rec.
func (r *CreateRequest) Apply(rec *domain.Gallery) {
	rec.EventCategoryID = r.EventCategoryID.Ptr()
	rec.EventID = r.EventID.Ptr()
	rec.Title = strings.TrimSpace(r.Title)
	rec.Description = r.Description
	rec.ImageURL = r.ImageURL
	rec.GalleryPath = r.GalleryPath
	rec.Status = r.Status.Or(true)
}

// UpdateRequest is the body of PATCH /admin/gallery/:slug.
type UpdateRequest struct {
	EventCategoryID *pkg.ID   `json:"eventCategoryId" form:"eventCategoryId" binding:"omitempty,gt=0"`
	EventID         *pkg.ID   `json:"eventId" form:"eventId" binding:"omitempty,gt=0"`
	Title           *string   `json:"title" form:"title" binding:"omitempty,min=1,max=200"`
	Description     *string   `json:"description" form:"description"`
	ImageURL        *string   `json:"imageUrl" form:"imageUrl" binding:"omitempty,image"`
	GalleryPath     *string   `json:"galleryPath" form:"galleryPath" binding:"omitempty,max=255"`
	Status          *pkg.Flag `json:"status" form:"status"`
}

// Apply copies the supplied fields onto rec.
func (r *UpdateRequest) Apply(rec *domain.Gallery) {
	if r.EventCategoryID != nil {
		rec.EventCategoryID = r.EventCategoryID.Ptr()
	}
	if r.EventID != nil {
		rec.EventID = r.EventID.Ptr()
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
	if r.GalleryPath != nil {
		rec.GalleryPath = *r.GalleryPath
	}
	if r.Status != nil {
		rec.Status = r.Status.Bool()
	}
}
