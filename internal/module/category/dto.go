package category

import (
	"strings"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// CreateRequest is the body of POST /admin/events/category.
type CreateRequest struct {
	Name        string    `json:"name" form:"name" binding:"required,max=150"`
	Description string    `json:"description" form:"description"`
	ImageURL    string    `json:"imageUrl" form:"imageUrl" binding:"omitempty,image"`
	Status      *pkg.Flag `json:"status" form:"status"`
}

// Apply copies the request onto rec.
func (r *CreateRequest) Apply(rec *domain.EventCategory) {
	rec.Name = strings.TrimSpace(r.Name)
	rec.Description = r.Description
	rec.ImageURL = r.ImageURL
	rec.Status = r.Status.Or(true)
}

// UpdateRequest is the body of PATCH /admin/events/category/:slug.
type UpdateRequest struct {
	Name        *string   `json:"name" form:"name" binding:"omitempty,min=1,max=150"`
	Description *string   `json:"description" form:"description"`
	ImageURL    *string   `json:"imageUrl" form:"imageUrl" binding:"omitempty,image"`
	Status      *pkg.Flag `json:"status" form:"status"`
}

// Apply copies the supplied fields onto rec.
func (r *UpdateRequest) Apply(rec *domain.EventCategory) {
	if r.Name != nil {
		rec.Name = *r.Name
	}
	if r.Description != nil {
		rec.Description = *r.Description
	}
	if r.ImageURL != nil {
		rec.ImageURL = *r.ImageURL
	}
	if r.Status != nil {
		rec.Status = r.Status.Bool()
	}
}
