package event

import (
	"strings"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// CreateRequest is the body of POST /admin/events.
type CreateRequest struct {
	Title       string    `json:"title" form:"title" binding:"required,max=200"`
	CategoryID  pkg.ID    `json:"categoryId" form:"categoryId" binding:"required"`
	Price       string    `json:"price" form:"price" binding:"required,max=32"`
	ImageURL    string    `json:"imageUrl" form:"imageUrl" binding:"omitempty,image"`
	Description string    `json:"description" form:"description"`
	IsManual    pkg.Flag  `json:"is_manual" form:"is_manual"`
	IsFace      pkg.Flag  `json:"is_face" form:"is_face"`
	Status      *pkg.Flag `json:"status" form:"status"`
}

// Apply copies the request onto rec.
func (r *CreateRequest) Apply(rec *domain.Event) {
	rec.Title = strings.TrimSpace(r.Title)
	rec.CategoryID = r.CategoryID.Uint()
	rec.Price = strings.TrimSpace(r.Price)
	rec.ImageURL = r.ImageURL
	rec.Description = r.Description
	rec.IsManual = r.IsManual.Bool()
	rec.IsFace = r.IsFace.Bool()
	rec.Status = r.Status.Or(true)
}

// UpdateRequest is the body of PATCH /admin/events/:slug.
type UpdateRequest struct {
	Title       *string   `json:"title" form:"title" binding:"omitempty,min=1,max=200"`
	CategoryID  *pkg.ID   `json:"categoryId" form:"categoryId" binding:"omitempty,gt=0"`
	Price       *string   `json:"price" form:"price" binding:"omitempty,min=1,max=32"`
	ImageURL    *string   `json:"imageUrl" form:"imageUrl" binding:"omitempty,image"`
	Description *string   `json:"description" form:"description"`
	IsManual    *pkg.Flag `json:"is_manual" form:"is_manual"`
	IsFace      *pkg.Flag `json:"is_face" form:"is_face"`
	Status      *pkg.Flag `json:"status" form:"status"`
}

// Apply copies the supplied fields onto rec.
func (r *UpdateRequest) Apply(rec *domain.Event) {
	if r.Title != nil {
		rec.Title = strings.TrimSpace(*r.Title)
	}
	if r.CategoryID != nil {
		rec.CategoryID = r.CategoryID.Uint()
	}
	if r.Price != nil {
		rec.Price = strings.TrimSpace(*r.Price)
	}
	if r.ImageURL != nil {
		rec.ImageURL = *r.ImageURL
	}
	if r.Description != nil {
		rec.Description = *r.Description
	}
	if r.IsManual != nil {
		rec.IsManual = r.IsManual.Bool()
	}
	if r.IsFace != nil {
		rec.IsFace = r.IsFace.Bool()
	}
	if r.Status != nil {
		rec.Status = r.Status.Bool()
	}
}
