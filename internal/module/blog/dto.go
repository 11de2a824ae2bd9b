package blog

import (
	"strings"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// CreateRequest is the body of POST /admin/blog.
type CreateRequest struct {
	Title          string    `json:"title" form:"title" binding:"required,max=200"`
	Description    string    `json:"description" form:"description"`
	ImageURL       string    `json:"imageUrl" form:"imageUrl" binding:"omitempty,image"`
	SEOTitle       string    `json:"seoTitle" form:"seoTitle" binding:"max=255"`
	SEODescription string    `json:"seoDescription" form:"seoDescription" binding:"max=500"`
	Status         *pkg.Flag `json:"status" form:"status"`
}

// Apply copies the request onto rec.
func (r *CreateRequest) Apply(rec *domain.Blog) {
	rec.Title = strings.TrimSpace(r.Title)
	rec.Description = r.Description
	rec.ImageURL = r.ImageURL
	rec.SEOTitle = r.SEOTitle
	rec.SEODescription = r.SEODescription
	rec.Status = r.Status.Or(true)
}

// UpdateRequest is the body of PATCH /admin/blog/:slug.
type UpdateRequest struct {
	Title          *string   `json:"title" form:"title" binding:"omitempty,min=1,max=200"`
	Description    *string   `json:"description" form:"description"`
	ImageURL       *string   `json:"imageUrl" form:"imageUrl" binding:"omitempty,image"`
	SEOTitle       *string   `json:"seoTitle" form:"seoTitle" binding:"omitempty,max=255"`
	SEODescription *string   `json:"seoDescription" form:"seoDescription" binding:"omitempty,max=500"`
	Status         *pkg.Flag `json:"status" form:"status"`
}

// Apply copies the supplied fields onto rec.
func (r *UpdateRequest) Apply(rec *domain.Blog) {
	if r.Title != nil {
		rec.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		rec.Description = *r.Description
	}
	if r.ImageURL != nil {
		rec.ImageURL = *r.ImageURL
	}
	if r.SEOTitle != nil {
		rec.SEOTitle = *r.SEOTitle
	}
	if r.SEODescription != nil {
		rec.SEODescription = *r.SEODescription
	}
	if r.Status != nil {
		rec.Status = r.Status.Bool()
	}
}
