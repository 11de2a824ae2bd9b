package faq

import (
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// CreateRequest is the body of POST /admin/events/category/faq.
type CreateRequest struct {
	EventCategoryID pkg.ID    `json:"eventCategoryId" form:"eventCategoryId" binding:"required"`
	Question        string    `json:"question" form:"question" binding:"required"`
	Answer          string    `json:"answer" form:"answer" binding:"required"`
	Status          *pkg.Flag `json:"status" form:"status"`
}

// Apply copies the request onto rec.
func (r *CreateRequest) Apply(rec *domain.EventCategoryFaq) {
	rec.EventCategoryID = r.EventCategoryID.Uint()
	rec.Question = r.Question
	rec.Answer = r.Answer
	rec.Status = r.Status.Or(true)
}

// UpdateRequest is the body of PATCH /admin/events/category/faq/:slug.
type UpdateRequest struct {
	EventCategoryID *pkg.ID   `json:"eventCategoryId" form:"eventCategoryId" binding:"omitempty,gt=0"`
	Question        *string   `json:"question" form:"question" binding:"omitempty,min=1"`
	Answer          *string   `json:"answer" form:"answer" binding:"omitempty,min=1"`
	Status          *pkg.Flag `json:"status" form:"status"`
}

// Apply copies the supplied fields onto rec.
func (r *UpdateRequest) Apply(rec *domain.EventCategoryFaq) {
	if r.EventCategoryID != nil {
		rec.EventCategoryID = r.EventCategoryID.Uint()
	}
	if r.Question != nil {
		rec.Question = *r.Question
	}
	if r.Answer != nil {
		rec.Answer = *r.Answer
	}
	if r.Status != nil {
		rec.Status = r.Status.Bool()
	}
}
