package user

import (
	"strings"
	"time"

	"github.com/simp-lee/photostore/internal/domain"
)

const dateLayout = "2006-01-02"

// RegisterRequest is the body of POST /users. The password is hashed by the
// create hook, never stored as given.
type RegisterRequest struct {
	Name         string `json:"name" form:"name" binding:"required,min=2,max=20"`
	Email        string `json:"email" form:"email" binding:"required,email,max=255"`
	Password     string `json:"password" form:"password" binding:"required,min=6,max=100"`
	MobileNumber string `json:"mobileNumber" form:"mobileNumber" binding:"max=30"`
	Gender       string `json:"gender" form:"gender" binding:"max=20"`
}

// Apply copies the request onto rec.
func (r *RegisterRequest) Apply(rec *domain.User) {
	rec.Name = strings.TrimSpace(r.Name)
	rec.Email = normalizeEmail(r.Email)
	rec.Password = r.Password
	rec.MobileNumber = strings.TrimSpace(r.MobileNumber)
	rec.Gender = r.Gender
	rec.Status = true
	rec.ProfileType = "PUBLIC"
}

// UpdateRequest is the body of the profile and admin user PATCH routes.
type UpdateRequest struct {
	Name         *string `json:"name" form:"name" binding:"omitempty,min=2,max=20"`
	MobileNumber *string `json:"mobileNumber" form:"mobileNumber" binding:"omitempty,max=30"`
	Gender       *string `json:"gender" form:"gender" binding:"omitempty,max=20"`
	DOB          *string `json:"dob" form:"dob" binding:"omitempty,datetime=2006-01-02"`
	ImageURL     *string `json:"imageUrl" form:"imageUrl" binding:"omitempty,image"`
}

// Apply copies the supplied fields onto rec. An empty dob clears it.
func (r *UpdateRequest) Apply(rec *domain.User) {
	if r.Name != nil {
		rec.Name = strings.TrimSpace(*r.Name)
	}
	if r.MobileNumber != nil {
		rec.MobileNumber = strings.TrimSpace(*r.MobileNumber)
	}
	if r.Gender != nil {
		rec.Gender = *r.Gender
	}
	if r.DOB != nil {
		rec.DOB = nil
		if dob, err := time.Parse(dateLayout, *r.DOB); err == nil {
			rec.DOB = &dob
		}
	}
	if r.ImageURL != nil {
		rec.ImageURL = *r.ImageURL
	}
}
