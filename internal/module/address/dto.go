package address

import (
	"strings"

	"github.com/simp-lee/photostore/internal/domain"
)

// Request is the body of POST and PATCH /admin/address. Both replace the
// whole address.
type Request struct {
	AddressLine1 string `json:"addressLine1" form:"addressLine1" binding:"required,max=255"`
	AddressLine2 string `json:"addressLine2" form:"addressLine2" binding:"max=255"`
	City         string `json:"city" form:"city" binding:"required,max=100"`
	State        string `json:"state" form:"state" binding:"required,max=100"`
	Country      string `json:"country" form:"country" binding:"required,max=100"`
	PostalCode   string `json:"postalCode" form:"postalCode" binding:"required,max=20"`
}

// Apply copies the request onto rec.
func (r *Request) Apply(rec *domain.UserAddress) {
	rec.AddressLine1 = strings.TrimSpace(r.AddressLine1)
	rec.AddressLine2 = strings.TrimSpace(r.AddressLine2)
	rec.City = strings.TrimSpace(r.City)
	rec.State = strings.TrimSpace(r.State)
	rec.Country = strings.TrimSpace(r.Country)
	rec.PostalCode = strings.TrimSpace(r.PostalCode)
}
