package address

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
)

// Resource renders an address with the storefront's snake-cased line keys.
var Resource = crud.ResourceFunc[domain.UserAddress](func(a *domain.UserAddress) gin.H {
	return gin.H{
		"id":         a.ID,
		"address_1":  a.AddressLine1,
		"address_2":  a.AddressLine2,
		"city":       a.City,
		"state":      a.State,
		"country":    a.Country,
		"postalCode": a.PostalCode,
	}
})
