package user

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// NewResource returns the user transformer. Credentials are never rendered.
func NewResource(assetBase string) crud.Resource[domain.User] {
	return crud.ResourceFunc[domain.User](func(u *domain.User) gin.H {
		var role any
		if u.Role != nil {
			role = gin.H{
				"id":    u.Role.ID,
				"title": u.Role.Title,
				"slug":  u.Role.Slug,
			}
		}
		var dob any
		if u.DOB != nil {
			dob = u.DOB.Format(dateLayout)
		}
		return gin.H{
			"id":           u.ID,
			"slug":         u.Slug,
			"name":         u.Name,
			"email":        u.Email,
			"mobileNumber": u.MobileNumber,
			"dob":          dob,
			"gender":       u.Gender,
			"status":       u.Status,
			"userType":     u.UserType,
			"imageUrl":     pkg.AssetURL(assetBase, u.ImageURL),
			"role":         role,
			"createdAt":    u.CreatedAt,
			"updatedAt":    u.UpdatedAt,
		}
	})
}
