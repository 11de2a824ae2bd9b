package checkout

import (
	"github.com/simp-lee/photostore/internal/cart"
	"github.com/simp-lee/photostore/internal/pkg"
)

// CheckoutRequest is the body of POST /users/checkout. UserID is optional and,
// when present, must name the signed-in user.
type CheckoutRequest struct {
	Cart   []cart.Item `json:"cart"`
	UserID pkg.ID      `json:"userId"`
}
