package order

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
)

const purchaseDateLayout = "2006-01-02"

// Resource renders an order with its buyer and line items. Amounts are
// fixed-point strings with two decimals.
var Resource = crud.ResourceFunc[domain.Order](func(o *domain.Order) gin.H {
	var buyer any
	if o.User != nil {
		buyer = gin.H{"id": o.User.ID, "name": o.User.Name, "email": o.User.Email}
	}
	items := make([]gin.H, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, gin.H{
			"id":        it.ID,
			"slug":      it.ItemSlug,
			"productId": it.ItemID,
			"title":     it.Title,
			"quantity":  it.Quantity,
			"price":     it.Price.StringFixed(2),
		})
	}
	return gin.H{
		"id":              o.ID,
		"userId":          o.UserID,
		"purchase_date":   o.PurchaseDate.Format(purchaseDateLayout),
		"total":           o.Total.StringFixed(2),
		"status":          o.Status,
		"stripeSessionId": o.StripeSessionID,
		"user":            buyer,
		"items":           items,
		"createdAt":       o.CreatedAt,
	}
})
