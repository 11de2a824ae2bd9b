package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the payment state of an order.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
	OrderStatusFailed  OrderStatus = "FAILED"
)

// Order is created from a confirmed payment. StripeSessionID is unique so a
// redelivered webhook cannot create a second order.
type Order struct {
	BaseModel
	SoftDelete
	UserID          uint            `gorm:"index;not null" json:"userId"`
	StripeSessionID string          `gorm:"size:255;uniqueIndex;not null" json:"stripeSessionId"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Status          OrderStatus     `gorm:"size:20;not null" json:"status"`
	PurchaseDate    time.Time       `json:"purchaseDate"`

	User  *User       `json:"user,omitempty"`
	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is a snapshot of a purchased cart line. It does not reference the
// live Event row, so later product edits leave order history untouched.
type OrderItem struct {
	BaseModel
	OrderID  uint            `gorm:"index;not null" json:"orderId"`
	ItemID   uint            `gorm:"not null" json:"itemId"`
	ItemSlug string          `gorm:"size:220" json:"itemslug"`
	Title    string          `gorm:"size:200;not null" json:"title"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity int             `gorm:"not null" json:"quantity"`
}
