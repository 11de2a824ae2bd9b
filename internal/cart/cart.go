// Package cart models the storefront cart submitted at checkout.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/simp-lee/photostore/internal/pkg"
)

// ErrEmpty is returned when a cart without lines is checked out.
var ErrEmpty = errors.New("cart is empty")

// PriceError reports a line whose display price is not a number.
type PriceError struct {
	Title string
	Price string
}

func (e *PriceError) Error() string {
	return fmt.Sprintf("invalid price %q for %s", e.Price, e.Title)
}

// Item is one cart line as the storefront sends it. Price is the display
// string shown to the customer, e.g. "$10.00".
type Item struct {
	ID       pkg.ID `json:"id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Image    string `json:"image,omitempty"`
	Quantity int    `json:"quantity"`
}

// LineItem is a priced cart line ready for the payment provider.
type LineItem struct {
	ItemID     uint
	Slug       string
	Title      string
	Price      decimal.Decimal
	UnitAmount int64
	Quantity   int64
}

// Cart holds at most one line per product id, in insertion order.
type Cart struct {
	items []Item
}

// New builds a cart from submitted lines. Later duplicates of an id are
// dropped and a missing or non-positive quantity becomes 1.
func New(items ...Item) *Cart {
	c := &Cart{}
	for _, it := range items {
		if c.index(it.ID) >= 0 {
			continue
		}
		if it.Quantity <= 0 {
			it.Quantity = 1
		}
		c.items = append(c.items, it)
	}
	return c
}

func (c *Cart) index(id pkg.ID) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add appends item with quantity 1. Adding an id already in the cart is a no-op.
func (c *Cart) Add(item Item) {
	if c.index(item.ID) >= 0 {
		return
	}
	item.Quantity = 1
	c.items = append(c.items, item)
}

// Remove drops the line with the given id, if present.
func (c *Cart) Remove(id pkg.ID) {
	if i := c.index(id); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// Count returns the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []Item {
	return append([]Item(nil), c.items...)
}

// LineItems prices every line. The first unparseable price fails the whole cart.
func (c *Cart) LineItems() ([]LineItem, error) {
	if len(c.items) == 0 {
		return nil, ErrEmpty
	}
	lines := make([]LineItem, 0, len(c.items))
	for _, it := range c.items {
		price, err := pkg.ParsePrice(it.Price)
		if err != nil {
			return nil, &PriceError{Title: it.Title, Price: it.Price}
		}
		lines = append(lines, LineItem{
			ItemID:     it.ID.Uint(),
			Slug:       it.Slug,
			Title:      strings.TrimSpace(it.Title),
			Price:      price,
			UnitAmount: pkg.MinorUnits(price),
			Quantity:   int64(it.Quantity),
		})
	}
	return lines, nil
}

// Total returns the sum of price times quantity over all lines.
func (c *Cart) Total() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, it := range c.items {
		price, err := pkg.ParsePrice(it.Price)
		if err != nil {
			return decimal.Zero, &PriceError{Title: it.Title, Price: it.Price}
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total, nil
}

// Snapshot serializes the lines for the payment session metadata. Images are
// left out to stay within the provider's metadata size limit.
func (c *Cart) Snapshot() (string, error) {
	lines := make([]Item, len(c.items))
	for i, it := range c.items {
		it.Image = ""
		lines[i] = it
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FromSnapshot restores a cart serialized by Snapshot.
func FromSnapshot(raw string) (*Cart, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmpty
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	return New(items...), nil
}
