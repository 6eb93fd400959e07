package models

import "gorm.io/gorm"

// Cart is the one open basket each user has. The unique index on UserID
// enforces one cart per user; items merge into it by product.
type Cart struct {
	gorm.Model
	UserID uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Items  []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// CartItem is one product line in a cart. A product appears at most
// once per cart; adding it again adjusts Quantity instead.
type CartItem struct {
	gorm.Model
	CartID    uint     `gorm:"not null;index;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uint     `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `gorm:"not null;default:1" json:"quantity"`
}

// Subtotal is the line total at the product's current price.
func (i *CartItem) Subtotal() int64 {
	if i.Product == nil {
		return 0
	}
	return i.Product.Price * int64(i.Quantity)
}

// Total sums the cart's line subtotals at current prices.
func (c *Cart) Total() int64 {
	var total int64
	for i := range c.Items {
		total += c.Items[i].Subtotal()
	}
	return total
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	var n int
	for i := range c.Items {
		n += c.Items[i].Quantity
	}
	return n
}
