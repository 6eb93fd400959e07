package models

import "gorm.io/gorm"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Active reports whether the order still holds its stock. Every status
// except Cancelled counts as active.
func (s OrderStatus) Active() bool { return s != StatusCancelled }

// Statuses lists all order statuses in pipeline order.
func Statuses() []OrderStatus {
	return []OrderStatus{
		StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled,
	}
}

// Order is a completed checkout. TotalAmount and the item prices are
// snapshots taken at checkout time; later catalogue edits never touch
// them.
type Order struct {
	gorm.Model
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	User        *User       `json:"user,omitempty"`
	TotalAmount int64       `gorm:"not null" json:"total_amount"`
	Address     string      `gorm:"type:text;not null" json:"address"`
	Status      OrderStatus `gorm:"size:50;not null;default:Pending;index" json:"status"`
	Items       []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is one purchased line. Price is the per-unit price captured
// at checkout.
type OrderItem struct {
	gorm.Model
	OrderID   uint     `gorm:"not null;index" json:"order_id"`
	ProductID uint     `gorm:"not null;index" json:"product_id"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Price     int64    `gorm:"not null" json:"price"`
}

// Subtotal is the line total at the captured price.
func (i *OrderItem) Subtotal() int64 { return i.Price * int64(i.Quantity) }
