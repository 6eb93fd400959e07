package repositories

import (
	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/pkg/orm"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for orders.
type OrderRepository struct {
	q *orm.Query
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{q: orm.New(db)}
}

// ForUser returns the user's orders, newest first, items preloaded.
func (r *OrderRepository) ForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.q.Model(&models.Order{}).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Get(&orders)
	return orders, err
}

// FindForUser returns one order owned by the user.
func (r *OrderRepository) FindForUser(userID, orderID uint) (models.Order, error) {
	var order models.Order
	err := r.q.Model(&models.Order{}).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ? AND id = ?", userID, orderID).
		First(&order)
	return order, err
}

// Find returns one order regardless of owner. Staff views use this.
func (r *OrderRepository) Find(orderID uint) (models.Order, error) {
	var order models.Order
	err := r.q.Model(&models.Order{}).
		Preload("User").
		Preload("Items").
		Preload("Items.Product").
		Where("id = ?", orderID).
		First(&order)
	return order, err
}

// All returns one page of orders across every user, newest first,
// optionally filtered by status.
func (r *OrderRepository) All(status models.OrderStatus, page, limit int) ([]models.Order, orm.Pagination, error) {
	q := r.q.Model(&models.Order{}).
		Preload("User").
		Preload("Items").
		Order("created_at desc")

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	pagination, err := q.GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// Recent returns the n most recent orders, newest first.
func (r *OrderRepository) Recent(n int) ([]models.Order, error) {
	var orders []models.Order
	err := r.q.Model(&models.Order{}).
		Preload("User").
		Order("created_at desc").
		Limit(n).
		Get(&orders)
	return orders, err
}
