package services

import (
	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/app/repositories"
	"github.com/shashiranjanraj/novamarket/pkg/cache"
	"github.com/shashiranjanraj/novamarket/pkg/logger"
	"github.com/shashiranjanraj/novamarket/pkg/metrics"
	"github.com/shashiranjanraj/novamarket/pkg/orm"
	"gorm.io/gorm"
)

// OrderService serves order history and applies staff status changes
// with their stock side effects.
type OrderService struct {
	db     *gorm.DB
	orders *repositories.OrderRepository
}

func NewOrderService(db *gorm.DB, orders *repositories.OrderRepository) *OrderService {
	return &OrderService{db: db, orders: orders}
}

// History returns the user's orders, newest first.
func (s *OrderService) History(userID uint) ([]models.Order, error) {
	return s.orders.ForUser(userID)
}

// Detail returns one order owned by the user.
func (s *OrderService) Detail(userID, orderID uint) (models.Order, error) {
	return s.orders.FindForUser(userID, orderID)
}

// SetStatus moves an order to a new status. Crossing the Cancelled
// boundary carries a stock side effect, applied in the same transaction
// as the status write:
//
//   - active -> Cancelled: every item's quantity is returned to stock.
//   - Cancelled -> active: every item's quantity is deducted again; if
//     any product cannot cover it the whole change aborts and the order
//     stays Cancelled with stock untouched.
//   - any other pair (including same status): plain status update.
func (s *OrderService) SetStatus(orderID uint, newStatus models.OrderStatus) (models.Order, error) {
	if !newStatus.Valid() {
		return models.Order{}, ErrInvalidStatus
	}

	var (
		order     models.Order
		oldStatus models.OrderStatus
	)

	err := orm.New(s.db).Transaction(func(tx *gorm.DB) error {
		q := orm.New(tx)

		if err := q.Model(&models.Order{}).
			Preload("Items").
			Where("id = ?", orderID).
			First(&order); err != nil {
			return err
		}

		oldStatus = order.Status
		if oldStatus != newStatus {
			switch {
			case oldStatus.Active() && !newStatus.Active():
				if err := restoreStock(q, order.Items); err != nil {
					return err
				}
			case !oldStatus.Active() && newStatus.Active():
				if err := deductStock(q, order.Items); err != nil {
					return err
				}
			}
		}

		order.Status = newStatus
		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("status", newStatus).Error
	})

	if err != nil {
		return models.Order{}, err
	}

	metrics.StatusTransitions.WithLabelValues(string(oldStatus), string(newStatus)).Inc()
	cache.Forget(dashboardCacheKey)
	logger.Info("orders: status changed", "order_id", order.ID, "status", newStatus)

	return order, nil
}

// restoreStock returns each item's quantity to its product.
func restoreStock(q *orm.Query, items []models.OrderItem) error {
	for _, item := range items {
		var product models.Product
		if err := q.Model(&models.Product{}).
			LockForUpdate().
			Where("id = ?", item.ProductID).
			First(&product); err != nil {
			return err
		}
		product.Stock += item.Quantity
		if err := q.Save(&product); err != nil {
			return err
		}
	}
	return nil
}

// deductStock re-takes each item's quantity from its product, failing
// on the first shortfall.
func deductStock(q *orm.Query, items []models.OrderItem) error {
	for _, item := range items {
		var product models.Product
		if err := q.Model(&models.Product{}).
			LockForUpdate().
			Where("id = ?", item.ProductID).
			First(&product); err != nil {
			return err
		}
		if product.Stock < item.Quantity {
			return &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   item.Quantity,
				Available:   product.Stock,
			}
		}
		product.Stock -= item.Quantity
		if err := q.Save(&product); err != nil {
			return err
		}
	}
	return nil
}
