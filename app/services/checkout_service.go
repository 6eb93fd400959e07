package services

import (
	"errors"

	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/app/repositories"
	"github.com/shashiranjanraj/novamarket/pkg/cache"
	"github.com/shashiranjanraj/novamarket/pkg/logger"
	"github.com/shashiranjanraj/novamarket/pkg/metrics"
	"github.com/shashiranjanraj/novamarket/pkg/orm"
	"gorm.io/gorm"
)

// CheckoutService turns a cart into an order inside one database
// transaction. Stock is checked and decremented under a row lock, so a
// shortfall anywhere rolls the whole order back.
type CheckoutService struct {
	db    *gorm.DB
	carts *repositories.CartRepository
}

func NewCheckoutService(db *gorm.DB, carts *repositories.CartRepository) *CheckoutService {
	return &CheckoutService{db: db, carts: carts}
}

// PlaceOrder creates an order from the user's cart.
//
// The total and the per-item price snapshots are both taken from the
// prices read before the transaction, so the order total always equals
// the sum of its item snapshots even if a price changes mid-checkout.
// Items are processed in cart insertion order; the first product that
// cannot cover its quantity aborts everything with an
// InsufficientStockError.
func (s *CheckoutService) PlaceOrder(userID uint, address string) (models.Order, error) {
	cart, err := s.carts.ForUser(userID)
	if err != nil {
		return models.Order{}, err
	}
	if len(cart.Items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	total := cart.Total()

	order := models.Order{
		UserID:      userID,
		TotalAmount: total,
		Address:     address,
		Status:      models.StatusPending,
	}

	err = orm.New(s.db).Transaction(func(tx *gorm.DB) error {
		q := orm.New(tx)

		if err := q.Create(&order); err != nil {
			return err
		}

		for _, item := range cart.Items {
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

			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
			}
			if err := q.Create(&orderItem); err != nil {
				return err
			}
			order.Items = append(order.Items, orderItem)

			product.Stock -= item.Quantity
			if err := q.Save(&product); err != nil {
				return err
			}
		}

		// Unscoped: a soft-deleted line would keep its slot in the
		// (cart_id, product_id) unique index and block repurchase.
		return q.Gorm().Unscoped().
			Where("cart_id = ?", cart.ID).
			Delete(&models.CartItem{}).Error
	})

	if err != nil {
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			metrics.CheckoutStockFailures.Inc()
			logger.Info("checkout: rolled back on stock",
				"user_id", userID, "product_id", stockErr.ProductID,
				"requested", stockErr.Requested, "available", stockErr.Available)
		}
		return models.Order{}, err
	}

	metrics.OrdersPlaced.Inc()
	cache.Forget(dashboardCacheKey)
	logger.Info("checkout: order placed",
		"user_id", userID, "order_id", order.ID,
		"total", order.TotalAmount, "items", len(order.Items))

	return order, nil
}
