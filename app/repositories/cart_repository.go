package repositories

import (
	"errors"

	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/pkg/orm"
	"gorm.io/gorm"
)

// CartRepository handles database operations for carts and cart items.
type CartRepository struct {
	q *orm.Query
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{q: orm.New(db)}
}

// ForUser returns the user's cart, creating an empty one on first use.
// Items come back preloaded with their products, oldest line first.
func (r *CartRepository) ForUser(userID uint) (models.Cart, error) {
	var cart models.Cart
	err := r.q.Model(&models.Cart{}).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id asc") }).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := r.q.Create(&cart); err != nil {
			return cart, err
		}
		return cart, nil
	}
	return cart, err
}

// ItemByProduct returns the cart line for a product, if one exists.
func (r *CartRepository) ItemByProduct(cartID, productID uint) (models.CartItem, error) {
	var item models.CartItem
	err := r.q.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item)
	return item, err
}

// SaveItem inserts or updates a cart line.
func (r *CartRepository) SaveItem(item *models.CartItem) error {
	return r.q.Save(item)
}

// DeleteItem removes one line from a cart. The delete is unscoped: a
// tombstoned row would still occupy the (cart_id, product_id) unique
// index and block the product from ever being added again.
func (r *CartRepository) DeleteItem(cartID, itemID uint) error {
	return r.q.Gorm().Unscoped().
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}, itemID).Error
}

// Clear removes every line from a cart, unscoped for the same reason as
// DeleteItem.
func (r *CartRepository) Clear(cartID uint) error {
	return r.q.Gorm().Unscoped().
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
}
