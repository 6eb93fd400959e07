package services

import (
	"errors"

	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/app/repositories"
	"gorm.io/gorm"
)

// CartService manages the per-user shopping basket. None of its
// operations check stock; availability is only enforced at checkout.
type CartService struct {
	carts   *repositories.CartRepository
	catalog *repositories.CatalogRepository
}

func NewCartService(carts *repositories.CartRepository, catalog *repositories.CatalogRepository) *CartService {
	return &CartService{carts: carts, catalog: catalog}
}

// View returns the user's cart with products and the running total at
// current prices. A first-time user gets an empty cart.
func (s *CartService) View(userID uint) (models.Cart, error) {
	return s.carts.ForUser(userID)
}

// AddItem puts one unit of a product into the cart. A product already
// in the cart gets its quantity bumped instead of a second line.
func (s *CartService) AddItem(userID, productID uint) (models.Cart, error) {
	if _, err := s.catalog.ProductByID(productID); err != nil {
		return models.Cart{}, err
	}

	cart, err := s.carts.ForUser(userID)
	if err != nil {
		return models.Cart{}, err
	}

	item, err := s.carts.ItemByProduct(cart.ID, productID)
	switch {
	case err == nil:
		item.Quantity++
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: 1}
	default:
		return models.Cart{}, err
	}

	if err := s.carts.SaveItem(&item); err != nil {
		return models.Cart{}, err
	}

	return s.carts.ForUser(userID)
}

// ChangeQuantity adjusts a cart line by a signed delta. A resulting
// quantity of zero or less removes the line. The item must belong to
// the caller's cart.
func (s *CartService) ChangeQuantity(userID, itemID uint, delta int) (models.Cart, error) {
	cart, err := s.carts.ForUser(userID)
	if err != nil {
		return models.Cart{}, err
	}

	item, found := findItem(cart, itemID)
	if !found {
		return models.Cart{}, gorm.ErrRecordNotFound
	}

	item.Product = nil // never write the product back through the association
	item.Quantity += delta
	if item.Quantity <= 0 {
		if err := s.carts.DeleteItem(cart.ID, item.ID); err != nil {
			return models.Cart{}, err
		}
	} else {
		if err := s.carts.SaveItem(&item); err != nil {
			return models.Cart{}, err
		}
	}

	return s.carts.ForUser(userID)
}

// RemoveItem deletes a cart line outright, ownership-checked.
func (s *CartService) RemoveItem(userID, itemID uint) (models.Cart, error) {
	cart, err := s.carts.ForUser(userID)
	if err != nil {
		return models.Cart{}, err
	}

	if _, found := findItem(cart, itemID); !found {
		return models.Cart{}, gorm.ErrRecordNotFound
	}

	if err := s.carts.DeleteItem(cart.ID, itemID); err != nil {
		return models.Cart{}, err
	}

	return s.carts.ForUser(userID)
}

func findItem(cart models.Cart, itemID uint) (models.CartItem, bool) {
	for _, item := range cart.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return models.CartItem{}, false
}
