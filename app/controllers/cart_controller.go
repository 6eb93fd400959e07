package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/app/services"
	"github.com/shashiranjanraj/novamarket/pkg/bind"
	"github.com/shashiranjanraj/novamarket/pkg/response"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// View shows the caller's cart with its running total.
// GET /api/cart
func (c *CartController) View(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	cart, err := c.carts.View(userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, cartPayload(cart))
}

type addItemInput struct {
	ProductID uint `json:"product_id" validate:"required"`
}

// AddItem puts one unit of a product into the cart.
// POST /api/cart/items
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in addItemInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.carts.AddItem(userID, in.ProductID)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, cartPayload(cart))
}

type changeQuantityInput struct {
	Delta int `json:"delta" validate:"required"`
}

// ChangeQuantity adjusts a cart line by a signed delta; a result of
// zero or less removes the line.
// PUT /api/cart/items/{id}
func (c *CartController) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	itemID, ok := uintParam(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	var in changeQuantityInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.carts.ChangeQuantity(userID, itemID, in.Delta)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, cartPayload(cart))
}

// RemoveItem deletes a cart line.
// DELETE /api/cart/items/{id}
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	itemID, ok := uintParam(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	cart, err := c.carts.RemoveItem(userID, itemID)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, cartPayload(cart))
}

// cartPayload serialises a cart with its computed totals.
func cartPayload(cart models.Cart) map[string]interface{} {
	return map[string]interface{}{
		"cart":  cart,
		"total": cart.Total(),
		"count": cart.Count(),
	}
}
