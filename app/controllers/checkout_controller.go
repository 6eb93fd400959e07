package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/novamarket/app/services"
	"github.com/shashiranjanraj/novamarket/pkg/bind"
	"github.com/shashiranjanraj/novamarket/pkg/response"
)

type CheckoutController struct {
	checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

type checkoutInput struct {
	Address string `json:"address" validate:"required"`
}

// PlaceOrder turns the caller's cart into an order. A stock shortfall
// anywhere returns 409 and leaves cart and inventory untouched.
// POST /api/checkout
func (c *CheckoutController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in checkoutInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.checkout.PlaceOrder(userID, in.Address)
	if err != nil {
		serviceError(w, err)
		return
	}

	response.Created(w, order)
}
