package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/novamarket/app/services"
	"github.com/shashiranjanraj/novamarket/pkg/response"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// History lists the caller's orders, newest first.
// GET /api/orders
func (c *OrderController) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	orders, err := c.orders.History(userID)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, orders)
}

// Detail shows one of the caller's orders with its line items.
// GET /api/orders/{id}
func (c *OrderController) Detail(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	orderID, ok := uintParam(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	order, err := c.orders.Detail(userID, orderID)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, order)
}
