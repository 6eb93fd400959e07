package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/app/repositories"
	"github.com/shashiranjanraj/novamarket/app/services"
	"github.com/shashiranjanraj/novamarket/pkg/bind"
	"github.com/shashiranjanraj/novamarket/pkg/response"
)

// maxImageUpload caps product image uploads at 8 MB.
const maxImageUpload = 8 << 20

// AdminController is the staff-only surface: dashboard, order pipeline,
// catalogue management, user listing. Routes mount it behind
// RequireAuth + RequireStaff.
type AdminController struct {
	catalog   *services.CatalogService
	orders    *services.OrderService
	reports   *services.ReportService
	users     *repositories.UserRepository
	allOrders *repositories.OrderRepository
}

func NewAdminController(
	catalog *services.CatalogService,
	orders *services.OrderService,
	reports *services.ReportService,
	users *repositories.UserRepository,
	allOrders *repositories.OrderRepository,
) *AdminController {
	return &AdminController{
		catalog:   catalog,
		orders:    orders,
		reports:   reports,
		users:     users,
		allOrders: allOrders,
	}
}

// Dashboard serves the aggregate sales figures.
// GET /api/admin/dashboard
func (c *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := c.reports.Dashboard()
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, d)
}

// Orders lists every order, paginated, optionally filtered by ?status=.
// GET /api/admin/orders
func (c *AdminController) Orders(w http.ResponseWriter, r *http.Request) {
	status := models.OrderStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		response.Error(w, http.StatusUnprocessableEntity, services.ErrInvalidStatus.Error())
		return
	}

	orders, pagination, err := c.allOrders.All(status, queryInt(r, "page", 1), queryInt(r, "limit", 20))
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Paginated(w, orders, pagination)
}

// Order shows any order with its owner and items.
// GET /api/admin/orders/{id}
func (c *AdminController) Order(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uintParam(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	order, err := c.allOrders.Find(orderID)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, order)
}

type setStatusInput struct {
	Status string `json:"status" validate:"required,in=Pending,Processing,Shipped,Delivered,Cancelled"`
}

// SetStatus moves an order through the pipeline. Crossing the Cancelled
// boundary restores or re-deducts stock atomically.
// PUT /api/admin/orders/{id}/status
func (c *AdminController) SetStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := uintParam(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	var in setStatusInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.SetStatus(orderID, models.OrderStatus(in.Status))
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, order)
}

// CreateProduct adds a catalogue item.
// POST /api/admin/products
func (c *AdminController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.CreateProduct(in)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Created(w, product)
}

// UpdateProduct edits a catalogue item.
// PUT /api/admin/products/{id}
func (c *AdminController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := uintParam(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.UpdateProduct(productID, in)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, product)
}

// DeleteProduct removes a catalogue item and its stored image.
// DELETE /api/admin/products/{id}
func (c *AdminController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := uintParam(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.catalog.DeleteProduct(productID); err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, map[string]uint{"deleted": productID})
}

// UploadImage attaches a product image from a multipart form field
// named "image".
// POST /api/admin/products/{id}/image
func (c *AdminController) UploadImage(w http.ResponseWriter, r *http.Request) {
	productID, ok := uintParam(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	product, err := c.catalog.AttachImage(productID, header.Filename, file)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, product)
}

// CreateCategory adds a category.
// POST /api/admin/categories
func (c *AdminController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.catalog.CreateCategory(in)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Created(w, category)
}

// Users lists accounts, paginated.
// GET /api/admin/users
func (c *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	users, pagination, err := c.users.All(queryInt(r, "page", 1), queryInt(r, "limit", 20))
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Paginated(w, users, pagination)
}
