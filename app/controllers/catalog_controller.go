package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/novamarket/app/services"
	"github.com/shashiranjanraj/novamarket/pkg/response"
)

type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// Categories lists every category.
// GET /api/categories
func (c *CatalogController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.catalog.Categories()
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, categories)
}

// Products lists the catalogue, paginated. Supports ?category=<slug>,
// ?q=<search>, ?page= and ?limit=.
// GET /api/products
func (c *CatalogController) Products(w http.ResponseWriter, r *http.Request) {
	products, pagination, err := c.catalog.Products(
		r.URL.Query().Get("category"),
		r.URL.Query().Get("q"),
		queryInt(r, "page", 1),
		queryInt(r, "limit", 20),
	)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Paginated(w, products, pagination)
}

// Product shows one product by slug.
// GET /api/products/{slug}
func (c *CatalogController) Product(w http.ResponseWriter, r *http.Request) {
	product, err := c.catalog.ProductBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Success(w, product)
}
