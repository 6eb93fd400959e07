// Package routes wires controllers onto the router.
package routes

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/novamarket/app/controllers"
	"github.com/shashiranjanraj/novamarket/app/repositories"
	"github.com/shashiranjanraj/novamarket/app/services"
	"github.com/shashiranjanraj/novamarket/pkg/metrics"
	"github.com/shashiranjanraj/novamarket/pkg/middleware"
	"github.com/shashiranjanraj/novamarket/pkg/router"
)

// RegisterAPI builds the full route table against the given database
// handle.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	userRepo := repositories.NewUserRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	authService := services.NewAuthService(userRepo)
	catalogService := services.NewCatalogService(catalogRepo)
	cartService := services.NewCartService(cartRepo, catalogRepo)
	checkoutService := services.NewCheckoutService(db, cartRepo)
	orderService := services.NewOrderService(db, orderRepo)
	reportService := services.NewReportService(db, catalogRepo, orderRepo)

	authController := controllers.NewAuthController(authService)
	catalogController := controllers.NewCatalogController(catalogService)
	cartController := controllers.NewCartController(cartService)
	checkoutController := controllers.NewCheckoutController(checkoutService)
	orderController := controllers.NewOrderController(orderService)
	adminController := controllers.NewAdminController(
		catalogService, orderService, reportService, userRepo, orderRepo)

	api := r.Group("/api")

	// Public surface.
	api.Post("/auth/register", "auth.register", authController.Register)
	api.Post("/auth/login", "auth.login", authController.Login)
	api.Get("/categories", "catalog.categories", catalogController.Categories)
	api.Get("/products", "catalog.products", catalogController.Products)
	api.Get("/products/{slug}", "catalog.product", catalogController.Product)

	// Authenticated shoppers.
	shop := api.Group("", middleware.RequireAuth)
	shop.Get("/cart", "cart.view", cartController.View)
	shop.Post("/cart/items", "cart.add", cartController.AddItem)
	shop.Put("/cart/items/{id}", "cart.quantity", cartController.ChangeQuantity)
	shop.Delete("/cart/items/{id}", "cart.remove", cartController.RemoveItem)
	shop.Post("/checkout", "checkout.place", checkoutController.PlaceOrder)
	shop.Get("/orders", "orders.history", orderController.History)
	shop.Get("/orders/{id}", "orders.detail", orderController.Detail)

	// Staff surface.
	admin := api.Group("/admin", middleware.RequireAuth, middleware.RequireStaff)
	admin.Get("/dashboard", "admin.dashboard", adminController.Dashboard)
	admin.Get("/orders", "admin.orders", adminController.Orders)
	admin.Get("/orders/{id}", "admin.order", adminController.Order)
	admin.Put("/orders/{id}/status", "admin.order.status", adminController.SetStatus)
	admin.Post("/products", "admin.products.create", adminController.CreateProduct)
	admin.Put("/products/{id}", "admin.products.update", adminController.UpdateProduct)
	admin.Delete("/products/{id}", "admin.products.delete", adminController.DeleteProduct)
	admin.Post("/products/{id}/image", "admin.products.image", adminController.UploadImage)
	admin.Post("/categories", "admin.categories.create", adminController.CreateCategory)
	admin.Get("/users", "admin.users", adminController.Users)

	// Operational endpoints.
	r.HandleFunc("/metrics", metrics.Handler())
	r.Static("/storage", "storage")
}
