package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/app/repositories"
)

// testDB opens a fresh in-memory database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB) models.Category {
	t.Helper()
	category := models.Category{Name: "Electronics", Slug: "electronics"}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uint, name string, price int64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		CategoryID: categoryID,
		Name:       name,
		Slug:       name, // good enough for tests
		Price:      price,
		Stock:      stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, Password: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// fixture bundles the repositories and services most tests need.
type fixture struct {
	db       *gorm.DB
	carts    *CartService
	checkout *CheckoutService
	orders   *OrderService
	reports  *ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testDB(t)

	cartRepo := repositories.NewCartRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	return &fixture{
		db:       db,
		carts:    NewCartService(cartRepo, catalogRepo),
		checkout: NewCheckoutService(db, cartRepo),
		orders:   NewOrderService(db, orderRepo),
		reports:  NewReportService(db, catalogRepo, orderRepo),
	}
}

func (f *fixture) reloadProduct(t *testing.T, id uint) models.Product {
	t.Helper()
	var product models.Product
	require.NoError(t, f.db.First(&product, id).Error)
	return product
}

func (f *fixture) reloadOrder(t *testing.T, id uint) models.Order {
	t.Helper()
	var order models.Order
	require.NoError(t, f.db.Preload("Items").First(&order, id).Error)
	return order
}
