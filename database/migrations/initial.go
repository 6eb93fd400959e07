package migrations

import (
	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_catalog_tables", &CreateCatalogTables{})
	migration.Register("20260301000002_create_cart_tables", &CreateCartTables{})
	migration.Register("20260301000003_create_order_tables", &CreateOrderTables{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: categories + products --------

type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.Product{})
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products", "categories")
}

// -------- 0003: carts + cart items --------

type CreateCartTables struct{}

func (m *CreateCartTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Cart{}, &models.CartItem{})
}

func (m *CreateCartTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cart_items", "carts")
}

// -------- 0004: orders + order items --------

type CreateOrderTables struct{}

func (m *CreateOrderTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrderTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}
