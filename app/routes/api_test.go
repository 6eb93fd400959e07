package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/pkg/auth"
	"github.com/shashiranjanraj/novamarket/pkg/router"
)

func testRouter(t *testing.T) (*router.Router, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	))

	r := router.New()
	RegisterAPI(r, db)
	return r, db
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func registerShopper(t *testing.T, h http.Handler) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Asha",
		"email":    "asha@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var payload struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.Data.Token)
	return payload.Data.Token
}

func seedShopProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) models.Product {
	t.Helper()

	category := models.Category{Name: "Test", Slug: "test-" + name}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{
		CategoryID: category.ID,
		Name:       name,
		Slug:       name,
		Price:      price,
		Stock:      stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestShoppingFlowOverHTTP(t *testing.T) {
	r, db := testRouter(t)
	h := r.Handler()

	product := seedShopProduct(t, db, "yoga-mat", 1200, 5)
	token := registerShopper(t, h)

	// Anonymous browsing works.
	rec := doJSON(t, h, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The cart requires a token.
	rec = doJSON(t, h, http.MethodPost, "/api/cart/items", "", map[string]uint{"product_id": product.ID})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Add twice, then check out.
	for i := 0; i < 2; i++ {
		rec = doJSON(t, h, http.MethodPost, "/api/cart/items", token, map[string]uint{"product_id": product.ID})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/checkout", token, map[string]string{"address": "42 Main Street"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var checkout struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &checkout))
	assert.Equal(t, int64(2400), checkout.Data.TotalAmount)

	// History shows the order.
	rec = doJSON(t, h, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Checking out an empty cart fails cleanly.
	rec = doJSON(t, h, http.MethodPost, "/api/checkout", token, map[string]string{"address": "42 Main Street"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutShortfallOverHTTP(t *testing.T) {
	r, db := testRouter(t)
	h := r.Handler()

	product := seedShopProduct(t, db, "sci-fi-novel", 899, 1)
	token := registerShopper(t, h)

	for i := 0; i < 2; i++ {
		rec := doJSON(t, h, http.MethodPost, "/api/cart/items", token, map[string]uint{"product_id": product.ID})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, h, http.MethodPost, "/api/checkout", token, map[string]string{"address": "42 Main Street"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 1, reloaded.Stock, "failed checkout must not touch stock")
}

func TestAdminSurfaceRequiresStaff(t *testing.T) {
	r, db := testRouter(t)
	h := r.Handler()

	customerToken := registerShopper(t, h)

	rec := doJSON(t, h, http.MethodGet, "/api/admin/dashboard", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// A staff account gets through.
	hash, err := auth.HashPassword("staff-pass")
	require.NoError(t, err)
	staff := models.User{Name: "Staff", Email: "staff@example.com", Password: hash, Role: models.RoleStaff}
	require.NoError(t, db.Create(&staff).Error)

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "staff@example.com",
		"password": "staff-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	rec = doJSON(t, h, http.MethodGet, "/api/admin/dashboard", payload.Data.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestStaffStatusChangeOverHTTP(t *testing.T) {
	r, db := testRouter(t)
	h := r.Handler()

	product := seedShopProduct(t, db, "treadmill-pro", 45000, 5)
	shopper := registerShopper(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/cart/items", shopper, map[string]uint{"product_id": product.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, h, http.MethodPost, "/api/checkout", shopper, map[string]string{"address": "42 Main Street"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var checkout struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &checkout))

	staffToken, err := auth.GenerateToken(999, models.RoleStaff)
	require.NoError(t, err)

	path := fmt.Sprintf("/api/admin/orders/%d/status", checkout.Data.ID)
	rec = doJSON(t, h, http.MethodPut, path, staffToken, map[string]string{"status": "Cancelled"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 5, reloaded.Stock, "cancellation returns the stock")

	// Unknown statuses are rejected by validation.
	rec = doJSON(t, h, http.MethodPut, path, staffToken, map[string]string{"status": "Teleported"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
