package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/novamarket/app/models"
)

func TestCheckoutPlacesOrder(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	mat := seedProduct(t, f.db, category.ID, "Yoga Mat", 1200, 10)
	bike := seedProduct(t, f.db, category.ID, "Mountain Bike", 35000, 3)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)

	_, err := f.carts.AddItem(user.ID, mat.ID)
	require.NoError(t, err)
	_, err = f.carts.AddItem(user.ID, mat.ID)
	require.NoError(t, err)
	_, err = f.carts.AddItem(user.ID, bike.ID)
	require.NoError(t, err)

	order, err := f.checkout.PlaceOrder(user.ID, "42 Main Street")
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, int64(2*1200+35000), order.TotalAmount)
	assert.Equal(t, "42 Main Street", order.Address)
	require.Len(t, order.Items, 2)

	// Total always equals the sum of the item snapshots.
	var sum int64
	for _, item := range order.Items {
		sum += item.Subtotal()
	}
	assert.Equal(t, order.TotalAmount, sum)

	// Stock went down, cart is empty.
	assert.Equal(t, 8, f.reloadProduct(t, mat.ID).Stock)
	assert.Equal(t, 2, f.reloadProduct(t, bike.ID).Stock)

	cart, err := f.carts.View(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)

	_, err := f.checkout.PlaceOrder(user.ID, "42 Main Street")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutShortfallRollsBackEverything(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	plentiful := seedProduct(t, f.db, category.ID, "Hardbound Notebook", 450, 10)
	scarce := seedProduct(t, f.db, category.ID, "Calligraphy Set", 3500, 2)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)

	for i := 0; i < 5; i++ {
		_, err := f.carts.AddItem(user.ID, plentiful.ID)
		require.NoError(t, err)
		_, err = f.carts.AddItem(user.ID, scarce.ID)
		require.NoError(t, err)
	}

	_, err := f.checkout.PlaceOrder(user.ID, "42 Main Street")
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, scarce.ID, stockErr.ProductID)
	assert.Equal(t, "Calligraphy Set", stockErr.ProductName)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)

	// The plentiful product was processed first inside the transaction;
	// the rollback must have undone its deduction too.
	assert.Equal(t, 10, f.reloadProduct(t, plentiful.ID).Stock)
	assert.Equal(t, 2, f.reloadProduct(t, scarce.ID).Stock)

	// No order rows survive.
	var orderCount int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	// The cart is intact for a retry.
	cart, err := f.carts.View(user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestCheckoutTotalImmuneToLaterPriceChange(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Premium Fragrance", 5500, 10)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)

	_, err := f.carts.AddItem(user.ID, product.ID)
	require.NoError(t, err)

	order, err := f.checkout.PlaceOrder(user.ID, "42 Main Street")
	require.NoError(t, err)

	// A price hike after checkout never rewrites history.
	require.NoError(t, f.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", 9999).Error)

	reloaded := f.reloadOrder(t, order.ID)
	assert.Equal(t, int64(5500), reloaded.TotalAmount)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, int64(5500), reloaded.Items[0].Price)
}

func TestCheckoutThenRepurchase(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Trail Backpack", 6200, 10)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)

	_, err := f.carts.AddItem(user.ID, product.ID)
	require.NoError(t, err)
	_, err = f.checkout.PlaceOrder(user.ID, "42 Main Street")
	require.NoError(t, err)

	// The emptied cart accepts the same product again.
	cart, err := f.carts.AddItem(user.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	order, err := f.checkout.PlaceOrder(user.ID, "42 Main Street")
	require.NoError(t, err)
	assert.Equal(t, int64(6200), order.TotalAmount)
	assert.Equal(t, 8, f.reloadProduct(t, product.ID).Stock)
}

func TestCheckoutStockNeverNegative(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Sci-Fi Novel", 899, 1)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)

	_, err := f.carts.AddItem(user.ID, product.ID)
	require.NoError(t, err)
	_, err = f.carts.AddItem(user.ID, product.ID)
	require.NoError(t, err)

	_, err = f.checkout.PlaceOrder(user.ID, "42 Main Street")
	require.Error(t, err)
	assert.Equal(t, 1, f.reloadProduct(t, product.ID).Stock)
}
