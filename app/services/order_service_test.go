package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/novamarket/app/models"
)

// placeOrder is a fixture helper: fills the cart and checks out.
func placeOrder(t *testing.T, f *fixture, userID uint, productID uint, qty int) models.Order {
	t.Helper()
	for i := 0; i < qty; i++ {
		_, err := f.carts.AddItem(userID, productID)
		require.NoError(t, err)
	}
	order, err := f.checkout.PlaceOrder(userID, "42 Main Street")
	require.NoError(t, err)
	return order
}

func TestSetStatusPlainTransition(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Electric Shaver", 4500, 10)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)
	order := placeOrder(t, f, user.ID, product.ID, 2)

	// Pending -> Shipped moves the order without touching stock.
	updated, err := f.orders.SetStatus(order.ID, models.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, updated.Status)
	assert.Equal(t, 8, f.reloadProduct(t, product.ID).Stock)
}

func TestSetStatusSameStatusNoOp(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Smart Ambient Lamp", 3200, 10)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)
	order := placeOrder(t, f, user.ID, product.ID, 3)

	updated, err := f.orders.SetStatus(order.ID, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)
	assert.Equal(t, 7, f.reloadProduct(t, product.ID).Stock)
}

func TestSetStatusCancelRestoresStock(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Treadmill Pro", 45000, 5)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)
	order := placeOrder(t, f, user.ID, product.ID, 3)
	require.Equal(t, 2, f.reloadProduct(t, product.ID).Stock)

	updated, err := f.orders.SetStatus(order.ID, models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)
	assert.Equal(t, 5, f.reloadProduct(t, product.ID).Stock)
}

func TestSetStatusUncancelRedeductsStock(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Dumbbell Set 10kg", 2500, 5)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)
	order := placeOrder(t, f, user.ID, product.ID, 3)

	_, err := f.orders.SetStatus(order.ID, models.StatusCancelled)
	require.NoError(t, err)
	require.Equal(t, 5, f.reloadProduct(t, product.ID).Stock)

	// Reviving the order takes the stock again.
	updated, err := f.orders.SetStatus(order.ID, models.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, updated.Status)
	assert.Equal(t, 2, f.reloadProduct(t, product.ID).Stock)
}

func TestSetStatusUncancelFailsOnShortfall(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Nike Air Force 1", 8200, 5)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)
	order := placeOrder(t, f, user.ID, product.ID, 3)

	_, err := f.orders.SetStatus(order.ID, models.StatusCancelled)
	require.NoError(t, err)

	// Someone else buys most of the restored stock.
	require.NoError(t, f.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("stock", 1).Error)

	_, err = f.orders.SetStatus(order.ID, models.StatusProcessing)
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, product.ID, stockErr.ProductID)

	// The order stays Cancelled and stock is untouched.
	assert.Equal(t, models.StatusCancelled, f.reloadOrder(t, order.ID).Status)
	assert.Equal(t, 1, f.reloadProduct(t, product.ID).Stock)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Organic Face Serum", 1500, 5)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)
	order := placeOrder(t, f, user.ID, product.ID, 1)

	_, err := f.orders.SetStatus(order.ID, models.OrderStatus("Teleported"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, models.StatusPending, f.reloadOrder(t, order.ID).Status)
}

func TestOrderHistoryScopedToUser(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Matte Lipstick Set", 1800, 20)
	alice := seedUser(t, f.db, "alice@example.com", models.RoleCustomer)
	bob := seedUser(t, f.db, "bob@example.com", models.RoleCustomer)

	aliceOrder := placeOrder(t, f, alice.ID, product.ID, 1)
	placeOrder(t, f, bob.ID, product.ID, 2)

	orders, err := f.orders.History(alice.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, aliceOrder.ID, orders[0].ID)

	// Detail refuses to serve another user's order.
	_, err = f.orders.Detail(bob.ID, aliceOrder.ID)
	assert.Error(t, err)
}
