package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/novamarket/app/models"
)

func TestCartAddItemMergesLines(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Yoga Mat", 1200, 10)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)

	cart, err := f.carts.AddItem(user.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart, err = f.carts.AddItem(user.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1, "same product must merge, not duplicate")
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, int64(2400), cart.Total())
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	f := newFixture(t)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)

	_, err := f.carts.AddItem(user.ID, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartChangeQuantity(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Denim Jacket", 4500, 10)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)

	cart, err := f.carts.AddItem(user.ID, product.ID)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = f.carts.ChangeQuantity(user.ID, itemID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	// Dropping to zero or below removes the line.
	cart, err = f.carts.ChangeQuantity(user.ID, itemID, -3)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartChangeQuantityOwnership(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Leather Journal", 1200, 10)
	owner := seedUser(t, f.db, "owner@example.com", models.RoleCustomer)
	other := seedUser(t, f.db, "other@example.com", models.RoleCustomer)

	cart, err := f.carts.AddItem(owner.ID, product.ID)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	_, err = f.carts.ChangeQuantity(other.ID, itemID, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = f.carts.RemoveItem(other.ID, itemID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The owner's line is untouched.
	cart, err = f.carts.View(owner.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestCartRemoveItem(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Fountain Pen Set", 2500, 10)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)

	cart, err := f.carts.AddItem(user.ID, product.ID)
	require.NoError(t, err)

	cart, err = f.carts.RemoveItem(user.ID, cart.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total())
}

func TestCartReAddAfterRemove(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Ceramic Mug", 900, 10)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)

	cart, err := f.carts.AddItem(user.ID, product.ID)
	require.NoError(t, err)
	_, err = f.carts.RemoveItem(user.ID, cart.Items[0].ID)
	require.NoError(t, err)

	// The removed product goes straight back in as a fresh line.
	cart, err = f.carts.AddItem(user.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartReAddAfterDropToZero(t *testing.T) {
	f := newFixture(t)
	category := seedCategory(t, f.db)
	product := seedProduct(t, f.db, category.ID, "Running Shoes", 6000, 10)
	user := seedUser(t, f.db, "shopper@example.com", models.RoleCustomer)

	cart, err := f.carts.AddItem(user.ID, product.ID)
	require.NoError(t, err)

	cart, err = f.carts.ChangeQuantity(user.ID, cart.Items[0].ID, -1)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	cart, err = f.carts.AddItem(user.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartViewCreatesEmptyCart(t *testing.T) {
	f := newFixture(t)
	user := seedUser(t, f.db, "new@example.com", models.RoleCustomer)

	cart, err := f.carts.View(user.ID)
	require.NoError(t, err)
	assert.NotZero(t, cart.ID)
	assert.Empty(t, cart.Items)

	// A second view reuses the same cart row.
	again, err := f.carts.View(user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}
