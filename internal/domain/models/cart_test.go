package models_test

import (
	"errors"
	"testing"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCart собирает корзину [(P1, 2 шт, 5.99), (P2, 1 шт, 10.99)]
func newTestCart() *models.Cart {
	return &models.Cart{
		ID:     1,
		UserID: 7,
		Items: []models.CartItem{
			{ID: 11, CartID: 1, ProductID: 1, ProductName: "Fitness Tracker", UnitPrice: decimal.RequireFromString("5.99"), Quantity: 2},
			{ID: 12, CartID: 1, ProductID: 2, ProductName: "Wireless Mouse", UnitPrice: decimal.RequireFromString("10.99"), Quantity: 1},
		},
	}
}

func TestCart_AddProduct_NewItem(t *testing.T) {
	cart := &models.Cart{ID: 1, UserID: 7}

	item, err := cart.AddProduct(3, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), item.ID, "New item should not have an id before it is saved")
	assert.Equal(t, int64(1), item.CartID)
	assert.Equal(t, int64(3), item.ProductID)
	assert.Equal(t, 1, item.Quantity)
	assert.Len(t, cart.Items, 1)
}

func TestCart_AddProduct_SameProductTwice(t *testing.T) {
	cart := &models.Cart{ID: 1, UserID: 7}

	_, err := cart.AddProduct(5, 2)
	require.NoError(t, err)
	item, err := cart.AddProduct(5, 3)
	require.NoError(t, err)

	// одна позиция, количество суммируется
	assert.Len(t, cart.Items, 1, "Product should be stored in a single item")
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCart_AddProduct_InvalidQuantity(t *testing.T) {
	cart := &models.Cart{ID: 1, UserID: 7}

	_, err := cart.AddProduct(5, 0)
	assert.True(t, errors.Is(err, models.ErrInvalidQuantity))
	_, err = cart.AddProduct(5, -2)
	assert.True(t, errors.Is(err, models.ErrInvalidQuantity))
	assert.Empty(t, cart.Items, "Cart should stay empty after rejected additions")
}

func TestCart_RemoveProduct(t *testing.T) {
	cart := newTestCart()

	removed, ok := cart.RemoveProduct(1)
	assert.True(t, ok)
	assert.Equal(t, int64(11), removed.ID)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Items[0].ProductID)
}

func TestCart_RemoveProduct_Absent(t *testing.T) {
	cart := newTestCart()

	_, ok := cart.RemoveProduct(42)
	assert.False(t, ok, "Removing an absent product should be a no-op")
	assert.Len(t, cart.Items, 2)
}

func TestCart_UpdateItemQuantity(t *testing.T) {
	cart := newTestCart()

	item, removed, err := cart.UpdateItemQuantity(12, 4)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 4, item.Quantity)
	assert.Equal(t, 4, cart.Items[1].Quantity)
}

func TestCart_UpdateItemQuantity_ZeroRemovesItem(t *testing.T) {
	cart := newTestCart()

	item, removed, err := cart.UpdateItemQuantity(11, 0)
	require.NoError(t, err)
	assert.True(t, removed, "Zero quantity should remove the item")
	assert.Equal(t, int64(11), item.ID)
	for _, it := range cart.Items {
		assert.NotEqual(t, int64(11), it.ID, "Removed item should not stay in the cart")
	}
}

func TestCart_UpdateItemQuantity_NotFound(t *testing.T) {
	cart := newTestCart()

	_, _, err := cart.UpdateItemQuantity(999, 3)
	assert.True(t, errors.Is(err, models.ErrCartItemNotFound))
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestCart_TotalPrice(t *testing.T) {
	cart := newTestCart()
	assert.True(t, decimal.RequireFromString("22.97").Equal(cart.TotalPrice()), "Cart total should be 22.97, got %s", cart.TotalPrice())
}

func TestCart_TotalPrice_UsesLivePrice(t *testing.T) {
	cart := newTestCart()
	// цена товара в каталоге поменялась - корзина это видит
	cart.Items[1].UnitPrice = decimal.RequireFromString("12.00")
	assert.True(t, decimal.RequireFromString("23.98").Equal(cart.TotalPrice()))
}

func TestCart_Clear(t *testing.T) {
	cart := newTestCart()

	removed := cart.Clear()
	assert.Len(t, removed, 2)
	assert.True(t, cart.IsEmpty())
	assert.True(t, decimal.Zero.Equal(cart.TotalPrice()))
}
