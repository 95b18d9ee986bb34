package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielcarreno/foodrush-backend/pkg/db/models"
	pkgerrors "github.com/danielcarreno/foodrush-backend/pkg/errors"
)

func newTestStore(t *testing.T) (Store, *Repository) {
	t.Helper()

	db := setupCartTestDB(t)
	repo := NewRepository(db)
	store, err := NewStore(&gormTxRunner{db: db}, repo, nil)
	require.NoError(t, err)
	return store, repo
}

func addInput(customerID string, productID int64, qty int, price string) AddToCartInput {
	return AddToCartInput{
		CustomerID:   customerID,
		RestaurantID: 1,
		ProductID:    productID,
		Quantity:     qty,
		Price:        decimal.RequireFromString(price),
	}
}

func TestAddToCartCreatesCartAndItem(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddToCart(ctx, addInput("1", 1, 2, "12.99")))

	items, err := store.GetCartItems(ctx, "1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("12.99")))
}

func TestAddToCartAccumulatesQuantities(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddToCart(ctx, addInput("1", 1, 2, "12.99")))
	require.NoError(t, store.AddToCart(ctx, addInput("1", 1, 3, "12.99")))

	items, err := store.GetCartItems(ctx, "1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddToCartDecrementToZeroDeletesLine(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddToCart(ctx, addInput("1", 1, 2, "12.99")))
	require.NoError(t, store.AddToCart(ctx, addInput("1", 1, -2, "12.99")))

	items, err := store.GetCartItems(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddToCartDecrementOfAbsentLineIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddToCart(ctx, addInput("1", 1, 2, "12.99")))
	require.NoError(t, store.AddToCart(ctx, addInput("1", 99, -1, "4.99")))

	items, err := store.GetCartItems(ctx, "1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ProductID)
}

func TestAddToCartZeroDeltaForNewLineIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddToCart(ctx, addInput("1", 1, 0, "12.99")))

	items, err := store.GetCartItems(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddToCartValidation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.AddToCart(ctx, AddToCartInput{ProductID: 1, Quantity: 1})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestGetCartItemsWithoutCartReturnsEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	items, err := store.GetCartItems(ctx, "1")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRemoveFromCartMissingItem(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.RemoveFromCart(ctx, uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestRemoveFromCartDeletesLine(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddToCart(ctx, addInput("1", 1, 2, "12.99")))

	cart, err := repo.FindActiveCart(ctx, "1")
	require.NoError(t, err)
	items, err := repo.ListItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, store.RemoveFromCart(ctx, items[0].ID))

	remaining, err := store.GetCartItems(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestAddToCartRetagsEmptyCartOnRestaurantChange(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddToCart(ctx, addInput("1", 1, 2, "12.99")))

	before, err := repo.FindActiveCart(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, int64(1), before.RestaurantID)

	// Empty the cart the way a restaurant switch does, then add from the
	// other restaurant.
	items, err := repo.ListItems(ctx, before.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NoError(t, store.RemoveFromCart(ctx, items[0].ID))

	require.NoError(t, store.AddToCart(ctx, AddToCartInput{
		CustomerID:   "1",
		RestaurantID: 2,
		ProductID:    7,
		Quantity:     1,
		Price:        decimal.RequireFromString("14.99"),
	}))

	after, err := repo.FindActiveCart(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, int64(2), after.RestaurantID)
}

func TestAddToCartKeepsRestaurantWhileCartHasItems(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddToCart(ctx, addInput("1", 1, 2, "12.99")))
	require.NoError(t, store.AddToCart(ctx, AddToCartInput{
		CustomerID:   "1",
		RestaurantID: 2,
		ProductID:    7,
		Quantity:     1,
		Price:        decimal.RequireFromString("14.99"),
	}))

	cart, err := repo.FindActiveCart(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), cart.RestaurantID)
}

func TestCartsAreIsolatedPerCustomer(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddToCart(ctx, addInput("1", 1, 2, "12.99")))
	require.NoError(t, store.AddToCart(ctx, addInput("2", 2, 1, "4.99")))

	first, err := store.GetCartItems(ctx, "1")
	require.NoError(t, err)
	second, err := store.GetCartItems(ctx, "2")
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, int64(1), first[0].ProductID)
	assert.Equal(t, int64(2), second[0].ProductID)
}

func TestLineTotal(t *testing.T) {
	item := models.CartItem{
		Quantity: 3,
		Price:    decimal.RequireFromString("4.99"),
	}
	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("14.97")))
}
