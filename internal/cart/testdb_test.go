package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/danielcarreno/foodrush-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY,
  restaurant_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC(10,2) NOT NULL,
  image_url TEXT,
  category TEXT,
  available BOOLEAN NOT NULL DEFAULT TRUE
);`
	carts := `
CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  restaurant_id INTEGER NOT NULL,
  created_at TIMESTAMP
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  price NUMERIC(10,2) NOT NULL,
  notes TEXT,
  created_at TIMESTAMP,
  updated_at TIMESTAMP
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(carts).Error)
	require.NoError(t, db.Exec(cartItems).Error)
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, id, restaurantID int64, price string) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         fmt.Sprintf("Product %d", id),
		Price:        decimal.RequireFromString(price),
		Available:    true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// gormTxRunner runs the callback against the bare handle, matching how the
// production runner scopes repositories.
type gormTxRunner struct {
	db *gorm.DB
}

func (r *gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
