package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/danielcarreno/foodrush-backend/internal/cart"
	"github.com/danielcarreno/foodrush-backend/internal/catalog"
	"github.com/danielcarreno/foodrush-backend/internal/orders"
	"github.com/danielcarreno/foodrush-backend/pkg/config"
	"github.com/danielcarreno/foodrush-backend/pkg/logger"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r *gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY,
  restaurant_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC(10,2) NOT NULL,
  image_url TEXT,
  category TEXT,
  available BOOLEAN NOT NULL DEFAULT TRUE
);`,
		`CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  restaurant_id INTEGER NOT NULL,
  created_at TIMESTAMP
);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  price NUMERIC(10,2) NOT NULL,
  notes TEXT,
  created_at TIMESTAMP,
  updated_at TIMESTAMP
);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  restaurant_id INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'preparing',
  total_amount NUMERIC(10,2) NOT NULL,
  delivery_fee NUMERIC(10,2) NOT NULL,
  service_fee NUMERIC(10,2) NOT NULL,
  delivery_address TEXT,
  customer_name TEXT,
  customer_phone TEXT,
  created_at TIMESTAMP,
  updated_at TIMESTAMP
);`,
		`CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  price NUMERIC(10,2) NOT NULL,
  notes TEXT,
  created_at TIMESTAMP
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	logg := logger.New(logger.Options{ServiceName: "test"})
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.DefaultCustomerID = "1"
	cfg.Checkout = config.CheckoutConfig{DeliveryFee: "2.99", ServiceFee: "1.50"}

	runner := &gormTxRunner{db: db}
	productRepo := catalog.NewProductRepository(db)
	cartRepo := cart.NewRepository(db)
	orderRepo := orders.NewRepository(db)

	seeder, err := catalog.NewSeeder(runner, productRepo, logg)
	require.NoError(t, err)
	require.NoError(t, seeder.SeedProducts(context.Background()))

	cartStore, err := cart.NewStore(runner, cartRepo, nil)
	require.NoError(t, err)
	sessions, err := cart.NewManager(cartStore, logg)
	require.NoError(t, err)

	orderService, err := orders.NewService(runner, orderRepo, cartRepo, cfg.Checkout, nil)
	require.NoError(t, err)

	return NewRouter(Deps{
		Config:   cfg,
		Logger:   logg,
		Sessions: sessions,
		Products: productRepo,
		Orders:   orderService,
	})
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

func TestHealthLive(t *testing.T) {
	handler := setupRouter(t)

	rec, envelope := doJSON(t, handler, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "live", data["status"])
}

func TestRestaurantEndpoints(t *testing.T) {
	handler := setupRouter(t)

	rec, envelope := doJSON(t, handler, http.MethodGet, "/api/v1/restaurants", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, envelope["data"])

	rec, _ = doJSON(t, handler, http.MethodGet, "/api/v1/restaurants/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, handler, http.MethodGet, "/api/v1/restaurants/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, envelope = doJSON(t, handler, http.MethodGet, "/api/v1/restaurants/1/products", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, envelope["data"])
}

func TestCartAndCheckoutFlow(t *testing.T) {
	handler := setupRouter(t)

	// Two burgers and one fries.
	rec, _ := doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"product_id": 1,
		"quantity":   2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, envelope := doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"product_id": 2,
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data := envelope["data"].(map[string]any)
	assert.Equal(t, "30.97", data["subtotal"])
	assert.Equal(t, float64(3), data["item_count"])

	rec, envelope = doJSON(t, handler, http.MethodPost, "/api/v1/checkout", map[string]any{
		"delivery_address": "123 Main St",
		"customer_name":    "Dana",
		"customer_phone":   "555-0100",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	order := envelope["data"].(map[string]any)
	assert.Equal(t, "preparing", order["Status"])

	// The cart is empty after checkout.
	rec, envelope = doJSON(t, handler, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = envelope["data"].(map[string]any)
	assert.Equal(t, "0.00", data["subtotal"])

	// Checking out again without a cart fails.
	rec, _ = doJSON(t, handler, http.MethodPost, "/api/v1/checkout", map[string]any{
		"delivery_address": "123 Main St",
		"customer_name":    "Dana",
		"customer_phone":   "555-0100",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckoutValidatesBody(t *testing.T) {
	handler := setupRouter(t)

	rec, _ := doJSON(t, handler, http.MethodPost, "/api/v1/checkout", map[string]any{
		"customer_name": "Dana",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartAddUnknownProduct(t *testing.T) {
	handler := setupRouter(t)

	rec, _ := doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"product_id": 999,
		"quantity":   1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVendorOrderStatusFlow(t *testing.T) {
	handler := setupRouter(t)

	rec, _ := doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"product_id": 1,
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, envelope := doJSON(t, handler, http.MethodPost, "/api/v1/checkout", map[string]any{
		"delivery_address": "123 Main St",
		"customer_name":    "Dana",
		"customer_phone":   "555-0100",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	orderID := envelope["data"].(map[string]any)["ID"].(string)

	rec, _ = doJSON(t, handler, http.MethodGet, "/api/v1/vendor/orders", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, handler, http.MethodPatch, "/api/v1/vendor/orders/"+orderID+"/status", map[string]any{
		"status": "ready",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Skipping straight to completed is rejected.
	rec, _ = doJSON(t, handler, http.MethodPatch, "/api/v1/vendor/orders/"+orderID+"/status", map[string]any{
		"status": "completed",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGeocodeUnconfigured(t *testing.T) {
	handler := setupRouter(t)

	rec, _ := doJSON(t, handler, http.MethodGet, "/api/v1/geocode?address=anywhere", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
