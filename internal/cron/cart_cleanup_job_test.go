package cron

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/danielcarreno/foodrush-backend/internal/cart"
	"github.com/danielcarreno/foodrush-backend/pkg/db/models"
	"github.com/danielcarreno/foodrush-backend/pkg/logger"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r *testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func createCartWithItem(t *testing.T, db *gorm.DB, customerID string, createdAt time.Time) *models.Cart {
	t.Helper()

	c := &models.Cart{CustomerID: customerID, RestaurantID: 1, CreatedAt: createdAt}
	require.NoError(t, db.Create(c).Error)
	require.NoError(t, db.Create(&models.CartItem{
		CartID:    c.ID,
		ProductID: 1,
		Quantity:  1,
		Price:     decimal.RequireFromString("12.99"),
	}).Error)
	return c
}

func TestCartCleanupRemovesSupersededCarts(t *testing.T) {
	db := setupJobTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test"})
	repo := cart.NewRepository(db)
	job, err := NewCartCleanupJob(&testTxRunner{db: db}, repo, logg, 24*time.Hour)
	require.NoError(t, err)

	old := createCartWithItem(t, db, "1", time.Now().Add(-48*time.Hour))
	current := createCartWithItem(t, db, "1", time.Now())

	require.NoError(t, job.Run(context.Background()))

	var cartCount int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&cartCount).Error)
	assert.Equal(t, int64(1), cartCount)

	var remaining models.Cart
	require.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, current.ID, remaining.ID)

	var itemCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", old.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestCartCleanupKeepsLoneOldCart(t *testing.T) {
	db := setupJobTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test"})
	repo := cart.NewRepository(db)
	job, err := NewCartCleanupJob(&testTxRunner{db: db}, repo, logg, 24*time.Hour)
	require.NoError(t, err)

	// Old but still the customer's only cart, so it stays.
	lone := createCartWithItem(t, db, "1", time.Now().Add(-72*time.Hour))

	require.NoError(t, job.Run(context.Background()))

	var remaining models.Cart
	require.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, lone.ID, remaining.ID)
}

func TestCartCleanupKeepsRecentSupersededCarts(t *testing.T) {
	db := setupJobTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test"})
	repo := cart.NewRepository(db)
	job, err := NewCartCleanupJob(&testTxRunner{db: db}, repo, logg, 24*time.Hour)
	require.NoError(t, err)

	createCartWithItem(t, db, "1", time.Now().Add(-time.Hour))
	createCartWithItem(t, db, "1", time.Now())

	require.NoError(t, job.Run(context.Background()))

	var cartCount int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&cartCount).Error)
	assert.Equal(t, int64(2), cartCount)
}
