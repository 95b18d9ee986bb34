package cron

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/danielcarreno/foodrush-backend/internal/orders"
	"github.com/danielcarreno/foodrush-backend/pkg/db/models"
	"github.com/danielcarreno/foodrush-backend/pkg/enums"
	"github.com/danielcarreno/foodrush-backend/pkg/logger"
)

func createOrderWithStatus(t *testing.T, db *gorm.DB, status enums.OrderStatus, updatedAt time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:           uuid.New(),
		CustomerID:   "1",
		RestaurantID: 1,
		Status:       status,
		TotalAmount:  decimal.RequireFromString("35.46"),
		DeliveryFee:  decimal.RequireFromString("2.99"),
		ServiceFee:   decimal.RequireFromString("1.50"),
		CreatedAt:    updatedAt,
		UpdatedAt:    updatedAt,
	}
	require.NoError(t, db.Create(order).Error)
	// gorm refreshes updated_at on create; pin it back for the test.
	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		UpdateColumn("updated_at", updatedAt).Error)
	return order
}

func orderStatus(t *testing.T, db *gorm.DB, id uuid.UUID) enums.OrderStatus {
	t.Helper()

	var order models.Order
	require.NoError(t, db.First(&order, "id = ?", id).Error)
	return order.Status
}

func TestOrderProgressionAdvancesStaleOrders(t *testing.T) {
	db := setupJobTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test"})
	job, err := NewOrderProgressionJob(orders.NewRepository(db), logg, 20*time.Second)
	require.NoError(t, err)

	old := time.Now().Add(-time.Minute)
	preparing := createOrderWithStatus(t, db, enums.OrderStatusPreparing, old)
	ready := createOrderWithStatus(t, db, enums.OrderStatusReady, old)
	delivering := createOrderWithStatus(t, db, enums.OrderStatusDelivering, old)

	require.NoError(t, job.Run(context.Background()))

	assert.Equal(t, enums.OrderStatusReady, orderStatus(t, db, preparing.ID))
	assert.Equal(t, enums.OrderStatusDelivering, orderStatus(t, db, ready.ID))
	assert.Equal(t, enums.OrderStatusCompleted, orderStatus(t, db, delivering.ID))
}

func TestOrderProgressionSkipsFreshOrders(t *testing.T) {
	db := setupJobTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test"})
	job, err := NewOrderProgressionJob(orders.NewRepository(db), logg, 20*time.Second)
	require.NoError(t, err)

	fresh := createOrderWithStatus(t, db, enums.OrderStatusPreparing, time.Now())

	require.NoError(t, job.Run(context.Background()))

	assert.Equal(t, enums.OrderStatusPreparing, orderStatus(t, db, fresh.ID))
}

func TestOrderProgressionLeavesTerminalOrders(t *testing.T) {
	db := setupJobTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test"})
	job, err := NewOrderProgressionJob(orders.NewRepository(db), logg, 20*time.Second)
	require.NoError(t, err)

	old := time.Now().Add(-time.Hour)
	completed := createOrderWithStatus(t, db, enums.OrderStatusCompleted, old)
	cancelled := createOrderWithStatus(t, db, enums.OrderStatusCancelled, old)

	require.NoError(t, job.Run(context.Background()))

	assert.Equal(t, enums.OrderStatusCompleted, orderStatus(t, db, completed.ID))
	assert.Equal(t, enums.OrderStatusCancelled, orderStatus(t, db, cancelled.ID))
}

func TestOrderProgressionAdvancesOneStepPerRun(t *testing.T) {
	db := setupJobTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test"})
	job, err := NewOrderProgressionJob(orders.NewRepository(db), logg, 20*time.Second)
	require.NoError(t, err)

	order := createOrderWithStatus(t, db, enums.OrderStatusPreparing, time.Now().Add(-time.Minute))

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, enums.OrderStatusReady, orderStatus(t, db, order.ID))

	// The advance touched updated_at, so the next run within the window
	// leaves the order alone.
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, enums.OrderStatusReady, orderStatus(t, db, order.ID))
}
