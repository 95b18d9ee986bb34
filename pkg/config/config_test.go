package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "1", cfg.App.DefaultCustomerID)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.FeatureFlags.AutoMigrate)
	assert.True(t, cfg.FeatureFlags.SeedCatalog)
	assert.True(t, cfg.FeatureFlags.OrderSimulation)
}

func TestDBConfigValidate(t *testing.T) {
	valid := DBConfig{Driver: DriverSQLite, Path: "test.db"}
	assert.NoError(t, valid.validate())

	noPath := DBConfig{Driver: DriverSQLite}
	assert.Error(t, noPath.validate())

	pg := DBConfig{Driver: DriverPostgres, DSN: "postgres://localhost/foodrush"}
	assert.NoError(t, pg.validate())

	pgNoDSN := DBConfig{Driver: DriverPostgres}
	assert.Error(t, pgNoDSN.validate())

	unknown := DBConfig{Driver: "oracle"}
	assert.Error(t, unknown.validate())
}

func TestCheckoutFees(t *testing.T) {
	cfg := CheckoutConfig{DeliveryFee: "3.49", ServiceFee: "2.00"}
	assert.True(t, cfg.DeliveryFeeAmount().Equal(decimal.RequireFromString("3.49")))
	assert.True(t, cfg.ServiceFeeAmount().Equal(decimal.RequireFromString("2.00")))
}

func TestCheckoutFeesFallBackOnGarbage(t *testing.T) {
	cfg := CheckoutConfig{DeliveryFee: "free!", ServiceFee: "-1"}
	assert.True(t, cfg.DeliveryFeeAmount().Equal(decimal.RequireFromString("2.99")))
	assert.True(t, cfg.ServiceFeeAmount().Equal(decimal.RequireFromString("1.50")))
}
