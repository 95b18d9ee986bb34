package models

import (
	"github.com/shopspring/decimal"
)

// Product is a menu listing seeded once from the catalog fixture and
// otherwise read-only. IDs come from the fixture, not the database.
type Product struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement:false"`
	RestaurantID int64           `gorm:"column:restaurant_id;not null;index"`
	Name         string          `gorm:"column:name;not null"`
	Description  string          `gorm:"column:description"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	ImageURL     string          `gorm:"column:image_url"`
	Category     string          `gorm:"column:category"`
	Available    bool            `gorm:"column:available;not null;default:true"`
}
