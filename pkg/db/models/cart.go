package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is the mutable pre-checkout collection for one customer. Only the
// most-recently-created row per customer is ever treated as active.
type Cart struct {
	ID           uuid.UUID  `gorm:"column:id;type:text;primaryKey"`
	CustomerID   string     `gorm:"column:customer_id;not null;index"`
	RestaurantID int64      `gorm:"column:restaurant_id;not null"`
	Items        []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (c *Cart) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
