package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/danielcarreno/foodrush-backend/pkg/enums"
)

// Order is the durable snapshot produced by checkout. Orders are never
// deleted; only their status advances.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:text;primaryKey"`
	CustomerID      string            `gorm:"column:customer_id;not null;index"`
	RestaurantID    int64             `gorm:"column:restaurant_id;not null"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:'preparing'"`
	TotalAmount     decimal.Decimal   `gorm:"column:total_amount;type:numeric(10,2);not null"`
	DeliveryFee     decimal.Decimal   `gorm:"column:delivery_fee;type:numeric(10,2);not null"`
	ServiceFee      decimal.Decimal   `gorm:"column:service_fee;type:numeric(10,2);not null"`
	DeliveryAddress string            `gorm:"column:delivery_address"`
	CustomerName    string            `gorm:"column:customer_name"`
	CustomerPhone   string            `gorm:"column:customer_phone"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
