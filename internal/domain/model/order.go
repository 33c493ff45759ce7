package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// TotalAmountは割引後の金額。DiscountAmountは割引の合計。
type Order struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"orderId"`
	CustomerID     int64           `gorm:"not null;index" json:"customerId"`
	OrderDate      time.Time       `gorm:"not null;index" json:"orderDate"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"totalAmount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"discountAmount"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime" json:"-"`
}
