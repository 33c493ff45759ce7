package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文時点の価格・割引をスナップショットとして保存（後から再計算しない）
type OrderItem struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"orderItemId"`
	OrderID             int64           `gorm:"not null;index" json:"orderId"`
	ProductID           int64           `gorm:"not null;index" json:"productId"`
	ProductNameSnapshot string          `gorm:"type:varchar(255);not null" json:"productName"`
	Quantity            int64           `gorm:"not null" json:"quantity"`
	UnitPrice           decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unitPrice"`
	DiscountAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"discountAmount"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"-"`
}
