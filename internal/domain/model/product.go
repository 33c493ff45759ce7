package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"categoryId"`
	Name        string    `gorm:"type:varchar(255);not null" json:"categoryName"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"-"`
}

// 商品カタログ（読み取り専用）
type Product struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"productId"`
	Name         string          `gorm:"type:varchar(255);not null;index" json:"productName"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unitPrice"`
	CategoryID   int64           `gorm:"not null;index" json:"categoryId"`
	Category     *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Discontinued bool            `gorm:"not null;default:false;index" json:"discontinued"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"-"`
}
