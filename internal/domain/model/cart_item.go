package model

import "time"

// 1明細の数量上限
const MaxCartQuantity int64 = 9999

// カートの明細
// (customer, product) につき1行だけ。数量は1以上MaxCartQuantity以下。
type CartItem struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"cartItemId"`
	CustomerID int64     `gorm:"not null;uniqueIndex:idx_cart_customer_product,priority:1" json:"customerId"`
	ProductID  int64     `gorm:"not null;uniqueIndex:idx_cart_customer_product,priority:2;index" json:"productId"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity   int64     `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"-"`
}
