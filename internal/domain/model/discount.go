package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品ごとの割引。有効期間は半開区間 [StartTime, EndTime)
type Discount struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"discountId"`
	ProductID       int64           `gorm:"not null;index:idx_discount_window,priority:1" json:"productId"`
	Code            string          `gorm:"type:varchar(50)" json:"code"`
	Title           string          `gorm:"type:varchar(255)" json:"title"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,4);not null" json:"discountPercent"`
	StartTime       time.Time       `gorm:"not null;index:idx_discount_window,priority:2" json:"startTime"`
	EndTime         time.Time       `gorm:"not null" json:"endTime"`
}

// ActiveAt は t が [StartTime, EndTime) に入っているかを返す。
// t == EndTime は対象外。
func (d Discount) ActiveAt(t time.Time) bool {
	return !t.Before(d.StartTime) && t.Before(d.EndTime)
}

// 割引率は [0,1)、期間は start < end
func (d Discount) Valid() bool {
	if d.DiscountPercent.IsNegative() || d.DiscountPercent.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return false
	}
	return d.StartTime.Before(d.EndTime)
}
