package model

import "github.com/shopspring/decimal"

// LinePrice は1明細の金額。
type LinePrice struct {
	UnitPrice decimal.Decimal
	Quantity  int64
	Subtotal  decimal.Decimal // UnitPrice * Quantity
	Discount  decimal.Decimal // Subtotal * percent（割引なしは0）
}

// Net は割引後の明細金額。
func (l LinePrice) Net() decimal.Decimal {
	return l.Subtotal.Sub(l.Discount)
}

// PriceLine は単価・数量・有効な割引から明細金額を計算する。
// discount が nil なら割引0。丸めは2桁。
func PriceLine(unitPrice decimal.Decimal, qty int64, discount *Discount) LinePrice {
	subtotal := unitPrice.Mul(decimal.NewFromInt(qty))
	off := decimal.Zero
	if discount != nil {
		off = subtotal.Mul(discount.DiscountPercent).Round(2)
	}
	return LinePrice{
		UnitPrice: unitPrice,
		Quantity:  qty,
		Subtotal:  subtotal.Round(2),
		Discount:  off,
	}
}

// Totals は明細の合計。
type Totals struct {
	Gross    decimal.Decimal // Σ subtotal
	Discount decimal.Decimal // Σ discount
	Net      decimal.Decimal // Gross - Discount
}

func SumLines(lines []LinePrice) Totals {
	gross := decimal.Zero
	off := decimal.Zero
	for _, l := range lines {
		gross = gross.Add(l.Subtotal)
		off = off.Add(l.Discount)
	}
	return Totals{Gross: gross, Discount: off, Net: gross.Sub(off)}
}
