// Package invoice は注文の請求書PDFを作る。
package invoice

import (
	"io"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

type Line struct {
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
}

type Document struct {
	StoreName string
	OrderID   int64
	OrderDate time.Time
	Status    string

	CustomerCompany string
	CustomerContact string
	CustomerEmail   string
	AddressLines    []string

	Lines    []Line
	Gross    decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Render はA4一枚の請求書を書き出す。
func Render(w io.Writer, d Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, d.StoreName)
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "INVOICE")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(50, 8, "Order ID: "+strconv.FormatInt(d.OrderID, 10))
	pdf.Cell(80, 8, "Order Date: "+d.OrderDate.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(50, 8, "Status: "+d.Status)
	pdf.Ln(10)

	// 請求先
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	for _, s := range append([]string{d.CustomerCompany, d.CustomerContact, d.CustomerEmail}, d.AddressLines...) {
		if s == "" {
			continue
		}
		pdf.Cell(100, 8, s)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(70, 8, "Product", "1", 0, "C", false, 0, "")
	pdf.CellFormat(15, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Discount", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	for _, l := range d.Lines {
		pdf.CellFormat(70, 8, l.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(15, 8, strconv.FormatInt(l.Quantity, 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, l.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, l.Discount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, l.Total.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	summary := []struct {
		label string
		v     decimal.Decimal
	}{
		{"Subtotal:", d.Gross},
		{"Discount:", d.Discount},
		{"Grand Total:", d.Total},
	}
	for _, s := range summary {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(145, 8, s.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(30, 8, s.v.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "render invoice")
	}
	return nil
}
