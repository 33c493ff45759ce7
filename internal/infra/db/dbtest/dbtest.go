// Package dbtest はテスト用のインメモリDBとデータ投入ヘルパー。
package dbtest

import (
	"fmt"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/infra/db"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// New はテストごとに独立したsqliteを作ってmigrateする。
// 接続は1本だけ。tx中にtx以外のハンドルを使うと止まるので注意
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := db.Open(sqlite.Open(dsn), false)
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb, zaptest.NewLogger(t)))
	return gdb
}

func Category(t testing.TB, gdb *gorm.DB, name string) model.Category {
	t.Helper()
	c := model.Category{Name: name}
	require.NoError(t, gdb.Create(&c).Error)
	return c
}

func Product(t testing.TB, gdb *gorm.DB, categoryID int64, name string, price string) model.Product {
	t.Helper()
	p := model.Product{
		Name:       name,
		UnitPrice:  decimal.RequireFromString(price),
		CategoryID: categoryID,
	}
	require.NoError(t, gdb.Create(&p).Error)
	return p
}

func Customer(t testing.TB, gdb *gorm.DB, email string) model.Customer {
	t.Helper()
	c := model.Customer{Email: email, CompanyName: "Acme", ContactName: "Taro"}
	require.NoError(t, gdb.Create(&c).Error)
	return c
}

// Discount は [start, end) の割引を作る。
func Discount(t testing.TB, gdb *gorm.DB, productID int64, percent string, start, end time.Time) model.Discount {
	t.Helper()
	d := model.Discount{
		ProductID:       productID,
		Code:            "CODE",
		Title:           "sale",
		DiscountPercent: decimal.RequireFromString(percent),
		StartTime:       start.UTC(),
		EndTime:         end.UTC(),
	}
	require.NoError(t, gdb.Create(&d).Error)
	return d
}

func CartLine(t testing.TB, gdb *gorm.DB, customerID, productID, qty int64) model.CartItem {
	t.Helper()
	ci := model.CartItem{CustomerID: customerID, ProductID: productID, Quantity: qty}
	require.NoError(t, gdb.Create(&ci).Error)
	return ci
}
