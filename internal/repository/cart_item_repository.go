package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 顧客ごとのカート明細。
// 他人の明細かどうかの判定は呼び出し側（usecase）の責任。
type CartItemRepository interface {
	// 同一商品は数量加算、無ければ新規。Product（+Category）付きで返す
	AddOrMerge(ctx context.Context, customerID int64, productID int64, qty int64) (model.CartItem, error)
	// id順。Product・Categoryを明示的にpreload
	LinesFor(ctx context.Context, customerID int64) ([]model.CartItem, error)
	// チェックアウト用。行ロック付き
	LinesForUpdate(ctx context.Context, customerID int64) ([]model.CartItem, error)
	// 数量の合計（ヘッダーのバッジ用）
	SumQuantity(ctx context.Context, customerID int64) (int64, error)
	// qty<=0はErrInvalidArgument。明細が無ければ何もしない
	SetQuantity(ctx context.Context, cartItemID int64, qty int64) error
	// 無ければ何もしない
	Remove(ctx context.Context, cartItemID int64) error
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	// 指定した明細を全部消す。1件でも消えていたらErrConflict
	DeleteLines(ctx context.Context, customerID int64, cartItemIDs []int64) error
}
