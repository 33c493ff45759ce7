package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

type DiscountRepository interface {
	// asOf時点で有効な割引を1件返す。無ければ found=false（エラーではない）。
	// 重複していたら start_time が新しいもの、同じなら id が小さいものを選ぶ。
	FindActive(ctx context.Context, productID int64, asOf time.Time) (model.Discount, bool, error)
}
