package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

type DiscountGormRepository struct {
	db *gorm.DB
}

func NewDiscountGormRepository(db *gorm.DB) *DiscountGormRepository {
	return &DiscountGormRepository{db: db}
}

// asOfで有効な割引。[start_time, end_time) の半開区間。
// 複数あれば start_time が新しいもの、次に id が小さいもの。
// 率や期間が不正な行は無視する
func (r *DiscountGormRepository) FindActive(ctx context.Context, productID int64, asOf time.Time) (model.Discount, bool, error) {
	asOf = asOf.UTC()
	var ds []model.Discount
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND start_time <= ? AND end_time > ?", productID, asOf, asOf).
		Order("start_time desc").
		Order("id asc").
		Find(&ds).Error
	if err != nil {
		return model.Discount{}, false, errors.Wrap(err, "find active discount")
	}
	for _, d := range ds {
		if d.Valid() {
			return d, true, nil
		}
	}
	return model.Discount{}, false, nil
}
