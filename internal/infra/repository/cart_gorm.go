package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// 明細は常にProduct→Categoryまで明示的に読む
func (r *CartGormRepository) withProduct(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Product").Preload("Product.Category")
}

// 同一商品は数量加算、無ければ新規作成。
// 加算後に上限を超えるならErrInvalidArgumentで何も書かない
func (r *CartGormRepository) AddOrMerge(ctx context.Context, customerID int64, productID int64, qty int64) (model.CartItem, error) {
	if qty <= 0 || qty > model.MaxCartQuantity {
		return model.CartItem{}, repo.ErrInvalidArgument
	}

	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("customer_id = ? AND product_id = ?", customerID, productID).
			First(&item).Error

		if err == nil {
			id = item.ID
			return increment(tx, item, qty)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成
		newItem := model.CartItem{
			CustomerID: customerID,
			ProductID:  productID,
			Quantity:   qty,
		}
		// 失敗してもtx全体が壊れないようにsavepointで囲む
		err = tx.Transaction(func(sp *gorm.DB) error {
			return sp.Create(&newItem).Error
		})
		if err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
			// 同時に作られていたら加算に切り替える
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("customer_id = ? AND product_id = ?", customerID, productID).
				First(&item).Error; err != nil {
				return err
			}
			id = item.ID
			return increment(tx, item, qty)
		}
		id = newItem.ID
		return nil
	})
	if errors.Is(err, repo.ErrInvalidArgument) {
		return model.CartItem{}, err
	}
	if err != nil {
		return model.CartItem{}, errors.Wrap(err, "add or merge cart item")
	}

	var out model.CartItem
	if err := r.withProduct(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return model.CartItem{}, errors.Wrap(err, "reload cart item")
	}
	return out, nil
}

// itemはロック済みの行
func increment(tx *gorm.DB, item model.CartItem, qty int64) error {
	if item.Quantity > model.MaxCartQuantity-qty {
		return repo.ErrInvalidArgument
	}
	res := tx.Model(&model.CartItem{}).
		Where("id = ?", item.ID).
		Update("quantity", gorm.Expr("quantity + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 顧客のカート明細（id順）
func (r *CartGormRepository) LinesFor(ctx context.Context, customerID int64) ([]model.CartItem, error) {
	var items []model.CartItem
	if err := r.withProduct(ctx).
		Where("customer_id = ?", customerID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, errors.Wrap(err, "list cart items")
	}
	return items, nil
}

// チェックアウト用。明細を行ロックして読む
func (r *CartGormRepository) LinesForUpdate(ctx context.Context, customerID int64) ([]model.CartItem, error) {
	var items []model.CartItem
	if err := r.withProduct(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ?", customerID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, errors.Wrap(err, "lock cart items")
	}
	return items, nil
}

func (r *CartGormRepository) SumQuantity(ctx context.Context, customerID int64) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return 0, errors.Wrap(err, "sum cart quantity")
	}
	return total, nil
}

// 明細の数量を更新。無い明細は何もしない
func (r *CartGormRepository) SetQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	if qty <= 0 || qty > model.MaxCartQuantity {
		return repo.ErrInvalidArgument
	}
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", cartItemID).
		Update("quantity", qty)
	if res.Error != nil {
		return errors.Wrap(res.Error, "set cart quantity")
	}
	return nil
}

// 明細を削除。無い明細は何もしない
func (r *CartGormRepository) Remove(ctx context.Context, cartItemID int64) error {
	if err := r.db.WithContext(ctx).Delete(&model.CartItem{}, cartItemID).Error; err != nil {
		return errors.Wrap(err, "remove cart item")
	}
	return nil
}

// 明細を取得
func (r *CartGormRepository) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("id = ?", cartItemID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, errors.Wrap(err, "find cart item")
	}
	return item, nil
}

// チェックアウトで読んだ明細を消す。
// 消えた件数が合わなければ他で消費済みなのでErrConflict
func (r *CartGormRepository) DeleteLines(ctx context.Context, customerID int64, cartItemIDs []int64) error {
	if len(cartItemIDs) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Where("customer_id = ? AND id IN ?", customerID, cartItemIDs).
		Delete(&model.CartItem{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete cart items")
	}
	if res.RowsAffected != int64(len(cartItemIDs)) {
		return repo.ErrConflict
	}
	return nil
}
