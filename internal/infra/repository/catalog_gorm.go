package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

// DI
func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// 商品一覧。カテゴリ・販売終了で絞り込み、名前順
func (r *CatalogGormRepository) ListProducts(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	tx := r.db.WithContext(ctx).Model(&model.Product{}).Preload("Category")

	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}
	if q.Discontinued != nil {
		tx = tx.Where("discontinued = ?", *q.Discontinued)
	}

	var products []model.Product
	if err := tx.Order("name asc").Order("id asc").Find(&products).Error; err != nil {
		return []model.Product{}, errors.Wrap(err, "list products")
	}
	return products, nil
}

// IDで商品を取得
func (r *CatalogGormRepository) FindProduct(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, errors.Wrap(err, "find product")
	}
	return p, nil
}

func (r *CatalogGormRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	var cs []model.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&cs).Error; err != nil {
		return []model.Category{}, errors.Wrap(err, "list categories")
	}
	return cs, nil
}
