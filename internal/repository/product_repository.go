package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 一覧検索。nilは絞り込みなし
type ProductListQuery struct {
	CategoryID   *int64
	Discontinued *bool
}

// カタログ（商品・カテゴリ）の読み取りだけを約束。
type CatalogRepository interface {
	ListProducts(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindProduct(ctx context.Context, id int64) (model.Product, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}
