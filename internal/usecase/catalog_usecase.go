package usecase

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/go-faster/errors"
)

// CatalogUsecase は商品・カテゴリの読み取り（公開API）。
type CatalogUsecase struct {
	catalog repo.CatalogRepository
}

// DI
func NewCatalogUsecase(catalog repo.CatalogRepository) *CatalogUsecase {
	return &CatalogUsecase{catalog: catalog}
}

// 一覧の絞り込み。nilは条件なし
type ListProductsInput struct {
	CategoryID   *int64
	Discontinued *bool
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if in.CategoryID != nil && *in.CategoryID <= 0 {
		return nil, invalid("invalid category id")
	}
	ps, err := u.catalog.ListProducts(ctx, repo.ProductListQuery{
		CategoryID:   in.CategoryID,
		Discontinued: in.Discontinued,
	})
	if err != nil {
		return nil, dbError()
	}
	return ps, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, invalid("invalid id")
	}
	p, err := u.catalog.FindProduct(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, notFound()
	}
	if err != nil {
		return model.Product{}, dbError()
	}
	return p, nil
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cs, err := u.catalog.ListCategories(ctx)
	if err != nil {
		return nil, dbError()
	}
	return cs, nil
}
