package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) UpdateContact(ctx context.Context, c model.Customer) error {
	return m.Called(ctx, c).Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) AddOrMerge(ctx context.Context, customerID, productID, qty int64) (model.CartItem, error) {
	args := m.Called(ctx, customerID, productID, qty)
	ci, _ := args.Get(0).(model.CartItem)
	return ci, args.Error(1)
}

func (m *CartItemRepoMock) LinesFor(ctx context.Context, customerID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, customerID)
	ls, _ := args.Get(0).([]model.CartItem)
	return ls, args.Error(1)
}

func (m *CartItemRepoMock) LinesForUpdate(ctx context.Context, customerID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, customerID)
	ls, _ := args.Get(0).([]model.CartItem)
	return ls, args.Error(1)
}

func (m *CartItemRepoMock) SumQuantity(ctx context.Context, customerID int64) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CartItemRepoMock) SetQuantity(ctx context.Context, cartItemID, qty int64) error {
	return m.Called(ctx, cartItemID, qty).Error(0)
}

func (m *CartItemRepoMock) Remove(ctx context.Context, cartItemID int64) error {
	return m.Called(ctx, cartItemID).Error(0)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	ci, _ := args.Get(0).(model.CartItem)
	return ci, args.Error(1)
}

func (m *CartItemRepoMock) DeleteLines(ctx context.Context, customerID int64, ids []int64) error {
	return m.Called(ctx, customerID, ids).Error(0)
}

type DiscountRepoMock struct{ mock.Mock }

func (m *DiscountRepoMock) FindActive(ctx context.Context, productID int64, asOf time.Time) (model.Discount, bool, error) {
	args := m.Called(ctx, productID, asOf)
	d, _ := args.Get(0).(model.Discount)
	return d, args.Bool(1), args.Error(2)
}

type CatalogRepoMock struct{ mock.Mock }

func (m *CatalogRepoMock) ListProducts(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *CatalogRepoMock) FindProduct(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *CatalogRepoMock) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.Category)
	return cs, args.Error(1)
}
