package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CustomerRepository interface {
	// 見つからなければErrNotFound
	FindByEmail(ctx context.Context, email string) (model.Customer, error)
	FindByID(ctx context.Context, customerID int64) (model.Customer, error)
	// 住所・連絡先だけ更新する
	UpdateContact(ctx context.Context, c model.Customer) error
}
