package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

type customerGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewCustomerGormRepository(db *gorm.DB) repo.CustomerRepository {
	return &customerGormRepository{db: db}
}

// emailで顧客を1件取得
func (r *customerGormRepository) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&c).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, errors.Wrap(err, "find customer by email")
	}
	return c, nil
}

// IDで顧客を1件取得
func (r *customerGormRepository) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, errors.Wrap(err, "find customer")
	}
	return c, nil
}

// 住所・連絡先だけ更新（emailは変えない）
func (r *customerGormRepository) UpdateContact(ctx context.Context, c model.Customer) error {
	res := r.db.WithContext(ctx).Model(&model.Customer{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"company_name": c.CompanyName,
		"contact_name": c.ContactName,
		"address":      c.Address,
		"city":         c.City,
		"region":       c.Region,
		"postal_code":  c.PostalCode,
		"country":      c.Country,
		"phone":        c.Phone,
		"fax":          c.Fax,
	})
	if res.Error != nil {
		return errors.Wrap(res.Error, "update customer")
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
