package usecase

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/validator"

	"github.com/go-faster/errors"
)

// CustomerUsecase は顧客プロフィール（住所・連絡先）の参照と更新。
type CustomerUsecase struct {
	tx        repo.TransactionManager
	customers repo.CustomerRepository
	clock     Clock
}

func NewCustomerUsecase(tx repo.TransactionManager, customers repo.CustomerRepository, clock Clock) *CustomerUsecase {
	return &CustomerUsecase{tx: tx, customers: customers, clock: clock}
}

// PUT /api/customer/:email
type UpdateCustomerInput struct {
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Region      string `json:"region"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
	Fax         string `json:"fax"`
}

func (in UpdateCustomerInput) Validate() error {
	limits := []struct {
		v   string
		max int
	}{
		{in.CompanyName, 255}, {in.ContactName, 255}, {in.Address, 255},
		{in.City, 100}, {in.Region, 100}, {in.PostalCode, 20},
		{in.Country, 100}, {in.Phone, 30}, {in.Fax, 30},
	}
	for _, l := range limits {
		if validator.Len(l.v, l.max) != nil {
			return invalid("field too long")
		}
	}
	if in.CompanyName == "" {
		return invalid("companyName is required")
	}
	return nil
}

func (u *CustomerUsecase) Get(ctx context.Context, email string) (model.Customer, error) {
	c, err := u.customers.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, notFound()
	}
	if err != nil {
		return model.Customer{}, dbError()
	}
	return c, nil
}

// UpdateContact は住所・連絡先を更新し、監査ログを同じtxで残す。
func (u *CustomerUsecase) UpdateContact(ctx context.Context, email string, in UpdateCustomerInput) (model.Customer, error) {
	if err := in.Validate(); err != nil {
		return model.Customer{}, err
	}

	var updated model.Customer
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Customers().FindByEmail(ctx, email)
		if err != nil {
			return err
		}

		after := before
		after.CompanyName = in.CompanyName
		after.ContactName = in.ContactName
		after.Address = in.Address
		after.City = in.City
		after.Region = in.Region
		after.PostalCode = in.PostalCode
		after.Country = in.Country
		after.Phone = in.Phone
		after.Fax = in.Fax

		if err := r.Customers().UpdateContact(ctx, after); err != nil {
			return err
		}

		bj, err := auditJSON(before)
		if err != nil {
			return err
		}
		aj, err := auditJSON(after)
		if err != nil {
			return err
		}
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorCustomerID: before.ID,
			Action:          model.AuditActionUpdateCustomer,
			ResourceType:    model.AuditResourceCustomer,
			ResourceID:      before.ID,
			BeforeJSON:      bj,
			AfterJSON:       aj,
			CreatedAt:       u.clock.Now(),
		}); err != nil {
			return err
		}

		updated = after
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, notFound()
	}
	if err != nil {
		return model.Customer{}, dbError()
	}
	return updated, nil
}
