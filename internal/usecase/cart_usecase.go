package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/validator"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// CartUsecase は /api/cart と /cart の業務ロジックです。
// 顧客はemailで明示的に受け取る（リクエストの状態は読まない）。
type CartUsecase struct {
	customers repo.CustomerRepository
	cartItems repo.CartItemRepository
	discounts repo.DiscountRepository
	catalog   repo.CatalogRepository
	clock     Clock
}

func NewCartUsecase(
	customers repo.CustomerRepository,
	cartItems repo.CartItemRepository,
	discounts repo.DiscountRepository,
	catalog repo.CatalogRepository,
	clock Clock,
) *CartUsecase {
	return &CartUsecase{
		customers: customers,
		cartItems: cartItems,
		discounts: discounts,
		catalog:   catalog,
		clock:     clock,
	}
}

type DiscountOutput struct {
	ID      int64           `json:"discountId"`
	Code    string          `json:"code"`
	Title   string          `json:"title"`
	Percent decimal.Decimal `json:"discountPercent"`
}

// 1明細。discountは有効な割引が無ければnull
type CartLineOutput struct {
	CartItemID     int64           `json:"cartItemId"`
	ProductID      int64           `json:"productId"`
	ProductName    string          `json:"productName"`
	CategoryName   string          `json:"categoryName,omitempty"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Quantity       int64           `json:"quantity"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       *DiscountOutput `json:"discount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
}

type CartOutput struct {
	Items         []CartLineOutput `json:"items"`
	CartTotal     decimal.Decimal  `json:"cartTotal"`
	DiscountTotal decimal.Decimal  `json:"discountTotal"`
	FinalTotal    decimal.Decimal  `json:"finalTotal"`
}

// POST /api/addtocart
type AddCartInput struct {
	Email     string `json:"email"`
	ProductID int64  `json:"id"`
	Quantity  int64  `json:"qty"`
}

func (in *AddCartInput) Validate() error {
	email, err := validator.Email(in.Email)
	if err != nil {
		return invalid("invalid email")
	}
	in.Email = email
	if validator.ID(in.ProductID) != nil {
		return invalid("invalid product id")
	}
	if validator.Quantity(in.Quantity) != nil {
		return invalid("invalid quantity")
	}
	return nil
}

// PUT /api/cart/update
type UpdateCartItemInput struct {
	CartItemID int64 `json:"cartItemId"`
	Quantity   int64 `json:"quantity"`
}

func (in UpdateCartItemInput) Validate() error {
	if validator.ID(in.CartItemID) != nil {
		return invalid("invalid cart item id")
	}
	if validator.Quantity(in.Quantity) != nil {
		return invalid("invalid quantity")
	}
	return nil
}

// GetCart はカートの明細と合計。顧客が居なければ空カート
func (u *CartUsecase) GetCart(ctx context.Context, email string) (CartOutput, error) {
	c, found, err := u.findCustomer(ctx, email)
	if err != nil {
		return CartOutput{}, err
	}
	if !found {
		return buildCartOutput(nil), nil
	}

	lines, err := u.cartItems.LinesFor(ctx, c.ID)
	if err != nil {
		return CartOutput{}, dbError()
	}

	now := u.clock.Now()
	out := make([]CartLineOutput, 0, len(lines))
	for _, l := range lines {
		lo, err := u.lineOutput(ctx, l, now)
		if err != nil {
			return CartOutput{}, err
		}
		out = append(out, lo)
	}
	return buildCartOutput(out), nil
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, in AddCartInput) (CartLineOutput, error) {
	if err := in.Validate(); err != nil {
		return CartLineOutput{}, err
	}

	c, found, err := u.findCustomer(ctx, in.Email)
	if err != nil {
		return CartLineOutput{}, err
	}
	if !found {
		return CartLineOutput{}, notFound()
	}

	// 商品チェック（販売終了は不可）
	p, err := u.catalog.FindProduct(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartLineOutput{}, notFound()
	}
	if err != nil {
		return CartLineOutput{}, dbError()
	}
	if p.Discontinued {
		return CartLineOutput{}, invalid("product discontinued")
	}

	line, err := u.cartItems.AddOrMerge(ctx, c.ID, in.ProductID, in.Quantity)
	if errors.Is(err, repo.ErrInvalidArgument) {
		return CartLineOutput{}, invalid("invalid quantity")
	}
	if err != nil {
		return CartLineOutput{}, dbError()
	}

	return u.lineOutput(ctx, line, u.clock.Now())
}

// UpdateQuantity は数量変更。0以下は400で何も書かない。
// 明細が無ければ何もしない。他人の明細は404
func (u *CartUsecase) UpdateQuantity(ctx context.Context, email string, in UpdateCartItemInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	ok, err := u.ownedOrAbsent(ctx, email, in.CartItemID)
	if err != nil || !ok {
		return err
	}

	if err := u.cartItems.SetQuantity(ctx, in.CartItemID, in.Quantity); err != nil {
		if errors.Is(err, repo.ErrInvalidArgument) {
			return invalid("invalid quantity")
		}
		return dbError()
	}
	return nil
}

// Remove は明細削除。無ければ何もしない。他人の明細は404
func (u *CartUsecase) Remove(ctx context.Context, email string, cartItemID int64) error {
	if validator.ID(cartItemID) != nil {
		return invalid("invalid cart item id")
	}
	ok, err := u.ownedOrAbsent(ctx, email, cartItemID)
	if err != nil || !ok {
		return err
	}

	if err := u.cartItems.Remove(ctx, cartItemID); err != nil {
		return dbError()
	}
	return nil
}

// Count は数量の合計。顧客が居なければ0
func (u *CartUsecase) Count(ctx context.Context, email string) (int64, error) {
	c, found, err := u.findCustomer(ctx, email)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	n, err := u.cartItems.SumQuantity(ctx, c.ID)
	if err != nil {
		return 0, dbError()
	}
	return n, nil
}

func (u *CartUsecase) findCustomer(ctx context.Context, email string) (model.Customer, bool, error) {
	email, err := validator.Email(email)
	if err != nil {
		return model.Customer{}, false, invalid("invalid email")
	}
	c, err := u.customers.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, false, nil
	}
	if err != nil {
		return model.Customer{}, false, dbError()
	}
	return c, true, nil
}

// 明細が無ければ (false, nil)。他人の明細は404
func (u *CartUsecase) ownedOrAbsent(ctx context.Context, email string, cartItemID int64) (bool, error) {
	c, found, err := u.findCustomer(ctx, email)
	if err != nil {
		return false, err
	}
	if !found {
		return false, notFound()
	}

	item, err := u.cartItems.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, dbError()
	}
	if item.CustomerID != c.ID {
		return false, notFound()
	}
	return true, nil
}

func (u *CartUsecase) lineOutput(ctx context.Context, l model.CartItem, now time.Time) (CartLineOutput, error) {
	if l.Product == nil {
		return CartLineOutput{}, dbError()
	}
	d, active, err := u.discounts.FindActive(ctx, l.ProductID, now)
	if err != nil {
		return CartLineOutput{}, dbError()
	}
	var dp *model.Discount
	if active {
		dp = &d
	}
	return toCartLineOutput(l, dp), nil
}

func toCartLineOutput(l model.CartItem, d *model.Discount) CartLineOutput {
	price := model.PriceLine(l.Product.UnitPrice, l.Quantity, d)
	out := CartLineOutput{
		CartItemID:     l.ID,
		ProductID:      l.ProductID,
		ProductName:    l.Product.Name,
		UnitPrice:      price.UnitPrice,
		Quantity:       l.Quantity,
		Subtotal:       price.Subtotal,
		DiscountAmount: price.Discount,
	}
	if l.Product.Category != nil {
		out.CategoryName = l.Product.Category.Name
	}
	if d != nil {
		out.Discount = &DiscountOutput{
			ID:      d.ID,
			Code:    d.Code,
			Title:   d.Title,
			Percent: d.DiscountPercent,
		}
	}
	return out
}

func buildCartOutput(lines []CartLineOutput) CartOutput {
	if lines == nil {
		lines = []CartLineOutput{}
	}
	prices := make([]model.LinePrice, 0, len(lines))
	for _, l := range lines {
		prices = append(prices, model.LinePrice{Subtotal: l.Subtotal, Discount: l.DiscountAmount})
	}
	t := model.SumLines(prices)
	return CartOutput{
		Items:         lines,
		CartTotal:     t.Gross,
		DiscountTotal: t.Discount,
		FinalTotal:    t.Net,
	}
}
