package usecase

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/invoice"
	repo "storefront/internal/repository"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderUsecase struct {
	tx         repo.TransactionManager
	customers  repo.CustomerRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	clock      Clock
	log        *zap.Logger
	storeName  string
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	customers repo.CustomerRepository,
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	clock Clock,
	log *zap.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		tx:         tx,
		customers:  customers,
		orders:     orders,
		orderItems: orderItems,
		clock:      clock,
		log:        log,
		storeName:  "Storefront",
	}
}

type OrderItemOutput struct {
	ProductID      int64           `json:"productId"`
	ProductName    string          `json:"productName"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
}

type OrderOutput struct {
	OrderID        int64             `json:"orderId"`
	CustomerID     int64             `json:"customerId"`
	OrderDate      time.Time         `json:"orderDate"`
	Status         string            `json:"status"`
	GrossAmount    decimal.Decimal   `json:"grossAmount"`
	DiscountAmount decimal.Decimal   `json:"discountAmount"`
	TotalAmount    decimal.Decimal   `json:"totalAmount"`
	Items          []OrderItemOutput `json:"items"`
}

type OrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int64         `json:"total"`
}

// PlaceOrder はカートを注文に変換する。全部1トランザクション。
// 顧客が居ない・カートが空なら found=false（何も書かない）。
// 途中で失敗したら全部rollbackして500（ErrPersistence）
func (u *OrderUsecase) PlaceOrder(ctx context.Context, email string) (OrderOutput, bool, error) {
	if email == "" {
		return OrderOutput{}, false, invalid("invalid email")
	}

	var (
		out   OrderOutput
		found bool
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Customers().FindByEmail(ctx, email)
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		//明細を行ロックして読む
		lines, err := r.CartItems().LinesForUpdate(ctx, c.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}

		// 先に注文を作ってIDを得る
		orderDate := u.clock.Now()
		order := model.Order{
			CustomerID:     c.ID,
			OrderDate:      orderDate,
			Status:         model.OrderStatusCompleted,
			TotalAmount:    decimal.Zero,
			DiscountAmount: decimal.Zero,
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return err
		}
		order.ID = orderID

		//明細ごとに割引を解決してスナップショットを作る
		items := make([]model.OrderItem, 0, len(lines))
		prices := make([]model.LinePrice, 0, len(lines))
		ids := make([]int64, 0, len(lines))
		for _, l := range lines {
			if l.Product == nil {
				return errors.Errorf("cart item %d has no product", l.ID)
			}
			d, active, err := r.Discounts().FindActive(ctx, l.ProductID, orderDate)
			if err != nil {
				return err
			}
			var dp *model.Discount
			if active {
				dp = &d
			}
			price := model.PriceLine(l.Product.UnitPrice, l.Quantity, dp)
			prices = append(prices, price)
			ids = append(ids, l.ID)
			items = append(items, model.OrderItem{
				ProductID:           l.ProductID,
				ProductNameSnapshot: l.Product.Name,
				Quantity:            l.Quantity,
				UnitPrice:           price.UnitPrice,
				DiscountAmount:      price.Discount,
			})
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return err
		}

		totals := model.SumLines(prices)
		if err := r.Orders().UpdateTotals(ctx, orderID, totals.Net, totals.Discount); err != nil {
			return err
		}
		order.TotalAmount = totals.Net
		order.DiscountAmount = totals.Discount

		// 他で消費済みならErrConflictでrollback
		if err := r.CartItems().DeleteLines(ctx, c.ID, ids); err != nil {
			return err
		}

		after, err := auditJSON(map[string]any{
			"orderId":        orderID,
			"lines":          len(items),
			"totalAmount":    totals.Net,
			"discountAmount": totals.Discount,
		})
		if err != nil {
			return err
		}
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorCustomerID: c.ID,
			Action:          model.AuditActionOrderPlaced,
			ResourceType:    model.AuditResourceOrder,
			ResourceID:      orderID,
			AfterJSON:       after,
			CreatedAt:       orderDate,
		}); err != nil {
			return err
		}

		out = toOrderOutput(order, items)
		found = true
		return nil
	})
	if err != nil {
		u.log.Error("place order rolled back", zap.String("email", email), zap.Error(err))
		return OrderOutput{}, false, wrapHTTPError(http.StatusInternalServerError, "checkout failed", repo.ErrPersistence)
	}
	if found {
		u.log.Info("order placed",
			zap.Int64("order_id", out.OrderID),
			zap.Int64("customer_id", out.CustomerID),
			zap.String("total", out.TotalAmount.StringFixed(2)),
		)
	}
	return out, found, nil
}

// Confirmation は注文の確認表示。本人の注文以外は404
func (u *OrderUsecase) Confirmation(ctx context.Context, email string, orderID int64) (OrderOutput, error) {
	_, o, err := u.ownedOrder(ctx, email, orderID)
	if err != nil {
		return OrderOutput{}, err
	}

	items, err := u.orderItems.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, dbError()
	}
	return toOrderOutput(o, items), nil
}

// ListMyOrders は注文履歴（新しい順）。明細は含めない
func (u *OrderUsecase) ListMyOrders(ctx context.Context, email string, page int, limit int) (OrderListOutput, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	c, err := u.customers.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderListOutput{Items: []OrderOutput{}, Page: page, Limit: limit}, nil
	}
	if err != nil {
		return OrderListOutput{}, dbError()
	}

	orders, total, err := u.orders.ListByCustomerID(ctx, c.ID, page, limit)
	if err != nil {
		return OrderListOutput{}, dbError()
	}

	items := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderOutput(o, nil))
	}
	return OrderListOutput{Items: items, Page: page, Limit: limit, Total: total}, nil
}

// Invoice は本人の注文の請求書PDFを返す。
func (u *OrderUsecase) Invoice(ctx context.Context, email string, orderID int64) ([]byte, error) {
	c, o, err := u.ownedOrder(ctx, email, orderID)
	if err != nil {
		return nil, err
	}
	items, err := u.orderItems.ListByOrderID(ctx, o.ID)
	if err != nil {
		return nil, dbError()
	}
	out := toOrderOutput(o, items)

	doc := invoice.Document{
		StoreName:       u.storeName,
		OrderID:         out.OrderID,
		OrderDate:       out.OrderDate,
		Status:          out.Status,
		CustomerCompany: c.CompanyName,
		CustomerContact: c.ContactName,
		CustomerEmail:   c.Email,
		AddressLines:    []string{c.Address, joinNonEmpty(c.City, c.Region, c.PostalCode), c.Country},
		Gross:           out.GrossAmount,
		Discount:        out.DiscountAmount,
		Total:           out.TotalAmount,
	}
	for _, it := range out.Items {
		doc.Lines = append(doc.Lines, invoice.Line{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.DiscountAmount,
			Total:       it.LineTotal,
		})
	}

	var buf bytes.Buffer
	if err := invoice.Render(&buf, doc); err != nil {
		u.log.Error("render invoice", zap.Int64("order_id", o.ID), zap.Error(err))
		return nil, wrapHTTPError(http.StatusInternalServerError, "invoice error", err)
	}
	return buf.Bytes(), nil
}

func (u *OrderUsecase) ownedOrder(ctx context.Context, email string, orderID int64) (model.Customer, model.Order, error) {
	if orderID <= 0 {
		return model.Customer{}, model.Order{}, invalid("invalid order id")
	}
	c, err := u.customers.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, model.Order{}, notFound()
	}
	if err != nil {
		return model.Customer{}, model.Order{}, dbError()
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, model.Order{}, notFound()
	}
	if err != nil {
		return model.Customer{}, model.Order{}, dbError()
	}
	// 他人の注文は存在しないことにする
	if o.CustomerID != c.ID {
		return model.Customer{}, model.Order{}, notFound()
	}
	return c, o, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	out := OrderOutput{
		OrderID:        o.ID,
		CustomerID:     o.CustomerID,
		OrderDate:      o.OrderDate,
		Status:         string(o.Status),
		GrossAmount:    o.TotalAmount.Add(o.DiscountAmount),
		DiscountAmount: o.DiscountAmount,
		TotalAmount:    o.TotalAmount,
		Items:          make([]OrderItemOutput, 0, len(items)),
	}
	for _, it := range items {
		sub := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
		out.Items = append(out.Items, OrderItemOutput{
			ProductID:      it.ProductID,
			ProductName:    it.ProductNameSnapshot,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			DiscountAmount: it.DiscountAmount,
			LineTotal:      sub.Sub(it.DiscountAmount).Round(2),
		})
	}
	return out
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
