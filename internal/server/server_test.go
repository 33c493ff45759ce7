package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/infra/db/dbtest"
	"storefront/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type testServer struct {
	e      *echo.Echo
	db     *gorm.DB
	secret string
	p1, p2 model.Product
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	cfg := config.Config{JWTSecret: "test-secret", CustomerRole: "customer"}
	gdb := dbtest.New(t)

	cat := dbtest.Category(t, gdb, "Beverages")
	p1 := dbtest.Product(t, gdb, cat.ID, "Chai", "10.00")
	p2 := dbtest.Product(t, gdb, cat.ID, "Salt", "5.00")
	dbtest.Customer(t, gdb, "a@example.com")
	dbtest.Customer(t, gdb, "b@example.com")
	dbtest.Discount(t, gdb, p1.ID, "0.10", testNow.Add(-time.Hour), testNow.Add(time.Hour))

	e := New(cfg, gdb, zaptest.NewLogger(t), usecase.FixedClock{T: testNow})
	return testServer{e: e, db: gdb, secret: cfg.JWTSecret, p1: p1, p2: p2}
}

func (s testServer) token(t *testing.T, email string, roles ...string) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"roles": roles,
		"exp":   9999999999,
	}).SignedString([]byte(s.secret))
	require.NoError(t, err)
	return raw
}

type reqOpt func(*http.Request)

func withCookies(cs ...*http.Cookie) reqOpt {
	return func(r *http.Request) {
		for _, c := range cs {
			r.AddCookie(c)
		}
	}
}

func withHeader(k, v string) reqOpt {
	return func(r *http.Request) { r.Header.Set(k, v) }
}

func (s testServer) do(t *testing.T, method, path, body, token string, opts ...reqOpt) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, o := range opts {
		o(req)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func countRows(t *testing.T, gdb *gorm.DB, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(m).Count(&n).Error)
	return n
}

// =====================
// /api/cart
// =====================

func TestCartAPI_Lifecycle(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, "a@example.com", "customer")

	rec := s.do(t, http.MethodPost, "/api/addtocart", fmt.Sprintf(`{"email":"a@example.com","id":%d,"qty":2}`, s.p1.ID), tok)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodPost, "/api/addtocart", fmt.Sprintf(`{"email":"a@example.com","id":%d,"qty":1}`, s.p1.ID), tok)
	require.Equal(t, http.StatusOK, rec.Code)
	line := decode[usecase.CartLineOutput](t, rec)
	assert.Equal(t, int64(3), line.Quantity)

	rec = s.do(t, http.MethodPost, "/api/addtocart", fmt.Sprintf(`{"email":"a@example.com","id":%d,"qty":%d}`, s.p1.ID, model.MaxCartQuantity), tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/cart/a@example.com", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	lines := decode[[]usecase.CartLineOutput](t, rec)
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].Discount)
	assert.True(t, lines[0].Subtotal.Equal(decimal.NewFromInt(30)))

	rec = s.do(t, http.MethodGet, "/api/cart/count/a@example.com", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), decode[int64](t, rec))

	rec = s.do(t, http.MethodPut, "/api/cart/update", fmt.Sprintf(`{"cartItemId":%d,"quantity":0}`, line.CartItemID), tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/cart/update", fmt.Sprintf(`{"cartItemId":%d,"quantity":5}`, line.CartItemID), tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[map[string]bool](t, rec)["success"])

	var stored model.CartItem
	require.NoError(t, s.db.First(&stored, line.CartItemID).Error)
	assert.Equal(t, int64(5), stored.Quantity)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/cart/remove/%d", line.CartItemID), "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, countRows(t, s.db, &model.CartItem{}))
}

func TestCartAPI_ForeignEmailIsForbidden(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, "a@example.com", "customer")

	rec := s.do(t, http.MethodGet, "/api/cart/b@example.com", "", tok)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/cart/count/b@example.com", "", tok)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/addtocart", fmt.Sprintf(`{"email":"b@example.com","id":%d,"qty":1}`, s.p1.ID), tok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, countRows(t, s.db, &model.CartItem{}))
}

func TestCartAPI_ForeignLineIsNotFound(t *testing.T) {
	s := newTestServer(t)
	var b model.Customer
	require.NoError(t, s.db.Where("email = ?", "b@example.com").First(&b).Error)
	other := dbtest.CartLine(t, s.db, b.ID, s.p1.ID, 2)

	tok := s.token(t, "a@example.com", "customer")
	rec := s.do(t, http.MethodPut, "/api/cart/update", fmt.Sprintf(`{"cartItemId":%d,"quantity":9}`, other.ID), tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/cart/remove/%d", other.ID), "", tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int64(1), countRows(t, s.db, &model.CartItem{}))
}

func TestCartAPI_RequiresCustomerRole(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/cart/a@example.com", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/cart/a@example.com", "", s.token(t, "a@example.com", "admin"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// =====================
// /cart checkout
// =====================

// GETでCSRF cookieとトークンを取る
func (s testServer) csrf(t *testing.T, tok string) (*http.Cookie, string) {
	t.Helper()
	rec := s.do(t, http.MethodGet, "/cart", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "_csrf" {
			return c, c.Value
		}
	}
	t.Fatal("no csrf cookie")
	return nil, ""
}

func TestCheckout_FullFlow(t *testing.T) {
	s := newTestServer(t)
	var a model.Customer
	require.NoError(t, s.db.Where("email = ?", "a@example.com").First(&a).Error)
	dbtest.CartLine(t, s.db, a.ID, s.p1.ID, 2)
	dbtest.CartLine(t, s.db, a.ID, s.p2.ID, 1)
	tok := s.token(t, "a@example.com", "customer")

	rec := s.do(t, http.MethodGet, "/cart/checkout", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "_csrf" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	preview := decode[struct {
		Cart      usecase.CartOutput `json:"cart"`
		CSRFToken string             `json:"csrfToken"`
	}](t, rec)
	require.NotEmpty(t, preview.CSRFToken)
	assert.Equal(t, cookie.Value, preview.CSRFToken)
	assert.True(t, preview.Cart.CartTotal.Equal(decimal.NewFromInt(25)))
	assert.True(t, preview.Cart.DiscountTotal.Equal(decimal.NewFromInt(2)))
	assert.True(t, preview.Cart.FinalTotal.Equal(decimal.NewFromInt(23)))

	rec = s.do(t, http.MethodPost, "/cart/checkout", "", tok, withCookies(cookie), withHeader("X-CSRF-Token", preview.CSRFToken))
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	var order model.Order
	require.NoError(t, s.db.First(&order).Error)
	loc := fmt.Sprintf("/cart/orders/%d/confirmation", order.ID)
	assert.Equal(t, loc, rec.Header().Get(echo.HeaderLocation))
	assert.Zero(t, countRows(t, s.db, &model.CartItem{}))

	rec = s.do(t, http.MethodGet, loc, "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	conf := decode[usecase.OrderOutput](t, rec)
	assert.True(t, conf.TotalAmount.Equal(decimal.NewFromInt(23)))
	assert.True(t, conf.DiscountAmount.Equal(decimal.NewFromInt(2)))
	assert.Len(t, conf.Items, 2)

	rec = s.do(t, http.MethodGet, loc, "", s.token(t, "b@example.com", "customer"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/cart/orders/%d/invoice", order.ID), "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec = s.do(t, http.MethodGet, "/cart/orders", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decode[usecase.OrderListOutput](t, rec).Total)
}

func TestCheckout_RejectsMissingOrWrongCSRF(t *testing.T) {
	s := newTestServer(t)
	var a model.Customer
	require.NoError(t, s.db.Where("email = ?", "a@example.com").First(&a).Error)
	dbtest.CartLine(t, s.db, a.ID, s.p1.ID, 2)
	tok := s.token(t, "a@example.com", "customer")

	rec := s.do(t, http.MethodPost, "/cart/checkout", "", tok)
	assert.Contains(t, []int{http.StatusBadRequest, http.StatusForbidden}, rec.Code)

	cookie, _ := s.csrf(t, tok)
	rec = s.do(t, http.MethodPost, "/cart/checkout", "", tok, withCookies(cookie), withHeader("X-CSRF-Token", "forged"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Zero(t, countRows(t, s.db, &model.Order{}))
	assert.Equal(t, int64(1), countRows(t, s.db, &model.CartItem{}))
}

func TestCheckout_EmptyCartRedirects(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, "a@example.com", "customer")

	rec := s.do(t, http.MethodGet, "/cart/checkout", "", tok)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/cart?error=empty", rec.Header().Get(echo.HeaderLocation))

	cookie, token := s.csrf(t, tok)
	rec = s.do(t, http.MethodPost, "/cart/checkout", "", tok, withCookies(cookie), withHeader("X-CSRF-Token", token))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/cart?error=empty", rec.Header().Get(echo.HeaderLocation))
	assert.Zero(t, countRows(t, s.db, &model.Order{}))
}

// =====================
// catalog / customer / health
// =====================

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.db.Model(&model.Product{}).Where("id = ?", s.p2.ID).Update("discontinued", true).Error)

	rec := s.do(t, http.MethodGet, "/api/product", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Product](t, rec), 2)

	rec = s.do(t, http.MethodGet, "/api/product/discontinued/false", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	ps := decode[[]model.Product](t, rec)
	require.Len(t, ps, 1)
	assert.Equal(t, s.p1.ID, ps[0].ID)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/category/%d/product/discontinued/true", s.p1.CategoryID), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Product](t, rec), 1)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/product/%d", s.p1.ID), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Chai", decode[model.Product](t, rec).Name)

	rec = s.do(t, http.MethodGet, "/api/product/9999", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/product/discontinued/maybe", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/category", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Category](t, rec), 1)
}

func TestCustomerProfile(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, "a@example.com", "customer")

	rec := s.do(t, http.MethodPut, "/api/customer/a@example.com", `{"companyName":"Acme KK","city":"Osaka"}`, tok)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Osaka", decode[model.Customer](t, rec).City)

	rec = s.do(t, http.MethodPut, "/api/customer/b@example.com", `{"companyName":"X"}`, tok)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/customer/a@example.com", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme KK", decode[model.Customer](t, rec).CompanyName)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
