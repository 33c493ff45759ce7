package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// CSRFトークンをecho.Contextに置くキー
const csrfContextKey = "csrf"

// /cart 以下のページ用（カート表示・チェックアウト・注文確認）
type CheckoutHandler struct {
	cart   *usecase.CartUsecase
	orders *usecase.OrderUsecase
}

func NewCheckoutHandler(cart *usecase.CartUsecase, orders *usecase.OrderUsecase) *CheckoutHandler {
	return &CheckoutHandler{cart: cart, orders: orders}
}

type CartPageResponse struct {
	Cart  usecase.CartOutput `json:"cart"`
	Error string             `json:"error,omitempty"`
}

type CheckoutPreviewResponse struct {
	Cart      usecase.CartOutput `json:"cart"`
	CSRFToken string             `json:"csrfToken"`
}

// csrfCookieSecure はhttpsのみでCSRF cookieを送るか
func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, csrfCookieSecure bool, auth ...echo.MiddlewareFunc) {
	g := e.Group("/cart", auth...)
	g.Use(echomw.CSRFWithConfig(echomw.CSRFConfig{
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		ContextKey:     csrfContextKey,
		CookieName:     "_csrf",
		CookiePath:     "/cart",
		CookieSecure:   csrfCookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteStrictMode,
	}))

	g.GET("", h.cartPage)
	g.GET("/checkout", h.preview)
	g.POST("/checkout", h.checkout)
	g.GET("/orders", h.listOrders)
	g.GET("/orders/:id/confirmation", h.confirmation)
	g.GET("/orders/:id/invoice", h.invoice)
}

func (h *CheckoutHandler) cartPage(c echo.Context) error {
	email, ok := middleware.EmailFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.cart.GetCart(c.Request().Context(), email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, CartPageResponse{Cart: out, Error: c.QueryParam("error")})
}

// 確定前の金額確認。空なら /cart に戻す
func (h *CheckoutHandler) preview(c echo.Context) error {
	email, ok := middleware.EmailFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.cart.GetCart(c.Request().Context(), email)
	if err != nil {
		return writeError(c, err)
	}
	if len(out.Items) == 0 {
		return c.Redirect(http.StatusFound, "/cart?error=empty")
	}

	token, _ := c.Get(csrfContextKey).(string)
	return c.JSON(http.StatusOK, CheckoutPreviewResponse{Cart: out, CSRFToken: token})
}

// フォーム送信。結果は常に303で返す
func (h *CheckoutHandler) checkout(c echo.Context) error {
	email, ok := middleware.EmailFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, found, err := h.orders.PlaceOrder(c.Request().Context(), email)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/cart?error=checkout")
	}
	if !found {
		return c.Redirect(http.StatusSeeOther, "/cart?error=empty")
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/cart/orders/%d/confirmation", out.OrderID))
}

func (h *CheckoutHandler) listOrders(c echo.Context) error {
	email, ok := middleware.EmailFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.orders.ListMyOrders(c.Request().Context(), email, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) confirmation(c echo.Context) error {
	email, ok := middleware.EmailFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.orders.Confirmation(c.Request().Context(), email, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) invoice(c echo.Context) error {
	email, ok := middleware.EmailFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	pdf, err := h.orders.Invoice(c.Request().Context(), email, id)
	if err != nil {
		return writeError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=invoice-%d.pdf", id))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
