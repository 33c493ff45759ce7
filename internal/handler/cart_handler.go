package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/cart のHTTP（JSON）
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// auth にはAuthJWT・RoleGuardを渡す
func (h *CartHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	g := e.Group("/api")
	g.GET("/cart/:email", h.getCart, auth...)
	g.POST("/addtocart", h.addToCart, auth...)
	g.PUT("/cart/update", h.update, auth...)
	g.DELETE("/cart/remove/:cartItemId", h.remove, auth...)
	g.GET("/cart/count/:email", h.count, auth...)
}

func (h *CartHandler) getCart(c echo.Context) error {
	email, ok, err := requireSelf(c, c.Param("email"))
	if !ok {
		return err
	}

	out, err := h.uc.GetCart(c.Request().Context(), email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out.Items)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	var req usecase.AddCartInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if _, ok, err := requireSelf(c, req.Email); !ok {
		return err
	}

	out, err := h.uc.AddToCart(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) update(c echo.Context) error {
	email, ok := middleware.EmailFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req usecase.UpdateCartItemInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateQuantity(c.Request().Context(), email, req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (h *CartHandler) remove(c echo.Context) error {
	email, ok := middleware.EmailFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	id, ok := parseIDParam(c, "cartItemId")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Remove(c.Request().Context(), email, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (h *CartHandler) count(c echo.Context) error {
	email, ok, err := requireSelf(c, c.Param("email"))
	if !ok {
		return err
	}

	n, err := h.uc.Count(c.Request().Context(), email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, n)
}
