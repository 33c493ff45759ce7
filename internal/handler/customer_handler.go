package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/customer（本人のプロフィール）
type CustomerHandler struct {
	uc *usecase.CustomerUsecase
}

func NewCustomerHandler(uc *usecase.CustomerUsecase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

func (h *CustomerHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	g := e.Group("/api")
	g.GET("/customer/:email", h.get, auth...)
	g.PUT("/customer/:email", h.update, auth...)
}

func (h *CustomerHandler) get(c echo.Context) error {
	email, ok, err := requireSelf(c, c.Param("email"))
	if !ok {
		return err
	}

	out, err := h.uc.Get(c.Request().Context(), email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) update(c echo.Context) error {
	email, ok, err := requireSelf(c, c.Param("email"))
	if !ok {
		return err
	}

	var req usecase.UpdateCustomerInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateContact(c.Request().Context(), email, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
