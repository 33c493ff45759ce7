package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// パスのemailがトークンのemailと一致するか。違えば403を書いて false
func requireSelf(c echo.Context, email string) (string, bool, error) {
	me, ok := middleware.EmailFrom(c)
	if !ok {
		return "", false, c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	if email != me {
		return "", false, c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}
	return me, true, nil
}

func parseIDParam(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
