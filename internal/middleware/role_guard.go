package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// contextのrolesに指定のroleがあるかを確認します。
func RoleGuard(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, ok := c.Get(CtxRolesKey).([]string)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			for _, r := range roles {
				if r == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, errorJSON(role+" only"))
		}
	}
}
