package server

import (
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Customer *handler.CustomerHandler
	Health   *handler.HealthHandler
}

// カート・注文・プロフィールは認証＋customer roleが必要。カタログは公開
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	auth := []echo.MiddlewareFunc{
		middleware.AuthJWT(cfg),
		middleware.RoleGuard(cfg.CustomerRole),
	}

	h.Health.RegisterRoutes(e)
	h.Catalog.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, auth...)
	h.Customer.RegisterRoutes(e, auth...)
	h.Checkout.RegisterRoutes(e, cfg.CookieSecure, auth...)
}
