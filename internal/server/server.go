package server

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	infra "storefront/internal/infra/repository"
	"storefront/internal/usecase"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New はDBからrepository・usecase・handlerを組み立ててechoを返す。
func New(cfg config.Config, gdb *gorm.DB, lg *zap.Logger, clock usecase.Clock) *echo.Echo {
	//Repository（GORM実装）
	customers := infra.NewCustomerGormRepository(gdb)
	cartItems := infra.NewCartGormRepository(gdb)
	discounts := infra.NewDiscountGormRepository(gdb)
	catalog := infra.NewCatalogGormRepository(gdb)
	orders := infra.NewOrderGormRepository(gdb)
	orderItems := infra.NewOrderItemGormRepository(gdb)
	txm := infra.NewTxManagerGorm(gdb)

	//Usecase
	cartUC := usecase.NewCartUsecase(customers, cartItems, discounts, catalog, clock)
	orderUC := usecase.NewOrderUsecase(txm, customers, orders, orderItems, clock, lg)
	catalogUC := usecase.NewCatalogUsecase(catalog)
	customerUC := usecase.NewCustomerUsecase(txm, customers, clock)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(lg))
	e.Use(echomw.Recover())

	RegisterRoutes(e, cfg, Handlers{
		Catalog:  handler.NewCatalogHandler(catalogUC),
		Cart:     handler.NewCartHandler(cartUC),
		Checkout: handler.NewCheckoutHandler(cartUC, orderUC),
		Customer: handler.NewCustomerHandler(customerUC),
		Health:   handler.NewHealthHandler(gdb),
	})
	return e
}

// Run はctxがキャンセルされるまで待ち受け、その後graceful shutdownする。
func Run(ctx context.Context, e *echo.Echo, addr string, shutdownTimeout time.Duration, lg *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		lg.Info("server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return errors.Wrap(err, "server")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	lg.Info("shutting down server", zap.Duration("timeout", shutdownTimeout))
	if err := e.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}
