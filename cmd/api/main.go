package main

import (
	"context"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/infra/db"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	lg, err := logger.New(cfg.GoEnv, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	//DB接続
	gdb, err := db.Connect(cfg)
	if err != nil {
		lg.Fatal("db connect", zap.Error(err))
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		lg.Fatal("db handle", zap.Error(err))
	}
	defer func() { _ = sqlDB.Close() }()

	if cfg.AutoMigrate {
		if err := db.Migrate(gdb, lg); err != nil {
			lg.Fatal("db migrate", zap.Error(err))
		}
	}

	e := server.New(cfg, gdb, lg, usecase.SystemClock{})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, e, cfg.Addr(), cfg.ShutdownTimeout, lg); err != nil {
		lg.Error("server stopped", zap.Error(err))
		return
	}
	lg.Info("server stopped")
}
