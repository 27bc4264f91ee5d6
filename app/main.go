package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cleaning-console/internal/repositories"
	"cleaning-console/internal/routes"
	"cleaning-console/pkg/config"
	"cleaning-console/pkg/customvalidator"
	applogger "cleaning-console/pkg/logger"
	"cleaning-console/pkg/service"
	"cleaning-console/seeders"
)

// Dev backend serving the login and permissions endpoints the console client talks to.
func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level)
	defer func() { _ = logger.Sync() }()

	seeded, err := seeders.SeedAccounts(customvalidator.New(), logger)
	if err != nil {
		logger.Fatal("failed to seed accounts", zap.Error(err))
	}
	accounts, err := repositories.NewAccountRepository(seeded, logger)
	if err != nil {
		logger.Fatal("failed to build account directory", zap.Error(err))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, logger)
	e := routes.NewServer(accounts, jwtSvc, logger)

	go func() {
		logger.Info("server started", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
