package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cleaning-console/internal/repositories"
	"cleaning-console/pkg/middleware"
	"cleaning-console/pkg/service"
)

// InitRouter mounts the dev backend: the API under /api and the gated console pages.
func InitRouter(e *echo.Echo, accounts repositories.AccountRepositoryInterface, jwtSvc service.JWTService, logger *zap.Logger) {
	logger.Info("InitRouter: registering routes")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, accounts, jwtSvc, logger)
	runUserRouter(secureGroup, accounts, logger)
	runConsoleRouter(e, middleware.NewPageGate(logger))

	logger.Info("InitRouter: routes registered")
}
