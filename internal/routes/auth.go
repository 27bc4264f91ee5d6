package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cleaning-console/internal/controllers"
	"cleaning-console/internal/repositories"
	"cleaning-console/pkg/service"
)

func runAuthRouter(api *echo.Group, accounts repositories.AccountRepositoryInterface, jwtSvc service.JWTService, logger *zap.Logger) {
	authCtrl := controllers.NewAuthController(accounts, jwtSvc, logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
	}
}
