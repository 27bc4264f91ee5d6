package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cleaning-console/internal/controllers"
	"cleaning-console/internal/repositories"
)

func runUserRouter(secureGroup *echo.Group, accounts repositories.AccountRepositoryInterface, logger *zap.Logger) {
	userCtrl := controllers.NewUserController(accounts, logger)

	users := secureGroup.Group("/users")
	users.GET("/permissions", userCtrl.Permissions)
}
