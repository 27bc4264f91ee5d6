package routes

import (
	"github.com/labstack/echo/v4"

	"cleaning-console/internal/controllers"
	"cleaning-console/pkg/middleware"
)

func runConsoleRouter(e *echo.Echo, gate *middleware.PageGate) {
	ctrl := controllers.NewConsoleController()

	e.GET(middleware.LoginPagePath, ctrl.LoginPage)

	console := e.Group("/console", gate.RequireToken)
	console.GET("", ctrl.Page)
	console.GET("/*", ctrl.Page)
}
