package controllers

import (
	"fmt"
	"html"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ConsoleController serves placeholder pages for the gated console area.
type ConsoleController struct{}

func NewConsoleController() *ConsoleController {
	return &ConsoleController{}
}

func (ctrl *ConsoleController) LoginPage(c echo.Context) error {
	next := html.EscapeString(c.QueryParam("next"))
	return c.HTML(http.StatusOK, fmt.Sprintf(`<!doctype html><title>Login</title><form method="post" action="/api/auth/login"><input type="hidden" name="next" value="%s"></form>`, next))
}

func (ctrl *ConsoleController) Page(c echo.Context) error {
	return c.HTML(http.StatusOK, fmt.Sprintf(`<!doctype html><title>Console</title><p>%s</p>`, html.EscapeString(c.Request().URL.Path)))
}
