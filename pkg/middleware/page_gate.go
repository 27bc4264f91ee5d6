package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	TokenCookieName = "token"
	LoginPagePath   = "/login"
)

// PageGate keeps anonymous visitors away from console pages before the client loads. It only checks
// that the token cookie is present; the API still validates the token on every call.
type PageGate struct {
	loginPath string
	logger    *zap.Logger
}

func NewPageGate(logger *zap.Logger) *PageGate {
	return &PageGate{
		loginPath: LoginPagePath,
		logger:    logger.Named("page_gate"),
	}
}

func (g *PageGate) RequireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		if path == g.loginPath {
			return next(c)
		}

		cookie, err := c.Cookie(TokenCookieName)
		if err != nil || cookie.Value == "" {
			g.logger.Debug("no token cookie, redirecting to login", zap.String("path", path))
			target := g.loginPath + "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
			return c.Redirect(http.StatusFound, target)
		}
		return next(c)
	}
}
