package routes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"cleaning-console/internal/repositories"
	"cleaning-console/pkg/api"
	"cleaning-console/pkg/customvalidator"
	apperrors "cleaning-console/pkg/errors"
	"cleaning-console/pkg/middleware"
	"cleaning-console/pkg/service"
)

// NewServer builds the dev backend with its middleware chain and routes.
func NewServer(accounts repositories.AccountRepositoryInterface, jwtSvc service.JWTService, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				_ = api.ErrorResponse(c, apperrors.NewHttpError(http.StatusInternalServerError, "internal server error", err))
			}
			return err
		},
	}))
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.Validator = customvalidator.NewEchoValidator(customvalidator.New())
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			err = apperrors.NewHttpError(he.Code, fmt.Sprint(he.Message), err)
		}
		_ = api.ErrorResponse(c, err)
	}

	InitRouter(e, accounts, jwtSvc, logger)
	return e
}
