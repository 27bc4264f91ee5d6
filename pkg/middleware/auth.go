package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cleaning-console/pkg/api"
	"cleaning-console/pkg/contextkeys"
	apperrors "cleaning-console/pkg/errors"
	"cleaning-console/pkg/service"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger.Named("auth_middleware"),
	}
}

// Auth rejects requests without a valid bearer token with 401 and stores the caller's ids in the
// request context.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			m.logger.Debug("missing Authorization header", zap.String("path", c.Path()))
			return api.ErrorResponse(c, apperrors.ErrEmptyAuthHeader)
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			m.logger.Debug("malformed Authorization header", zap.String("path", c.Path()))
			return api.ErrorResponse(c, apperrors.ErrInvalidAuthHeader)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Info("token validation failed", zap.String("path", c.Path()), zap.Error(err))
			return api.ErrorResponse(c, err)
		}

		ctx := context.WithValue(c.Request().Context(), contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.RoleIDKey, claims.RoleID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// UserIDFromContext returns the id stored by Auth.
func UserIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(int64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUnauthorized
	}
	return userID, nil
}
