package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cleaning-console/internal/dto"
	"cleaning-console/internal/repositories"
	"cleaning-console/pkg/api"
	apperrors "cleaning-console/pkg/errors"
	"cleaning-console/pkg/middleware"
)

type UserController struct {
	accounts repositories.AccountRepositoryInterface
	logger   *zap.Logger
}

func NewUserController(accounts repositories.AccountRepositoryInterface, logger *zap.Logger) *UserController {
	return &UserController{
		accounts: accounts,
		logger:   logger.Named("user_controller"),
	}
}

// Permissions returns the permission codes of the authenticated caller.
func (ctrl *UserController) Permissions(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	account, err := ctrl.accounts.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// The token outlived its account.
			return api.ErrorResponse(c, apperrors.ErrUnauthorized)
		}
		ctrl.logger.Error("Permissions: account lookup failed", zap.Int64("userID", userID), zap.Error(err))
		return api.ErrorResponse(c, err)
	}

	permissions := account.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return api.SuccessOne(c, http.StatusOK, "permissions loaded", dto.UserPermissionsDTO{
		UserID:      account.ID,
		Username:    account.Username,
		RoleCode:    account.RoleCode,
		RoleName:    account.RoleName,
		Permissions: permissions,
	})
}
