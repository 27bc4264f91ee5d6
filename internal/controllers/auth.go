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
	"cleaning-console/pkg/service"
	"cleaning-console/pkg/utils"
)

type AuthController struct {
	accounts repositories.AccountRepositoryInterface
	jwtSvc   service.JWTService
	logger   *zap.Logger
}

func NewAuthController(accounts repositories.AccountRepositoryInterface, jwtSvc service.JWTService, logger *zap.Logger) *AuthController {
	return &AuthController{
		accounts: accounts,
		jwtSvc:   jwtSvc,
		logger:   logger.Named("auth_controller"),
	}
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Debug("Login: bind failed", zap.Error(err))
		return api.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "malformed login payload", err))
	}
	if err := c.Validate(&payload); err != nil {
		ctrl.logger.Debug("Login: validation failed", zap.Error(err))
		return api.ErrorResponse(c, err)
	}

	ctx := c.Request().Context()
	account, err := ctrl.accounts.FindByUsername(ctx, payload.Username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			ctrl.logger.Error("Login: account lookup failed", zap.String("username", payload.Username), zap.Error(err))
			return api.ErrorResponse(c, err)
		}
		ctrl.logger.Info("Login: unknown username", zap.String("username", payload.Username))
		return api.ErrorResponse(c, apperrors.ErrInvalidCredentials)
	}
	if err := utils.ComparePasswords(account.PasswordHash, payload.Password); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			ctrl.logger.Error("Login: stored password hash is unusable", zap.Int64("userID", account.ID), zap.Error(err))
		} else {
			ctrl.logger.Info("Login: wrong password", zap.String("username", payload.Username))
		}
		return api.ErrorResponse(c, apperrors.ErrInvalidCredentials)
	}

	token, err := ctrl.jwtSvc.GenerateToken(account.ID, account.RoleID)
	if err != nil {
		ctrl.logger.Error("Login: failed to sign token", zap.Int64("userID", account.ID), zap.Error(err))
		return api.ErrorResponse(c, err)
	}

	return api.SuccessOne(c, http.StatusOK, "login successful", dto.LoginResponseDTO{
		Token:    token,
		Type:     "Bearer",
		ID:       account.ID,
		Username: account.Username,
		Email:    account.Email,
		Phone:    account.Phone,
		RoleName: account.RoleName,
		RoleID:   account.RoleID,
		UserType: account.UserType,
	})
}
