package services

import (
	"go.uber.org/zap"

	"cleaning-console/internal/apiclient"
	"cleaning-console/internal/authz"
	"cleaning-console/internal/repositories"
	"cleaning-console/pkg/config"
	"cleaning-console/pkg/customvalidator"
)

// SessionContext wires the session components together. Build one per console process and pass
// it around instead of reaching for globals.
type SessionContext struct {
	Storage     repositories.StorageRepositoryInterface
	Tokens      *TokenService
	Client      *apiclient.Client
	Permissions *PermissionService
	Cookies     *CookieService
	Auth        *AuthService
	Gate        *authz.Gate
}

func NewSessionContext(
	cfg config.APIConfig,
	storage repositories.StorageRepositoryInterface,
	navigator Navigator,
	logger *zap.Logger,
	opts ...apiclient.Option,
) *SessionContext {
	tokens := NewTokenService(storage, logger)

	opts = append([]apiclient.Option{apiclient.WithTimeout(cfg.Timeout)}, opts...)
	client := apiclient.New(cfg.BaseURL, tokens, logger, opts...)

	permissions := NewPermissionService(client, storage, logger)
	cookies := NewCookieService(storage, logger)
	auth := NewAuthService(client, tokens, permissions, cookies, storage, navigator, customvalidator.New(), logger)

	client.SetUnauthorizedHandler(auth.HandleUnauthorized)

	return &SessionContext{
		Storage:     storage,
		Tokens:      tokens,
		Client:      client,
		Permissions: permissions,
		Cookies:     cookies,
		Auth:        auth,
		Gate:        authz.NewGate(permissions, auth),
	}
}
