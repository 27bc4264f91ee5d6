package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"cleaning-console/internal/repositories"
)

const (
	TokenCookieName = "token"
	TokenCookieTTL  = 7 * 24 * time.Hour
)

type CookieServiceInterface interface {
	SetTokenCookie(ctx context.Context, token string) error
	ClearTokenCookie(ctx context.Context) error
	TokenCookie(ctx context.Context) (*http.Cookie, bool)
}

// CookieService mirrors the bearer token into the "token" cookie read by the console's page gate.
// The cookie is kept in storage as a Set-Cookie line.
type CookieService struct {
	storage repositories.StorageRepositoryInterface
	logger  *zap.Logger
	now     func() time.Time
}

func NewCookieService(storage repositories.StorageRepositoryInterface, logger *zap.Logger) *CookieService {
	return &CookieService{
		storage: storage,
		logger:  logger.Named("cookie_service"),
		now:     time.Now,
	}
}

func (s *CookieService) SetTokenCookie(ctx context.Context, token string) error {
	if token == "" {
		return s.ClearTokenCookie(ctx)
	}
	cookie := &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.now().Add(TokenCookieTTL).UTC(),
		MaxAge:   int(TokenCookieTTL / time.Second),
		SameSite: http.SameSiteLaxMode,
	}
	if err := s.storage.Set(ctx, repositories.KeyTokenCookie, cookie.String()); err != nil {
		return fmt.Errorf("failed to persist token cookie: %w", err)
	}
	return nil
}

func (s *CookieService) ClearTokenCookie(ctx context.Context) error {
	if err := s.storage.Del(ctx, repositories.KeyTokenCookie); err != nil {
		return fmt.Errorf("failed to remove token cookie: %w", err)
	}
	return nil
}

// TokenCookie returns the mirrored cookie unless it is missing or expired.
func (s *CookieService) TokenCookie(ctx context.Context) (*http.Cookie, bool) {
	raw, err := s.storage.Get(ctx, repositories.KeyTokenCookie)
	if err != nil {
		if !errors.Is(err, repositories.ErrKeyNotFound) {
			s.logger.Warn("failed to read token cookie", zap.Error(err))
		}
		return nil, false
	}

	cookie, err := http.ParseSetCookie(raw)
	if err != nil {
		s.logger.Warn("stored token cookie is corrupt, dropping it", zap.Error(err))
		_ = s.ClearTokenCookie(ctx)
		return nil, false
	}
	if !cookie.Expires.IsZero() && !s.now().Before(cookie.Expires) {
		_ = s.ClearTokenCookie(ctx)
		return nil, false
	}
	return cookie, true
}
