package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"cleaning-console/internal/repositories"
)

type TokenServiceInterface interface {
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
	GetToken(ctx context.Context) (string, bool)
}

// TokenService holds the bearer credential in memory and mirrors it to durable storage.
type TokenService struct {
	storage repositories.StorageRepositoryInterface
	logger  *zap.Logger

	mu    sync.RWMutex
	token string
}

func NewTokenService(storage repositories.StorageRepositoryInterface, logger *zap.Logger) *TokenService {
	return &TokenService{
		storage: storage,
		logger:  logger.Named("token_service"),
	}
}

// SetToken stores the credential. An empty token clears it.
func (s *TokenService) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.ClearToken(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(ctx, repositories.KeyToken, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	s.token = token
	return nil
}

func (s *TokenService) ClearToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := s.storage.Del(ctx, repositories.KeyToken); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// GetToken prefers the in-memory copy and falls back to storage after a cold start. The storage
// read happens under the write lock so a concurrent ClearToken cannot be undone by it.
func (s *TokenService) GetToken(ctx context.Context) (string, bool) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token != "" {
		return token, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" {
		return s.token, true
	}

	stored, err := s.storage.Get(ctx, repositories.KeyToken)
	if err != nil {
		if !errors.Is(err, repositories.ErrKeyNotFound) {
			s.logger.Warn("failed to read token from storage", zap.Error(err))
		}
		return "", false
	}
	if stored == "" {
		return "", false
	}
	s.token = stored
	return stored, true
}
