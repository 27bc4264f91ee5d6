package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"cleaning-console/internal/entities"
	apperrors "cleaning-console/pkg/errors"
)

type AccountRepositoryInterface interface {
	FindByUsername(ctx context.Context, username string) (*entities.Account, error)
	FindByID(ctx context.Context, id int64) (*entities.Account, error)
}

// AccountRepository is the in-memory user directory of the dev backend.
type AccountRepository struct {
	mu         sync.RWMutex
	byID       map[int64]entities.Account
	byUsername map[string]int64
	logger     *zap.Logger
}

func NewAccountRepository(accounts []entities.Account, logger *zap.Logger) (*AccountRepository, error) {
	r := &AccountRepository{
		byID:       make(map[int64]entities.Account, len(accounts)),
		byUsername: make(map[string]int64, len(accounts)),
		logger:     logger.Named("account_repository"),
	}
	for _, acc := range accounts {
		key := strings.ToLower(acc.Username)
		if _, exists := r.byUsername[key]; exists {
			return nil, fmt.Errorf("duplicate username %q", acc.Username)
		}
		if _, exists := r.byID[acc.ID]; exists {
			return nil, fmt.Errorf("duplicate account id %d", acc.ID)
		}
		r.byID[acc.ID] = acc
		r.byUsername[key] = acc.ID
	}
	r.logger.Debug("account directory loaded", zap.Int("count", len(accounts)))
	return r, nil
}

func (r *AccountRepository) FindByUsername(_ context.Context, username string) (*entities.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[strings.ToLower(username)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	acc := r.byID[id]
	return &acc, nil
}

func (r *AccountRepository) FindByID(_ context.Context, id int64) (*entities.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}
