package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"cleaning-console/internal/apiclient"
	"cleaning-console/internal/authz"
	"cleaning-console/internal/dto"
	"cleaning-console/internal/repositories"
)

const PermissionsEndpoint = "/users/permissions"

type PermissionServiceInterface interface {
	FetchUserPermissions(ctx context.Context) (authz.PermissionSet, error)
	GetPermissions(ctx context.Context) authz.PermissionSet
	Loaded(ctx context.Context) bool
	HasPermission(ctx context.Context, code string) bool
	HasAnyPermission(ctx context.Context, codes ...string) bool
	HasAllPermissions(ctx context.Context, codes ...string) bool
	ClearPermissions(ctx context.Context) error
}

// PermissionService caches the permission set of the current session in memory and in storage.
// Reads never go to the network.
type PermissionService struct {
	client  *apiclient.Client
	storage repositories.StorageRepositoryInterface
	logger  *zap.Logger

	mu     sync.RWMutex
	set    authz.PermissionSet
	loaded bool
}

func NewPermissionService(client *apiclient.Client, storage repositories.StorageRepositoryInterface, logger *zap.Logger) *PermissionService {
	return &PermissionService{
		client:  client,
		storage: storage,
		logger:  logger.Named("permission_service"),
	}
}

// FetchUserPermissions loads the set from the backend and replaces the cache. On failure the cache
// is left as it was.
func (s *PermissionService) FetchUserPermissions(ctx context.Context) (authz.PermissionSet, error) {
	resp, err := apiclient.Get[dto.UserPermissionsDTO](ctx, s.client, PermissionsEndpoint)
	if err != nil {
		s.logger.Warn("failed to fetch user permissions", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch permissions: %w", err)
	}

	codes := resp.Permissions
	if codes == nil {
		codes = []string{}
	}
	encoded, err := json.Marshal(codes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode permissions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(ctx, repositories.KeyPermissions, string(encoded)); err != nil {
		return nil, fmt.Errorf("failed to persist permissions: %w", err)
	}
	s.set = authz.NewPermissionSet(codes...)
	s.loaded = true

	s.logger.Debug("user permissions cached",
		zap.Int64("userID", resp.UserID),
		zap.String("roleCode", resp.RoleCode),
		zap.Int("count", s.set.Len()),
	)
	return copySet(s.set), nil
}

func (s *PermissionService) GetPermissions(ctx context.Context) authz.PermissionSet {
	set, _ := s.load(ctx)
	return copySet(set)
}

// Loaded reports whether a permission set exists for this session, even an empty one.
func (s *PermissionService) Loaded(ctx context.Context) bool {
	_, loaded := s.load(ctx)
	return loaded
}

func (s *PermissionService) HasPermission(ctx context.Context, code string) bool {
	set, _ := s.load(ctx)
	return set.Has(code)
}

func (s *PermissionService) HasAnyPermission(ctx context.Context, codes ...string) bool {
	set, _ := s.load(ctx)
	return set.HasAny(codes...)
}

func (s *PermissionService) HasAllPermissions(ctx context.Context, codes ...string) bool {
	set, loaded := s.load(ctx)
	return loaded && set.HasAll(codes...)
}

func (s *PermissionService) ClearPermissions(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set = nil
	s.loaded = false
	if err := s.storage.Del(ctx, repositories.KeyPermissions); err != nil {
		return fmt.Errorf("failed to remove permissions: %w", err)
	}
	return nil
}

// load returns the cached set, reading storage when memory is empty. The storage read happens
// under the write lock so a concurrent ClearPermissions cannot be undone by it.
func (s *PermissionService) load(ctx context.Context) (authz.PermissionSet, bool) {
	s.mu.RLock()
	if s.loaded {
		set := s.set
		s.mu.RUnlock()
		return set, true
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.set, true
	}

	raw, err := s.storage.Get(ctx, repositories.KeyPermissions)
	if err != nil {
		if !errors.Is(err, repositories.ErrKeyNotFound) {
			s.logger.Warn("failed to read permissions from storage", zap.Error(err))
		}
		return nil, false
	}

	var codes []string
	if err := json.Unmarshal([]byte(raw), &codes); err != nil {
		s.logger.Warn("stored permissions are corrupt, ignoring", zap.Error(err))
		return nil, false
	}
	s.set = authz.NewPermissionSet(codes...)
	s.loaded = true
	return s.set, true
}

func copySet(set authz.PermissionSet) authz.PermissionSet {
	out := make(authz.PermissionSet, len(set))
	for code := range set {
		out[code] = true
	}
	return out
}
