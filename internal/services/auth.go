package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"cleaning-console/internal/apiclient"
	"cleaning-console/internal/dto"
	"cleaning-console/internal/entities"
	"cleaning-console/internal/repositories"
	apperrors "cleaning-console/pkg/errors"
)

const LoginEndpoint = "/auth/login"

// SessionState is the lifecycle of the console session.
type SessionState int

const (
	StateAnonymous SessionState = iota
	StateAuthenticating
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// userMirrorKeys are the denormalized copies of fields already present in the stored user record.
var userMirrorKeys = []string{
	repositories.KeyUser,
	repositories.KeyIsLoggedIn,
	repositories.KeyUserEmail,
	repositories.KeyUserRole,
	repositories.KeyUserID,
}

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*entities.Session, error)
	Logout(ctx context.Context) error
	GetCurrentUser(ctx context.Context) *entities.Session
	IsAuthenticated(ctx context.Context) bool
	HandleUnauthorized(ctx context.Context)
	State(ctx context.Context) SessionState
}

type AuthService struct {
	client      *apiclient.Client
	tokens      TokenServiceInterface
	permissions PermissionServiceInterface
	cookies     CookieServiceInterface
	storage     repositories.StorageRepositoryInterface
	navigator   Navigator
	validate    *validator.Validate
	logger      *zap.Logger

	mu             sync.Mutex
	authenticating bool
}

func NewAuthService(
	client *apiclient.Client,
	tokens TokenServiceInterface,
	permissions PermissionServiceInterface,
	cookies CookieServiceInterface,
	storage repositories.StorageRepositoryInterface,
	navigator Navigator,
	validate *validator.Validate,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		client:      client,
		tokens:      tokens,
		permissions: permissions,
		cookies:     cookies,
		storage:     storage,
		navigator:   navigator,
		validate:    validate,
		logger:      logger.Named("auth_service"),
	}
}

// Login authenticates against the backend, persists the session and then fetches permissions.
// A failed permission fetch does not fail the login: the gate keeps denying until a refresh works.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.Session, error) {
	if err := s.validate.Struct(payload); err != nil {
		return nil, apperrors.NewInvalidInputError("invalid login payload: %v", err)
	}

	s.mu.Lock()
	if s.authenticating {
		s.mu.Unlock()
		return nil, apperrors.ErrLoginInProgress
	}
	s.authenticating = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.authenticating = false
		s.mu.Unlock()
	}()

	resp, err := apiclient.Post[dto.LoginResponseDTO](ctx, s.client, LoginEndpoint, payload)
	if err != nil {
		s.logger.Info("login rejected", zap.String("username", payload.Username), zap.Error(err))
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp.Token == "" {
		return nil, apperrors.NewApiError(apperrors.KindBusiness, 0, "login response carried no token", nil)
	}

	// A previous user's permissions must never survive into this session.
	if err := s.permissions.ClearPermissions(ctx); err != nil {
		s.logger.Warn("failed to clear previous permissions", zap.Error(err))
	}

	if err := s.persistUser(ctx, resp); err != nil {
		s.teardown(ctx)
		return nil, err
	}
	if err := s.tokens.SetToken(ctx, resp.Token); err != nil {
		s.teardown(ctx)
		return nil, err
	}
	if err := s.cookies.SetTokenCookie(ctx, resp.Token); err != nil {
		s.logger.Warn("failed to mirror token into cookie", zap.Error(err))
	}

	if _, err := s.permissions.FetchUserPermissions(ctx); err != nil {
		s.logger.Warn("permission fetch failed after login, continuing without permissions",
			zap.Int64("userID", resp.ID), zap.Error(err))
		if apperrors.IsAuth(err) {
			// The backend revoked the fresh token; the 401 hook has already torn the session down.
			return nil, fmt.Errorf("login failed: %w", err)
		}
	}

	s.logger.Info("logged in", zap.Int64("userID", resp.ID), zap.String("role", resp.RoleName))
	return entities.NewSession(resp, resp.Token), nil
}

func (s *AuthService) persistUser(ctx context.Context, resp dto.LoginResponseDTO) error {
	encoded, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	values := []struct{ key, value string }{
		{repositories.KeyUser, string(encoded)},
		{repositories.KeyIsLoggedIn, "true"},
		{repositories.KeyUserEmail, resp.Email},
		{repositories.KeyUserRole, resp.RoleName},
		{repositories.KeyUserID, strconv.FormatInt(resp.ID, 10)},
	}
	for _, v := range values {
		if err := s.storage.Set(ctx, v.key, v.value); err != nil {
			return fmt.Errorf("failed to persist %s: %w", v.key, err)
		}
	}
	return nil
}

// Logout clears every piece of session state. It does not call the backend.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.teardown(ctx); err != nil {
		return fmt.Errorf("logout incomplete: %w", err)
	}
	s.logger.Info("logged out")
	return nil
}

// HandleUnauthorized is installed as the API client's 401 hook.
func (s *AuthService) HandleUnauthorized(ctx context.Context) {
	if err := s.teardown(ctx); err != nil {
		s.logger.Error("failed to clear session after 401", zap.Error(err))
	}
	if s.navigator != nil {
		s.navigator.Navigate(LoginPath)
	}
}

func (s *AuthService) teardown(ctx context.Context) error {
	var errs []error
	if err := s.tokens.ClearToken(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.permissions.ClearPermissions(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.cookies.ClearTokenCookie(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.storage.Del(ctx, userMirrorKeys...); err != nil {
		errs = append(errs, fmt.Errorf("failed to remove user record: %w", err))
	}
	return errors.Join(errs...)
}

// GetCurrentUser rebuilds the session from storage. Both the user record and the token are
// required; partial state reads as no session.
func (s *AuthService) GetCurrentUser(ctx context.Context) *entities.Session {
	token, ok := s.tokens.GetToken(ctx)
	if !ok {
		return nil
	}
	raw, err := s.storage.Get(ctx, repositories.KeyUser)
	if err != nil {
		if !errors.Is(err, repositories.ErrKeyNotFound) {
			s.logger.Warn("failed to read user record", zap.Error(err))
		}
		return nil
	}

	var user dto.LoginResponseDTO
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn("stored user record is corrupt", zap.Error(err))
		return nil
	}
	return entities.NewSession(user, token)
}

func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.tokens.GetToken(ctx)
	return ok
}

func (s *AuthService) State(ctx context.Context) SessionState {
	s.mu.Lock()
	authenticating := s.authenticating
	s.mu.Unlock()

	switch {
	case authenticating:
		return StateAuthenticating
	case s.IsAuthenticated(ctx):
		return StateAuthenticated
	default:
		return StateAnonymous
	}
}
