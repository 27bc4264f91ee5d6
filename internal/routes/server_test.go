package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cleaning-console/internal/authz"
	"cleaning-console/internal/dto"
	"cleaning-console/internal/repositories"
	"cleaning-console/internal/services"
	"cleaning-console/pkg/config"
	"cleaning-console/pkg/customvalidator"
	apperrors "cleaning-console/pkg/errors"
	"cleaning-console/pkg/service"
	"cleaning-console/seeders"
)

func newDevBackend(t *testing.T, ttl time.Duration) *httptest.Server {
	t.Helper()
	seeded, err := seeders.SeedAccounts(customvalidator.New(), zap.NewNop())
	require.NoError(t, err)
	accounts, err := repositories.NewAccountRepository(seeded, zap.NewNop())
	require.NoError(t, err)

	e := NewServer(accounts, service.NewJWTService("test-secret", ttl, zap.NewNop()), zap.NewNop())
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func newClientSession(t *testing.T, srv *httptest.Server) (*services.SessionContext, *[]string) {
	t.Helper()
	var visited []string
	nav := services.NavigatorFunc(func(path string) { visited = append(visited, path) })
	sc := services.NewSessionContext(config.APIConfig{BaseURL: srv.URL + "/api"},
		repositories.NewMemoryStorageRepository(), nav, zap.NewNop())
	return sc, &visited
}

func TestDevBackend_LoginAndPermissions(t *testing.T) {
	ctx := context.Background()
	srv := newDevBackend(t, time.Hour)
	sc, visited := newClientSession(t, srv)

	session, err := sc.Auth.Login(ctx, dto.LoginDTO{Username: "qlv1", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "QLV", session.RoleName)
	assert.Equal(t, "STAFF", session.UserType)

	assert.True(t, sc.Gate.Can(ctx, authz.AssignmentView))
	assert.False(t, sc.Gate.Can(ctx, authz.AssignmentManage))
	assert.Equal(t, []string{authz.AssignmentView}, sc.Permissions.GetPermissions(ctx).Codes())
	assert.Empty(t, *visited)
}

func TestDevBackend_WrongPassword(t *testing.T) {
	ctx := context.Background()
	srv := newDevBackend(t, time.Hour)
	sc, _ := newClientSession(t, srv)

	_, err := sc.Auth.Login(ctx, dto.LoginDTO{Username: "qlv1", Password: "nope"})
	require.Error(t, err)
	apiErr, ok := apperrors.AsApiError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Code)
	assert.Equal(t, apperrors.ErrInvalidCredentials.Error(), apiErr.Message)
	assert.False(t, sc.Auth.IsAuthenticated(ctx))
}

func TestDevBackend_ExpiredTokenEndsSession(t *testing.T) {
	ctx := context.Background()
	srv := newDevBackend(t, time.Second)
	sc, visited := newClientSession(t, srv)

	_, err := sc.Auth.Login(ctx, dto.LoginDTO{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	time.Sleep(2100 * time.Millisecond)
	_, err = sc.Permissions.FetchUserPermissions(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err))
	assert.False(t, sc.Auth.IsAuthenticated(ctx))
	assert.Equal(t, []string{services.LoginPath}, *visited)
}

func TestDevBackend_PermissionsRequireToken(t *testing.T) {
	srv := newDevBackend(t, time.Hour)

	resp, err := http.Get(srv.URL + "/api/users/permissions")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
}

func TestDevBackend_ValidationFailure(t *testing.T) {
	srv := newDevBackend(t, time.Hour)

	resp, err := http.Post(srv.URL+"/api/auth/login", "application/json", strings.NewReader(`{"username":""}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDevBackend_ConsolePagesFollowTheCookie(t *testing.T) {
	ctx := context.Background()
	srv := newDevBackend(t, time.Hour)
	sc, _ := newClientSession(t, srv)

	noRedirect := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}

	resp, err := noRedirect.Get(srv.URL + "/console/assignments")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/login?next="))

	_, err = sc.Auth.Login(ctx, dto.LoginDTO{Username: "gs1", Password: "secret"})
	require.NoError(t, err)
	cookie, ok := sc.Cookies.TokenCookie(ctx)
	require.True(t, ok)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/console/assignments", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	resp, err = noRedirect.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
