package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cleaning-console/internal/repositories"
	"cleaning-console/internal/routes"
	"cleaning-console/pkg/config"
	"cleaning-console/pkg/customvalidator"
	"cleaning-console/pkg/service"
	"cleaning-console/seeders"
)

type harness struct {
	baseURL string
	storage repositories.StorageRepositoryInterface
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	seeded, err := seeders.SeedAccounts(customvalidator.New(), zap.NewNop())
	require.NoError(t, err)
	accounts, err := repositories.NewAccountRepository(seeded, zap.NewNop())
	require.NoError(t, err)

	srv := httptest.NewServer(routes.NewServer(accounts, service.NewJWTService("k", time.Hour, zap.NewNop()), zap.NewNop()))
	t.Cleanup(srv.Close)
	return &harness{baseURL: srv.URL + "/api", storage: repositories.NewMemoryStorageRepository()}
}

// run executes one consolectl invocation; each call builds a fresh App over the shared storage.
func (h *harness) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cfg := &config.Config{API: config.APIConfig{BaseURL: h.baseURL}}
	app := &App{Config: cfg, Logger: zap.NewNop(), Storage: h.storage, Out: &out, ErrOut: &errOut}

	cmd := NewRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestConsolectl_LoginThenCheck(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "login", "--username", "qlv1", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as qlv1 (QLV)")

	out, _, err = h.run(t, "can", "ASSIGNMENT_VIEW")
	require.NoError(t, err)
	assert.Equal(t, "ASSIGNMENT_VIEW: granted\n", out)

	out, _, err = h.run(t, "can", "ASSIGNMENT_VIEW", "PAYROLL_VIEW")
	assert.ErrorIs(t, err, ErrDenied)
	assert.Equal(t, "ASSIGNMENT_VIEW,PAYROLL_VIEW: denied\n", out)

	_, _, err = h.run(t, "can", "--any", "ASSIGNMENT_VIEW", "PAYROLL_VIEW")
	require.NoError(t, err)

	out, _, err = h.run(t, "permissions")
	require.NoError(t, err)
	assert.Equal(t, "ASSIGNMENT_VIEW\n", out)

	out, _, err = h.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Username:  qlv1")
	assert.Contains(t, out, "State:     authenticated")
}

func TestConsolectl_LogoutFailsClosed(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "login", "-u", "admin", "-p", "admin123")
	require.NoError(t, err)
	_, _, err = h.run(t, "logout")
	require.NoError(t, err)

	out, _, err := h.run(t, "can", "USER_MANAGE")
	assert.ErrorIs(t, err, ErrDenied)
	assert.Equal(t, "USER_MANAGE: unknown\n", out)

	out, _, err = h.run(t, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Not logged in.\n", out)

	_, _, err = h.run(t, "permissions")
	assert.Error(t, err)
}

func TestConsolectl_RejectsBadInput(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "login", "--username", "qlv1")
	assert.Error(t, err)

	_, _, err = h.run(t, "login", "--username", "qlv1", "--password", "wrong")
	assert.Error(t, err)

	_, _, err = h.run(t, "can", "orders:view")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDenied)

	_, _, err = h.run(t, "can")
	assert.Error(t, err)
}
