package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"cleaning-console/internal/dto"
	"cleaning-console/internal/repositories"
	"cleaning-console/pkg/config"
)

type fakeAccount struct {
	id          int64
	password    string
	token       string
	roleName    string
	permissions []string
}

// fakeBackend answers the two endpoints the session layer talks to.
type fakeBackend struct {
	t *testing.T

	mu           sync.Mutex
	accounts     map[string]fakeAccount
	tokens       map[string]string
	issued       int
	permStatus   int
	permCalls    int
	lastAuth     string
	loginStarted chan struct{}
	loginRelease chan struct{}
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	b := &fakeBackend{
		t: t,
		accounts: map[string]fakeAccount{
			"qlv1":  {id: 7, password: "secret", token: "abc.def.ghi", roleName: "QLV", permissions: []string{"ASSIGNMENT_VIEW"}},
			"admin": {id: 1, password: "admin123", roleName: "Administrator", permissions: []string{"ASSIGNMENT_VIEW", "PAYROLL_VIEW", "USER_MANAGE"}},
			"guest": {id: 9, password: "guest123", roleName: "Guest"},
		},
		tokens: map[string]string{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", b.login)
	mux.HandleFunc("/users/permissions", b.permissions)
	mux.HandleFunc("/contracts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"message":"session invalidated","code":401}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *fakeBackend) reply(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"code":    status,
		"data":    data,
	})
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	started, release := b.loginStarted, b.loginRelease
	b.mu.Unlock()
	if started != nil {
		close(started)
		<-release
	}

	var payload dto.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		b.reply(w, http.StatusBadRequest, false, "malformed payload", nil)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[payload.Username]
	if !ok || acc.password != payload.Password {
		b.reply(w, http.StatusUnauthorized, false, "invalid username or password", nil)
		return
	}
	b.issued++
	token := acc.token
	if token == "" {
		token = fmt.Sprintf("tok-%s-%d", payload.Username, b.issued)
	}
	b.tokens[token] = payload.Username

	b.reply(w, http.StatusOK, true, "login successful", dto.LoginResponseDTO{
		Token:    token,
		Type:     "Bearer",
		ID:       acc.id,
		Username: payload.Username,
		Email:    payload.Username + "@example.com",
		RoleName: acc.roleName,
		RoleID:   acc.id * 10,
		UserType: "STAFF",
	})
}

func (b *fakeBackend) permissions(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.permCalls++
	b.lastAuth = r.Header.Get("Authorization")

	if b.permStatus != 0 {
		b.reply(w, b.permStatus, false, "permission service unavailable", nil)
		return
	}
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	username, ok := b.tokens[token]
	if !ok {
		b.reply(w, http.StatusUnauthorized, false, "token expired", nil)
		return
	}
	acc := b.accounts[username]
	b.reply(w, http.StatusOK, true, "ok", dto.UserPermissionsDTO{
		UserID:      acc.id,
		Username:    username,
		RoleName:    acc.roleName,
		Permissions: acc.permissions,
	})
}

func (b *fakeBackend) revokeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = map[string]string{}
}

func (b *fakeBackend) failPermissions(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.permStatus = status
}

func (b *fakeBackend) blockLogin() (started chan struct{}, release chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loginStarted = make(chan struct{})
	b.loginRelease = make(chan struct{})
	return b.loginStarted, b.loginRelease
}

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

func newTestSession(baseURL string, storage repositories.StorageRepositoryInterface) (*SessionContext, *recordingNavigator) {
	nav := &recordingNavigator{}
	sc := NewSessionContext(config.APIConfig{BaseURL: baseURL}, storage, nav, zap.NewNop())
	return sc, nav
}
