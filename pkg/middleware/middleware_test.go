package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cleaning-console/pkg/service"
)

func newGatedEcho() *echo.Echo {
	e := echo.New()
	gate := NewPageGate(zap.NewNop())
	e.GET(LoginPagePath, func(c echo.Context) error { return c.String(http.StatusOK, "login") }, gate.RequireToken)
	e.GET("/console/*", func(c echo.Context) error { return c.String(http.StatusOK, "page") }, gate.RequireToken)
	return e
}

func TestPageGate_RedirectsWithoutCookie(t *testing.T) {
	e := newGatedEcho()

	req := httptest.NewRequest(http.MethodGet, "/console/payroll?month=3", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?next=%2Fconsole%2Fpayroll%3Fmonth%3D3", rec.Header().Get(echo.HeaderLocation))
}

func TestPageGate_EmptyCookieIsMissing(t *testing.T) {
	e := newGatedEcho()

	req := httptest.NewRequest(http.MethodGet, "/console/assignments", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: ""})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestPageGate_PassesWithCookieAndOnLoginPage(t *testing.T) {
	e := newGatedEcho()

	req := httptest.NewRequest(http.MethodGet, "/console/assignments", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "abc"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "page", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, LoginPagePath, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "login", rec.Body.String())
}

func TestAuthMiddleware(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", time.Hour, zap.NewNop())
	token, err := jwtSvc.GenerateToken(7, 70)
	require.NoError(t, err)

	e := echo.New()
	mw := NewAuthMiddleware(jwtSvc, zap.NewNop())
	e.GET("/me", func(c echo.Context) error {
		id, err := UserIDFromContext(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]int64{"id": id})
	}, mw.Auth)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic " + token, http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage", "Bearer garbage", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			require.Equal(t, tc.status, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tc.status == http.StatusOK {
				assert.EqualValues(t, 7, body["id"])
			} else {
				assert.Equal(t, false, body["success"])
				assert.EqualValues(t, 401, body["code"])
			}
		})
	}
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestLogger(zap.NewNop()))
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "given")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "given", rec.Header().Get(echo.HeaderXRequestID))
}
