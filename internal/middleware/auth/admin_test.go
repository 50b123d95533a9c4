package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Skotchmaster/cyberacademy/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	err error
}

func (s stubAuth) Authenticate(ctx context.Context, username, password string) (*service.Principal, error) {
	if s.err != nil {
		return nil, s.err
	}
	if username == "admin" && password == "cyb3r@dm1n" {
		return &service.Principal{ID: 1, Username: "admin", IsAdmin: true}, nil
	}
	return nil, service.ErrUnauthorized
}

func (s stubAuth) VerifyToken(token string) (*service.Principal, error) {
	if token == "good" {
		return &service.Principal{ID: 1, Username: "admin", IsAdmin: true}, nil
	}
	return nil, service.ErrUnauthorized
}

func runAdmin(t *testing.T, a Authenticator, headers map[string]string) (*httptest.ResponseRecorder, error, *service.Principal) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *service.Principal
	h := NewAdminMiddleware(a).RequireAdmin(func(c echo.Context) error {
		seen = PrincipalFrom(c)
		return c.NoContent(http.StatusOK)
	})
	return rec, h(c), seen
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		auth     Authenticator
		headers  map[string]string
		wantCode int
		wantMsg  string
	}{
		{name: "header credentials", auth: stubAuth{}, headers: map[string]string{"username": "admin", "password": "cyb3r@dm1n"}, wantCode: http.StatusOK},
		{name: "bearer token", auth: stubAuth{}, headers: map[string]string{"Authorization": "Bearer good"}, wantCode: http.StatusOK},
		{name: "no credentials", auth: stubAuth{}, wantCode: http.StatusUnauthorized, wantMsg: "Authentication required"},
		{name: "wrong password", auth: stubAuth{}, headers: map[string]string{"username": "admin", "password": "x"}, wantCode: http.StatusUnauthorized, wantMsg: "Invalid admin credentials"},
		{name: "missing password", auth: stubAuth{err: service.ErrValidation}, headers: map[string]string{"username": "admin"}, wantCode: http.StatusUnauthorized, wantMsg: "Invalid admin credentials"},
		{name: "bad bearer", auth: stubAuth{}, headers: map[string]string{"Authorization": "Bearer bad"}, wantCode: http.StatusUnauthorized, wantMsg: "Invalid admin credentials"},
		{name: "non bearer scheme", auth: stubAuth{}, headers: map[string]string{"Authorization": "Basic abc"}, wantCode: http.StatusUnauthorized, wantMsg: "Invalid admin credentials"},
		{name: "store failure", auth: stubAuth{err: assert.AnError}, headers: map[string]string{"username": "admin", "password": "cyb3r@dm1n"}, wantCode: http.StatusInternalServerError, wantMsg: "Authentication failed"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, err, seen := runAdmin(t, tt.auth, tt.headers)
			if tt.wantCode == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				require.NotNil(t, seen)
				assert.Equal(t, "admin", seen.Username)
				return
			}

			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.wantCode, he.Code)
			assert.Equal(t, tt.wantMsg, he.Message)
			assert.Nil(t, seen)
		})
	}
}
