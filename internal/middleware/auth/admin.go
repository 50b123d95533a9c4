package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Skotchmaster/cyberacademy/internal/logging"
	"github.com/Skotchmaster/cyberacademy/internal/service"
	"github.com/labstack/echo/v4"
)

const (
	HeaderUsername = "username"
	HeaderPassword = "password"

	principalKey = "admin_principal"
)

var errNoCredentials = errors.New("no credentials")

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*service.Principal, error)
	VerifyToken(token string) (*service.Principal, error)
}

// AdminMiddleware re-checks admin credentials on every request. Raw
// username/password headers are the primary contract; a bearer access
// token from login is accepted as well.
type AdminMiddleware struct {
	Auth Authenticator
}

func NewAdminMiddleware(a Authenticator) *AdminMiddleware {
	return &AdminMiddleware{Auth: a}
}

func (m *AdminMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "auth.require_admin")

		p, err := m.principal(c)
		if err != nil {
			switch {
			case errors.Is(err, errNoCredentials):
				l.Warn("require_admin_failed", "status", 401, "reason", "no credentials")
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrValidation):
				l.Warn("require_admin_failed", "status", 401, "reason", "invalid credentials", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid admin credentials")
			default:
				l.Error("require_admin_failed", "status", 500, "reason", "cannot check credentials", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "Authentication failed")
			}
		}

		c.Set(principalKey, p)
		c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx, logging.FromContext(ctx).With("admin_id", p.ID))))
		return next(c)
	}
}

func (m *AdminMiddleware) principal(c echo.Context) (*service.Principal, error) {
	h := c.Request().Header
	username, password := h.Get(HeaderUsername), h.Get(HeaderPassword)
	if username != "" || password != "" {
		return m.Auth.Authenticate(c.Request().Context(), username, password)
	}

	if authz := h.Get(echo.HeaderAuthorization); authz != "" {
		tok, ok := strings.CutPrefix(authz, "Bearer ")
		if !ok || tok == "" {
			return nil, service.ErrUnauthorized
		}
		return m.Auth.VerifyToken(tok)
	}
	return nil, errNoCredentials
}

func PrincipalFrom(c echo.Context) *service.Principal {
	p, _ := c.Get(principalKey).(*service.Principal)
	return p
}
