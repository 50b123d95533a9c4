package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Skotchmaster/cyberacademy/internal/hash"
	"github.com/Skotchmaster/cyberacademy/internal/logging"
	"github.com/Skotchmaster/cyberacademy/internal/models"
	"github.com/Skotchmaster/cyberacademy/internal/money"
	"github.com/Skotchmaster/cyberacademy/internal/payment"
	"github.com/Skotchmaster/cyberacademy/internal/repo"
	"github.com/Skotchmaster/cyberacademy/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	adminUser = "admin"
	adminPass = "cyb3r@dm1n"
)

type stubGateway struct {
	mu      sync.Mutex
	intents map[string]*payment.Intent
	next    int
}

func (g *stubGateway) CreateIntent(ctx context.Context, amount decimal.Decimal, currency, sessionID string) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	id := fmt.Sprintf("pi_test_%d", g.next)
	in := &payment.Intent{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       "requires_payment_method",
		Amount:       money.MinorUnits(amount),
		Currency:     currency,
		SessionID:    sessionID,
	}
	g.intents[id] = in
	return in, nil
}

func (g *stubGateway) GetIntent(ctx context.Context, id string) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	in, ok := g.intents[id]
	if !ok {
		return nil, payment.ErrIntentNotFound
	}
	cp := *in
	return &cp, nil
}

func (g *stubGateway) succeed(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.intents[id].Status = payment.StatusSucceeded
}

type testEnv struct {
	E       *echo.Echo
	Store   *repo.MemoryRepo
	Gateway *stubGateway
	Catalog *CatalogHTTP
	Logs    *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repo.NewMemoryRepo()
	pw, err := hash.HashPassword(adminPass)
	require.NoError(t, err)
	_, err = repo.Seed(context.Background(), store, &models.User{Username: adminUser, PasswordHash: pw, IsAdmin: true})
	require.NoError(t, err)

	gw := &stubGateway{intents: make(map[string]*payment.Intent)}
	authSvc := &service.AuthService{Users: store, JWTSecret: []byte("test-secret")}
	checkout := &service.CheckoutService{
		Carts:          store,
		Courses:        store,
		Orders:         store,
		Payments:       gw,
		Currency:       "usd",
		QRCodeURL:      "/assets/payment-qr.png",
		WhatsAppNumber: "+91 98765 43210",
	}

	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	logs := &bytes.Buffer{}
	logger := logging.NewWithWriter(logs, "debug")
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	catalog := &CatalogHTTP{Svc: &service.CatalogService{Repo: store}}
	Register(e, &Deps{
		CatalogHandler:  catalog,
		CartHandler:     &CartHTTP{Svc: &service.CartService{Repo: store, Courses: store}},
		CheckoutHandler: &CheckoutHTTP{Svc: checkout},
		AdminHandler: &AdminHTTP{
			Auth:     authSvc,
			StatsSvc: &service.StatsService{Courses: store, Orders: store},
			Checkout: checkout,
		},
		AdminAuth: authSvc,
	})

	return &testEnv{E: e, Store: store, Gateway: gw, Catalog: catalog, Logs: logs}
}

func adminHeaders() map[string]string {
	return map[string]string{"username": adminUser, "password": adminPass}
}

// do sends a request through the full router.
func (env *testEnv) do(t *testing.T, method, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// doJSONRequest builds a context for calling a handler directly.
func (env *testEnv) doJSONRequest(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func requireMessage(t *testing.T, rec *httptest.ResponseRecorder, code int, message string) {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	body := decode[ErrorBody](t, rec)
	require.Equal(t, message, body.Message)
}
