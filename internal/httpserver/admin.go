package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/Skotchmaster/cyberacademy/internal/logging"
	"github.com/Skotchmaster/cyberacademy/internal/paging"
	"github.com/Skotchmaster/cyberacademy/internal/service"
	"github.com/Skotchmaster/cyberacademy/internal/transport"
	"github.com/labstack/echo/v4"
)

type AdminHTTP struct {
	Auth     *service.AuthService
	StatsSvc *service.StatsService
	Checkout *service.CheckoutService
}

type loginResponse struct {
	Message     string            `json:"message"`
	User        service.Principal `json:"user"`
	AccessToken string            `json:"accessToken"`
	ExpiresAt   time.Time         `json:"expiresAt"`
}

func (h *AdminHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return invalid("Username and password are required", err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "schema validation", "error", err)
		return invalid("Username and password are required", err)
	}

	res, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, service.ErrValidation):
			l.Warn("login_failed", "status", 400, "reason", "invalid field", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
		}
		l.Error("login_failed", "status", 500, "reason", "cannot authenticate", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Authentication failed")
	}

	l.Info("login_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, loginResponse{
		Message:     "Authentication successful",
		User:        res.User,
		AccessToken: res.AccessToken,
		ExpiresAt:   res.AccessExp,
	})
}

func (h *AdminHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.stats")

	stats, err := h.StatsSvc.Get(ctx)
	if err != nil {
		l.Error("stats_failed", "status", 500, "reason", "cannot aggregate", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching stats")
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_orders")

	status := c.QueryParam("status")
	page, err := optionalInt(c, "page")
	if err != nil {
		l.Warn("list_orders_failed", "status", 400, "reason", "page is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid page")
	}
	size, err := optionalInt(c, "size")
	if err != nil {
		l.Warn("list_orders_failed", "status", 400, "reason", "size is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid page size")
	}

	orders, err := h.Checkout.ListOrders(ctx, status)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("list_orders_failed", "status", 400, "reason", "unknown status filter", "filter", status)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid order status")
		}
		l.Error("list_orders_failed", "status", 500, "reason", "cannot read orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching orders")
	}
	if page > 0 {
		orders = paging.Slice(orders, page, size)
	}
	return c.JSON(http.StatusOK, orders)
}
