package httpserver

import (
	"errors"
	"net/http"

	"github.com/Skotchmaster/cyberacademy/internal/logging"
	"github.com/Skotchmaster/cyberacademy/internal/service"
	"github.com/Skotchmaster/cyberacademy/internal/transport"
	"github.com/labstack/echo/v4"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return invalid("Session ID and Course ID are required", err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "schema validation", "error", err)
		return invalid("Session ID and Course ID are required", err)
	}

	item, created, err := h.Svc.Add(ctx, req.SessionID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_to_cart_failed", "status", 400, "reason", "invalid field", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Session ID and Course ID are required")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_to_cart_failed", "status", 404, "reason", "course does not exist", "course_id", req.CourseID)
			return echo.NewHTTPError(http.StatusNotFound, "Course not found")
		}
		l.Error("add_to_cart_failed", "status", 500, "reason", "cannot store cart item", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error adding to cart")
	}

	if !created {
		l.Info("add_to_cart_existing", "cart_item_id", item.ID)
		return c.JSON(http.StatusOK, item)
	}
	l.Info("add_to_cart_success", "cart_item_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	lines, err := h.Svc.List(ctx, c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("get_cart_failed", "status", 400, "reason", "empty session id")
			return echo.NewHTTPError(http.StatusBadRequest, "Session ID is required")
		}
		l.Error("get_cart_failed", "status", 500, "reason", "cannot read cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching cart")
	}
	return c.JSON(http.StatusOK, lines)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_from_cart")

	courseID, err := uintParam(c, "courseId")
	if err != nil {
		l.Warn("remove_from_cart_failed", "status", 400, "reason", "course id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid course id")
	}

	if err := h.Svc.Remove(ctx, c.Param("sessionId"), courseID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("remove_from_cart_failed", "status", 404, "reason", "item not in cart", "course_id", courseID)
			return echo.NewHTTPError(http.StatusNotFound, "Item not found in cart")
		case errors.Is(err, service.ErrValidation):
			l.Warn("remove_from_cart_failed", "status", 400, "reason", "empty session id")
			return echo.NewHTTPError(http.StatusBadRequest, "Session ID is required")
		}
		l.Error("remove_from_cart_failed", "status", 500, "reason", "cannot remove cart item", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error removing from cart")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Item removed from cart"})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear_cart")

	if err := h.Svc.Clear(ctx, c.Param("sessionId")); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("clear_cart_failed", "status", 400, "reason", "empty session id")
			return echo.NewHTTPError(http.StatusBadRequest, "Session ID is required")
		}
		l.Error("clear_cart_failed", "status", 500, "reason", "cannot clear cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error clearing cart")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Cart cleared"})
}
