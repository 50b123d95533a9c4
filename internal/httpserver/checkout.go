package httpserver

import (
	"errors"
	"net/http"

	"github.com/Skotchmaster/cyberacademy/internal/logging"
	"github.com/Skotchmaster/cyberacademy/internal/models"
	"github.com/Skotchmaster/cyberacademy/internal/service"
	"github.com/Skotchmaster/cyberacademy/internal/transport"
	"github.com/labstack/echo/v4"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

type completeOrderResponse struct {
	Message string          `json:"message"`
	Order   *models.Order   `json:"order"`
	Courses []models.Course `json:"courses"`
}

type verifyPaymentResponse struct {
	Message      string        `json:"message"`
	Order        *models.Order `json:"order"`
	Notification string        `json:"notification"`
	WhatsAppURL  string        `json:"whatsappUrl"`
}

func (h *CheckoutHTTP) CreatePaymentIntent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.create_payment_intent")

	var req transport.PaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_payment_intent_failed", "status", 400, "reason", "invalid body", "error", err)
		return invalid("Session ID is required", err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("create_payment_intent_failed", "status", 400, "reason", "schema validation", "error", err)
		return invalid("Session ID is required", err)
	}

	res, err := h.Svc.CreatePaymentIntent(ctx, req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			l.Warn("create_payment_intent_failed", "status", 400, "reason", "cart is empty", "session_id", req.SessionID)
			return echo.NewHTTPError(http.StatusBadRequest, "Cart is empty")
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_payment_intent_failed", "status", 400, "reason", "invalid field", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Session ID is required")
		}
		l.Error("create_payment_intent_failed", "status", 500, "reason", "payment provider error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error creating payment intent")
	}

	l.Info("create_payment_intent_success", "payment_intent_id", res.PaymentIntentID, "amount", res.Amount)
	return c.JSON(http.StatusOK, res)
}

func (h *CheckoutHTTP) CompleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.complete_order")

	var req transport.CompleteOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("complete_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return invalid("Session ID and Payment Intent ID are required", err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("complete_order_failed", "status", 400, "reason", "schema validation", "error", err)
		return invalid("Session ID and Payment Intent ID are required", err)
	}

	res, err := h.Svc.CompleteOrder(ctx, req.SessionID, req.PaymentIntentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			l.Warn("complete_order_failed", "status", 400, "reason", "cart is empty", "session_id", req.SessionID)
			return echo.NewHTTPError(http.StatusBadRequest, "Cart is empty")
		case errors.Is(err, service.ErrPaymentIncomplete):
			l.Warn("complete_order_failed", "status", 402, "reason", "payment not succeeded", "payment_intent_id", req.PaymentIntentID, "error", err)
			return echo.NewHTTPError(http.StatusPaymentRequired, "Payment has not succeeded")
		case errors.Is(err, service.ErrPaymentAlreadyUsed):
			l.Warn("complete_order_failed", "status", 409, "reason", "payment already recorded", "payment_intent_id", req.PaymentIntentID)
			return echo.NewHTTPError(http.StatusConflict, "Payment already used for another order")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("complete_order_failed", "status", 404, "reason", "unknown payment intent", "payment_intent_id", req.PaymentIntentID)
			return echo.NewHTTPError(http.StatusNotFound, "Payment intent not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("complete_order_failed", "status", 400, "reason", "invalid field", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Session ID and Payment Intent ID are required")
		}
		l.Error("complete_order_failed", "status", 500, "reason", "cannot record order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error completing order")
	}

	l.Info("complete_order_success", "order_id", res.Order.ID, "total", res.Order.TotalAmount)
	return c.JSON(http.StatusOK, completeOrderResponse{
		Message: "Order completed successfully",
		Order:   res.Order,
		Courses: res.Courses,
	})
}

func (h *CheckoutHTTP) GeneratePayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.generate_payment")

	var req transport.GeneratePaymentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("generate_payment_failed", "status", 400, "reason", "invalid body", "error", err)
		return invalid("Session ID is required", err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("generate_payment_failed", "status", 400, "reason", "schema validation", "error", err)
		return invalid("Session ID is required", err)
	}

	res, err := h.Svc.GeneratePayment(ctx, req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			l.Warn("generate_payment_failed", "status", 400, "reason", "cart is empty", "session_id", req.SessionID)
			return echo.NewHTTPError(http.StatusBadRequest, "Cart is empty")
		case errors.Is(err, service.ErrValidation):
			l.Warn("generate_payment_failed", "status", 400, "reason", "invalid field", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Session ID is required")
		}
		l.Error("generate_payment_failed", "status", 500, "reason", "cannot create order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error generating payment")
	}

	l.Info("generate_payment_success", "order_token", res.OrderID, "total", res.TotalAmount)
	return c.JSON(http.StatusOK, res)
}

func (h *CheckoutHTTP) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.verify_payment")

	var req transport.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("verify_payment_failed", "status", 400, "reason", "invalid body", "error", err)
		return invalid("Order ID, UTR number and Session ID are required", err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("verify_payment_failed", "status", 400, "reason", "schema validation", "error", err)
		return invalid("Order ID, UTR number and Session ID are required", err)
	}

	res, err := h.Svc.VerifyPayment(ctx, req.OrderID, req.UTRNumber, req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("verify_payment_failed", "status", 404, "reason", "unknown order", "order_token", req.OrderID)
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		case errors.Is(err, service.ErrOrderNotAwaiting):
			l.Warn("verify_payment_failed", "status", 400, "reason", "order not awaiting payment", "order_token", req.OrderID)
			return echo.NewHTTPError(http.StatusBadRequest, "Order is not awaiting payment")
		case errors.Is(err, service.ErrValidation):
			l.Warn("verify_payment_failed", "status", 400, "reason", "invalid field", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Order ID, UTR number and Session ID are required")
		}
		l.Error("verify_payment_failed", "status", 500, "reason", "cannot update order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error verifying payment")
	}

	l.Info("verify_payment_success", "order_id", res.Order.ID, "status", res.Order.Status)
	return c.JSON(http.StatusOK, verifyPaymentResponse{
		Message:      "Payment submitted for verification",
		Order:        res.Order,
		Notification: res.Notification,
		WhatsAppURL:  res.WhatsAppURL,
	})
}

func (h *CheckoutHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.get_order")

	token := c.Param("token")
	order, err := h.Svc.GetOrder(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_failed", "status", 404, "reason", "unknown order", "order_token", token)
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		l.Error("get_order_failed", "status", 500, "reason", "cannot read order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching order")
	}
	return c.JSON(http.StatusOK, order)
}
