package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Skotchmaster/cyberacademy/internal/events"
	"github.com/Skotchmaster/cyberacademy/internal/logging"
	"github.com/Skotchmaster/cyberacademy/internal/models"
	"github.com/Skotchmaster/cyberacademy/internal/money"
	"github.com/Skotchmaster/cyberacademy/internal/payment"
	"github.com/Skotchmaster/cyberacademy/internal/repo"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutService struct {
	Carts    repo.CartStore
	Courses  repo.CourseStore
	Orders   repo.OrderStore
	Payments payment.Gateway
	Events   events.Publisher

	Currency       string
	QRCodeURL      string
	WhatsAppNumber string

	NewOrderToken func() string
}

type Quote struct {
	Lines []models.CartLine
	Total decimal.Decimal
}

func (q Quote) CourseIDs() []uint {
	ids := make([]uint, 0, len(q.Lines))
	for _, l := range q.Lines {
		ids = append(ids, l.CourseID)
	}
	return ids
}

func (q Quote) Courses() []models.Course {
	out := make([]models.Course, 0, len(q.Lines))
	for _, l := range q.Lines {
		out = append(out, l.Course)
	}
	return out
}

type IntentResult struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
}

type CompletedOrder struct {
	Order   *models.Order   `json:"order"`
	Courses []models.Course `json:"courses"`
}

type ManualPayment struct {
	OrderID     string          `json:"orderId"`
	TotalAmount string          `json:"totalAmount"`
	QRCodeURL   string          `json:"qrCodeUrl"`
	Courses     []models.Course `json:"courses"`
	Order       *models.Order   `json:"-"`
}

type Verification struct {
	Order        *models.Order `json:"order"`
	Notification string        `json:"notification"`
	WhatsAppURL  string        `json:"whatsappUrl"`
}

// Quote prices the session's cart as it is right now.
func (s *CheckoutService) Quote(ctx context.Context, sessionID string) (*Quote, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}

	lines, err := s.Carts.ListCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	prices := make([]string, 0, len(lines))
	for _, l := range lines {
		prices = append(prices, l.Course.Price)
	}
	total, err := money.Sum(prices...)
	if err != nil {
		return nil, fmt.Errorf("cart total: %w", err)
	}
	return &Quote{Lines: lines, Total: total}, nil
}

func (s *CheckoutService) CreatePaymentIntent(ctx context.Context, sessionID string) (*IntentResult, error) {
	q, err := s.Quote(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	intent, err := s.Payments.CreateIntent(ctx, q.Total, s.Currency, sessionID)
	if err != nil {
		return nil, err
	}

	return &IntentResult{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          money.Format(q.Total),
		Currency:        s.Currency,
	}, nil
}

// CompleteOrder records a card payment. The order total comes from the
// cart at completion time, not from the intent amount.
func (s *CheckoutService) CompleteOrder(ctx context.Context, sessionID, intentID string) (*CompletedOrder, error) {
	l := logging.FromContext(ctx).With("svc", "checkout.complete_order")

	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(intentID) == "" {
		return nil, fmt.Errorf("%w: sessionId and paymentIntentId required", ErrValidation)
	}

	q, err := s.Quote(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	intent, err := s.Payments.GetIntent(ctx, intentID)
	if err != nil {
		if errors.Is(err, payment.ErrIntentNotFound) {
			return nil, fmt.Errorf("%w: payment intent %s", ErrNotFound, intentID)
		}
		return nil, err
	}
	if !intent.Succeeded() {
		return nil, fmt.Errorf("%w (status %s)", ErrPaymentIncomplete, intent.Status)
	}
	if charged := money.MinorUnits(q.Total); intent.Amount != charged {
		l.Warn("payment_amount_mismatch", "payment_intent_id", intentID,
			"intent_amount", money.Format(money.FromMinorUnits(intent.Amount)), "cart_amount", money.Format(q.Total))
	}
	if intent.SessionID != "" && intent.SessionID != sessionID {
		l.Warn("payment_session_mismatch", "payment_intent_id", intentID, "intent_session", intent.SessionID)
	}

	order := &models.Order{
		CourseIDs:        q.CourseIDs(),
		TotalAmount:      money.Format(q.Total),
		PaymentMethod:    models.PaymentCard,
		PaymentReference: intentID,
		Status:           models.StatusCompleted,
	}
	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrPaymentAlreadyUsed
		}
		return nil, err
	}

	s.clearAfterCheckout(ctx, sessionID)
	publish(ctx, s.Events, events.TopicOrders, intentID, map[string]any{
		"type":          "order_completed",
		"orderId":       order.ID,
		"paymentMethod": order.PaymentMethod,
		"totalAmount":   order.TotalAmount,
		"courseIds":     order.CourseIDs,
	})

	return &CompletedOrder{Order: order, Courses: q.Courses()}, nil
}

// GeneratePayment opens a manual QR/UTR order for the current cart. The
// cart stays intact until the UTR is submitted.
func (s *CheckoutService) GeneratePayment(ctx context.Context, sessionID string) (*ManualPayment, error) {
	q, err := s.Quote(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		CourseIDs:        q.CourseIDs(),
		TotalAmount:      money.Format(q.Total),
		PaymentMethod:    models.PaymentManual,
		PaymentReference: s.newToken(),
		Status:           models.StatusPendingPayment,
	}
	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicOrders, order.PaymentReference, map[string]any{
		"type":          "order_created",
		"orderId":       order.ID,
		"orderToken":    order.PaymentReference,
		"paymentMethod": order.PaymentMethod,
		"totalAmount":   order.TotalAmount,
		"status":        order.Status,
	})

	return &ManualPayment{
		OrderID:     order.PaymentReference,
		TotalAmount: order.TotalAmount,
		QRCodeURL:   s.QRCodeURL,
		Courses:     q.Courses(),
		Order:       order,
	}, nil
}

// VerifyPayment records the UTR against a manual order and moves it to
// pending_verification. Completion is left to a human reviewer.
func (s *CheckoutService) VerifyPayment(ctx context.Context, orderToken, utr, sessionID string) (*Verification, error) {
	orderToken = strings.TrimSpace(orderToken)
	utr = strings.TrimSpace(utr)
	if orderToken == "" || utr == "" || strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("%w: orderId, utrNumber and sessionId required", ErrValidation)
	}

	order, err := s.Orders.GetOrderByReference(ctx, orderToken)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderToken)
		}
		return nil, err
	}
	if order.PaymentMethod != models.PaymentManual {
		return nil, ErrOrderNotAwaiting
	}

	order, err = s.Orders.TransitionOrder(ctx, order.ID, models.StatusPendingVerification, &utr)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidTransition) {
			return nil, ErrOrderNotAwaiting
		}
		return nil, err
	}

	courses, err := s.Courses.GetCourses(ctx, order.CourseIDs)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(courses))
	for _, c := range courses {
		titles = append(titles, c.Title)
	}
	msg := VerificationMessage(order.PaymentReference, utr, order.TotalAmount, titles)

	publish(ctx, s.Events, events.TopicVerifications, order.PaymentReference, map[string]any{
		"type":         "payment_verification_requested",
		"orderId":      order.ID,
		"orderToken":   order.PaymentReference,
		"utrNumber":    utr,
		"totalAmount":  order.TotalAmount,
		"notification": msg,
	})
	s.clearAfterCheckout(ctx, sessionID)

	return &Verification{
		Order:        order,
		Notification: msg,
		WhatsAppURL:  WhatsAppURL(s.WhatsAppNumber, msg),
	}, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, token string) (*models.Order, error) {
	order, err := s.Orders.GetOrderByReference(ctx, token)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, token)
	}
	return order, err
}

func (s *CheckoutService) ListOrders(ctx context.Context, status string) ([]models.Order, error) {
	st := models.OrderStatus(status)
	if st != "" && !st.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Orders.ListOrders(ctx, st)
}

func (s *CheckoutService) clearAfterCheckout(ctx context.Context, sessionID string) {
	if err := s.Carts.ClearCart(ctx, sessionID); err != nil {
		logging.FromContext(ctx).Error("cart_clear_failed", "session_id", sessionID, "error", err)
	}
}

func (s *CheckoutService) newToken() string {
	if s.NewOrderToken != nil {
		return s.NewOrderToken()
	}
	return uuid.NewString()
}

func VerificationMessage(orderToken, utr, amount string, titles []string) string {
	courses := "-"
	if len(titles) > 0 {
		courses = strings.Join(titles, ", ")
	}
	return strings.Join([]string{
		"CyberAcademy payment verification",
		"Order ID: " + orderToken,
		"UTR Number: " + utr,
		"Amount: ₹" + amount,
		"Courses: " + courses,
	}, "\n")
}

// WhatsAppURL builds a click-to-chat link; empty when no number is configured.
func WhatsAppURL(number, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
