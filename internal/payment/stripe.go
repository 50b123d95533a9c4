package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Skotchmaster/cyberacademy/internal/money"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const metadataSessionID = "sessionId"

type StripeGateway struct {
	api     *client.API
	timeout time.Duration
}

func NewStripeGateway(secretKey string, timeout time.Duration) *StripeGateway {
	return newStripeGateway(secretKey, timeout, nil)
}

func newStripeGateway(secretKey string, timeout time.Duration, backends *stripe.Backends) *StripeGateway {
	return &StripeGateway{api: client.New(secretKey, backends), timeout: timeout}
}

func (g *StripeGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount decimal.Decimal, currency, sessionID string) (*Intent, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(money.MinorUnits(amount)),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	params.AddMetadata(metadataSessionID, sessionID)

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}
	return fromStripe(pi), nil
}

func (g *StripeGateway) GetIntent(ctx context.Context, id string) (*Intent, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) && serr.HTTPStatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrIntentNotFound, id)
		}
		return nil, fmt.Errorf("stripe: retrieve payment intent: %w", err)
	}
	return fromStripe(pi), nil
}

func fromStripe(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		SessionID:    pi.Metadata[metadataSessionID],
	}
}
