package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

const StatusSucceeded = "succeeded"

var ErrIntentNotFound = errors.New("payment intent not found")

type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	// Amount is in minor currency units.
	Amount    int64
	Currency  string
	SessionID string
}

func (i Intent) Succeeded() bool { return i.Status == StatusSucceeded }

type Gateway interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency, sessionID string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}
