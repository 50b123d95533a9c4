package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Skotchmaster/cyberacademy/internal/models"
	"github.com/Skotchmaster/cyberacademy/internal/money"
	"github.com/Skotchmaster/cyberacademy/internal/payment"
	"github.com/shopspring/decimal"
)

type publishedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, topic, key string, event map[string]any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, fmt.Sprint(e.Event["type"]))
	}
	return out
}

type fakeGateway struct {
	mu      sync.Mutex
	intents map[string]*payment.Intent
	created []createdIntent
	next    int
	err     error
}

type createdIntent struct {
	Amount    decimal.Decimal
	Currency  string
	SessionID string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{intents: make(map[string]*payment.Intent)}
}

func (g *fakeGateway) CreateIntent(ctx context.Context, amount decimal.Decimal, currency, sessionID string) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	g.next++
	id := fmt.Sprintf("pi_%d", g.next)
	in := &payment.Intent{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       "requires_payment_method",
		Amount:       money.MinorUnits(amount),
		Currency:     currency,
		SessionID:    sessionID,
	}
	g.intents[id] = in
	g.created = append(g.created, createdIntent{Amount: amount, Currency: currency, SessionID: sessionID})
	cp := *in
	return &cp, nil
}

func (g *fakeGateway) GetIntent(ctx context.Context, id string) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	in, ok := g.intents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", payment.ErrIntentNotFound, id)
	}
	cp := *in
	return &cp, nil
}

func (g *fakeGateway) succeed(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.intents[id].Status = payment.StatusSucceeded
}

type fakeIndex struct {
	indexed map[uint]models.Course
	removed []uint
	hits    []uint
	err     error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{indexed: make(map[uint]models.Course)}
}

func (x *fakeIndex) IndexCourse(ctx context.Context, c models.Course) error {
	if x.err != nil {
		return x.err
	}
	x.indexed[c.ID] = c
	return nil
}

func (x *fakeIndex) RemoveCourse(ctx context.Context, id uint) error {
	if x.err != nil {
		return x.err
	}
	x.removed = append(x.removed, id)
	return nil
}

func (x *fakeIndex) Search(ctx context.Context, q string, limit int) ([]uint, error) {
	if x.err != nil {
		return nil, x.err
	}
	return x.hits, nil
}

var errBoom = errors.New("boom")
