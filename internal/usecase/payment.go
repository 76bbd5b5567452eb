package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"art-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

// Gateway charges a payer. A false result with a nil error is a declined payment.
type Gateway interface {
	Charge(ctx context.Context, method entity.PaymentMethod, amount decimal.Decimal) (bool, error)
}

// GatewayFunc adapts a function to Gateway.
type GatewayFunc func(ctx context.Context, method entity.PaymentMethod, amount decimal.Decimal) (bool, error)

func (f GatewayFunc) Charge(ctx context.Context, method entity.PaymentMethod, amount decimal.Decimal) (bool, error) {
	return f(ctx, method, amount)
}

const DefaultPaymentSuccessRate = 0.8

// RandomGateway approves a charge with a fixed probability.
type RandomGateway struct {
	mu          sync.Mutex
	rng         *rand.Rand
	successRate float64
}

// NewRandomGateway uses a time-seeded source when src is nil.
func NewRandomGateway(successRate float64, src rand.Source) *RandomGateway {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &RandomGateway{rng: rand.New(src), successRate: successRate}
}

func (g *RandomGateway) Charge(ctx context.Context, method entity.PaymentMethod, amount decimal.Decimal) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64() < g.successRate, nil
}

// PaymentAttempt is one try at paying an amount. It is not persisted; the
// outcome folds into the order.
type PaymentAttempt struct {
	Method entity.PaymentMethod
	Amount decimal.Decimal
	Status entity.PaymentStatus
}

func NewPaymentAttempt() *PaymentAttempt {
	return &PaymentAttempt{Status: entity.PaymentStatusPending}
}

// SelectMethod asks the prompter for one of the fixed methods. A declined
// prompt returns ErrUserAbort.
func (p *PaymentAttempt) SelectMethod(ctx context.Context, prompter Prompter) (entity.PaymentMethod, error) {
	method, ok, err := prompter.ChoosePaymentMethod(ctx, entity.PaymentMethods)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("payment method selection cancelled: %w", ErrUserAbort)
	}
	if !method.Valid() {
		return "", fmt.Errorf("unknown payment method %q: %w", method, ErrValidation)
	}
	p.Method = method
	return method, nil
}

// Process charges amount through gw. Status always ends PAID or FAILED; a
// gateway error counts as a failed charge.
func (p *PaymentAttempt) Process(ctx context.Context, gw Gateway, amount decimal.Decimal) (bool, error) {
	p.Amount = amount
	ok, err := gw.Charge(ctx, p.Method, amount)
	if err != nil || !ok {
		p.Status = entity.PaymentStatusFailed
		return false, err
	}
	p.Status = entity.PaymentStatusPaid
	return true, nil
}
