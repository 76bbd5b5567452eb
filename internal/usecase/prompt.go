package usecase

import (
	"context"
	"sync"

	"art-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

// Prompter supplies the interactive decisions of the order workflow.
// Declining a redemption skips it; declining a method or a retry aborts the order.
type Prompter interface {
	ConfirmRedemption(ctx context.Context, balance, redeemable int64, total decimal.Decimal) (bool, error)
	ChoosePaymentMethod(ctx context.Context, methods []entity.PaymentMethod) (entity.PaymentMethod, bool, error)
	ConfirmRetry(ctx context.Context, attempt, maxAttempts int) (bool, error)
}

// ScriptedPrompter answers from values supplied up front, typically a request
// payload. Methods are consumed in order; retry is confirmed while methods remain.
type ScriptedPrompter struct {
	mu      sync.Mutex
	Redeem  bool
	Methods []entity.PaymentMethod
}

func NewScriptedPrompter(redeem bool, methods ...entity.PaymentMethod) *ScriptedPrompter {
	return &ScriptedPrompter{Redeem: redeem, Methods: methods}
}

func (p *ScriptedPrompter) ConfirmRedemption(ctx context.Context, balance, redeemable int64, total decimal.Decimal) (bool, error) {
	return p.Redeem, nil
}

func (p *ScriptedPrompter) ChoosePaymentMethod(ctx context.Context, methods []entity.PaymentMethod) (entity.PaymentMethod, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.Methods) == 0 {
		return "", false, nil
	}
	next := p.Methods[0]
	p.Methods = p.Methods[1:]
	return next, true, nil
}

func (p *ScriptedPrompter) ConfirmRetry(ctx context.Context, attempt, maxAttempts int) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Methods) > 0, nil
}
