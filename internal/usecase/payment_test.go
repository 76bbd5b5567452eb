package usecase

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"art-booking/internal/data/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentAttempt_SelectMethod(t *testing.T) {
	ctx := context.Background()

	attempt := NewPaymentAttempt()
	method, err := attempt.SelectMethod(ctx, NewScriptedPrompter(false, entity.PaymentMethodEWallet))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentMethodEWallet, method)
	assert.Equal(t, entity.PaymentStatusPending, attempt.Status)

	_, err = NewPaymentAttempt().SelectMethod(ctx, NewScriptedPrompter(false))
	assert.ErrorIs(t, err, ErrUserAbort)

	_, err = NewPaymentAttempt().SelectMethod(ctx, NewScriptedPrompter(false, entity.PaymentMethod("BITCOIN")))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPaymentAttempt_Process(t *testing.T) {
	ctx := context.Background()
	amount := decimal.RequireFromString("12.50")

	t.Run("approved", func(t *testing.T) {
		attempt := NewPaymentAttempt()
		ok, err := attempt.Process(ctx, GatewayFunc(func(ctx context.Context, m entity.PaymentMethod, a decimal.Decimal) (bool, error) {
			return true, nil
		}), amount)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, entity.PaymentStatusPaid, attempt.Status)
		assert.True(t, amount.Equal(attempt.Amount))
	})

	t.Run("declined", func(t *testing.T) {
		attempt := NewPaymentAttempt()
		ok, err := attempt.Process(ctx, GatewayFunc(func(ctx context.Context, m entity.PaymentMethod, a decimal.Decimal) (bool, error) {
			return false, nil
		}), amount)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, entity.PaymentStatusFailed, attempt.Status)
	})

	t.Run("gateway error counts as failure", func(t *testing.T) {
		attempt := NewPaymentAttempt()
		ok, err := attempt.Process(ctx, GatewayFunc(func(ctx context.Context, m entity.PaymentMethod, a decimal.Decimal) (bool, error) {
			return false, errors.New("timeout")
		}), amount)
		assert.Error(t, err)
		assert.False(t, ok)
		assert.Equal(t, entity.PaymentStatusFailed, attempt.Status)
	})
}

func TestRandomGateway_Rates(t *testing.T) {
	ctx := context.Background()

	always := NewRandomGateway(1, rand.NewSource(1))
	never := NewRandomGateway(0, rand.NewSource(1))
	for i := 0; i < 20; i++ {
		ok, err := always.Charge(ctx, entity.PaymentMethodPayPal, decimal.NewFromInt(1))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = never.Charge(ctx, entity.PaymentMethodPayPal, decimal.NewFromInt(1))
		require.NoError(t, err)
		assert.False(t, ok)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err := always.Charge(cancelled, entity.PaymentMethodPayPal, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, context.Canceled)
}
