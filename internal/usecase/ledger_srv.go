package usecase

import (
	"context"
	"errors"
	"fmt"

	"art-booking/internal/data/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PointsPerCurrencyUnit is the spend needed to earn one point.
var PointsPerCurrencyUnit = decimal.NewFromInt(10)

type LedgerService interface {
	GetPoints(ctx context.Context, userID string) (int64, error)
	// EarnPoints converts spend to points at 10:1 and returns the points credited.
	EarnPoints(ctx context.Context, userID string, amount decimal.Decimal) (int64, error)
	// CreditPoints adds points at 1:1, used for refunds.
	CreditPoints(ctx context.Context, userID string, points int64) (int64, error)
	// DeductPoints reports false without mutating when the balance is short.
	DeductPoints(ctx context.Context, userID string, points int64) (bool, error)
}

type ledgerService struct {
	repo repository.LedgerRepository
	log  *zap.Logger
}

func NewLedgerService(repo repository.LedgerRepository, log *zap.Logger) LedgerService {
	return &ledgerService{
		repo: repo,
		log:  log.With(zap.String("service", "ledger")),
	}
}

// PointsForAmount floors amount/10, never below zero.
func PointsForAmount(amount decimal.Decimal) int64 {
	if !amount.IsPositive() {
		return 0
	}
	return amount.Div(PointsPerCurrencyUnit).Floor().IntPart()
}

func (s *ledgerService) GetPoints(ctx context.Context, userID string) (int64, error) {
	balance, err := s.repo.Balance(ctx, userID)
	if err != nil {
		s.log.Error("Failed to read points", zap.Error(err), zap.String("user_id", userID))
		return 0, storageError("get points", err)
	}
	return balance, nil
}

func (s *ledgerService) EarnPoints(ctx context.Context, userID string, amount decimal.Decimal) (int64, error) {
	return s.CreditPoints(ctx, userID, PointsForAmount(amount))
}

func (s *ledgerService) CreditPoints(ctx context.Context, userID string, points int64) (int64, error) {
	if points <= 0 {
		return 0, nil
	}

	balance, err := s.repo.Adjust(ctx, userID, func(current int64) (int64, error) {
		return current + points, nil
	})
	if err != nil {
		return 0, storageError(fmt.Sprintf("credit %d points", points), err)
	}

	s.log.Info("Points credited",
		zap.String("user_id", userID),
		zap.Int64("points", points),
		zap.Int64("balance", balance),
	)
	return points, nil
}

func (s *ledgerService) DeductPoints(ctx context.Context, userID string, points int64) (bool, error) {
	if points < 0 {
		return false, fmt.Errorf("cannot deduct %d points: %w", points, ErrValidation)
	}
	if points == 0 {
		return true, nil
	}

	balance, err := s.repo.Adjust(ctx, userID, func(current int64) (int64, error) {
		if points > current {
			return current, ErrInsufficientPoints
		}
		return current - points, nil
	})
	if errors.Is(err, ErrInsufficientPoints) {
		s.log.Warn("Insufficient points",
			zap.String("user_id", userID),
			zap.Int64("requested", points),
			zap.Int64("balance", balance),
		)
		return false, nil
	}
	if err != nil {
		return false, storageError(fmt.Sprintf("deduct %d points", points), err)
	}

	s.log.Info("Points deducted",
		zap.String("user_id", userID),
		zap.Int64("points", points),
		zap.Int64("balance", balance),
	)
	return true, nil
}
