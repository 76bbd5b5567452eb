package repository

import (
	"context"
	"fmt"
	"sync"

	"art-booking/internal/data/entity"
	"art-booking/pkg/database"

	"go.uber.org/zap"
)

type LedgerRepository interface {
	Balance(ctx context.Context, userID string) (int64, error)
	// Adjust applies fn to the current balance and persists the result
	// before returning. When fn fails nothing is written.
	Adjust(ctx context.Context, userID string, fn func(current int64) (int64, error)) (int64, error)
}

type ledgerRepository struct {
	store database.DocumentStore
	mu    sync.Mutex
	log   *zap.Logger
}

func NewLedgerRepository(store database.DocumentStore, log *zap.Logger) LedgerRepository {
	return &ledgerRepository{
		store: store,
		log:   log.With(zap.String("repository", "points_ledger")),
	}
}

func (r *ledgerRepository) load(ctx context.Context) (entity.PointsLedger, error) {
	ledger := entity.PointsLedger{}
	if _, err := r.store.Load(ctx, database.DocPointsLedger, &ledger); err != nil {
		return nil, fmt.Errorf("load points ledger: %w", err)
	}
	if ledger == nil {
		ledger = entity.PointsLedger{}
	}
	return ledger, nil
}

func (r *ledgerRepository) Balance(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ledger, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	return ledger[userID], nil
}

func (r *ledgerRepository) Adjust(ctx context.Context, userID string, fn func(current int64) (int64, error)) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ledger, err := r.load(ctx)
	if err != nil {
		return 0, err
	}

	current := ledger[userID]
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	if next < 0 {
		return current, fmt.Errorf("points balance for user %s cannot go negative", userID)
	}

	ledger[userID] = next
	if err := r.store.Save(ctx, database.DocPointsLedger, ledger); err != nil {
		r.log.Error("Failed to save points ledger",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int64("balance", next),
		)
		return current, fmt.Errorf("save points ledger for user %s: %w", userID, err)
	}
	return next, nil
}
