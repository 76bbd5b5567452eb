package repository

import (
	"context"
	"fmt"
	"sync"

	"art-booking/internal/data/entity"
	"art-booking/pkg/database"

	"go.uber.org/zap"
)

type RescheduleRepository interface {
	Append(ctx context.Context, rec *entity.Reschedule) error
	FindByTripID(ctx context.Context, tripID string) ([]entity.Reschedule, error)
}

type rescheduleRepository struct {
	store database.DocumentStore
	mu    sync.Mutex
	log   *zap.Logger
}

func NewRescheduleRepository(store database.DocumentStore, log *zap.Logger) RescheduleRepository {
	return &rescheduleRepository{
		store: store,
		log:   log.With(zap.String("repository", "reschedules")),
	}
}

func (r *rescheduleRepository) load(ctx context.Context) ([]entity.Reschedule, error) {
	var list []entity.Reschedule
	if _, err := r.store.Load(ctx, database.DocReschedules, &list); err != nil {
		return nil, fmt.Errorf("load reschedules: %w", err)
	}
	return list, nil
}

func (r *rescheduleRepository) Append(ctx context.Context, rec *entity.Reschedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	list = append(list, *rec)

	if err := r.store.Save(ctx, database.DocReschedules, list); err != nil {
		r.log.Error("Failed to append reschedule", zap.Error(err), zap.String("trip_id", rec.TripID))
		return fmt.Errorf("append reschedule for trip %s: %w", rec.TripID, err)
	}
	return nil
}

func (r *rescheduleRepository) FindByTripID(ctx context.Context, tripID string) ([]entity.Reschedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]entity.Reschedule, 0)
	for _, rec := range list {
		if rec.TripID == tripID {
			result = append(result, rec)
		}
	}
	return result, nil
}
