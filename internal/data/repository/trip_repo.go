package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"art-booking/internal/data/entity"
	"art-booking/pkg/database"

	"go.uber.org/zap"
)

type TripRepository interface {
	FindAll(ctx context.Context) ([]entity.Trip, error)
	FindByID(ctx context.Context, tripID string) (*entity.Trip, error)
	// FindByColor filters on the colour prefix of the trip id; an empty
	// colour returns every trip.
	FindByColor(ctx context.Context, color string) ([]entity.Trip, error)
	FindByRoute(ctx context.Context, routeID string) ([]entity.Trip, error)
	FindByStartStation(ctx context.Context, stationID string) ([]entity.Trip, error)
	Save(ctx context.Context, trip *entity.Trip) error
}

type tripRepository struct {
	store database.DocumentStore
	mu    sync.Mutex
	log   *zap.Logger
}

func NewTripRepository(store database.DocumentStore, log *zap.Logger) TripRepository {
	return &tripRepository{
		store: store,
		log:   log.With(zap.String("repository", "trips")),
	}
}

func (r *tripRepository) loadRaw(ctx context.Context) ([]json.RawMessage, error) {
	var raw []json.RawMessage
	if _, err := r.store.Load(ctx, database.DocTrips, &raw); err != nil {
		return nil, fmt.Errorf("load trips: %w", err)
	}
	return raw, nil
}

// decode skips records that fail to decode so one bad template does not
// hide the rest of the schedule.
func (r *tripRepository) decode(raw []json.RawMessage) []entity.Trip {
	trips := make([]entity.Trip, 0, len(raw))
	for i, item := range raw {
		var trip entity.Trip
		if err := json.Unmarshal(item, &trip); err != nil {
			r.log.Warn("Skipping invalid trip record", zap.Int("index", i), zap.Error(err))
			continue
		}
		if trip.TripID == "" {
			r.log.Warn("Skipping trip record without id", zap.Int("index", i))
			continue
		}
		trip.Normalize()
		trips = append(trips, trip)
	}
	return trips
}

func (r *tripRepository) FindAll(ctx context.Context) ([]entity.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := r.loadRaw(ctx)
	if err != nil {
		return nil, err
	}
	return r.decode(raw), nil
}

func (r *tripRepository) filter(ctx context.Context, keep func(entity.Trip) bool) ([]entity.Trip, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	trips := make([]entity.Trip, 0, len(all))
	for _, trip := range all {
		if keep(trip) {
			trips = append(trips, trip)
		}
	}
	return trips, nil
}

func (r *tripRepository) FindByID(ctx context.Context, tripID string) (*entity.Trip, error) {
	trips, err := r.filter(ctx, func(t entity.Trip) bool { return t.TripID == tripID })
	if err != nil {
		return nil, err
	}
	if len(trips) == 0 {
		return nil, nil
	}
	return &trips[0], nil
}

func (r *tripRepository) FindByColor(ctx context.Context, color string) ([]entity.Trip, error) {
	color = strings.ToUpper(strings.TrimSpace(color))
	return r.filter(ctx, func(t entity.Trip) bool { return color == "" || t.Color() == color })
}

func (r *tripRepository) FindByRoute(ctx context.Context, routeID string) ([]entity.Trip, error) {
	return r.filter(ctx, func(t entity.Trip) bool { return t.RouteID == routeID })
}

func (r *tripRepository) FindByStartStation(ctx context.Context, stationID string) ([]entity.Trip, error) {
	return r.filter(ctx, func(t entity.Trip) bool { return t.StartStationID == stationID })
}

// Save replaces the record with the same trip id, or appends it. Records
// that could not be decoded are written back untouched.
func (r *tripRepository) Save(ctx context.Context, trip *entity.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := r.loadRaw(ctx)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("encode trip %s: %w", trip.TripID, err)
	}

	replaced := false
	for i, item := range raw {
		var key struct {
			TripID string `json:"tripId"`
		}
		if json.Unmarshal(item, &key) == nil && key.TripID == trip.TripID {
			raw[i] = encoded
			replaced = true
			break
		}
	}
	if !replaced {
		raw = append(raw, encoded)
	}

	if err := r.store.Save(ctx, database.DocTrips, raw); err != nil {
		r.log.Error("Failed to save trip",
			zap.Error(err),
			zap.String("trip_id", trip.TripID),
			zap.String("status", string(trip.Status)),
		)
		return fmt.Errorf("save trip %s: %w", trip.TripID, err)
	}
	return nil
}
