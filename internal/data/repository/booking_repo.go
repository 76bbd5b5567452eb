package repository

import (
	"context"
	"fmt"
	"sync"

	"art-booking/internal/data/entity"
	"art-booking/pkg/database"

	"go.uber.org/zap"
)

// BookingRepository is the global trip booking index, kept alongside the
// copies embedded in orders.
type BookingRepository interface {
	Append(ctx context.Context, userID string, bookings []entity.TripBooking) error
	FindByUserID(ctx context.Context, userID string) ([]entity.TripBooking, error)

	// UpdateStatus sets status on every listed booking id of each user and
	// returns how many records changed.
	UpdateStatus(ctx context.Context, bookingIDsByUser map[string][]string, status entity.TripBookingStatus) (int, error)

	// CancelByTrip cancels every booking on the trip that is not cancelled
	// yet and returns the affected booking ids grouped by user.
	CancelByTrip(ctx context.Context, tripID string) (map[string][]string, error)
}

type bookingRepository struct {
	store database.DocumentStore
	mu    sync.Mutex
	log   *zap.Logger
}

func NewBookingRepository(store database.DocumentStore, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		store: store,
		log:   log.With(zap.String("repository", "tripbookings")),
	}
}

func (r *bookingRepository) load(ctx context.Context) (entity.BookingsDocument, error) {
	doc := entity.BookingsDocument{}
	if _, err := r.store.Load(ctx, database.DocTripBookings, &doc); err != nil {
		return nil, fmt.Errorf("load trip bookings: %w", err)
	}
	if doc == nil {
		doc = entity.BookingsDocument{}
	}
	return doc, nil
}

func (r *bookingRepository) Append(ctx context.Context, userID string, bookings []entity.TripBooking) error {
	if len(bookings) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	doc[userID] = append(doc[userID], bookings...)

	if err := r.store.Save(ctx, database.DocTripBookings, doc); err != nil {
		r.log.Error("Failed to append trip bookings",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("count", len(bookings)),
		)
		return fmt.Errorf("append trip bookings for user %s: %w", userID, err)
	}
	return nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID string) ([]entity.TripBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if doc[userID] == nil {
		return []entity.TripBooking{}, nil
	}
	return doc[userID], nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingIDsByUser map[string][]string, status entity.TripBookingStatus) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for userID, ids := range bookingIDsByUser {
		wanted := make(map[string]bool, len(ids))
		for _, id := range ids {
			wanted[id] = true
		}
		for i := range doc[userID] {
			if wanted[doc[userID][i].TripBookingID] && doc[userID][i].Status != status {
				doc[userID][i].Status = status
				updated++
			}
		}
	}

	if updated == 0 {
		return 0, nil
	}

	if err := r.store.Save(ctx, database.DocTripBookings, doc); err != nil {
		r.log.Error("Failed to update trip booking status",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return 0, fmt.Errorf("update trip bookings to %s: %w", status, err)
	}
	return updated, nil
}

func (r *bookingRepository) CancelByTrip(ctx context.Context, tripID string) (map[string][]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	affected := make(map[string][]string)
	for userID, bookings := range doc {
		for i := range bookings {
			if bookings[i].TripID != tripID || bookings[i].Status == entity.TripBookingStatusCancelled {
				continue
			}
			bookings[i].Status = entity.TripBookingStatusCancelled
			affected[userID] = append(affected[userID], bookings[i].TripBookingID)
		}
	}

	if len(affected) == 0 {
		return affected, nil
	}

	if err := r.store.Save(ctx, database.DocTripBookings, doc); err != nil {
		r.log.Error("Failed to cancel trip bookings", zap.Error(err), zap.String("trip_id", tripID))
		return nil, fmt.Errorf("cancel bookings for trip %s: %w", tripID, err)
	}
	return affected, nil
}
