package repository

import (
	"art-booking/pkg/database"

	"go.uber.org/zap"
)

// Repository groups one repository per persisted document. Each repository
// serializes its own read-modify-write cycles; writes that span documents
// are not atomic and the last writer wins across processes.
type Repository struct {
	Ledger       LedgerRepository
	Order        OrderRepository
	Booking      BookingRepository
	Trip         TripRepository
	Route        RouteRepository
	Notification NotificationRepository
	Reschedule   RescheduleRepository
	Receipt      ReceiptRepository
}

func NewRepository(store database.DocumentStore, log *zap.Logger) *Repository {
	return &Repository{
		Ledger:       NewLedgerRepository(store, log),
		Order:        NewOrderRepository(store, log),
		Booking:      NewBookingRepository(store, log),
		Trip:         NewTripRepository(store, log),
		Route:        NewRouteRepository(store, log),
		Notification: NewNotificationRepository(store, log),
		Reschedule:   NewRescheduleRepository(store, log),
		Receipt:      NewReceiptRepository(store, log),
	}
}
