package usecase

import (
	"time"

	"art-booking/internal/data/entity"
	"art-booking/internal/data/repository"
	"art-booking/pkg/broker"
	"art-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Ledger       LedgerService
	Notification NotificationService
	Trip         TripService
	TripBooking  TripBookingService
	Receipt      ReceiptService
	Order        OrderService
}

// Options overrides collaborators that are otherwise built from config.
type Options struct {
	Gateway Gateway
	Now     func() time.Time
}

func NewService(repo *repository.Repository, config *utils.Config, publisher broker.Publisher, log *zap.Logger, opts Options) *Service {
	now := opts.Now
	if now == nil {
		loc := config.App.Location()
		now = func() time.Time { return time.Now().In(loc) }
	}
	// stored times have no zone; read them back in the clock's zone
	entity.SetLocation(now().Location())

	gateway := opts.Gateway
	if gateway == nil {
		gateway = NewRandomGateway(config.Business.PaymentSuccessRate, nil)
	}

	ledger := NewLedgerService(repo.Ledger, log)
	notifier := NewNotificationService(repo.Notification, publisher, now, log)
	tripBooking := NewTripBookingService(repo, ledger, notifier, config.Business.BookingHorizonDays, now, log)
	receipts := NewReceiptService(repo, now, log)

	orderDeps := OrderDeps{
		Ledger:             ledger,
		Gateway:            gateway,
		Orders:             repo.Order,
		Bookings:           repo.Booking,
		Notifier:           notifier,
		Now:                now,
		MaxPaymentAttempts: config.Business.MaxPaymentAttempts,
	}

	return &Service{
		Ledger:       ledger,
		Notification: notifier,
		Trip:         NewTripService(repo, notifier, now, log),
		TripBooking:  tripBooking,
		Receipt:      receipts,
		Order:        NewOrderService(orderDeps, tripBooking, receipts, log),
	}
}
