package usecase

import (
	"context"
	"fmt"
	"time"

	"art-booking/internal/data/entity"
	"art-booking/internal/data/repository"
	"art-booking/internal/dto/request"
	"art-booking/internal/dto/response"
	"art-booking/pkg/utils"

	"go.uber.org/zap"
)

// RefundWindow is how far ahead of departure a cancellation must happen to
// be refunded. Exactly RefundWindow before departure is not refunded.
const RefundWindow = 24 * time.Hour

func RefundEligible(departure, now time.Time) bool {
	return departure.Sub(now) > RefundWindow
}

// TripOccurrence is a trip template placed on a concrete date.
type TripOccurrence struct {
	Trip      entity.Trip
	Departure time.Time
	Arrival   time.Time
}

type TripBookingService interface {
	Stations(ctx context.Context) ([]entity.StationLine, error)
	Routes(ctx context.Context) ([]entity.Route, error)
	ValidateConnection(ctx context.Context, fromStationID, toStationID string) (*response.ConnectionResponse, error)
	GetTripDetails(ctx context.Context, req *request.TripSearchRequest) ([]response.TripOccurrenceResponse, error)

	// ResolveTrip prefers the occurrence departing at clock (HH:MM) and
	// otherwise falls back to the first bookable one.
	ResolveTrip(ctx context.Context, stationID string, date time.Time, clock string) (*TripOccurrence, bool, error)

	ListUserBookings(ctx context.Context, userID string) ([]response.TripBookingResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID string) (*response.CancellationResponse, error)
}

type tripBookingService struct {
	repo        *repository.Repository
	ledger      LedgerService
	notifier    NotificationService
	horizonDays int
	now         func() time.Time
	log         *zap.Logger
}

func NewTripBookingService(repo *repository.Repository, ledger LedgerService, notifier NotificationService, horizonDays int, now func() time.Time, log *zap.Logger) TripBookingService {
	return &tripBookingService{
		repo:        repo,
		ledger:      ledger,
		notifier:    notifier,
		horizonDays: horizonDays,
		now:         now,
		log:         log.With(zap.String("service", "trip_booking")),
	}
}

func (s *tripBookingService) Stations(ctx context.Context) ([]entity.StationLine, error) {
	lines, err := s.repo.Route.StationLines(ctx)
	if err != nil {
		return nil, storageError("load stations", err)
	}
	return lines, nil
}

func (s *tripBookingService) Routes(ctx context.Context) ([]entity.Route, error) {
	routes, err := s.repo.Route.FindAll(ctx)
	if err != nil {
		return nil, storageError("load routes", err)
	}
	return routes, nil
}

func (s *tripBookingService) ValidateConnection(ctx context.Context, fromStationID, toStationID string) (*response.ConnectionResponse, error) {
	if fromStationID == "" || toStationID == "" {
		return nil, fmt.Errorf("both stations are required: %w", ErrValidation)
	}
	if fromStationID == toStationID {
		return nil, fmt.Errorf("origin and destination must differ: %w", ErrValidation)
	}

	routes, err := s.Routes(ctx)
	if err != nil {
		return nil, err
	}

	for _, route := range routes {
		if route.Serves(fromStationID) && route.Serves(toStationID) {
			return &response.ConnectionResponse{
				Type:      response.ConnectionDirect,
				RouteName: route.RouteName,
				Fare:      route.BasePrice,
			}, nil
		}
	}

	for _, first := range routes {
		if !first.Serves(fromStationID) {
			continue
		}
		for _, second := range routes {
			if second.RouteID == first.RouteID || !second.Serves(toStationID) {
				continue
			}
			if first.SharesStationWith(second) {
				return &response.ConnectionResponse{
					Type:          response.ConnectionInterchange,
					FromRouteName: first.RouteName,
					ToRouteName:   second.RouteName,
					Fare:          first.BasePrice.Add(second.BasePrice),
				}, nil
			}
		}
	}

	return nil, fmt.Errorf("no connection from %s to %s: %w", fromStationID, toStationID, ErrNotFound)
}

func (s *tripBookingService) occurrences(ctx context.Context, stationID string, date time.Time) ([]TripOccurrence, error) {
	trips, err := s.repo.Trip.FindByStartStation(ctx, stationID)
	if err != nil {
		return nil, storageError("load trips", err)
	}

	result := make([]TripOccurrence, 0, len(trips))
	for _, trip := range trips {
		if trip.DepartureTime.IsZero() {
			s.log.Warn("Skipping trip without departure template", zap.String("trip_id", trip.TripID))
			continue
		}
		if !trip.DepartureTime.ClockOnly {
			// a dated trip (e.g. rescheduled) runs on its own day only
			if !sameDay(trip.DepartureTime.Time, date) {
				continue
			}
			window, err := concreteWindow(trip, trip.DepartureTime.Time)
			if err != nil {
				s.log.Warn("Skipping trip with invalid schedule", zap.String("trip_id", trip.TripID), zap.Error(err))
				continue
			}
			result = append(result, TripOccurrence{Trip: trip, Departure: window.Departure, Arrival: window.Arrival})
			continue
		}
		departure := trip.DepartureTime.On(date)
		result = append(result, TripOccurrence{
			Trip:      trip,
			Departure: departure,
			Arrival:   departure.Add(entity.RouteDuration(trip.RouteID)),
		})
	}
	return result, nil
}

// sameDay compares calendar dates as written, ignoring zones.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func (s *tripBookingService) parseTravelDate(raw string) (time.Time, error) {
	loc := s.now().Location()
	date, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", raw, ErrValidation)
	}
	return date, nil
}

func (s *tripBookingService) GetTripDetails(ctx context.Context, req *request.TripSearchRequest) ([]response.TripOccurrenceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), ErrValidation)
	}

	date, err := s.parseTravelDate(req.Date)
	if err != nil {
		return nil, err
	}

	occurrences, err := s.occurrences(ctx, req.StationID, date)
	if err != nil {
		return nil, err
	}

	result := make([]response.TripOccurrenceResponse, len(occurrences))
	for i, occ := range occurrences {
		result[i] = response.TripOccurrenceResponse{
			TripID:        occ.Trip.TripID,
			RouteID:       occ.Trip.RouteID,
			DepartureTime: entity.NewDateTime(occ.Departure).String(),
			ArrivalTime:   entity.NewDateTime(occ.Arrival).String(),
			Status:        occ.Trip.Status,
		}
	}
	return result, nil
}

// checkHorizon rejects travel dates before today or beyond the booking horizon.
func (s *tripBookingService) checkHorizon(date time.Time) error {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(today) {
		return fmt.Errorf("travel date %s is in the past: %w", day.Format("2006-01-02"), ErrValidation)
	}
	if s.horizonDays > 0 && day.After(today.AddDate(0, 0, s.horizonDays)) {
		return fmt.Errorf("travel date must be within %d days: %w", s.horizonDays, ErrValidation)
	}
	return nil
}

func bookable(status entity.TripStatus) bool {
	return status == entity.TripStatusScheduled || status == entity.TripStatusRescheduled
}

func (s *tripBookingService) ResolveTrip(ctx context.Context, stationID string, date time.Time, clock string) (*TripOccurrence, bool, error) {
	if err := s.checkHorizon(date); err != nil {
		return nil, false, err
	}

	occurrences, err := s.occurrences(ctx, stationID, date)
	if err != nil {
		return nil, false, err
	}

	candidates := make([]TripOccurrence, 0, len(occurrences))
	for _, occ := range occurrences {
		if bookable(occ.Trip.Status) {
			candidates = append(candidates, occ)
		}
	}
	if len(candidates) == 0 {
		return nil, false, fmt.Errorf("no trips depart from %s on %s: %w", stationID, date.Format("2006-01-02"), ErrNotFound)
	}

	if clock != "" {
		for i := range candidates {
			if candidates[i].Departure.Format(entity.ClockLayout) == clock {
				return &candidates[i], false, nil
			}
		}
	}
	return &candidates[0], clock != "", nil
}

func (s *tripBookingService) ListUserBookings(ctx context.Context, userID string) ([]response.TripBookingResponse, error) {
	orders, err := s.repo.Order.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storageError("load orders", err)
	}

	bookings := make([]entity.TripBooking, 0)
	for _, order := range orders {
		for _, b := range order.TripBookings {
			if b.OrderID == "" {
				b.OrderID = order.OrderID
			}
			bookings = append(bookings, b)
		}
	}
	return response.TripBookingsToResponse(bookings), nil
}

// bookingDeparture resolves legacy clock-only booking times against today.
func (s *tripBookingService) bookingDeparture(b entity.TripBooking) time.Time {
	if b.DepartureTime.ClockOnly {
		return b.DepartureTime.On(s.now())
	}
	return b.DepartureTime.Time
}

func (s *tripBookingService) CancelBooking(ctx context.Context, userID, bookingID string) (*response.CancellationResponse, error) {
	var (
		result   *response.CancellationResponse
		refunded bool
		credited int64
	)
	now := s.now()

	// A stored REFUNDED status always has its points credited.
	err := s.repo.Order.Mutate(ctx, func(doc entity.OrdersDocument) (bool, error) {
		history := doc[userID]
		if history == nil {
			return false, fmt.Errorf("booking %s not found: %w", bookingID, ErrNotFound)
		}
		for oi := range history.Orders {
			order := &history.Orders[oi]
			for bi := range order.TripBookings {
				b := &order.TripBookings[bi]
				if b.TripBookingID != bookingID {
					continue
				}
				if !b.Status.Cancellable() {
					return false, fmt.Errorf("booking %s cannot be cancelled in status %s: %w", bookingID, b.Status, ErrBusinessRule)
				}

				refunded = RefundEligible(s.bookingDeparture(*b), now)
				if refunded {
					points, err := s.ledger.CreditPoints(ctx, userID, b.TotalFare().Floor().IntPart())
					if err != nil {
						return false, err
					}
					credited = points
					order.Status = entity.OrderStatusRefunded
				} else {
					order.Status = entity.OrderStatusRefundedFail
				}
				b.Status = entity.TripBookingStatusCancelled

				result = &response.CancellationResponse{
					TripBookingID: bookingID,
					OrderID:       order.OrderID,
					BookingStatus: b.Status,
					OrderStatus:   order.Status,
					Refunded:      refunded,
					RefundPoints:  credited,
				}
				return true, nil
			}
		}
		return false, fmt.Errorf("booking %s not found: %w", bookingID, ErrNotFound)
	})
	if err != nil {
		if credited > 0 {
			if _, undoErr := s.ledger.DeductPoints(ctx, userID, credited); undoErr != nil {
				s.log.Error("Refund credited but order not updated",
					zap.Error(undoErr),
					zap.String("booking_id", bookingID),
					zap.Int64("points", credited),
				)
			}
		}
		if isDomainError(err) {
			return nil, err
		}
		return nil, storageError("cancel booking", err)
	}

	var indexErr error
	if _, err := s.repo.Booking.UpdateStatus(ctx, map[string][]string{userID: {bookingID}}, entity.TripBookingStatusCancelled); err != nil {
		s.log.Error("Booking index not updated after cancellation",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		indexErr = storageError("update booking index", err)
	}

	content := fmt.Sprintf("Booking %s cancelled (no refund - within 24h)", bookingID)
	if refunded {
		content = fmt.Sprintf("Booking %s cancelled. Refund: %d points", bookingID, credited)
	}
	if _, err := s.notifier.Notify(ctx, content, entity.NotificationTypeRefundStatus, entity.RecipientUser, userID); err != nil {
		s.log.Warn("Cancellation notification failed", zap.Error(err), zap.String("booking_id", bookingID))
	}

	s.log.Info("Booking cancelled",
		zap.String("user_id", userID),
		zap.String("booking_id", bookingID),
		zap.String("order_id", result.OrderID),
		zap.Bool("refunded", refunded),
		zap.Int64("refund_points", credited),
	)
	if indexErr != nil {
		return nil, indexErr
	}
	return result, nil
}
