package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"art-booking/internal/data/entity"
	"art-booking/internal/data/repository"
	"art-booking/internal/dto/request"
	"art-booking/internal/dto/response"
	"art-booking/pkg/utils"

	"go.uber.org/zap"
)

const notificationTimeLayout = "2006-01-02 15:04"

type TripService interface {
	ListTrips(ctx context.Context, color string) ([]response.TripResponse, error)
	GetTrip(ctx context.Context, tripID string) (*response.TripResponse, error)

	// UpdateStatus applies an admin status change. An accepted change is
	// persisted, cascaded to bookings when the trip is cancelled or
	// rescheduled, then announced to admins and affected users.
	UpdateStatus(ctx context.Context, tripID string, req *request.UpdateTripStatusRequest) (*response.TripStatusResponse, error)
}

type tripService struct {
	repo     *repository.Repository
	notifier NotificationService
	now      func() time.Time
	log      *zap.Logger
}

func NewTripService(repo *repository.Repository, notifier NotificationService, now func() time.Time, log *zap.Logger) TripService {
	return &tripService{
		repo:     repo,
		notifier: notifier,
		now:      now,
		log:      log.With(zap.String("service", "trip")),
	}
}

func (s *tripService) ListTrips(ctx context.Context, color string) ([]response.TripResponse, error) {
	trips, err := s.repo.Trip.FindByColor(ctx, color)
	if err != nil {
		s.log.Error("Failed to list trips", zap.Error(err), zap.String("color", color))
		return nil, storageError("list trips", err)
	}
	return response.TripsToResponse(trips), nil
}

func (s *tripService) loadTrip(ctx context.Context, tripID string) (*entity.Trip, error) {
	trip, err := s.repo.Trip.FindByID(ctx, tripID)
	if err != nil {
		return nil, storageError("load trip", err)
	}
	if trip == nil {
		return nil, fmt.Errorf("trip %s not found: %w", tripID, ErrNotFound)
	}
	return trip, nil
}

func (s *tripService) GetTrip(ctx context.Context, tripID string) (*response.TripResponse, error) {
	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	resp := response.TripToResponse(trip)
	return &resp, nil
}

func (s *tripService) UpdateStatus(ctx context.Context, tripID string, req *request.UpdateTripStatusRequest) (*response.TripStatusResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update trip status validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), ErrValidation)
	}

	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	previous := trip.Status
	target := req.Status
	result := &response.TripStatusResponse{PreviousStatus: previous}

	if target == previous {
		result.Trip = response.TripToResponse(trip)
		return result, nil
	}
	if previous.Terminal() {
		return nil, fmt.Errorf("trip %s is %s: %w", tripID, previous, ErrTripTerminal)
	}
	if !previous.CanTransitionTo(target) {
		return nil, fmt.Errorf("trip %s cannot move from %s to %s: %w", tripID, previous, target, ErrTransitionNotAllowed)
	}

	departure := strings.TrimSpace(req.Departure)
	needsDate := target == entity.TripStatusRescheduled ||
		(target == entity.TripStatusScheduled && previous == entity.TripStatusCancelled)

	var reschedule *entity.Reschedule
	switch {
	case target == entity.TripStatusRescheduled && departure == "":
		return nil, fmt.Errorf("reschedule of trip %s needs a new departure: %w", tripID, ErrUserAbort)
	case needsDate && departure != "":
		reschedule, err = s.reschedule(ctx, trip, departure)
		if err != nil {
			return nil, err
		}
	default:
		trip.Status = target
	}

	if err := s.repo.Trip.Save(ctx, trip); err != nil {
		return nil, storageError("save trip", err)
	}

	if reschedule != nil {
		if err := s.repo.Reschedule.Append(ctx, reschedule); err != nil {
			s.log.Error("Reschedule log not written", zap.Error(err), zap.String("trip_id", tripID))
		}
	}

	affected, err := s.affectBookings(ctx, trip)
	if err != nil {
		return nil, err
	}

	s.announce(ctx, trip, affected)

	s.log.Info("Trip status updated",
		zap.String("trip_id", tripID),
		zap.String("from", string(previous)),
		zap.String("to", string(trip.Status)),
		zap.Int("affected_users", len(affected)),
	)

	result.Trip = response.TripToResponse(trip)
	result.Changed = true
	result.AffectedBookings = affected
	return result, nil
}

// reschedule validates the new departure, rejects overlaps on the same
// route, and moves the trip. A trip with a new date always ends RESCHEDULED.
func (s *tripService) reschedule(ctx context.Context, trip *entity.Trip, departure string) (*entity.Reschedule, error) {
	now := s.now()
	window, err := SetNewDate(*trip, departure, now)
	if err != nil {
		return nil, err
	}

	others, err := s.repo.Trip.FindByRoute(ctx, trip.RouteID)
	if err != nil {
		return nil, storageError("load route trips", err)
	}
	if conflict := FindConflict(*trip, window, others); conflict != nil {
		return nil, fmt.Errorf("trip %s overlaps %s on route %s: %w", trip.TripID, conflict.TripID, trip.RouteID, ErrScheduleConflict)
	}

	original, _ := concreteWindow(*trip, window.Departure)

	if trip.OriginalDeparture.IsZero() {
		trip.OriginalDeparture = trip.DepartureTime
	}
	trip.DepartureTime = entity.NewDateTime(window.Departure)
	trip.ArrivalTime = entity.NewDateTime(window.Arrival)
	rescheduled := entity.NewDateTime(window.Departure)
	trip.RescheduleTime = &rescheduled
	trip.Status = entity.TripStatusRescheduled

	return &entity.Reschedule{
		RescheduleID:      utils.GenerateRescheduleID(trip.TripID),
		TripID:            trip.TripID,
		OriginalDeparture: entity.NewDateTime(original.Departure),
		OriginalArrival:   entity.NewDateTime(original.Arrival),
		NewDeparture:      trip.DepartureTime,
		NewArrival:        trip.ArrivalTime,
		Status:            entity.RescheduleStatusConfirmed,
	}, nil
}

func cascades(status entity.TripStatus) bool {
	return status == entity.TripStatusCancelled || status == entity.TripStatusRescheduled
}

// affectBookings cancels bookings on a cancelled or rescheduled trip and
// settles the owning orders by the refund window. For other statuses it
// only collects the live bookings to notify.
func (s *tripService) affectBookings(ctx context.Context, trip *entity.Trip) (map[string][]string, error) {
	affected := make(map[string][]string)
	now := s.now()
	cascade := cascades(trip.Status)

	err := s.repo.Order.Mutate(ctx, func(doc entity.OrdersDocument) (bool, error) {
		changed := false
		for userID, history := range doc {
			if history == nil {
				continue
			}
			for oi := range history.Orders {
				order := &history.Orders[oi]
				hit, eligible := false, true
				for bi := range order.TripBookings {
					b := &order.TripBookings[bi]
					if b.TripID != trip.TripID || b.Status == entity.TripBookingStatusCancelled {
						continue
					}
					affected[userID] = append(affected[userID], b.TripBookingID)
					if !cascade {
						continue
					}
					departure := b.DepartureTime.Time
					if b.DepartureTime.ClockOnly {
						departure = b.DepartureTime.On(now)
					}
					eligible = eligible && RefundEligible(departure, now)
					b.Status = entity.TripBookingStatusCancelled
					hit = true
				}
				if hit {
					if eligible {
						order.Status = entity.OrderStatusRefundRequested
					} else {
						order.Status = entity.OrderStatusRefundedFail
					}
					changed = true
				}
			}
		}
		return changed, nil
	})
	if err != nil {
		s.log.Error("Cascade to orders failed", zap.Error(err), zap.String("trip_id", trip.TripID))
		return nil, storageError("cascade to orders", err)
	}

	if !cascade {
		return affected, nil
	}

	indexed, err := s.repo.Booking.CancelByTrip(ctx, trip.TripID)
	if err != nil {
		s.log.Error("Cascade to booking index failed", zap.Error(err), zap.String("trip_id", trip.TripID))
		return nil, storageError("cascade to booking index", err)
	}
	for userID, ids := range indexed {
		for _, id := range ids {
			if !containsString(affected[userID], id) {
				affected[userID] = append(affected[userID], id)
			}
		}
	}
	return affected, nil
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func formatScheduleTime(d entity.DateTime) string {
	if d.IsZero() {
		return "an unspecified time"
	}
	if d.ClockOnly {
		return d.Format(entity.ClockLayout)
	}
	return d.Format(notificationTimeLayout)
}

func adminTripMessage(trip *entity.Trip) string {
	switch trip.Status {
	case entity.TripStatusScheduled:
		return fmt.Sprintf("Trip %s is now scheduled for %s", trip.TripID, formatScheduleTime(trip.DepartureTime))
	case entity.TripStatusStarted:
		return fmt.Sprintf("Trip %s has started its journey", trip.TripID)
	case entity.TripStatusCancelled:
		return fmt.Sprintf("Trip %s has been cancelled", trip.TripID)
	case entity.TripStatusCompleted:
		return fmt.Sprintf("Trip %s has completed its journey", trip.TripID)
	case entity.TripStatusRescheduled:
		return fmt.Sprintf("Trip %s has been rescheduled from %s to %s",
			trip.TripID, formatScheduleTime(trip.OriginalDeparture), formatScheduleTime(trip.DepartureTime))
	}
	return fmt.Sprintf("Trip %s status changed to %s", trip.TripID, trip.Status)
}

func userTripMessage(trip *entity.Trip, bookingIDs []string) string {
	ids := strings.Join(bookingIDs, ", ")
	switch trip.Status {
	case entity.TripStatusScheduled:
		return fmt.Sprintf("Your trip %s has been scheduled for %s. Booking ID: %s",
			trip.TripID, formatScheduleTime(trip.DepartureTime), ids)
	case entity.TripStatusStarted:
		return fmt.Sprintf("Your trip %s has started its journey. Booking ID: %s", trip.TripID, ids)
	case entity.TripStatusCancelled:
		return fmt.Sprintf("Your trip %s has been cancelled by the system. Booking ID: %s. "+
			"Refund processing will begin automatically if eligible.", trip.TripID, ids)
	case entity.TripStatusCompleted:
		return fmt.Sprintf("Your trip %s has completed its journey. Booking ID: %s", trip.TripID, ids)
	case entity.TripStatusRescheduled:
		return fmt.Sprintf("Your trip %s has been rescheduled from %s to %s. Booking ID: %s",
			trip.TripID, formatScheduleTime(trip.OriginalDeparture), formatScheduleTime(trip.DepartureTime), ids)
	}
	return fmt.Sprintf("Your trip %s status changed", trip.TripID)
}

// announce sends one admin alert and, when bookings were affected, one user
// notification addressed to every affected user. Failures are logged only.
func (s *tripService) announce(ctx context.Context, trip *entity.Trip, affected map[string][]string) {
	if _, err := s.notifier.Notify(ctx, adminTripMessage(trip), entity.NotificationTypeSystemAlert, entity.RecipientAdmin); err != nil {
		s.log.Warn("Admin trip notification failed", zap.Error(err), zap.String("trip_id", trip.TripID))
	}

	if len(affected) == 0 {
		return
	}

	userIDs := make([]string, 0, len(affected))
	for userID := range affected {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	bookingIDs := make([]string, 0)
	for _, userID := range userIDs {
		bookingIDs = append(bookingIDs, affected[userID]...)
	}

	if _, err := s.notifier.Notify(ctx, userTripMessage(trip, bookingIDs), entity.NotificationTypeOrderUpdate, entity.RecipientUser, userIDs...); err != nil {
		s.log.Warn("User trip notification failed", zap.Error(err), zap.String("trip_id", trip.TripID))
	}
}
