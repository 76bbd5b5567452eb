package usecase

import (
	"testing"
	"time"

	"art-booking/internal/data/entity"
	"art-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripStatus_Transitions(t *testing.T) {
	assert.True(t, entity.TripStatusScheduled.CanTransitionTo(entity.TripStatusStarted))
	assert.True(t, entity.TripStatusScheduled.CanTransitionTo(entity.TripStatusRescheduled))
	assert.True(t, entity.TripStatusCancelled.CanTransitionTo(entity.TripStatusScheduled))
	assert.True(t, entity.TripStatusRescheduled.CanTransitionTo(entity.TripStatusCancelled))
	assert.False(t, entity.TripStatusRescheduled.CanTransitionTo(entity.TripStatusScheduled))
	assert.False(t, entity.TripStatusStarted.CanTransitionTo(entity.TripStatusCancelled))
	assert.False(t, entity.TripStatusScheduled.CanTransitionTo(entity.TripStatusCompleted))
	assert.True(t, entity.TripStatusCompleted.Terminal())
	assert.Empty(t, entity.TripStatusCompleted.AllowedTransitions())
}

func TestTripService_RejectedChanges(t *testing.T) {
	f := newFixture(t)
	trips := f.service.Trip

	cases := []struct {
		name   string
		tripID string
		req    request.UpdateTripStatusRequest
		want   error
	}{
		{"terminal", "RED_1200_KJ-01", request.UpdateTripStatusRequest{Status: entity.TripStatusScheduled}, ErrTripTerminal},
		{"not allowed", "RED_0800_KJ-01", request.UpdateTripStatusRequest{Status: entity.TripStatusCompleted}, ErrTransitionNotAllowed},
		{"unknown status", "RED_0800_KJ-01", request.UpdateTripStatusRequest{Status: "DELAYED"}, ErrValidation},
		{"unknown trip", "RED_2300_KJ-01", request.UpdateTripStatusRequest{Status: entity.TripStatusStarted}, ErrNotFound},
		{"reschedule without date", "RED_0800_KJ-01", request.UpdateTripStatusRequest{Status: entity.TripStatusRescheduled}, ErrUserAbort},
		{"reschedule into past", "RED_0800_KJ-01", request.UpdateTripStatusRequest{Status: entity.TripStatusRescheduled, Departure: "2026-01-01 08:00"}, ErrValidation},
		{"reschedule overlap", "RED_0800_KJ-01", request.UpdateTripStatusRequest{Status: entity.TripStatusRescheduled, Departure: "2026-01-20 09:10"}, ErrScheduleConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			_, err := trips.UpdateStatus(f.ctx, tc.tripID, &req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.Equal(t, entity.TripStatusScheduled, f.trip(t, "RED_0800_KJ-01").Status, "rejected changes leave the trip alone")
	assert.Empty(t, f.publisher.Contents())
}

func TestTripService_SameStatusIsNoop(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Trip.UpdateStatus(f.ctx, "RED_0800_KJ-01", &request.UpdateTripStatusRequest{Status: entity.TripStatusScheduled})
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Empty(t, f.publisher.Contents())
}

func TestTripService_CancelCascades(t *testing.T) {
	f := newFixture(t)

	// u1 travels in five days, u2 tomorrow morning (inside the refund window)
	farOrder, farBooking := f.bookTrip(t, "u1", "2026-01-20", "08:00", 2)
	nearOrder, nearBooking := f.bookTrip(t, "u2", "2026-01-16", "08:00", 1)
	_, otherBooking := f.bookTrip(t, "u3", "2026-01-20", "09:00", 1)

	result, err := f.service.Trip.UpdateStatus(f.ctx, "RED_0800_KJ-01", &request.UpdateTripStatusRequest{Status: entity.TripStatusCancelled})
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, entity.TripStatusScheduled, result.PreviousStatus)
	assert.Equal(t, entity.TripStatusCancelled, result.Trip.Status)
	assert.Equal(t, map[string][]string{"u1": {farBooking}, "u2": {nearBooking}}, result.AffectedBookings)

	far, err := f.repo.Order.FindByID(f.ctx, "u1", farOrder)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusRefundRequested, far.Status)
	assert.Equal(t, entity.TripBookingStatusCancelled, far.TripBookings[0].Status)

	near, err := f.repo.Order.FindByID(f.ctx, "u2", nearOrder)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusRefundedFail, near.Status)

	index, err := f.repo.Booking.FindByUserID(f.ctx, "u3")
	require.NoError(t, err)
	require.Len(t, index, 1)
	assert.Equal(t, otherBooking, index[0].TripBookingID)
	assert.Equal(t, entity.TripBookingStatusConfirmed, index[0].Status, "bookings on other trips are untouched")

	index, err = f.repo.Booking.FindByUserID(f.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.TripBookingStatusCancelled, index[0].Status)

	adminInbox, err := f.service.Notification.ForAdmin(f.ctx, "admin")
	require.NoError(t, err)
	require.Len(t, adminInbox, 1)
	assert.Equal(t, "Trip RED_0800_KJ-01 has been cancelled", adminInbox[0].Content)
	assert.Equal(t, entity.NotificationTypeSystemAlert, adminInbox[0].Type)

	for _, userID := range []string{"u1", "u2"} {
		inbox, err := f.service.Notification.ForUser(f.ctx, userID)
		require.NoError(t, err)
		require.Len(t, inbox, 2, "confirmation plus cancellation")
		assert.Contains(t, inbox[1].Content, "Your trip RED_0800_KJ-01 has been cancelled by the system")
		assert.Contains(t, inbox[1].Content, farBooking)
		assert.Contains(t, inbox[1].Content, nearBooking)
	}

	inbox, err := f.service.Notification.ForUser(f.ctx, "u3")
	require.NoError(t, err)
	assert.Len(t, inbox, 1)
}

func TestTripService_RescheduleMovesTrip(t *testing.T) {
	f := newFixture(t)
	orderID, bookingID := f.bookTrip(t, "u1", "2026-01-20", "08:00", 1)

	result, err := f.service.Trip.UpdateStatus(f.ctx, "RED_0800_KJ-01", &request.UpdateTripStatusRequest{
		Status:    entity.TripStatusRescheduled,
		Departure: "2026-01-20 13:00",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TripStatusRescheduled, result.Trip.Status)
	assert.Equal(t, "2026-01-20T13:00:00", result.Trip.DepartureTime)
	assert.Equal(t, "2026-01-20T13:20:00", result.Trip.ArrivalTime)
	assert.Equal(t, "2026-01-20T13:00:00", result.Trip.RescheduleTime)
	assert.Equal(t, "08:00", result.Trip.OriginalDeparture)
	assert.Equal(t, map[string][]string{"u1": {bookingID}}, result.AffectedBookings)

	trip := f.trip(t, "RED_0800_KJ-01")
	assert.Equal(t, time.Date(2026, 1, 20, 13, 0, 0, 0, time.Local), trip.DepartureTime.Time)
	assert.False(t, trip.DepartureTime.ClockOnly)

	log, err := f.repo.Reschedule.FindByTripID(f.ctx, "RED_0800_KJ-01")
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, "2026-01-20T08:00:00", log[0].OriginalDeparture.String())
	assert.Equal(t, "2026-01-20T13:00:00", log[0].NewDeparture.String())
	assert.Contains(t, log[0].RescheduleID, "RES_RED_0800_KJ-01_")

	order, err := f.repo.Order.FindByID(f.ctx, "u1", orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusRefundRequested, order.Status)

	adminInbox, err := f.service.Notification.ForAdmin(f.ctx, "admin")
	require.NoError(t, err)
	require.Len(t, adminInbox, 1)
	assert.Equal(t, "Trip RED_0800_KJ-01 has been rescheduled from 08:00 to 2026-01-20 13:00", adminInbox[0].Content)
}

func TestTripService_RestoreCancelledTrip(t *testing.T) {
	t.Run("without a date keeps the schedule", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Trip.UpdateStatus(f.ctx, "RED_0800_KJ-01", &request.UpdateTripStatusRequest{Status: entity.TripStatusCancelled})
		require.NoError(t, err)

		result, err := f.service.Trip.UpdateStatus(f.ctx, "RED_0800_KJ-01", &request.UpdateTripStatusRequest{Status: entity.TripStatusScheduled})
		require.NoError(t, err)
		assert.Equal(t, entity.TripStatusScheduled, result.Trip.Status)
		assert.Equal(t, "08:00", result.Trip.DepartureTime)
		assert.Empty(t, result.AffectedBookings)
	})

	t.Run("with a date becomes rescheduled", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Trip.UpdateStatus(f.ctx, "RED_0800_KJ-01", &request.UpdateTripStatusRequest{Status: entity.TripStatusCancelled})
		require.NoError(t, err)

		result, err := f.service.Trip.UpdateStatus(f.ctx, "RED_0800_KJ-01", &request.UpdateTripStatusRequest{
			Status:    entity.TripStatusScheduled,
			Departure: "2026-01-22 15:00",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.TripStatusRescheduled, result.Trip.Status)
		assert.Equal(t, "2026-01-22T15:00:00", result.Trip.DepartureTime)
	})
}

func TestTripService_StartNotifiesWithoutCancelling(t *testing.T) {
	f := newFixture(t)
	orderID, bookingID := f.bookTrip(t, "u1", "2026-01-20", "08:00", 1)

	result, err := f.service.Trip.UpdateStatus(f.ctx, "RED_0800_KJ-01", &request.UpdateTripStatusRequest{Status: entity.TripStatusStarted})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"u1": {bookingID}}, result.AffectedBookings)

	order, err := f.repo.Order.FindByID(f.ctx, "u1", orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, order.Status)
	assert.Equal(t, entity.TripBookingStatusConfirmed, order.TripBookings[0].Status)

	inbox, err := f.service.Notification.ForUser(f.ctx, "u1")
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.Equal(t, "Your trip RED_0800_KJ-01 has started its journey. Booking ID: "+bookingID, inbox[1].Content)
}

func TestTripService_ListTripsByColor(t *testing.T) {
	f := newFixture(t)

	red, err := f.service.Trip.ListTrips(f.ctx, "red")
	require.NoError(t, err)
	assert.Len(t, red, 3)

	all, err := f.service.Trip.ListTrips(f.ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	trip, err := f.service.Trip.GetTrip(f.ctx, "BLUE_0800_KJ-03")
	require.NoError(t, err)
	assert.Equal(t, "BLUE", trip.Color)
	assert.Equal(t, "08:45", trip.ArrivalTime, "arrival is derived from the route run time")
}
