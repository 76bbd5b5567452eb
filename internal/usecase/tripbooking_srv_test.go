package usecase

import (
	"errors"
	"testing"
	"time"

	"art-booking/internal/data/entity"
	"art-booking/internal/dto/request"
	"art-booking/internal/dto/response"
	"art-booking/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefundEligible(t *testing.T) {
	departure := fixedNow.Add(RefundWindow)

	assert.False(t, RefundEligible(departure, fixedNow), "exactly 24h ahead")
	assert.True(t, RefundEligible(departure.Add(time.Second), fixedNow))
	assert.False(t, RefundEligible(departure.Add(-time.Second), fixedNow))
	assert.False(t, RefundEligible(fixedNow.Add(-time.Hour), fixedNow))
}

func TestTripBookingService_ValidateConnection(t *testing.T) {
	f := newFixture(t)
	bookings := f.service.TripBooking

	direct, err := bookings.ValidateConnection(f.ctx, "KJ-01", "KJ-03")
	require.NoError(t, err)
	assert.Equal(t, response.ConnectionDirect, direct.Type)
	assert.Equal(t, "Red Line", direct.RouteName)
	assert.True(t, money("5").Equal(direct.Fare))

	interchange, err := bookings.ValidateConnection(f.ctx, "KJ-01", "BL-02")
	require.NoError(t, err)
	assert.Equal(t, response.ConnectionInterchange, interchange.Type)
	assert.Equal(t, "Red Line", interchange.FromRouteName)
	assert.Equal(t, "Blue Line", interchange.ToRouteName)
	assert.True(t, money("8").Equal(interchange.Fare))

	_, err = bookings.ValidateConnection(f.ctx, "KJ-01", "GR-02")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = bookings.ValidateConnection(f.ctx, "KJ-01", "KJ-01")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = bookings.ValidateConnection(f.ctx, "", "KJ-01")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTripBookingService_GetTripDetails(t *testing.T) {
	f := newFixture(t)

	details, err := f.service.TripBooking.GetTripDetails(f.ctx, &request.TripSearchRequest{StationID: "KJ-01", Date: "2026-01-20"})
	require.NoError(t, err)
	require.Len(t, details, 3)
	assert.Equal(t, "RED_0800_KJ-01", details[0].TripID)
	assert.Equal(t, "2026-01-20T08:00:00", details[0].DepartureTime)
	assert.Equal(t, "2026-01-20T08:20:00", details[0].ArrivalTime)
	assert.Equal(t, entity.TripStatusCompleted, details[2].Status)

	blue, err := f.service.TripBooking.GetTripDetails(f.ctx, &request.TripSearchRequest{StationID: "KJ-03", Date: "2026-01-20"})
	require.NoError(t, err)
	require.Len(t, blue, 1)
	assert.Equal(t, "2026-01-20T08:45:00", blue[0].ArrivalTime)

	_, err = f.service.TripBooking.GetTripDetails(f.ctx, &request.TripSearchRequest{StationID: "KJ-01", Date: "20-01-2026"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTripBookingService_GetTripDetailsRescheduledTrip(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Trip.UpdateStatus(f.ctx, "RED_0800_KJ-01", &request.UpdateTripStatusRequest{
		Status:    entity.TripStatusRescheduled,
		Departure: "2026-01-20 13:00",
	})
	require.NoError(t, err)

	tripIDs := func(details []response.TripOccurrenceResponse) map[string]string {
		out := make(map[string]string, len(details))
		for _, d := range details {
			out[d.TripID] = d.DepartureTime
		}
		return out
	}

	other, err := f.service.TripBooking.GetTripDetails(f.ctx, &request.TripSearchRequest{StationID: "KJ-01", Date: "2026-01-21"})
	require.NoError(t, err)
	assert.NotContains(t, tripIDs(other), "RED_0800_KJ-01", "a dated trip only runs on its own day")
	assert.Contains(t, tripIDs(other), "RED_0900_KJ-01")

	same, err := f.service.TripBooking.GetTripDetails(f.ctx, &request.TripSearchRequest{StationID: "KJ-01", Date: "2026-01-20"})
	require.NoError(t, err)
	assert.Equal(t, "2026-01-20T13:00:00", tripIDs(same)["RED_0800_KJ-01"])
}

func TestTripBookingService_ResolveTrip(t *testing.T) {
	f := newFixture(t)
	day := time.Date(2026, 1, 20, 0, 0, 0, 0, time.Local)

	occ, fallback, err := f.service.TripBooking.ResolveTrip(f.ctx, "KJ-01", day, "09:00")
	require.NoError(t, err)
	assert.False(t, fallback)
	assert.Equal(t, "RED_0900_KJ-01", occ.Trip.TripID)

	// completed trips are never offered, even when asked for by time
	occ, fallback, err = f.service.TripBooking.ResolveTrip(f.ctx, "KJ-01", day, "12:00")
	require.NoError(t, err)
	assert.True(t, fallback)
	assert.Equal(t, "RED_0800_KJ-01", occ.Trip.TripID)
}

func TestTripBookingService_CancelWithRefund(t *testing.T) {
	f := newFixture(t)
	orderID, bookingID := f.bookTrip(t, "u1", "2026-01-20", "08:00", 2)
	require.Equal(t, int64(1), f.points(t, "u1"), "RM10 earns one point")

	result, err := f.service.TripBooking.CancelBooking(f.ctx, "u1", bookingID)
	require.NoError(t, err)
	assert.True(t, result.Refunded)
	assert.Equal(t, int64(10), result.RefundPoints)
	assert.Equal(t, orderID, result.OrderID)
	assert.Equal(t, entity.TripBookingStatusCancelled, result.BookingStatus)
	assert.Equal(t, entity.OrderStatusRefunded, result.OrderStatus)
	assert.Equal(t, int64(11), f.points(t, "u1"))

	listed, err := f.service.TripBooking.ListUserBookings(f.ctx, "u1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, entity.TripBookingStatusCancelled, listed[0].Status)
	assert.False(t, listed[0].Cancellable)

	index, err := f.repo.Booking.FindByUserID(f.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.TripBookingStatusCancelled, index[0].Status)

	inbox, err := f.service.Notification.ForUser(f.ctx, "u1")
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.Equal(t, "Booking "+bookingID+" cancelled. Refund: 10 points", inbox[1].Content)
	assert.Equal(t, entity.NotificationTypeRefundStatus, inbox[1].Type)

	_, err = f.service.TripBooking.CancelBooking(f.ctx, "u1", bookingID)
	assert.ErrorIs(t, err, ErrBusinessRule)
	assert.Equal(t, int64(11), f.points(t, "u1"), "no second refund")
}

func TestTripBookingService_CancelInsideWindow(t *testing.T) {
	f := newFixture(t)
	_, bookingID := f.bookTrip(t, "u1", "2026-01-16", "08:00", 1)

	result, err := f.service.TripBooking.CancelBooking(f.ctx, "u1", bookingID)
	require.NoError(t, err)
	assert.False(t, result.Refunded)
	assert.Zero(t, result.RefundPoints)
	assert.Equal(t, entity.OrderStatusRefundedFail, result.OrderStatus)
	assert.Zero(t, f.points(t, "u1"))

	inbox, err := f.service.Notification.ForUser(f.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Booking "+bookingID+" cancelled (no refund - within 24h)", inbox[len(inbox)-1].Content)
}

func TestTripBookingService_RefundWindowUsesServiceZone(t *testing.T) {
	zone := time.FixedZone("UTC-11", -11*60*60)
	f := newFixtureAt(t, time.Date(2026, time.January, 15, 10, 0, 0, 0, zone))

	_, nearID := f.bookTrip(t, "u1", "2026-01-16", "08:00", 4)
	require.Equal(t, int64(2), f.points(t, "u1"))

	index, err := f.repo.Booking.FindByUserID(f.ctx, "u1")
	require.NoError(t, err)
	require.Len(t, index, 1)
	assert.True(t, index[0].DepartureTime.Equal(time.Date(2026, time.January, 16, 8, 0, 0, 0, zone)),
		"stored departure reads back in the service zone, got %s", index[0].DepartureTime.Time)

	near, err := f.service.TripBooking.CancelBooking(f.ctx, "u1", nearID)
	require.NoError(t, err)
	assert.False(t, near.Refunded, "22h ahead is inside the window")
	assert.Equal(t, entity.OrderStatusRefundedFail, near.OrderStatus)
	assert.Equal(t, int64(2), f.points(t, "u1"))

	_, farID := f.bookTrip(t, "u1", "2026-01-17", "08:00", 2)
	far, err := f.service.TripBooking.CancelBooking(f.ctx, "u1", farID)
	require.NoError(t, err)
	assert.True(t, far.Refunded)
	assert.Equal(t, int64(10), far.RefundPoints)
}

func TestTripBookingService_CancelLedgerFailureKeepsOrder(t *testing.T) {
	f := newFixture(t)
	orderID, bookingID := f.bookTrip(t, "u1", "2026-01-20", "08:00", 2)

	f.store.FailSave = map[string]error{database.DocPointsLedger: errors.New("disk full")}
	_, err := f.service.TripBooking.CancelBooking(f.ctx, "u1", bookingID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	f.store.FailSave = nil

	order, err := f.repo.Order.FindByID(f.ctx, "u1", orderID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, entity.OrderStatusConfirmed, order.Status)
	assert.Equal(t, entity.TripBookingStatusConfirmed, order.TripBookings[0].Status)
	assert.Equal(t, int64(1), f.points(t, "u1"))

	result, err := f.service.TripBooking.CancelBooking(f.ctx, "u1", bookingID)
	require.NoError(t, err)
	assert.True(t, result.Refunded)
	assert.Equal(t, entity.OrderStatusRefunded, result.OrderStatus)
	assert.Equal(t, int64(11), f.points(t, "u1"))
}

func TestTripBookingService_CancelOrderWriteFailureTakesRefundBack(t *testing.T) {
	f := newFixture(t)
	orderID, bookingID := f.bookTrip(t, "u1", "2026-01-20", "08:00", 2)

	f.store.FailSave = map[string]error{database.DocOrders: errors.New("disk full")}
	_, err := f.service.TripBooking.CancelBooking(f.ctx, "u1", bookingID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	f.store.FailSave = nil

	assert.Equal(t, int64(1), f.points(t, "u1"), "credited refund is deducted again")

	order, err := f.repo.Order.FindByID(f.ctx, "u1", orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, order.Status)

	inbox, err := f.service.Notification.ForUser(f.ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, inbox, 1, "no cancellation notice for a failed cancel")
}

func TestTripBookingService_CancelUnknownBooking(t *testing.T) {
	f := newFixture(t)
	_, bookingID := f.bookTrip(t, "u1", "2026-01-20", "08:00", 1)

	_, err := f.service.TripBooking.CancelBooking(f.ctx, "u1", "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.service.TripBooking.CancelBooking(f.ctx, "u2", bookingID)
	assert.ErrorIs(t, err, ErrNotFound, "other users cannot cancel")
}

func TestNotificationService_ReadTracking(t *testing.T) {
	f := newFixture(t)
	notes := f.service.Notification

	_, err := notes.Notify(f.ctx, "hello", entity.NotificationTypeOrderUpdate, entity.RecipientUser, "u1", "u2")
	require.NoError(t, err)
	_, err = notes.Notify(f.ctx, "just you", entity.NotificationTypeOrderUpdate, entity.RecipientUser, "u1")
	require.NoError(t, err)
	_, err = notes.Notify(f.ctx, "ops", entity.NotificationTypeSystemAlert, entity.RecipientAdmin)
	require.NoError(t, err)

	_, err = notes.Notify(f.ctx, "", entity.NotificationTypeOrderUpdate, entity.RecipientUser, "u1")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = notes.Notify(f.ctx, "nobody", entity.NotificationTypeOrderUpdate, entity.RecipientUser)
	assert.ErrorIs(t, err, ErrValidation)

	unread, err := notes.UnreadCount(f.ctx, entity.RecipientUser, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	changed, err := notes.MarkAllRead(f.ctx, entity.RecipientUser, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	changed, err = notes.MarkAllRead(f.ctx, entity.RecipientUser, "u1")
	require.NoError(t, err)
	assert.Zero(t, changed)

	unread, err = notes.UnreadCount(f.ctx, entity.RecipientUser, "u2")
	require.NoError(t, err)
	assert.Zero(t, unread, "read state is kept per notification")

	admin, err := notes.ForAdmin(f.ctx, "any-admin")
	require.NoError(t, err)
	require.Len(t, admin, 1)
	assert.Equal(t, "ops", admin[0].Content)

	assert.Equal(t, []string{"hello", "just you", "ops"}, f.publisher.Contents())
}
