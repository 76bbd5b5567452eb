package response

import (
	"art-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type TripBookingResponse struct {
	TripBookingID string                   `json:"trip_booking_id"`
	TripID        string                   `json:"trip_id"`
	OrderID       string                   `json:"order_id"`
	FromStationID string                   `json:"from_station_id"`
	ToStationID   string                   `json:"to_station_id"`
	DepartureTime string                   `json:"departure_time"`
	Fare          decimal.Decimal          `json:"fare"`
	TicketCount   int                      `json:"ticket_count"`
	TotalFare     decimal.Decimal          `json:"total_fare"`
	Status        entity.TripBookingStatus `json:"status"`
	Cancellable   bool                     `json:"cancellable"`
}

func TripBookingToResponse(b *entity.TripBooking) TripBookingResponse {
	return TripBookingResponse{
		TripBookingID: b.TripBookingID,
		TripID:        b.TripID,
		OrderID:       b.OrderID,
		FromStationID: b.FromStationID,
		ToStationID:   b.ToStationID,
		DepartureTime: b.DepartureTime.String(),
		Fare:          b.Fare,
		TicketCount:   b.TicketCount,
		TotalFare:     b.TotalFare(),
		Status:        b.Status,
		Cancellable:   b.Status.Cancellable(),
	}
}

func TripBookingsToResponse(bookings []entity.TripBooking) []TripBookingResponse {
	result := make([]TripBookingResponse, len(bookings))
	for i := range bookings {
		result[i] = TripBookingToResponse(&bookings[i])
	}
	return result
}

type CancellationResponse struct {
	TripBookingID string                   `json:"trip_booking_id"`
	OrderID       string                   `json:"order_id"`
	BookingStatus entity.TripBookingStatus `json:"booking_status"`
	OrderStatus   entity.OrderStatus       `json:"order_status"`
	Refunded      bool                     `json:"refunded"`
	RefundPoints  int64                    `json:"refund_points"`
}
