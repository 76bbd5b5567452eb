package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type TripBookingStatus string

const (
	TripBookingStatusRequested             TripBookingStatus = "REQUESTED"
	TripBookingStatusConfirmed             TripBookingStatus = "CONFIRMED"
	TripBookingStatusCancellationRequested TripBookingStatus = "CANCELLATION_REQUESTED"
	TripBookingStatusCancelled             TripBookingStatus = "CANCELLED"
	TripBookingStatusRescheduleRequested   TripBookingStatus = "RESCHEDULE_REQUESTED"
	TripBookingStatusRescheduled           TripBookingStatus = "RESCHEDULED"
	TripBookingStatusRescheduledFail       TripBookingStatus = "RESCHEDULED_FAIL"
)

// Cancellable reports whether a user may still cancel a booking in this state.
func (s TripBookingStatus) Cancellable() bool {
	return s == TripBookingStatusRequested || s == TripBookingStatusConfirmed
}

type TripBooking struct {
	TripBookingID string            `json:"tripBookingId"`
	TripID        string            `json:"tripId"`
	UserID        string            `json:"userId"`
	OrderID       string            `json:"orderId"`
	FromStationID string            `json:"fromStationId"`
	ToStationID   string            `json:"toStationId"`
	DepartureTime DateTime          `json:"departureTime"`
	Fare          decimal.Decimal   `json:"fare"`
	TicketCount   int               `json:"ticketCount"`
	Status        TripBookingStatus `json:"bookingStatus"`
}

// TotalFare is always derived from fare and ticket count.
func (b TripBooking) TotalFare() decimal.Decimal {
	return b.Fare.Mul(decimal.NewFromInt(int64(b.TicketCount)))
}

// MarshalJSON writes totalFare for readers of the document; it is ignored on load.
func (b TripBooking) MarshalJSON() ([]byte, error) {
	type plain TripBooking
	return json.Marshal(struct {
		plain
		TotalFare decimal.Decimal `json:"totalFare"`
	}{plain(b), b.TotalFare()})
}

func (b *TripBooking) UnmarshalJSON(data []byte) error {
	type plain TripBooking
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = TripBooking(p)
	return nil
}

// BookingsDocument maps user id to the global booking index for that user.
type BookingsDocument map[string][]TripBooking
