package request

import (
	"art-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type AddMerchandiseRequest struct {
	Name      string          `json:"name" validate:"required,max=100"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type AddTripBookingRequest struct {
	FromStationID string `json:"from_station_id" validate:"required"`
	ToStationID   string `json:"to_station_id" validate:"required,nefield=FromStationID"`
	TravelDate    string `json:"travel_date" validate:"required,iso_date"`
	// DepartureTime is an optional HH:MM preference among the day's trips.
	DepartureTime string `json:"departure_time,omitempty" validate:"omitempty,datetime=15:04"`
	TicketCount   int    `json:"ticket_count" validate:"gt=0,max=20"`
}

type RedeemPointsRequest struct {
	Confirm bool `json:"confirm"`
}

type SelectPaymentMethodRequest struct {
	PaymentMethod entity.PaymentMethod `json:"payment_method" validate:"required,payment_method"`
}

// PayRequest lists the methods to fall back to, in order, after a declined
// charge. An exhausted list declines further retries.
type PayRequest struct {
	RetryMethods []entity.PaymentMethod `json:"retry_methods" validate:"omitempty,dive,payment_method"`
}
