package request

import "art-booking/internal/data/entity"

type UpdateTripStatusRequest struct {
	Status entity.TripStatus `json:"status" validate:"required,trip_status"`
	// Departure is "YYYY-MM-DD HH:MM"; required for RESCHEDULED.
	Departure string `json:"departure,omitempty"`
}

type TripSearchRequest struct {
	StationID string `json:"station" validate:"required"`
	Date      string `json:"date" validate:"required,iso_date"`
}
