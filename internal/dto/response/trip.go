package response

import (
	"art-booking/internal/data/entity"
)

type TripResponse struct {
	TripID             string              `json:"trip_id"`
	RouteID            string              `json:"route_id"`
	Color              string              `json:"color"`
	StartStationID     string              `json:"start_station_id"`
	DepartureTime      string              `json:"departure_time"`
	ArrivalTime        string              `json:"arrival_time"`
	Status             entity.TripStatus   `json:"status"`
	RescheduleTime     string              `json:"reschedule_time,omitempty"`
	OriginalDeparture  string              `json:"original_departure,omitempty"`
	AllowedTransitions []entity.TripStatus `json:"allowed_transitions"`
}

func TripToResponse(trip *entity.Trip) TripResponse {
	resp := TripResponse{
		TripID:             trip.TripID,
		RouteID:            trip.RouteID,
		Color:              trip.Color(),
		StartStationID:     trip.StartStationID,
		DepartureTime:      trip.DepartureTime.String(),
		ArrivalTime:        trip.ArrivalTime.String(),
		Status:             trip.Status,
		OriginalDeparture:  trip.OriginalDeparture.String(),
		AllowedTransitions: trip.Status.AllowedTransitions(),
	}
	if trip.RescheduleTime != nil {
		resp.RescheduleTime = trip.RescheduleTime.String()
	}
	return resp
}

func TripsToResponse(trips []entity.Trip) []TripResponse {
	result := make([]TripResponse, len(trips))
	for i := range trips {
		result[i] = TripToResponse(&trips[i])
	}
	return result
}

// TripStatusResponse reports an admin status change. AffectedBookings maps
// user id to the cancelled or notified booking ids.
type TripStatusResponse struct {
	Trip             TripResponse        `json:"trip"`
	PreviousStatus   entity.TripStatus   `json:"previous_status"`
	Changed          bool                `json:"changed"`
	AffectedBookings map[string][]string `json:"affected_bookings,omitempty"`
}

// TripOccurrenceResponse is a schedule template placed on a calendar date.
type TripOccurrenceResponse struct {
	TripID        string            `json:"trip_id"`
	RouteID       string            `json:"route_id"`
	DepartureTime string            `json:"departure_time"`
	ArrivalTime   string            `json:"arrival_time"`
	Status        entity.TripStatus `json:"status"`
}
