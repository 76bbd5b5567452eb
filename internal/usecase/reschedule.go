package usecase

import (
	"fmt"
	"time"

	"art-booking/internal/data/entity"
)

// ConflictBuffer pads both ends of a trip window when checking overlaps.
const ConflictBuffer = 5 * time.Minute

// RescheduleInputLayout is the operator-facing format for a new departure.
const RescheduleInputLayout = "2006-01-02 15:04"

// Window is a concrete departure/arrival pair.
type Window struct {
	Departure time.Time
	Arrival   time.Time
}

// concreteWindow resolves a trip's schedule to real timestamps; clock-only
// templates are placed on the calendar day of ref.
func concreteWindow(trip entity.Trip, ref time.Time) (Window, error) {
	if trip.DepartureTime.IsZero() {
		return Window{}, fmt.Errorf("trip %s has no departure time", trip.TripID)
	}

	dep := trip.DepartureTime.Time
	if trip.DepartureTime.ClockOnly {
		dep = trip.DepartureTime.On(ref)
	}

	duration := trip.ArrivalTime.Sub(trip.DepartureTime.Time)
	if trip.ArrivalTime.IsZero() {
		duration = entity.RouteDuration(trip.RouteID)
	}
	if duration <= 0 && trip.DepartureTime.ClockOnly {
		duration += 24 * time.Hour
	}
	if duration <= 0 {
		return Window{}, fmt.Errorf("trip %s arrives before it departs", trip.TripID)
	}

	return Window{Departure: dep, Arrival: dep.Add(duration)}, nil
}

// SetNewDate validates a proposed departure for trip and returns the new
// window, keeping the original run time.
func SetNewDate(trip entity.Trip, input string, now time.Time) (Window, error) {
	parsed, err := entity.ParseDateTime(input, now.Location())
	if err != nil || parsed.ClockOnly {
		return Window{}, fmt.Errorf("invalid date-time format %q, use YYYY-MM-DD HH:MM: %w", input, ErrValidation)
	}
	newDeparture := parsed.Time

	if !newDeparture.After(now) {
		return Window{}, fmt.Errorf("new time must be in the future: %w", ErrValidation)
	}

	original, err := concreteWindow(trip, newDeparture)
	if err != nil {
		return Window{}, fmt.Errorf("invalid original schedule: %v: %w", err, ErrValidation)
	}

	if newDeparture.Equal(original.Departure) {
		return Window{}, fmt.Errorf("new time must differ from the original schedule: %w", ErrValidation)
	}

	return Window{
		Departure: newDeparture,
		Arrival:   newDeparture.Add(original.Arrival.Sub(original.Departure)),
	}, nil
}

// Overlaps applies the buffered interval test against another window.
func (w Window) Overlaps(other Window) bool {
	return w.Departure.Before(other.Arrival.Add(ConflictBuffer)) &&
		w.Arrival.After(other.Departure.Add(-ConflictBuffer))
}

// FindConflict returns the first other trip on the same route whose window
// overlaps proposed, or nil.
func FindConflict(trip entity.Trip, proposed Window, others []entity.Trip) *entity.Trip {
	for i := range others {
		other := others[i]
		if other.TripID == trip.TripID || other.RouteID != trip.RouteID {
			continue
		}
		window, err := concreteWindow(other, proposed.Departure)
		if err != nil {
			continue
		}
		if proposed.Overlaps(window) {
			return &others[i]
		}
	}
	return nil
}
