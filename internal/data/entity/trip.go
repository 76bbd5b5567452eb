package entity

import (
	"strings"
	"time"
)

type TripStatus string

const (
	TripStatusScheduled   TripStatus = "SCHEDULED"
	TripStatusStarted     TripStatus = "STARTED"
	TripStatusCancelled   TripStatus = "CANCELLED"
	TripStatusCompleted   TripStatus = "COMPLETED"
	TripStatusRescheduled TripStatus = "RESCHEDULED"
)

// TripStatuses keeps the menu order used by admin tooling.
var TripStatuses = []TripStatus{
	TripStatusScheduled,
	TripStatusRescheduled,
	TripStatusStarted,
	TripStatusCancelled,
	TripStatusCompleted,
}

var tripTransitions = map[TripStatus][]TripStatus{
	TripStatusScheduled:   {TripStatusStarted, TripStatusCancelled, TripStatusRescheduled},
	TripStatusRescheduled: {TripStatusStarted, TripStatusCancelled},
	TripStatusStarted:     {TripStatusCompleted},
	TripStatusCancelled:   {TripStatusScheduled, TripStatusRescheduled},
	TripStatusCompleted:   {},
}

func (s TripStatus) Valid() bool {
	_, ok := tripTransitions[s]
	return ok
}

// Terminal reports whether no transition leaves s.
func (s TripStatus) Terminal() bool {
	return len(tripTransitions[s]) == 0
}

// AllowedTransitions returns a copy of the next states reachable from s.
func (s TripStatus) AllowedTransitions() []TripStatus {
	return append([]TripStatus(nil), tripTransitions[s]...)
}

func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	for _, allowed := range tripTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Route colours and their fixed run times.
const (
	RouteColorRed   = "RED"
	RouteColorBlue  = "BLUE"
	RouteColorGreen = "GREEN"
)

var RouteColors = []string{RouteColorBlue, RouteColorRed, RouteColorGreen}

const DefaultRouteDuration = 30 * time.Minute

var routeDurations = map[string]time.Duration{
	RouteColorRed:   20 * time.Minute,
	RouteColorBlue:  45 * time.Minute,
	RouteColorGreen: 45 * time.Minute,
}

// RouteDuration looks up the run time by the colour embedded in a route id
// such as ROUTE_RED. Unknown colours get DefaultRouteDuration.
func RouteDuration(routeID string) time.Duration {
	for color, d := range routeDurations {
		if strings.Contains(strings.ToUpper(routeID), color) {
			return d
		}
	}
	return DefaultRouteDuration
}

// Trip is a scheduled run of a route. Trip ids encode COLOR_HHMM_STATION.
type Trip struct {
	TripID            string     `json:"tripId"`
	RouteID           string     `json:"routeId"`
	StartStationID    string     `json:"startStationId"`
	DepartureTime     DateTime   `json:"departureTime"`
	ArrivalTime       DateTime   `json:"arrivalTime"`
	Status            TripStatus `json:"status"`
	RescheduleTime    *DateTime  `json:"rescheduleTime"`
	OriginalDeparture DateTime   `json:"originalDeparture"`
}

// Color returns the route colour prefix of the trip id.
func (t Trip) Color() string {
	color, _, _ := strings.Cut(t.TripID, "_")
	return strings.ToUpper(color)
}

// Normalize fills derived fields on a freshly loaded record.
func (t *Trip) Normalize() {
	if t.Status == "" {
		t.Status = TripStatusScheduled
	}
	if t.ArrivalTime.IsZero() && !t.DepartureTime.IsZero() {
		t.ArrivalTime = DateTime{
			Time:      t.DepartureTime.Add(RouteDuration(t.RouteID)),
			ClockOnly: t.DepartureTime.ClockOnly,
		}
	}
	if t.OriginalDeparture.IsZero() {
		t.OriginalDeparture = t.DepartureTime
	}
}

// Duration is the scheduled run time of this trip.
func (t Trip) Duration() time.Duration {
	return t.ArrivalTime.Sub(t.DepartureTime.Time)
}
