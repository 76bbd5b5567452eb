package entity

import (
	"slices"

	"github.com/shopspring/decimal"
)

type Route struct {
	RouteID        string          `json:"routeId"`
	RouteName      string          `json:"routeName"`
	StartStationID string          `json:"startStationId"`
	EndStationID   string          `json:"endStationId"`
	NumberOfStops  int             `json:"numberOfStops"`
	StopsSequence  []string        `json:"stopsSequence"`
	BasePrice      decimal.Decimal `json:"basePrice"`
}

func (r Route) Serves(stationID string) bool {
	return slices.Contains(r.StopsSequence, stationID)
}

// SharesStationWith reports whether both routes stop at a common station.
func (r Route) SharesStationWith(other Route) bool {
	for _, stop := range r.StopsSequence {
		if other.Serves(stop) {
			return true
		}
	}
	return false
}

type Station struct {
	StationID   string `json:"stationId"`
	StationName string `json:"stationName"`
}

// StationLine groups stations by line as in the stations document.
type StationLine struct {
	Line     string    `json:"line"`
	Stations []Station `json:"stations"`
}
