package response

import (
	"art-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type ConnectionType string

const (
	ConnectionDirect      ConnectionType = "direct"
	ConnectionInterchange ConnectionType = "interchange"
)

type ConnectionResponse struct {
	Type          ConnectionType  `json:"type"`
	RouteName     string          `json:"route_name,omitempty"`
	FromRouteName string          `json:"from_route_name,omitempty"`
	ToRouteName   string          `json:"to_route_name,omitempty"`
	Fare          decimal.Decimal `json:"fare"`
}

type RouteResponse struct {
	RouteID        string          `json:"route_id"`
	RouteName      string          `json:"route_name"`
	StartStationID string          `json:"start_station_id"`
	EndStationID   string          `json:"end_station_id"`
	NumberOfStops  int             `json:"number_of_stops"`
	Stops          []string        `json:"stops"`
	BasePrice      decimal.Decimal `json:"base_price"`
}

func RoutesToResponse(routes []entity.Route) []RouteResponse {
	result := make([]RouteResponse, len(routes))
	for i, r := range routes {
		result[i] = RouteResponse{
			RouteID:        r.RouteID,
			RouteName:      r.RouteName,
			StartStationID: r.StartStationID,
			EndStationID:   r.EndStationID,
			NumberOfStops:  r.NumberOfStops,
			Stops:          r.StopsSequence,
			BasePrice:      r.BasePrice,
		}
	}
	return result
}

type StationResponse struct {
	StationID   string `json:"station_id"`
	StationName string `json:"station_name"`
	Line        string `json:"line"`
}

func StationLinesToResponse(lines []entity.StationLine) []StationResponse {
	result := make([]StationResponse, 0)
	for _, line := range lines {
		for _, st := range line.Stations {
			result = append(result, StationResponse{
				StationID:   st.StationID,
				StationName: st.StationName,
				Line:        line.Line,
			})
		}
	}
	return result
}

type PaymentMethodResponse struct {
	Code entity.PaymentMethod `json:"code"`
	Name string               `json:"name"`
}

func PaymentMethodsToResponse() []PaymentMethodResponse {
	result := make([]PaymentMethodResponse, len(entity.PaymentMethods))
	for i, m := range entity.PaymentMethods {
		result[i] = PaymentMethodResponse{Code: m, Name: m.DisplayName()}
	}
	return result
}
