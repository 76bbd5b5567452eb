package adaptor

import (
	"net/http"

	"art-booking/internal/dto/request"
	"art-booking/internal/dto/response"
	"art-booking/internal/usecase"
	"art-booking/pkg/utils"

	"go.uber.org/zap"
)

// NetworkHandler serves the public timetable and topology.
type NetworkHandler struct {
	service usecase.TripBookingService
	log     *zap.Logger
}

func NewNetworkHandler(service usecase.TripBookingService, log *zap.Logger) *NetworkHandler {
	return &NetworkHandler{
		service: service,
		log:     log.With(zap.String("handler", "network")),
	}
}

// GetStations handles GET /api/stations
func (h *NetworkHandler) GetStations(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.Stations(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get stations")
		return
	}

	utils.ResponseSuccess(w, "success", response.StationLinesToResponse(lines))
}

// GetRoutes handles GET /api/routes
func (h *NetworkHandler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.service.Routes(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get routes")
		return
	}

	utils.ResponseSuccess(w, "success", response.RoutesToResponse(routes))
}

// GetConnection handles GET /api/connections?from=&to=
func (h *NetworkHandler) GetConnection(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	connection, err := h.service.ValidateConnection(r.Context(), query.Get("from"), query.Get("to"))
	if err != nil {
		h.handleServiceError(w, err, "validate connection")
		return
	}

	utils.ResponseSuccess(w, "success", connection)
}

// GetTrips handles GET /api/trips?station=&date=
func (h *NetworkHandler) GetTrips(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.TripSearchRequest{
		StationID: query.Get("station"),
		Date:      query.Get("date"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	trips, err := h.service.GetTripDetails(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "get trips")
		return
	}

	utils.ResponseSuccess(w, "success", trips)
}

// GetPaymentMethods handles GET /api/payment-methods
func (h *NetworkHandler) GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", response.PaymentMethodsToResponse())
}

func (h *NetworkHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondError(h.log, w, err, operation, nil)
}
