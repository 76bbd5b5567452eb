package adaptor

import (
	"net/http"

	"art-booking/internal/dto/request"
	"art-booking/internal/dto/response"
	"art-booking/internal/usecase"
	"art-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	trips         usecase.TripService
	notifications usecase.NotificationService
	log           *zap.Logger
}

func NewAdminHandler(trips usecase.TripService, notifications usecase.NotificationService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		trips:         trips,
		notifications: notifications,
		log:           log.With(zap.String("handler", "admin")),
	}
}

// ListTrips handles GET /api/admin/trips?route=RED
func (h *AdminHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.trips.ListTrips(r.Context(), r.URL.Query().Get("route"))
	if err != nil {
		h.handleServiceError(w, err, "list trips")
		return
	}

	utils.ResponseSuccess(w, "success", trips)
}

// GetTrip handles GET /api/admin/trips/{id}
func (h *AdminHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := h.trips.GetTrip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get trip")
		return
	}

	utils.ResponseSuccess(w, "success", trip)
}

// UpdateTripStatus handles PUT /api/admin/trips/{id}/status
func (h *AdminHandler) UpdateTripStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateTripStatusRequest
	if err := decodeBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.trips.UpdateStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update trip status")
		return
	}

	message := "Trip status updated"
	if !result.Changed {
		message = "Trip status unchanged"
	}
	utils.ResponseSuccess(w, message, result)
}

// GetNotifications handles GET /api/admin/notifications
func (h *AdminHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	list, err := h.notifications.ForAdmin(r.Context(), adminID)
	if err != nil {
		h.handleServiceError(w, err, "get admin notifications")
		return
	}

	utils.ResponseSuccess(w, "success", response.NotificationsToResponse(newestFirst(list)))
}

func (h *AdminHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondError(h.log, w, err, operation, nil)
}
