package adaptor

import (
	"net/http"

	"art-booking/internal/usecase"
	"art-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.TripBookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.TripBookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// ListBookings handles GET /api/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.service.ListUserBookings(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// CancelBooking handles POST /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	result, err := h.service.CancelBooking(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	message := "Booking cancelled, no refund within 24 hours of departure"
	if result.Refunded {
		message = "Booking cancelled and refunded as points"
	}
	utils.ResponseSuccess(w, message, result)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondError(h.log, w, err, operation, nil)
}
