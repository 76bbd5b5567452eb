package wire

import (
	"art-booking/internal/adaptor"
	"art-booking/pkg/middleware"
	"art-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// GET /api/bookings - trip booking history of the caller
		r.Get("/api/bookings", bookingHandler.ListBookings)

		// POST /api/bookings/{id}/cancel - self-cancel with refund check
		r.Post("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
	})
}
