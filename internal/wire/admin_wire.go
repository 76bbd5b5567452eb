package wire

import (
	"art-booking/internal/adaptor"
	"art-booking/pkg/middleware"
	"art-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Admin(config.Admin.TokenHash, log))

		r.Get("/trips", adminHandler.ListTrips)
		r.Get("/trips/{id}", adminHandler.GetTrip)

		// PUT /api/admin/trips/{id}/status - cascades to bookings on cancel/reschedule
		r.Put("/trips/{id}/status", adminHandler.UpdateTripStatus)

		r.Get("/notifications", adminHandler.GetNotifications)
	})
}
