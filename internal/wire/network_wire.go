package wire

import (
	"art-booking/internal/adaptor"
	"art-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireNetwork(
	r chi.Router,
	networkHandler *adaptor.NetworkHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/stations", networkHandler.GetStations)
	r.Get("/api/routes", networkHandler.GetRoutes)

	// GET /api/connections?from=KJ-01&to=KJ-05
	r.Get("/api/connections", networkHandler.GetConnection)

	// GET /api/trips?station=KJ-01&date=2026-01-16
	r.Get("/api/trips", networkHandler.GetTrips)

	r.Get("/api/payment-methods", networkHandler.GetPaymentMethods)
}
