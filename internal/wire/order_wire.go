package wire

import (
	"art-booking/internal/adaptor"
	"art-booking/pkg/middleware"
	"art-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require identity) ====================
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(middleware.Identity(log))

		r.Post("/", orderHandler.CreateOrder)
		r.Get("/", orderHandler.ListOrders)
		r.Get("/{id}", orderHandler.GetOrder)

		// Draft building, in the order a checkout walks through them
		r.Post("/{id}/merchandise", orderHandler.AddMerchandise)
		r.Post("/{id}/trip-booking", orderHandler.AddTripBooking)
		r.Post("/{id}/redeem", orderHandler.RedeemPoints)
		r.Post("/{id}/payment-method", orderHandler.SelectPaymentMethod)
		r.Post("/{id}/pay", orderHandler.Pay)
		r.Post("/{id}/submit", orderHandler.Submit)
		r.Post("/{id}/cancel", orderHandler.CancelOrder)

		r.Get("/{id}/receipt", orderHandler.Receipt)
	})
}
