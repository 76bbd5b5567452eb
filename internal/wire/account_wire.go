package wire

import (
	"art-booking/internal/adaptor"
	"art-booking/pkg/middleware"
	"art-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAccount(
	r chi.Router,
	accountHandler *adaptor.AccountHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		r.Get("/api/points", accountHandler.GetPoints)
		r.Get("/api/notifications", accountHandler.GetNotifications)
		r.Post("/api/notifications/read", accountHandler.MarkNotificationsRead)
	})
}
