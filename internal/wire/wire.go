// internal/wire/wire.go
package wire

import (
	"net/http"

	"art-booking/internal/adaptor"
	"art-booking/internal/data/repository"
	"art-booking/internal/usecase"
	"art-booking/pkg/broker"
	"art-booking/pkg/middleware"
	"art-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the assembled dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router
func Wiring(repo *repository.Repository, config *utils.Config, publisher broker.Publisher, logger *zap.Logger, opts usecase.Options) *App {
	service := usecase.NewService(repo, config, publisher, logger, opts)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wireNetwork(r, handler.Network, config, logger)
	wireOrder(r, handler.Order, config, logger)
	wireBooking(r, handler.Booking, config, logger)
	wireAccount(r, handler.Account, config, logger)
	wireAdmin(r, handler.Admin, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
