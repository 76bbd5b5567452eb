package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"art-booking/internal/usecase"
	"art-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Order   *OrderHandler
	Booking *BookingHandler
	Network *NetworkHandler
	Account *AccountHandler
	Admin   *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Order:   NewOrderHandler(service.Order, service.Receipt, log),
		Booking: NewBookingHandler(service.TripBooking, log),
		Network: NewNetworkHandler(service.TripBooking, log),
		Account: NewAccountHandler(service.Ledger, service.Notification, log),
		Admin:   NewAdminHandler(service.Trip, service.Notification, log),
	}
}

// decodeBody rejects malformed JSON; an empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// respondError maps the usecase error taxonomy to HTTP responses. data, when
// not nil, is returned alongside business rule rejections.
func respondError(log *zap.Logger, w http.ResponseWriter, err error, operation string, data any) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err), zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrUserAbort):
		log.Info(operation+" aborted", zap.Error(err), zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg, data)

	case errors.Is(err, usecase.ErrBusinessRule):
		log.Warn(operation+" rejected", zap.Error(err), zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg, data)

	case errors.Is(err, usecase.ErrStorage):
		log.Error(operation+" failed - storage", zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Storage unavailable, please retry")

	default:
		log.Error(operation+" failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
