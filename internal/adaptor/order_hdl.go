package adaptor

import (
	"net/http"

	"art-booking/internal/dto/request"
	"art-booking/internal/usecase"
	"art-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service  usecase.OrderService
	receipts usecase.ReceiptService
	log      *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, receipts usecase.ReceiptService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service:  service,
		receipts: receipts,
		log:      log.With(zap.String("handler", "order")),
	}
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	order, err := h.service.CreateOrder(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "create order", nil)
		return
	}

	utils.ResponseCreated(w, "Order created", order)
}

// ListOrders handles GET /api/orders?page=&per_page=
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := request.NewPaginatedRequest(
		utils.ParseInt(query.Get("page"), 1),
		utils.ParseInt(query.Get("per_page"), 10),
	)

	orders, err := h.service.ListOrders(r.Context(), userID, req)
	if err != nil {
		h.handleServiceError(w, err, "list orders", nil)
		return
	}

	utils.ResponseSuccess(w, "success", orders)
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	order, err := h.service.GetOrder(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get order", nil)
		return
	}

	utils.ResponseSuccess(w, "success", order)
}

// AddMerchandise handles POST /api/orders/{id}/merchandise
func (h *OrderHandler) AddMerchandise(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AddMerchandiseRequest
	if err := decodeBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	order, err := h.service.AddMerchandise(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "add merchandise", nil)
		return
	}

	utils.ResponseSuccess(w, "Merchandise added", order)
}

// AddTripBooking handles POST /api/orders/{id}/trip-booking
func (h *OrderHandler) AddTripBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AddTripBookingRequest
	if err := decodeBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.AddTripBooking(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "add trip booking", nil)
		return
	}

	utils.ResponseSuccess(w, "Trip booking added", result)
}

// RedeemPoints handles POST /api/orders/{id}/redeem
func (h *OrderHandler) RedeemPoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := request.RedeemPointsRequest{Confirm: true}
	if err := decodeBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.RedeemPoints(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "redeem points", nil)
		return
	}

	utils.ResponseSuccess(w, result.Message, result)
}

// SelectPaymentMethod handles POST /api/orders/{id}/payment-method
func (h *OrderHandler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SelectPaymentMethodRequest
	if err := decodeBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	order, err := h.service.SelectPaymentMethod(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "select payment method", nil)
		return
	}

	utils.ResponseSuccess(w, "Payment method selected", order)
}

// Pay handles POST /api/orders/{id}/pay
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.PayRequest
	if err := decodeBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.Pay(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "pay order", result)
		return
	}

	utils.ResponseSuccess(w, "Payment successful", result)
}

// Submit handles POST /api/orders/{id}/submit
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	result, err := h.service.Submit(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "submit order", nil)
		return
	}

	utils.ResponseSuccess(w, "Order submitted", result)
}

// CancelOrder handles POST /api/orders/{id}/cancel
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	order, err := h.service.CancelOrder(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "cancel order", nil)
		return
	}

	utils.ResponseSuccess(w, "Order cancelled", order)
}

// Receipt handles GET /api/orders/{id}/receipt
func (h *OrderHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	receipt, err := h.receipts.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get receipt", nil)
		return
	}

	utils.ResponseSuccess(w, "success", receipt)
}

func (h *OrderHandler) handleServiceError(w http.ResponseWriter, err error, operation string, data any) {
	respondError(h.log, w, err, operation, data)
}
