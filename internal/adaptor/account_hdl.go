package adaptor

import (
	"net/http"

	"art-booking/internal/data/entity"
	"art-booking/internal/dto/request"
	"art-booking/internal/dto/response"
	"art-booking/internal/usecase"
	"art-booking/pkg/utils"

	"go.uber.org/zap"
)

// AccountHandler serves the caller's points balance and notifications.
type AccountHandler struct {
	ledger        usecase.LedgerService
	notifications usecase.NotificationService
	log           *zap.Logger
}

func NewAccountHandler(ledger usecase.LedgerService, notifications usecase.NotificationService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		ledger:        ledger,
		notifications: notifications,
		log:           log.With(zap.String("handler", "account")),
	}
}

// GetPoints handles GET /api/points
func (h *AccountHandler) GetPoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	balance, err := h.ledger.GetPoints(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get points")
		return
	}

	utils.ResponseSuccess(w, "success", response.PointsResponse{UserID: userID, Balance: balance})
}

// GetNotifications handles GET /api/notifications?page=&per_page=
func (h *AccountHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	list, err := h.notifications.ForUser(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get notifications")
		return
	}

	unread, err := h.notifications.UnreadCount(r.Context(), entity.RecipientUser, userID)
	if err != nil {
		h.handleServiceError(w, err, "count unread notifications")
		return
	}

	query := r.URL.Query()
	req := request.NewPaginatedRequest(
		utils.ParseInt(query.Get("page"), 1),
		utils.ParseInt(query.Get("per_page"), 10),
	)
	utils.ResponseSuccess(w, "success", response.NotificationListResponse{
		Unread:        unread,
		Notifications: response.Paginate(response.NotificationsToResponse(newestFirst(list)), req.Page, req.Limit(), req.Offset()),
	})
}

// MarkNotificationsRead handles POST /api/notifications/read
func (h *AccountHandler) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	updated, err := h.notifications.MarkAllRead(r.Context(), entity.RecipientUser, userID)
	if err != nil {
		h.handleServiceError(w, err, "mark notifications read")
		return
	}

	utils.ResponseSuccess(w, "Notifications marked as read", response.MarkReadResponse{Updated: updated})
}

func newestFirst(list []entity.Notification) []entity.Notification {
	out := make([]entity.Notification, len(list))
	for i := range list {
		out[len(list)-1-i] = list[i]
	}
	return out
}

func (h *AccountHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondError(h.log, w, err, operation, nil)
}
