package entity

type NotificationType string

const (
	NotificationTypeBookingConfirmation NotificationType = "BOOKING_CONFIRMATION"
	NotificationTypeOrderUpdate         NotificationType = "ORDER_UPDATE"
	NotificationTypeRefundStatus        NotificationType = "REFUND_STATUS"
	NotificationTypeSystemAlert         NotificationType = "SYSTEM_ALERT"
	NotificationTypePointsUpdate        NotificationType = "POINTS_UPDATE"
	NotificationTypePromotion           NotificationType = "PROMOTION"
	NotificationTypeUserNotification    NotificationType = "USER_NOTIFICATION"
)

type NotificationStatus string

const (
	NotificationStatusUnread NotificationStatus = "Unread"
	NotificationStatusRead   NotificationStatus = "Read"
)

type RecipientType string

const (
	RecipientUser  RecipientType = "user"
	RecipientAdmin RecipientType = "admin"
)

type Notification struct {
	NotificationID string             `json:"notificationId"`
	Type           NotificationType   `json:"notificationType"`
	Status         NotificationStatus `json:"notificationStatus"`
	Content        string             `json:"notificationContent"`
	CreatedTime    DateTime           `json:"notificationCreatedTime"`
	PublishedTime  DateTime           `json:"notificationPublishedTime"`
	RecipientType  RecipientType      `json:"recipientType"`
	// RecipientIDs may be empty for admin broadcasts.
	RecipientIDs []string `json:"recipientIds,omitempty"`
}

// AddressedTo reports whether the notification reaches the given recipient.
// Admin notifications without explicit ids reach every admin.
func (n Notification) AddressedTo(kind RecipientType, id string) bool {
	if n.RecipientType != kind {
		return false
	}
	if len(n.RecipientIDs) == 0 {
		return kind == RecipientAdmin
	}
	for _, rid := range n.RecipientIDs {
		if rid == id {
			return true
		}
	}
	return false
}
