package response

import "art-booking/internal/data/entity"

type NotificationResponse struct {
	NotificationID string                    `json:"notification_id"`
	Type           entity.NotificationType   `json:"type"`
	Status         entity.NotificationStatus `json:"status"`
	Content        string                    `json:"content"`
	CreatedTime    string                    `json:"created_time"`
}

func NotificationsToResponse(list []entity.Notification) []NotificationResponse {
	result := make([]NotificationResponse, len(list))
	for i, n := range list {
		result[i] = NotificationResponse{
			NotificationID: n.NotificationID,
			Type:           n.Type,
			Status:         n.Status,
			Content:        n.Content,
			CreatedTime:    n.CreatedTime.String(),
		}
	}
	return result
}

type MarkReadResponse struct {
	Updated int `json:"updated"`
}

type PointsResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

type NotificationListResponse struct {
	Unread        int                                     `json:"unread"`
	Notifications *PaginatedResponse[NotificationResponse] `json:"notifications"`
}
