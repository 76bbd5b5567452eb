package response

import (
	"art-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type ReceiptItemResponse struct {
	Type        entity.ReceiptItemType `json:"type"`
	Description string                 `json:"description"`
	Quantity    int                    `json:"quantity"`
	Price       decimal.Decimal        `json:"price"`
	Total       decimal.Decimal        `json:"total"`
}

type ReceiptResponse struct {
	ReceiptID      string                `json:"receipt_id"`
	OrderID        string                `json:"order_id"`
	UserID         string                `json:"user_id"`
	Timestamp      string                `json:"timestamp"`
	Items          []ReceiptItemResponse `json:"items"`
	RouteInfo      string                `json:"route_info,omitempty"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	PointsRedeemed int64                 `json:"points_redeemed"`
	FinalAmount    decimal.Decimal       `json:"final_amount"`
	PaymentMethod  string                `json:"payment_method"`
	PaymentStatus  entity.PaymentStatus  `json:"payment_status"`
	OrderStatus    entity.OrderStatus    `json:"order_status"`
}

func ReceiptToResponse(r *entity.Receipt) ReceiptResponse {
	items := make([]ReceiptItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = ReceiptItemResponse(item)
	}
	return ReceiptResponse{
		ReceiptID:      r.ReceiptID,
		OrderID:        r.OrderID,
		UserID:         r.UserID,
		Timestamp:      r.Timestamp.String(),
		Items:          items,
		RouteInfo:      r.RouteInfo,
		TotalAmount:    r.TotalAmount,
		PointsRedeemed: r.PointsRedeemed,
		FinalAmount:    r.FinalAmount,
		PaymentMethod:  r.PaymentMethod.DisplayName(),
		PaymentStatus:  r.PaymentStatus,
		OrderStatus:    r.OrderStatus,
	}
}
