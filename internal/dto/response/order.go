package response

import (
	"art-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type MerchandiseLineResponse struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

type OrderResponse struct {
	OrderID           string                    `json:"order_id"`
	UserID            string                    `json:"user_id"`
	Items             []MerchandiseLineResponse `json:"items"`
	TripBookings      []TripBookingResponse     `json:"trip_bookings"`
	TotalAmount       decimal.Decimal           `json:"total_amount"`
	PointsRedeemed    int64                     `json:"points_redeemed"`
	FinalAmount       decimal.Decimal           `json:"final_amount"`
	PaymentMethod     entity.PaymentMethod      `json:"payment_method,omitempty"`
	PaymentMethodName string                    `json:"payment_method_name,omitempty"`
	PaymentStatus     entity.PaymentStatus      `json:"payment_status"`
	Status            entity.OrderStatus        `json:"status"`
	PaymentAttempts   int                       `json:"payment_attempts"`
	Timestamp         string                    `json:"timestamp,omitempty"`
}

// OrderToResponse projects a persisted or draft order record.
func OrderToResponse(o *entity.Order, attempts int) OrderResponse {
	items := make([]MerchandiseLineResponse, len(o.Items))
	for i, line := range o.Items {
		items[i] = MerchandiseLineResponse{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.Extension(),
		}
	}

	resp := OrderResponse{
		OrderID:        o.OrderID,
		UserID:         o.UserID,
		Items:          items,
		TripBookings:   TripBookingsToResponse(o.TripBookings),
		TotalAmount:    o.Total,
		PointsRedeemed: o.PointsRedeemed,
		FinalAmount:    o.FinalAmount,
		PaymentMethod:  o.PaymentMethod,
		PaymentStatus:  o.PaymentStatus,
		Status:         o.Status,
		Timestamp:      o.Timestamp.String(),
	}
	if o.PaymentMethod != "" {
		resp.PaymentMethodName = o.PaymentMethod.DisplayName()
	}
	resp.PaymentAttempts = attempts
	return resp
}

type RedemptionResponse struct {
	Applied        bool          `json:"applied"`
	PointsRedeemed int64         `json:"points_redeemed"`
	Balance        int64         `json:"balance"`
	Message        string        `json:"message"`
	Order          OrderResponse `json:"order"`
}

type PaymentResponse struct {
	Paid     bool          `json:"paid"`
	Attempts int           `json:"attempts"`
	Order    OrderResponse `json:"order"`
}

type SubmitResponse struct {
	Order        OrderResponse `json:"order"`
	PointsEarned int64         `json:"points_earned"`
	Notification string        `json:"notification"`
}

// TripBookingResult reports how a trip occurrence was resolved.
type TripBookingResult struct {
	Booking  TripBookingResponse `json:"booking"`
	Fallback bool                `json:"fallback"`
	Message  string              `json:"message,omitempty"`
	Order    OrderResponse       `json:"order"`
}
