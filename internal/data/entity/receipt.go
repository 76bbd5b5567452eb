package entity

import "github.com/shopspring/decimal"

type ReceiptItemType string

const (
	ReceiptItemTrip        ReceiptItemType = "trip"
	ReceiptItemMerchandise ReceiptItemType = "merchandise"
)

type ReceiptItem struct {
	Type        ReceiptItemType `json:"type"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

type Receipt struct {
	ReceiptID      string          `json:"receiptId"`
	OrderID        string          `json:"orderId"`
	UserID         string          `json:"userId"`
	Timestamp      DateTime        `json:"timestamp"`
	Items          []ReceiptItem   `json:"items"`
	TripBookings   []TripBooking   `json:"tripBookings"`
	RouteInfo      string          `json:"routeInfo,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PointsRedeemed int64           `json:"pointsRedeemed"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod,omitempty"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	OrderStatus    OrderStatus     `json:"orderStatus"`
}
