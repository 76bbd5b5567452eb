package entity

import (
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusCreated         OrderStatus = "CREATED"
	OrderStatusConfirmed       OrderStatus = "CONFIRMED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusRefundRequested OrderStatus = "REFUND_REQUESTED"
	OrderStatusRefunded        OrderStatus = "REFUNDED"
	OrderStatusRefundedFail    OrderStatus = "REFUNDED_FAIL"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard      PaymentMethod = "DEBIT_CARD"
	PaymentMethodPayPal         PaymentMethod = "PAYPAL"
	PaymentMethodBankTransfer   PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PaymentMethodEWallet        PaymentMethod = "E_WALLET"
)

// PaymentMethods is the fixed, ordered menu offered to the payer.
var PaymentMethods = []PaymentMethod{
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
	PaymentMethodPayPal,
	PaymentMethodBankTransfer,
	PaymentMethodCashOnDelivery,
	PaymentMethodEWallet,
}

var paymentMethodNames = map[PaymentMethod]string{
	PaymentMethodCreditCard:     "Credit Card",
	PaymentMethodDebitCard:      "Debit Card",
	PaymentMethodPayPal:         "PayPal",
	PaymentMethodBankTransfer:   "Bank Transfer",
	PaymentMethodCashOnDelivery: "Cash On Delivery",
	PaymentMethodEWallet:        "E-Wallet",
}

func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethodNames[m]
	return ok
}

// DisplayName falls back to the raw value for unknown methods.
func (m PaymentMethod) DisplayName() string {
	if name, ok := paymentMethodNames[m]; ok {
		return name
	}
	return string(m)
}

type MerchandiseLine struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func (l MerchandiseLine) Extension() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is the persisted order record, appended per user on submission.
type Order struct {
	OrderID        string            `json:"orderId"`
	UserID         string            `json:"userId"`
	TripBookings   []TripBooking     `json:"tripBookings"`
	Items          []MerchandiseLine `json:"items"`
	Total          decimal.Decimal   `json:"total"`
	FinalAmount    decimal.Decimal   `json:"finalAmount"`
	PaymentMethod  PaymentMethod     `json:"paymentMethod,omitempty"`
	PaymentStatus  PaymentStatus     `json:"paymentStatus"`
	Status         OrderStatus       `json:"status"`
	Timestamp      DateTime          `json:"timestamp"`
	PointsRedeemed int64             `json:"pointsRedeemed"`
}

// UserOrders is the per-user entry of the orders document.
type UserOrders struct {
	Orders []Order `json:"orders"`
}

// OrdersDocument maps user id to that user's order history.
type OrdersDocument map[string]*UserOrders
