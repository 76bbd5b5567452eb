package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"art-booking/internal/data/entity"
	"art-booking/internal/data/repository"
	"art-booking/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DefaultMaxPaymentAttempts = 3

// OrderDeps are the collaborators an Order drives.
type OrderDeps struct {
	Ledger             LedgerService
	Gateway            Gateway
	Orders             repository.OrderRepository
	Bookings           repository.BookingRepository
	Notifier           NotificationService
	Now                func() time.Time
	MaxPaymentAttempts int
	Log                *zap.Logger
}

// Order is an in-progress purchase. It is built in memory and persisted
// once, on Submit. Not safe for concurrent use.
type Order struct {
	record    entity.Order
	deps      OrderDeps
	payment   *PaymentAttempt
	attempts  int
	redeemed  bool
	submitted bool
	log       *zap.Logger
}

// RedemptionOutcome describes what ApplyPointsRedemption did.
type RedemptionOutcome struct {
	Applied bool
	Points  int64
	Balance int64
	Message string
}

// SubmitOutcome is the result of a successful submission.
type SubmitOutcome struct {
	PointsEarned int64
	Notification string
}

func NewOrder(userID string, deps OrderDeps) *Order {
	if deps.MaxPaymentAttempts < 1 {
		deps.MaxPaymentAttempts = DefaultMaxPaymentAttempts
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	orderID := utils.GenerateID()
	return &Order{
		record: entity.Order{
			OrderID:       orderID,
			UserID:        userID,
			TripBookings:  []entity.TripBooking{},
			Items:         []entity.MerchandiseLine{},
			Total:         decimal.Zero,
			FinalAmount:   decimal.Zero,
			PaymentStatus: entity.PaymentStatusPending,
			Status:        entity.OrderStatusCreated,
			Timestamp:     entity.NewDateTime(deps.Now()),
		},
		deps:    deps,
		payment: NewPaymentAttempt(),
		log:     deps.Log.With(zap.String("order_id", orderID), zap.String("user_id", userID)),
	}
}

func (o *Order) ID() string     { return o.record.OrderID }
func (o *Order) UserID() string { return o.record.UserID }

// Attempts is the number of gateway calls made so far.
func (o *Order) Attempts() int { return o.attempts }

func (o *Order) Status() entity.OrderStatus { return o.record.Status }

// ViewDetails returns a copy of the current order state.
func (o *Order) ViewDetails() entity.Order {
	view := o.record
	view.TripBookings = append([]entity.TripBooking(nil), o.record.TripBookings...)
	view.Items = append([]entity.MerchandiseLine(nil), o.record.Items...)
	return view
}

func (o *Order) empty() bool {
	return len(o.record.Items) == 0 && len(o.record.TripBookings) == 0
}

// ensureEditable rejects changes to cancelled, paid or submitted orders.
func (o *Order) ensureEditable() error {
	if o.record.Status != entity.OrderStatusCreated {
		return fmt.Errorf("order %s is %s: %w", o.record.OrderID, o.record.Status, ErrOrderClosed)
	}
	if o.record.PaymentStatus == entity.PaymentStatusPaid {
		return fmt.Errorf("order %s is already paid: %w", o.record.OrderID, ErrOrderClosed)
	}
	return nil
}

// recompute keeps total = merchandise + trip fares and
// final = max(0, total - redeemed).
func (o *Order) recompute() {
	total := decimal.Zero
	for _, line := range o.record.Items {
		total = total.Add(line.Extension())
	}
	for _, b := range o.record.TripBookings {
		total = total.Add(b.TotalFare())
	}
	o.record.Total = total

	final := total.Sub(decimal.NewFromInt(o.record.PointsRedeemed))
	if final.IsNegative() {
		final = decimal.Zero
	}
	o.record.FinalAmount = final
}

// abort cancels the order. Side effects already committed (deducted points)
// stay in place.
func (o *Order) abort(reason string) {
	if o.record.Status == entity.OrderStatusCreated {
		o.record.Status = entity.OrderStatusCancelled
		o.log.Info("Order aborted", zap.String("reason", reason), zap.Int64("points_redeemed", o.record.PointsRedeemed))
	}
}

// Cancel aborts the order on the caller's request.
func (o *Order) Cancel() error {
	if o.record.Status != entity.OrderStatusCreated || o.submitted {
		return fmt.Errorf("order %s is %s: %w", o.record.OrderID, o.record.Status, ErrOrderClosed)
	}
	o.abort("cancelled by user")
	return nil
}

func (o *Order) AddMerchandise(name string, quantity int, unitPrice decimal.Decimal) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("merchandise name is required: %w", ErrValidation)
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be greater than 0, got %d: %w", quantity, ErrValidation)
	}
	if unitPrice.IsNegative() {
		return fmt.Errorf("price cannot be negative, got %s: %w", unitPrice.StringFixed(2), ErrValidation)
	}

	o.record.Items = append(o.record.Items, entity.MerchandiseLine{
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	o.recompute()
	return nil
}

// AddTripBooking books tickets on a resolved trip occurrence.
func (o *Order) AddTripBooking(occ TripOccurrence, fromStationID, toStationID string, fare decimal.Decimal, tickets int) (*entity.TripBooking, error) {
	if err := o.ensureEditable(); err != nil {
		return nil, err
	}
	if tickets <= 0 {
		return nil, fmt.Errorf("ticket count must be greater than 0, got %d: %w", tickets, ErrValidation)
	}
	if fare.IsNegative() {
		return nil, fmt.Errorf("fare cannot be negative: %w", ErrValidation)
	}

	booking := entity.TripBooking{
		TripBookingID: utils.GenerateID(),
		TripID:        occ.Trip.TripID,
		UserID:        o.record.UserID,
		OrderID:       o.record.OrderID,
		FromStationID: fromStationID,
		ToStationID:   toStationID,
		DepartureTime: entity.NewDateTime(occ.Departure),
		Fare:          fare,
		TicketCount:   tickets,
		Status:        entity.TripBookingStatusRequested,
	}
	o.record.TripBookings = append(o.record.TripBookings, booking)
	o.recompute()
	return &booking, nil
}

// ApplyPointsRedemption redeems min(balance, floor(total)) points once per
// order at 1 point = RM1. Declining or a failed deduction leaves the order
// unchanged.
func (o *Order) ApplyPointsRedemption(ctx context.Context, prompter Prompter) (RedemptionOutcome, error) {
	if o.record.Status == entity.OrderStatusCancelled {
		return RedemptionOutcome{Message: "order is cancelled"}, nil
	}
	if err := o.ensureEditable(); err != nil {
		return RedemptionOutcome{}, err
	}
	if o.redeemed {
		return RedemptionOutcome{Points: o.record.PointsRedeemed, Message: "points already redeemed for this order"}, nil
	}
	if !o.record.Total.IsPositive() {
		return RedemptionOutcome{Message: "nothing to redeem against"}, nil
	}

	balance, err := o.deps.Ledger.GetPoints(ctx, o.record.UserID)
	if err != nil {
		return RedemptionOutcome{}, err
	}
	if balance == 0 {
		return RedemptionOutcome{Message: "no points available"}, nil
	}

	redeemable := min(balance, o.record.Total.Floor().IntPart())
	if redeemable <= 0 {
		return RedemptionOutcome{Balance: balance, Message: "order total is below one point"}, nil
	}

	ok, err := prompter.ConfirmRedemption(ctx, balance, redeemable, o.record.Total)
	if err != nil {
		return RedemptionOutcome{}, err
	}
	if !ok {
		return RedemptionOutcome{Balance: balance, Message: "redemption skipped"}, nil
	}

	deducted, err := o.deps.Ledger.DeductPoints(ctx, o.record.UserID, redeemable)
	if err != nil {
		return RedemptionOutcome{}, err
	}
	if !deducted {
		return RedemptionOutcome{Balance: balance, Message: "points could not be deducted"}, nil
	}

	o.record.PointsRedeemed = redeemable
	o.redeemed = true
	o.recompute()

	o.log.Info("Points redeemed",
		zap.Int64("points", redeemable),
		zap.String("final_amount", o.record.FinalAmount.StringFixed(2)),
	)
	return RedemptionOutcome{
		Applied: true,
		Points:  redeemable,
		Balance: balance - redeemable,
		Message: fmt.Sprintf("redeemed %d points", redeemable),
	}, nil
}

// SelectPaymentMethod asks for a method. Cancelling the choice aborts the order.
func (o *Order) SelectPaymentMethod(ctx context.Context, prompter Prompter) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if o.empty() {
		return fmt.Errorf("order %s has no items: %w", o.record.OrderID, ErrValidation)
	}

	method, err := o.payment.SelectMethod(ctx, prompter)
	if errors.Is(err, ErrUserAbort) {
		o.abort("payment method not selected")
		return err
	}
	if err != nil {
		return err
	}
	o.record.PaymentMethod = method
	return nil
}

// ProcessPayment charges FinalAmount, retrying on decline until the attempt
// limit. Every gateway call counts as one attempt. Reaching the limit or
// declining a retry cancels the order.
func (o *Order) ProcessPayment(ctx context.Context, prompter Prompter) (bool, error) {
	if o.record.PaymentStatus == entity.PaymentStatusPaid {
		return true, nil
	}
	if err := o.ensureEditable(); err != nil {
		return false, err
	}
	if o.empty() {
		return false, fmt.Errorf("order %s has no items: %w", o.record.OrderID, ErrValidation)
	}

	limit := o.deps.MaxPaymentAttempts
	for o.attempts < limit {
		if o.record.PaymentMethod == "" {
			if err := o.SelectPaymentMethod(ctx, prompter); err != nil {
				return false, err
			}
		}

		o.attempts++
		paid, err := o.payment.Process(ctx, o.deps.Gateway, o.record.FinalAmount)
		o.record.PaymentStatus = o.payment.Status
		if err != nil {
			o.log.Warn("Payment gateway error", zap.Error(err), zap.Int("attempt", o.attempts))
		}

		if paid {
			o.log.Info("Payment succeeded",
				zap.Int("attempt", o.attempts),
				zap.String("method", string(o.record.PaymentMethod)),
				zap.String("amount", o.record.FinalAmount.StringFixed(2)),
			)
			return true, nil
		}

		o.log.Info("Payment failed",
			zap.Int("attempt", o.attempts),
			zap.String("method", string(o.record.PaymentMethod)),
		)

		if o.attempts >= limit {
			break
		}

		retry, err := prompter.ConfirmRetry(ctx, o.attempts, limit)
		if err != nil {
			return false, err
		}
		if !retry {
			o.abort("payment retry declined")
			return false, fmt.Errorf("payment retry declined after attempt %d: %w", o.attempts, ErrUserAbort)
		}

		o.record.PaymentMethod = ""
	}

	o.abort("maximum payment attempts reached")
	return false, fmt.Errorf("order %s failed %d payment attempts: %w", o.record.OrderID, o.attempts, ErrMaxPaymentAttempts)
}

func (o *Order) confirmationMessage() (string, entity.NotificationType) {
	final := o.record.FinalAmount.StringFixed(2)
	trips, items := len(o.record.TripBookings), len(o.record.Items)
	switch {
	case trips > 0 && items > 0:
		return fmt.Sprintf("Order #%s confirmed. Includes %d trip(s) and %d item(s). Total: RM%s",
			o.record.OrderID, trips, items, final), entity.NotificationTypeOrderUpdate
	case trips > 0:
		return fmt.Sprintf("Trip booking confirmed. Total paid: RM%s", final), entity.NotificationTypeBookingConfirmation
	default:
		return fmt.Sprintf("Merchandise order #%s confirmed. Total: RM%s", o.record.OrderID, final), entity.NotificationTypeOrderUpdate
	}
}

// Submit confirms a paid order: bookings and order become CONFIRMED, the
// order and its bookings are persisted, points are earned on FinalAmount,
// and one confirmation notification is sent. If the order cannot be
// stored the confirmation is undone and Submit may be called again. A
// failed booking index write is returned together with the outcome.
func (o *Order) Submit(ctx context.Context) (SubmitOutcome, error) {
	if o.submitted || o.record.Status != entity.OrderStatusCreated {
		return SubmitOutcome{}, fmt.Errorf("order %s is %s: %w", o.record.OrderID, o.record.Status, ErrOrderClosed)
	}
	if o.record.PaymentStatus != entity.PaymentStatusPaid {
		return SubmitOutcome{}, fmt.Errorf("order %s payment is %s: %w", o.record.OrderID, o.record.PaymentStatus, ErrNotPaid)
	}

	previous := o.ViewDetails()

	for i := range o.record.TripBookings {
		o.record.TripBookings[i].Status = entity.TripBookingStatusConfirmed
	}
	o.record.Status = entity.OrderStatusConfirmed
	o.record.Timestamp = entity.NewDateTime(o.deps.Now())

	if err := o.deps.Orders.Append(ctx, &o.record); err != nil {
		o.record = previous
		return SubmitOutcome{}, storageError("persist order", err)
	}
	o.submitted = true

	// The order document is authoritative from here on: a booking index
	// failure is reported, but points and the notification still go out.
	var indexErr error
	if err := o.deps.Bookings.Append(ctx, o.record.UserID, o.record.TripBookings); err != nil {
		o.log.Error("Order stored but booking index not updated", zap.Error(err))
		indexErr = storageError("persist booking index", err)
	}

	var outcome SubmitOutcome
	earned, err := o.deps.Ledger.EarnPoints(ctx, o.record.UserID, o.record.FinalAmount)
	if err != nil {
		o.log.Error("Points not earned for submitted order", zap.Error(err))
	}
	outcome.PointsEarned = earned

	content, kind := o.confirmationMessage()
	outcome.Notification = content
	if _, err := o.deps.Notifier.Notify(ctx, content, kind, entity.RecipientUser, o.record.UserID); err != nil {
		o.log.Warn("Confirmation notification failed", zap.Error(err))
	}

	o.log.Info("Order submitted",
		zap.String("final_amount", o.record.FinalAmount.StringFixed(2)),
		zap.Int("trip_bookings", len(o.record.TripBookings)),
		zap.Int("items", len(o.record.Items)),
		zap.Int64("points_earned", earned),
	)
	return outcome, indexErr
}
