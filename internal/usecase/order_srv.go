package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"art-booking/internal/data/entity"
	"art-booking/internal/dto/request"
	"art-booking/internal/dto/response"
	"art-booking/pkg/utils"

	"go.uber.org/zap"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID string) (*response.OrderResponse, error)
	GetOrder(ctx context.Context, userID, orderID string) (*response.OrderResponse, error)
	ListOrders(ctx context.Context, userID string, req request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)

	AddMerchandise(ctx context.Context, userID, orderID string, req *request.AddMerchandiseRequest) (*response.OrderResponse, error)
	AddTripBooking(ctx context.Context, userID, orderID string, req *request.AddTripBookingRequest) (*response.TripBookingResult, error)
	RedeemPoints(ctx context.Context, userID, orderID string, req *request.RedeemPointsRequest) (*response.RedemptionResponse, error)
	SelectPaymentMethod(ctx context.Context, userID, orderID string, req *request.SelectPaymentMethodRequest) (*response.OrderResponse, error)

	// Pay may return a response together with an error so callers can show
	// the state an aborted order ended in.
	Pay(ctx context.Context, userID, orderID string, req *request.PayRequest) (*response.PaymentResponse, error)
	Submit(ctx context.Context, userID, orderID string) (*response.SubmitResponse, error)
	CancelOrder(ctx context.Context, userID, orderID string) (*response.OrderResponse, error)
}

// draft guards one in-progress order.
type draft struct {
	mu    sync.Mutex
	order *Order
}

type orderService struct {
	deps     OrderDeps
	booking  TripBookingService
	receipts ReceiptService

	mu     sync.Mutex
	drafts map[string]*draft

	log *zap.Logger
}

func NewOrderService(deps OrderDeps, booking TripBookingService, receipts ReceiptService, log *zap.Logger) OrderService {
	deps.Log = log.With(zap.String("service", "order"))
	return &orderService{
		deps:     deps,
		booking:  booking,
		receipts: receipts,
		drafts:   make(map[string]*draft),
		log:      deps.Log,
	}
}

func (s *orderService) lookup(userID, orderID string) (*draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[orderID]
	if !ok || d.order.UserID() != userID {
		return nil, fmt.Errorf("open order %s not found: %w", orderID, ErrNotFound)
	}
	return d, nil
}

func (s *orderService) drop(orderID string) {
	s.mu.Lock()
	delete(s.drafts, orderID)
	s.mu.Unlock()
}

// with runs fn on a locked draft and drops the draft once the order is no
// longer open.
func (s *orderService) with(userID, orderID string, fn func(o *Order) error) (*Order, error) {
	d, err := s.lookup(userID, orderID)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	err = fn(d.order)
	if d.order.Status() != entity.OrderStatusCreated {
		s.drop(orderID)
	}
	return d.order, err
}

func orderView(o *Order) response.OrderResponse {
	view := o.ViewDetails()
	return response.OrderToResponse(&view, o.Attempts())
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), ErrValidation)
	}
	return nil
}

func (s *orderService) CreateOrder(ctx context.Context, userID string) (*response.OrderResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", ErrValidation)
	}

	order := NewOrder(userID, s.deps)

	s.mu.Lock()
	s.drafts[order.ID()] = &draft{order: order}
	s.mu.Unlock()

	s.log.Info("Order created", zap.String("order_id", order.ID()), zap.String("user_id", userID))
	resp := orderView(order)
	return &resp, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID, orderID string) (*response.OrderResponse, error) {
	if d, err := s.lookup(userID, orderID); err == nil {
		d.mu.Lock()
		resp := orderView(d.order)
		d.mu.Unlock()
		return &resp, nil
	}

	order, err := s.deps.Orders.FindByID(ctx, userID, orderID)
	if err != nil {
		return nil, storageError("load order", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s not found: %w", orderID, ErrNotFound)
	}
	resp := response.OrderToResponse(order, 0)
	return &resp, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID string, req request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	orders, err := s.deps.Orders.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list orders", zap.Error(err), zap.String("user_id", userID))
		return nil, storageError("list orders", err)
	}

	// newest first
	result := make([]response.OrderResponse, len(orders))
	for i := range orders {
		result[len(orders)-1-i] = response.OrderToResponse(&orders[i], 0)
	}
	return response.Paginate(result, req.Page, req.Limit(), req.Offset()), nil
}

func (s *orderService) AddMerchandise(ctx context.Context, userID, orderID string, req *request.AddMerchandiseRequest) (*response.OrderResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	order, err := s.with(userID, orderID, func(o *Order) error {
		return o.AddMerchandise(req.Name, req.Quantity, req.UnitPrice)
	})
	if err != nil {
		return nil, err
	}
	resp := orderView(order)
	return &resp, nil
}

func (s *orderService) AddTripBooking(ctx context.Context, userID, orderID string, req *request.AddTripBookingRequest) (*response.TripBookingResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	connection, err := s.booking.ValidateConnection(ctx, req.FromStationID, req.ToStationID)
	if err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation("2006-01-02", req.TravelDate, s.deps.Now().Location())
	if err != nil {
		return nil, fmt.Errorf("invalid travel date %q: %w", req.TravelDate, ErrValidation)
	}

	occ, fallback, err := s.booking.ResolveTrip(ctx, req.FromStationID, date, req.DepartureTime)
	if err != nil {
		return nil, err
	}

	var booking *entity.TripBooking
	order, err := s.with(userID, orderID, func(o *Order) error {
		var err error
		booking, err = o.AddTripBooking(*occ, req.FromStationID, req.ToStationID, connection.Fare, req.TicketCount)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &response.TripBookingResult{
		Booking:  response.TripBookingToResponse(booking),
		Fallback: fallback,
		Order:    orderView(order),
	}
	if fallback {
		result.Message = fmt.Sprintf("no trip departs at %s, booked %s at %s instead",
			req.DepartureTime, occ.Trip.TripID, occ.Departure.Format(entity.ClockLayout))
	}
	return result, nil
}

func (s *orderService) RedeemPoints(ctx context.Context, userID, orderID string, req *request.RedeemPointsRequest) (*response.RedemptionResponse, error) {
	var outcome RedemptionOutcome
	order, err := s.with(userID, orderID, func(o *Order) error {
		var err error
		outcome, err = o.ApplyPointsRedemption(ctx, NewScriptedPrompter(req.Confirm))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &response.RedemptionResponse{
		Applied:        outcome.Applied,
		PointsRedeemed: outcome.Points,
		Balance:        outcome.Balance,
		Message:        outcome.Message,
		Order:          orderView(order),
	}, nil
}

func (s *orderService) SelectPaymentMethod(ctx context.Context, userID, orderID string, req *request.SelectPaymentMethodRequest) (*response.OrderResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	order, err := s.with(userID, orderID, func(o *Order) error {
		return o.SelectPaymentMethod(ctx, NewScriptedPrompter(false, req.PaymentMethod))
	})
	if err != nil {
		return nil, err
	}
	resp := orderView(order)
	return &resp, nil
}

func (s *orderService) Pay(ctx context.Context, userID, orderID string, req *request.PayRequest) (*response.PaymentResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var paid bool
	order, err := s.with(userID, orderID, func(o *Order) error {
		var err error
		paid, err = o.ProcessPayment(ctx, NewScriptedPrompter(false, req.RetryMethods...))
		return err
	})
	if order == nil {
		return nil, err
	}

	resp := &response.PaymentResponse{
		Paid:     paid,
		Attempts: order.Attempts(),
		Order:    orderView(order),
	}
	if err != nil && !errors.Is(err, ErrUserAbort) && !errors.Is(err, ErrMaxPaymentAttempts) {
		return nil, err
	}
	return resp, err
}

func (s *orderService) Submit(ctx context.Context, userID, orderID string) (*response.SubmitResponse, error) {
	var outcome SubmitOutcome
	order, err := s.with(userID, orderID, func(o *Order) error {
		var err error
		outcome, err = o.Submit(ctx)
		return err
	})
	if order == nil || order.Status() != entity.OrderStatusConfirmed {
		return nil, err
	}

	if _, genErr := s.receipts.Generate(ctx, order.ViewDetails()); genErr != nil {
		s.log.Warn("Receipt not generated", zap.Error(genErr), zap.String("order_id", orderID))
	}
	if err != nil {
		return nil, err
	}

	return &response.SubmitResponse{
		Order:        orderView(order),
		PointsEarned: outcome.PointsEarned,
		Notification: outcome.Notification,
	}, nil
}

func (s *orderService) CancelOrder(ctx context.Context, userID, orderID string) (*response.OrderResponse, error) {
	order, err := s.with(userID, orderID, func(o *Order) error {
		return o.Cancel()
	})
	if err != nil {
		return nil, err
	}
	resp := orderView(order)
	return &resp, nil
}
