package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"art-booking/internal/data/entity"
	"art-booking/internal/data/repository"
	"art-booking/internal/dto/response"
	"art-booking/pkg/utils"

	"go.uber.org/zap"
)

type ReceiptService interface {
	// Generate builds and stores the receipt of a finalized order. The
	// order itself is not touched.
	Generate(ctx context.Context, order entity.Order) (*entity.Receipt, error)
	// Get returns the stored receipt, generating one for finalized orders
	// that do not have it yet.
	Get(ctx context.Context, userID, orderID string) (*response.ReceiptResponse, error)
}

type receiptService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewReceiptService(repo *repository.Repository, now func() time.Time, log *zap.Logger) ReceiptService {
	return &receiptService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "receipt")),
	}
}

func finalized(order entity.Order) bool {
	return order.PaymentStatus == entity.PaymentStatusPaid && order.Status != entity.OrderStatusCreated
}

func (s *receiptService) stationName(ctx context.Context, stationID string) string {
	station, err := s.repo.Route.FindStation(ctx, stationID)
	if err != nil || station == nil {
		return stationID
	}
	return station.StationName
}

func (s *receiptService) Generate(ctx context.Context, order entity.Order) (*entity.Receipt, error) {
	if !finalized(order) {
		return nil, fmt.Errorf("order %s is not finalized: %w", order.OrderID, ErrBusinessRule)
	}

	items := make([]entity.ReceiptItem, 0, len(order.Items)+len(order.TripBookings))
	routes := make([]string, 0, len(order.TripBookings))
	for _, b := range order.TripBookings {
		from, to := s.stationName(ctx, b.FromStationID), s.stationName(ctx, b.ToStationID)
		items = append(items, entity.ReceiptItem{
			Type:        entity.ReceiptItemTrip,
			Description: fmt.Sprintf("Trip %s: %s to %s, departs %s", b.TripID, from, to, b.DepartureTime.String()),
			Quantity:    b.TicketCount,
			Price:       b.Fare,
			Total:       b.TotalFare(),
		})
		routes = append(routes, from+" -> "+to)
	}
	for _, line := range order.Items {
		items = append(items, entity.ReceiptItem{
			Type:        entity.ReceiptItemMerchandise,
			Description: line.Name,
			Quantity:    line.Quantity,
			Price:       line.UnitPrice,
			Total:       line.Extension(),
		})
	}

	receipt := &entity.Receipt{
		ReceiptID:      utils.GenerateID(),
		OrderID:        order.OrderID,
		UserID:         order.UserID,
		Timestamp:      entity.NewDateTime(s.now()),
		Items:          items,
		TripBookings:   order.TripBookings,
		RouteInfo:      strings.Join(routes, "; "),
		TotalAmount:    order.Total,
		PointsRedeemed: order.PointsRedeemed,
		FinalAmount:    order.FinalAmount,
		PaymentMethod:  order.PaymentMethod,
		PaymentStatus:  order.PaymentStatus,
		OrderStatus:    order.Status,
	}

	if err := s.repo.Receipt.Append(ctx, receipt); err != nil {
		return nil, storageError("store receipt", err)
	}

	s.log.Info("Receipt generated",
		zap.String("receipt_id", receipt.ReceiptID),
		zap.String("order_id", order.OrderID),
	)
	return receipt, nil
}

func (s *receiptService) Get(ctx context.Context, userID, orderID string) (*response.ReceiptResponse, error) {
	receipt, err := s.repo.Receipt.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, storageError("load receipt", err)
	}
	if receipt != nil && receipt.UserID == userID {
		resp := response.ReceiptToResponse(receipt)
		return &resp, nil
	}

	order, err := s.repo.Order.FindByID(ctx, userID, orderID)
	if err != nil {
		return nil, storageError("load order", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s not found: %w", orderID, ErrNotFound)
	}

	receipt, err = s.Generate(ctx, *order)
	if err != nil {
		return nil, err
	}
	resp := response.ReceiptToResponse(receipt)
	return &resp, nil
}
