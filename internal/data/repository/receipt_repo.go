package repository

import (
	"context"
	"fmt"
	"sync"

	"art-booking/internal/data/entity"
	"art-booking/pkg/database"

	"go.uber.org/zap"
)

type ReceiptRepository interface {
	Append(ctx context.Context, receipt *entity.Receipt) error
	FindByOrderID(ctx context.Context, orderID string) (*entity.Receipt, error)
}

type receiptRepository struct {
	store database.DocumentStore
	mu    sync.Mutex
	log   *zap.Logger
}

func NewReceiptRepository(store database.DocumentStore, log *zap.Logger) ReceiptRepository {
	return &receiptRepository{
		store: store,
		log:   log.With(zap.String("repository", "receipts")),
	}
}

func (r *receiptRepository) load(ctx context.Context) ([]entity.Receipt, error) {
	var list []entity.Receipt
	if _, err := r.store.Load(ctx, database.DocReceipts, &list); err != nil {
		return nil, fmt.Errorf("load receipts: %w", err)
	}
	return list, nil
}

func (r *receiptRepository) Append(ctx context.Context, receipt *entity.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	list = append(list, *receipt)

	if err := r.store.Save(ctx, database.DocReceipts, list); err != nil {
		r.log.Error("Failed to append receipt",
			zap.Error(err),
			zap.String("receipt_id", receipt.ReceiptID),
			zap.String("order_id", receipt.OrderID),
		)
		return fmt.Errorf("append receipt for order %s: %w", receipt.OrderID, err)
	}
	return nil
}

// FindByOrderID returns the most recent receipt generated for the order.
func (r *receiptRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].OrderID == orderID {
			return &list[i], nil
		}
	}
	return nil, nil
}
