package repository

import (
	"context"
	"fmt"
	"sync"

	"art-booking/internal/data/entity"
	"art-booking/pkg/database"

	"go.uber.org/zap"
)

type OrderRepository interface {
	Append(ctx context.Context, order *entity.Order) error
	FindByUserID(ctx context.Context, userID string) ([]entity.Order, error)
	FindByID(ctx context.Context, userID, orderID string) (*entity.Order, error)
	FindAll(ctx context.Context) (entity.OrdersDocument, error)

	// Mutate hands the whole document to fn and saves it when fn reports a change.
	Mutate(ctx context.Context, fn func(doc entity.OrdersDocument) (bool, error)) error
}

type orderRepository struct {
	store database.DocumentStore
	mu    sync.Mutex
	log   *zap.Logger
}

func NewOrderRepository(store database.DocumentStore, log *zap.Logger) OrderRepository {
	return &orderRepository{
		store: store,
		log:   log.With(zap.String("repository", "orders")),
	}
}

func (r *orderRepository) load(ctx context.Context) (entity.OrdersDocument, error) {
	doc := entity.OrdersDocument{}
	if _, err := r.store.Load(ctx, database.DocOrders, &doc); err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if doc == nil {
		doc = entity.OrdersDocument{}
	}
	return doc, nil
}

func (r *orderRepository) Append(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return err
	}

	history, ok := doc[order.UserID]
	if !ok || history == nil {
		history = &entity.UserOrders{}
		doc[order.UserID] = history
	}
	history.Orders = append(history.Orders, *order)

	if err := r.store.Save(ctx, database.DocOrders, doc); err != nil {
		r.log.Error("Failed to append order",
			zap.Error(err),
			zap.String("order_id", order.OrderID),
			zap.String("user_id", order.UserID),
		)
		return fmt.Errorf("append order %s: %w", order.OrderID, err)
	}
	return nil
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID string) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	history := doc[userID]
	if history == nil {
		return []entity.Order{}, nil
	}
	return history.Orders, nil
}

func (r *orderRepository) FindByID(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	orders, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].OrderID == orderID {
			return &orders[i], nil
		}
	}
	return nil, nil
}

func (r *orderRepository) FindAll(ctx context.Context) (entity.OrdersDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *orderRepository) Mutate(ctx context.Context, fn func(doc entity.OrdersDocument) (bool, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return err
	}

	changed, err := fn(doc)
	if err != nil || !changed {
		return err
	}

	if err := r.store.Save(ctx, database.DocOrders, doc); err != nil {
		r.log.Error("Failed to save orders", zap.Error(err))
		return fmt.Errorf("save orders: %w", err)
	}
	return nil
}
