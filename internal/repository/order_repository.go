package repository

import (
	"context"

	"serbburger/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id string) (model.Order, error)
	FindByNumber(ctx context.Context, number int64) (model.Order, error)
	FindByTransactionID(ctx context.Context, transactionID string) (model.Order, error)
	// completed以外を新しい順で返す
	ListActive(ctx context.Context) ([]model.Order, error)

	Create(ctx context.Context, o model.Order) (model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
}

type OrderItemRepository interface {
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
}
