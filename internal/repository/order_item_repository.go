package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	FindByID(ctx context.Context, orderItemID int64) (model.OrderItem, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	//カート内に同じitemがあるかの判定に使う
	FindByOrderAndItem(ctx context.Context, orderID int64, itemID int64) (model.OrderItem, error)
	Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error)
	UpdateQuantity(ctx context.Context, orderItemID int64, qty int64) error
	DeleteByID(ctx context.Context, orderItemID int64) error
}
