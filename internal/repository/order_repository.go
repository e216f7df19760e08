package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//ユーザーのopenなカートを取得
	FindOpenByUserID(ctx context.Context, userID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (model.Order, error)
	//チェックアウト時にopen→closedへ
	Close(ctx context.Context, orderID int64) error
}
