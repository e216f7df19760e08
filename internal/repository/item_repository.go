package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 商品の取得だけを約束。商品の登録・編集はスコープ外。
type ItemRepository interface {
	List(ctx context.Context) ([]model.Item, error)
	FindByID(ctx context.Context, itemID int64) (model.Item, error)
}
