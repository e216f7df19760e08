package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

// 明細を取得
func (r *OrderItemGormRepository) FindByID(ctx context.Context, orderItemID int64) (model.OrderItem, error) {
	var item model.OrderItem

	err := r.db.WithContext(ctx).
		Where("id = ?", orderItemID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderItem{}, err
	}
	return item, nil
}

// カートの明細を一覧取得
func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.OrderItem{}, err
	}

	return items, nil
}

// カート内の同一itemの明細を取得（トグルの在否判定に使う）
func (r *OrderItemGormRepository) FindByOrderAndItem(ctx context.Context, orderID int64, itemID int64) (model.OrderItem, error) {
	var item model.OrderItem

	err := r.db.WithContext(ctx).
		Where("order_id = ? AND item_id = ?", orderID, itemID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderItem{}, err
	}
	return item, nil
}

// 明細を新規作成
func (r *OrderItemGormRepository) Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return model.OrderItem{}, err
	}
	return item, nil
}

// 明細の数量を更新
func (r *OrderItemGormRepository) UpdateQuantity(ctx context.Context, orderItemID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Where("id = ?", orderItemID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *OrderItemGormRepository) DeleteByID(ctx context.Context, orderItemID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.OrderItem{}, orderItemID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
