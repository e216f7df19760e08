package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ItemGormRepository struct {
	db *gorm.DB
}

func NewItemGormRepository(db *gorm.DB) *ItemGormRepository {
	return &ItemGormRepository{db: db}
}

// 商品一覧
func (r *ItemGormRepository) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item

	if err := r.db.WithContext(ctx).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.Item{}, err
	}

	return items, nil
}

// 商品を1件取得
func (r *ItemGormRepository) FindByID(ctx context.Context, itemID int64) (model.Item, error) {
	var item model.Item

	err := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Item{}, err
	}
	return item, nil
}
