package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 商品カタログの読み取り専用usecase
type ItemUsecase struct {
	itemRepo repo.ItemRepository
}

func NewItemUsecase(itemRepo repo.ItemRepository) *ItemUsecase {
	return &ItemUsecase{itemRepo: itemRepo}
}

func (u *ItemUsecase) List(ctx context.Context) ([]model.Item, error) {
	items, err := u.itemRepo.List(ctx)
	if err != nil {
		return []model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ItemUsecase) Get(ctx context.Context, itemID int64) (model.Item, error) {
	item, err := u.itemRepo.FindByID(ctx, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Item{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item, nil
}
