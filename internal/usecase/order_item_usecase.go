package usecase

import (
	"context"
	"errors"
	"net/http"

	repo "app/internal/repository"
)

// OrderItemUsecase は /orderitems の業務ロジックです。
// 明細そのものはorder_idしか持たないので、所有チェックは
// 親Orderのuser_idと要求ユーザーを比べて行う。
type OrderItemUsecase struct {
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
}

func NewOrderItemUsecase(
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
) *OrderItemUsecase {
	return &OrderItemUsecase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
	}
}

// 変更可能フィールドはquantityだけ。nilは「未指定」。
type UpdateOrderItemInput struct {
	Quantity *int64
}

// Update は明細の数量を変更して、変更後の行を返す。
func (u *OrderItemUsecase) Update(ctx context.Context, userID int64, orderItemID int64, in UpdateOrderItemInput) (OrderItemResponse, error) {
	if userID <= 0 {
		return OrderItemResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//少なくとも1つは変更フィールドが要る
	if in.Quantity == nil {
		return OrderItemResponse{}, NewHTTPError(http.StatusBadRequest, "quantity is required")
	}
	if *in.Quantity < 1 {
		return OrderItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	line, err := u.loadOwnedOrderItem(ctx, userID, orderItemID)
	if err != nil {
		return OrderItemResponse{}, err
	}

	if err := u.orderItemRepo.UpdateQuantity(ctx, line.ID, *in.Quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return OrderItemResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return OrderItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	line.Quantity = *in.Quantity
	return line, nil
}

// Delete は明細を削除して、削除した行を返す。
func (u *OrderItemUsecase) Delete(ctx context.Context, userID int64, orderItemID int64) (OrderItemResponse, error) {
	if userID <= 0 {
		return OrderItemResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	line, err := u.loadOwnedOrderItem(ctx, userID, orderItemID)
	if err != nil {
		return OrderItemResponse{}, err
	}

	if err := u.orderItemRepo.DeleteByID(ctx, line.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return OrderItemResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return OrderItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return line, nil
}

// 存在チェック→所有チェックの順。404を403より先に返す。
func (u *OrderItemUsecase) loadOwnedOrderItem(ctx context.Context, userID int64, orderItemID int64) (OrderItemResponse, error) {
	line, err := u.orderItemRepo.FindByID(ctx, orderItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderItemResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	order, err := u.orderRepo.FindByID(ctx, line.OrderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderItemResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//所有者の判定はorders.user_id
	if order.UserID != userID {
		return OrderItemResponse{}, NewHTTPError(http.StatusForbidden, "you must be the same user who created this order to perform this action")
	}

	return toOrderItemResponse(line), nil
}
