package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CartUsecase はカート（openなOrder）の業務ロジックです。
// 追加と削除は別々の操作として公開する。トグルはその合成（ToggleItem）。
type CartUsecase struct {
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	itemRepo      repo.ItemRepository
}

func NewCartUsecase(
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	itemRepo repo.ItemRepository,
) *CartUsecase {
	return &CartUsecase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		itemRepo:      itemRepo,
	}
}

type OrderItemResponse struct {
	ID       int64 `json:"id"`
	OrderID  int64 `json:"order_id"`
	ItemID   int64 `json:"item_id"`
	Quantity int64 `json:"quantity"`
}

type OrderResponse struct {
	ID     int64               `json:"id"`
	UserID int64               `json:"user_id"`
	IsOpen bool                `json:"isOpen"`
	Items  []OrderItemResponse `json:"items"`
}

type AddItemInput struct {
	ItemID   int64
	Quantity int64
}

// CreateCart はopenなOrderを作る。
// 既にopenなカートがあればそれを返す（openは1ユーザー1つ）。
// 存在確認と作成は別クエリなので同時リクエストでは二重作成があり得る。
func (u *CartUsecase) CreateCart(ctx context.Context, userID int64) (OrderResponse, error) {
	if userID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	existing, err := u.orderRepo.FindOpenByUserID(ctx, userID)
	if err == nil {
		return u.buildOrderResponse(ctx, existing)
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	order, err := u.orderRepo.Create(ctx, model.Order{UserID: userID, IsOpen: true})
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return OrderResponse{
		ID:     order.ID,
		UserID: order.UserID,
		IsOpen: order.IsOpen,
		Items:  []OrderItemResponse{},
	}, nil
}

// GetOrder は自分のカートを明細つきで取得。
func (u *CartUsecase) GetOrder(ctx context.Context, userID int64, orderID int64) (OrderResponse, error) {
	if userID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	order, err := u.loadOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return OrderResponse{}, err
	}

	return u.buildOrderResponse(ctx, order)
}

// AddItem はカートに明細を1行追加する。
// 同じitemの明細が既にあっても加算せず新しい行を作る（重複行の排除はしない）。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, orderID int64, in AddItemInput) (OrderItemResponse, error) {
	if userID <= 0 {
		return OrderItemResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ItemID <= 0 {
		return OrderItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item_id")
	}

	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return OrderItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	order, err := u.loadOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return OrderItemResponse{}, err
	}
	if !order.IsOpen {
		return OrderItemResponse{}, NewHTTPError(http.StatusBadRequest, "order is closed")
	}

	//商品チェック
	if _, err := u.itemRepo.FindByID(ctx, in.ItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return OrderItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item_id")
		}
		return OrderItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	line, err := u.orderItemRepo.Create(ctx, model.OrderItem{
		OrderID:  order.ID,
		ItemID:   in.ItemID,
		Quantity: qty,
	})
	if err != nil {
		return OrderItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toOrderItemResponse(line), nil
}

// RemoveItem は明細を1行削除して、削除した行を返す。
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, orderID int64, orderItemID int64) (OrderItemResponse, error) {
	if userID <= 0 {
		return OrderItemResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	order, err := u.loadOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return OrderItemResponse{}, err
	}
	if !order.IsOpen {
		return OrderItemResponse{}, NewHTTPError(http.StatusBadRequest, "order is closed")
	}

	line, err := u.orderItemRepo.FindByID(ctx, orderItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderItemResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//別のカートの明細は見せない
	if line.OrderID != order.ID {
		return OrderItemResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.orderItemRepo.DeleteByID(ctx, line.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return OrderItemResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return OrderItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toOrderItemResponse(line), nil
}

// ToggleItem はAddItem/RemoveItemを合成した薄い便宜オペレーション。
// カートが無ければ作り、itemが入っていなければ追加、入っていれば外す。
// 続けて2回呼ぶと「追加→削除」になる。
func (u *CartUsecase) ToggleItem(ctx context.Context, userID int64, itemID int64) (OrderResponse, error) {
	if userID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item_id")
	}

	cart, err := u.CreateCart(ctx, userID)
	if err != nil {
		return OrderResponse{}, err
	}

	//在否判定はitem_idで行う
	existing, err := u.orderItemRepo.FindByOrderAndItem(ctx, cart.ID, itemID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if errors.Is(err, repo.ErrNotFound) {
		if _, err := u.AddItem(ctx, userID, cart.ID, AddItemInput{ItemID: itemID, Quantity: 1}); err != nil {
			return OrderResponse{}, err
		}
	} else {
		if _, err := u.RemoveItem(ctx, userID, cart.ID, existing.ID); err != nil {
			return OrderResponse{}, err
		}
	}

	order, err := u.orderRepo.FindByID(ctx, cart.ID)
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildOrderResponse(ctx, order)
}

// 存在チェック→所有チェックの順で確認してOrderを返す。
func (u *CartUsecase) loadOwnedOrder(ctx context.Context, userID int64, orderID int64) (model.Order, error) {
	order, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//所有者はorders.user_idで判定する
	if order.UserID != userID {
		return model.Order{}, NewHTTPError(http.StatusForbidden, "you are not the owner of this order")
	}

	return order, nil
}

// 明細をまとめてOrderResponseを作る。
func (u *CartUsecase) buildOrderResponse(ctx context.Context, order model.Order) (OrderResponse, error) {
	items, err := u.orderItemRepo.ListByOrderID(ctx, order.ID)
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		respItems = append(respItems, toOrderItemResponse(it))
	}

	return OrderResponse{
		ID:     order.ID,
		UserID: order.UserID,
		IsOpen: order.IsOpen,
		Items:  respItems,
	}, nil
}

func toOrderItemResponse(it model.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:       it.ID,
		OrderID:  it.OrderID,
		ItemID:   it.ItemID,
		Quantity: it.Quantity,
	}
}
