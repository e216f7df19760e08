package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/middleware"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *mockOrderRepo) FindOpenByUserID(ctx context.Context, userID int64) (model.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *mockOrderRepo) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *mockOrderRepo) Close(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type mockOrderItemRepo struct {
	mock.Mock
}

func (m *mockOrderItemRepo) FindByID(ctx context.Context, orderItemID int64) (model.OrderItem, error) {
	args := m.Called(ctx, orderItemID)
	return args.Get(0).(model.OrderItem), args.Error(1)
}

func (m *mockOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]model.OrderItem), args.Error(1)
}

func (m *mockOrderItemRepo) FindByOrderAndItem(ctx context.Context, orderID int64, itemID int64) (model.OrderItem, error) {
	args := m.Called(ctx, orderID, itemID)
	return args.Get(0).(model.OrderItem), args.Error(1)
}

func (m *mockOrderItemRepo) Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(model.OrderItem), args.Error(1)
}

func (m *mockOrderItemRepo) UpdateQuantity(ctx context.Context, orderItemID int64, qty int64) error {
	args := m.Called(ctx, orderItemID, qty)
	return args.Error(0)
}

func (m *mockOrderItemRepo) DeleteByID(ctx context.Context, orderItemID int64) error {
	args := m.Called(ctx, orderItemID)
	return args.Error(0)
}

var _ repo.OrderRepository = (*mockOrderRepo)(nil)
var _ repo.OrderItemRepository = (*mockOrderItemRepo)(nil)

// user（nil可）を固定注入したechoを組み立てる
func newEcho(user *model.User, orderRepo repo.OrderRepository, orderItemRepo repo.OrderItemRepository) *echo.Echo {
	e := echo.New()

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user != nil {
				c.Set(middleware.CtxUserKey, user)
			}
			return next(c)
		}
	})

	uc := usecase.NewOrderItemUsecase(orderRepo, orderItemRepo)
	handler.NewOrderItemHandler(uc).RegisterRoutes(e)

	return e
}

func doJSON(t *testing.T, e *echo.Echo, method string, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// 未ログイン => 401
func TestPatchOrderItem_Anonymous_Unauthorized(t *testing.T) {
	e := newEcho(nil, new(mockOrderRepo), new(mockOrderItemRepo))

	rec := doJSON(t, e, http.MethodPatch, "/orderitems/5", `{"quantity":3}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// 空ボディ => 400
func TestPatchOrderItem_EmptyBody_BadRequest(t *testing.T) {
	e := newEcho(&model.User{ID: 7}, new(mockOrderRepo), new(mockOrderItemRepo))

	rec := doJSON(t, e, http.MethodPatch, "/orderitems/5", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// 正常：quantityが更新された行が返る
func TestPatchOrderItem_Success(t *testing.T) {
	orderRepo := new(mockOrderRepo)
	orderItemRepo := new(mockOrderItemRepo)

	orderItemRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.OrderItem{ID: 5, OrderID: 9, ItemID: 42, Quantity: 1}, nil)
	orderRepo.On("FindByID", mock.Anything, int64(9)).
		Return(model.Order{ID: 9, UserID: 7, IsOpen: true}, nil)
	orderItemRepo.On("UpdateQuantity", mock.Anything, int64(5), int64(3)).Return(nil)

	e := newEcho(&model.User{ID: 7}, orderRepo, orderItemRepo)

	rec := doJSON(t, e, http.MethodPatch, "/orderitems/5", `{"quantity":3}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var out usecase.OrderItemResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, int64(3), out.Quantity)
}

// 他人の明細の削除 => 403
func TestDeleteOrderItem_WrongUser_ForbiddenHTTP(t *testing.T) {
	orderRepo := new(mockOrderRepo)
	orderItemRepo := new(mockOrderItemRepo)

	orderItemRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.OrderItem{ID: 5, OrderID: 9, ItemID: 42, Quantity: 1}, nil)
	orderRepo.On("FindByID", mock.Anything, int64(9)).
		Return(model.Order{ID: 9, UserID: 1, IsOpen: true}, nil)

	e := newEcho(&model.User{ID: 2}, orderRepo, orderItemRepo)

	rec := doJSON(t, e, http.MethodDelete, "/orderitems/5", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	orderItemRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

// 正常：deletedOrderItemsで包んで返す
func TestDeleteOrderItem_SuccessHTTP(t *testing.T) {
	orderRepo := new(mockOrderRepo)
	orderItemRepo := new(mockOrderItemRepo)

	orderItemRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.OrderItem{ID: 5, OrderID: 9, ItemID: 42, Quantity: 2}, nil)
	orderRepo.On("FindByID", mock.Anything, int64(9)).
		Return(model.Order{ID: 9, UserID: 7, IsOpen: true}, nil)
	orderItemRepo.On("DeleteByID", mock.Anything, int64(5)).Return(nil)

	e := newEcho(&model.User{ID: 7}, orderRepo, orderItemRepo)

	rec := doJSON(t, e, http.MethodDelete, "/orderitems/5", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var out handler.DeletedOrderItemsResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, int64(5), out.DeletedOrderItems.ID)
	assert.Equal(t, int64(42), out.DeletedOrderItems.ItemID)
}
