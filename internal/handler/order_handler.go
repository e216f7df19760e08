package handler

import (
	"net/http"
	"strconv"

	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /ordersのHTTP
type OrderHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewOrderHandler(uc *usecase.CartUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type CreateOrderRequest struct {
	IsOpen bool `json:"isOpen"`
}

type AddOrderItemRequest struct {
	ItemID   int64 `json:"item_id"`
	Quantity int64 `json:"quantity"`
}

type DeletedOrderItemsResponse struct {
	DeletedOrderItems usecase.OrderItemResponse `json:"deletedOrderItems"`
}

// /orders配下を登録。全ルートでログイン必須。
func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/orders")
	g.Use(middleware.RequireUser())

	g.POST("", h.create)
	g.GET("/:orderId", h.detail)
	g.POST("/:cartId/items", h.addItem)
	g.DELETE("/:cartId/items/:orderItemsId", h.removeItem)
}

// カート（openなOrder）を作る
func (h *OrderHandler) create(c echo.Context) error {
	user, ok := getUserFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if !req.IsOpen {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "isOpen must be true"})
	}

	out, err := h.uc.CreateCart(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	user, ok := getUserFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), user.ID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) addItem(c echo.Context) error {
	user, ok := getUserFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	cartID, err := strconv.ParseInt(c.Param("cartId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AddOrderItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), user.ID, cartID, usecase.AddItemInput{
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) removeItem(c echo.Context) error {
	user, ok := getUserFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	cartID, err := strconv.ParseInt(c.Param("cartId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	orderItemID, err := strconv.ParseInt(c.Param("orderItemsId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), user.ID, cartID, orderItemID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

//middleware.OptionalAuth が c.Set("user", *model.User) した値を取り出す

func getUserFromContext(c echo.Context) (*model.User, bool) {
	v := c.Get(middleware.CtxUserKey)
	if v == nil {
		return nil, false
	}

	u, ok := v.(*model.User)
	if !ok || u == nil {
		return nil, false
	}

	return u, true
}
