package handler

import (
	"net/http"
	"strconv"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /orderitemsのHTTP
type OrderItemHandler struct {
	uc *usecase.OrderItemUsecase
}

// DI
func NewOrderItemHandler(uc *usecase.OrderItemUsecase) *OrderItemHandler {
	return &OrderItemHandler{uc: uc}
}

// quantityはポインタ。nilなら「未指定」で400になる。
type UpdateOrderItemRequest struct {
	Quantity *int64 `json:"quantity"`
}

// /orderitems配下を登録。全ルートでログイン必須。
func (h *OrderItemHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/orderitems")
	g.Use(middleware.RequireUser())

	g.PATCH("/:orderItemsId", h.patch)
	g.DELETE("/:orderItemsId", h.delete)
}

func (h *OrderItemHandler) patch(c echo.Context) error {
	user, ok := getUserFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderItemID, err := strconv.ParseInt(c.Param("orderItemsId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateOrderItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Update(c.Request().Context(), user.ID, orderItemID, usecase.UpdateOrderItemInput{
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderItemHandler) delete(c echo.Context) error {
	user, ok := getUserFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderItemID, err := strconv.ParseInt(c.Param("orderItemsId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Delete(c.Request().Context(), user.ID, orderItemID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DeletedOrderItemsResponse{DeletedOrderItems: out})
}
