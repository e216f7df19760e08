package server

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Item.RegisterRoutes(e)
	h.Order.RegisterRoutes(e)
	h.OrderItem.RegisterRoutes(e)
}
