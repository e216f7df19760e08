package server

import (
	"app/internal/config"
	"app/internal/handler"
	appmw "app/internal/middleware"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// ハンドラをまとめて受け取る
type Handlers struct {
	Auth      *handler.AuthHandler
	Item      *handler.ItemHandler
	Order     *handler.OrderHandler
	OrderItem *handler.OrderItemHandler
}

// NewはEchoを組み立てる。起動はしない（テストから使えるように分ける）。
func New(cfg config.Config, userRepo repository.UserRepository, h Handlers) *echo.Echo {
	e := echo.New()

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	//全ルートで身元解決を試みる。拒否は各グループのRequireUserが行う。
	e.Use(appmw.OptionalAuth(cfg, userRepo))

	RegisterRoutes(e, h)

	return e
}

// Startはサーバを起動する。
func Start(addr string, cfg config.Config, userRepo repository.UserRepository, h Handlers) error {
	e := New(cfg, userRepo, h)
	return e.Start(addr)
}
