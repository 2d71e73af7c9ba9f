package server

import (
	"serbburger/internal/config"
	"serbburger/internal/handler"
	appmw "serbburger/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Handlers はルート登録に必要なハンドラ一式。
type Handlers struct {
	Menu              *handler.MenuHandler
	Order             *handler.OrderHandler
	Webhook           *handler.WebhookHandler
	Auth              *handler.AuthHandler
	Category          *handler.CategoryHandler
	Ingredient        *handler.IngredientHandler
	Product           *handler.ProductHandler
	ProductIngredient *handler.ProductIngredientHandler
	AdminOrder        *handler.AdminOrderHandler
}

// New はechoを組み立てる。カタログCRUDと注文キューはadminガードの内側。
func New(cfg config.Config, logger zerolog.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(appmw.RequestLogger(logger))

	//公開ルート
	h.Menu.RegisterRoutes(e)
	h.Order.RegisterRoutes(e)
	h.Webhook.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)

	//管理ルート
	admin := e.Group("", appmw.AdminAuth(cfg.JWTSecret))
	h.Category.RegisterRoutes(admin)
	h.Ingredient.RegisterRoutes(admin)
	h.Product.RegisterRoutes(admin)
	h.ProductIngredient.RegisterRoutes(admin)

	adminOrders := e.Group("/admin", appmw.AdminAuth(cfg.JWTSecret))
	h.AdminOrder.RegisterRoutes(adminOrders)

	return e
}
