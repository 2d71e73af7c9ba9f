package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"serbburger/internal/usecase"

	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"
)

// /orders の公開API
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", h.place)
	e.GET("/orders/:number", h.get)
	e.GET("/orders/:number/qr", h.qr)
}

func (h *OrderHandler) place(c echo.Context) error {
	var req usecase.PlaceOrderInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Некорректные данные заказа"})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) get(c echo.Context) error {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Некорректный номер заказа"})
	}

	out, err := h.uc.GetByNumber(c.Request().Context(), number)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 注文確認ページ用のQRコード（スキャナが読む "ORDER:<number>" を埋め込む）。
func (h *OrderHandler) qr(c echo.Context) error {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Некорректный номер заказа"})
	}

	//存在しない注文のQRは返さない
	if _, err := h.uc.GetByNumber(c.Request().Context(), number); err != nil {
		return writeError(c, err)
	}

	png, err := qrcode.Encode(fmt.Sprintf("ORDER:%d", number), qrcode.High, 256)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
