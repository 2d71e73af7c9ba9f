package handler

import (
	"net/http"

	"serbburger/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products/:id/ingredients の管理API
type ProductIngredientHandler struct {
	uc *usecase.ProductIngredientUsecase
}

// DI
func NewProductIngredientHandler(uc *usecase.ProductIngredientUsecase) *ProductIngredientHandler {
	return &ProductIngredientHandler{uc: uc}
}

func (h *ProductIngredientHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products/:id/ingredients", h.list)
	g.POST("/products/:id/ingredients", h.attach)
	g.DELETE("/products/:id/ingredients", h.detachAll)
	g.PUT("/products/:id/ingredients/:ingredientId", h.update)
	g.DELETE("/products/:id/ingredients/:ingredientId", h.detach)
}

type attachIngredientRequest struct {
	IngredientID  string `json:"ingredient_id"`
	SelectionType string `json:"selection_type"`
	IsRequired    bool   `json:"is_required"`
	MaxQuantity   *int   `json:"max_quantity"`
	SortOrder     int    `json:"sort_order"`
}

type updateLinkRequest struct {
	SelectionType *string `json:"selection_type"`
	IsRequired    *bool   `json:"is_required"`
	MaxQuantity   *int    `json:"max_quantity"`
	SortOrder     *int    `json:"sort_order"`
}

func (h *ProductIngredientHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductIngredientHandler) attach(c echo.Context) error {
	var req attachIngredientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Некорректные данные"})
	}

	out, err := h.uc.Attach(c.Request().Context(), c.Param("id"), usecase.AttachIngredientInput{
		IngredientID:  req.IngredientID,
		SelectionType: req.SelectionType,
		IsRequired:    req.IsRequired,
		MaxQuantity:   req.MaxQuantity,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProductIngredientHandler) update(c echo.Context) error {
	var req updateLinkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Некорректные данные"})
	}

	out, err := h.uc.UpdateLink(c.Request().Context(), c.Param("id"), c.Param("ingredientId"), usecase.UpdateLinkInput{
		SelectionType: req.SelectionType,
		IsRequired:    req.IsRequired,
		MaxQuantity:   req.MaxQuantity,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductIngredientHandler) detach(c echo.Context) error {
	if err := h.uc.Detach(c.Request().Context(), c.Param("id"), c.Param("ingredientId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Ингредиент продукта удален"})
}

func (h *ProductIngredientHandler) detachAll(c echo.Context) error {
	if err := h.uc.DetachAll(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Все ингредиенты продукта удалены"})
}
