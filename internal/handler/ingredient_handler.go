package handler

import (
	"net/http"

	"serbburger/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /ingredients の管理API
type IngredientHandler struct {
	uc *usecase.IngredientUsecase
}

// DI
func NewIngredientHandler(uc *usecase.IngredientUsecase) *IngredientHandler {
	return &IngredientHandler{uc: uc}
}

func (h *IngredientHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/ingredients", h.list)
	g.POST("/ingredients", h.create)
	g.GET("/ingredients/:id", h.get)
	g.PUT("/ingredients/:id", h.update)
	g.DELETE("/ingredients/:id", h.delete)
}

type createIngredientRequest struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Type  string `json:"type"`
}

type updateIngredientRequest struct {
	Name  *string `json:"name"`
	Price *int64  `json:"price"`
	Type  *string `json:"type"`
}

func (h *IngredientHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *IngredientHandler) get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *IngredientHandler) create(c echo.Context) error {
	var req createIngredientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Некорректные данные"})
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateIngredientInput{
		Name:  req.Name,
		Price: req.Price,
		Type:  req.Type,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *IngredientHandler) update(c echo.Context) error {
	var req updateIngredientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Некорректные данные"})
	}

	out, err := h.uc.Update(c.Request().Context(), c.Param("id"), usecase.UpdateIngredientInput{
		Name:  req.Name,
		Price: req.Price,
		Type:  req.Type,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *IngredientHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Ингредиент успешно удален"})
}
