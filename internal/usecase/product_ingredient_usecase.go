package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"serbburger/internal/domain/model"
	repo "serbburger/internal/repository"
)

type ProductIngredientUsecase struct {
	linkRepo       repo.ProductIngredientRepository
	productRepo    repo.ProductRepository
	ingredientRepo repo.IngredientRepository
	cache          MenuCache
	idGen          IDGenerator
}

// DI
func NewProductIngredientUsecase(
	linkRepo repo.ProductIngredientRepository,
	productRepo repo.ProductRepository,
	ingredientRepo repo.IngredientRepository,
	cache MenuCache,
	idGen IDGenerator,
) *ProductIngredientUsecase {
	return &ProductIngredientUsecase{
		linkRepo:       linkRepo,
		productRepo:    productRepo,
		ingredientRepo: ingredientRepo,
		cache:          cache,
		idGen:          idGen,
	}
}

type ProductIngredientOutput struct {
	ID            string            `json:"id"`
	ProductID     string            `json:"product_id"`
	IngredientID  string            `json:"ingredient_id"`
	SelectionType string            `json:"selection_type"`
	IsRequired    bool              `json:"is_required"`
	MaxQuantity   *int              `json:"max_quantity,omitempty"`
	SortOrder     int               `json:"sort_order"`
	Ingredient    *model.Ingredient `json:"ingredient,omitempty"`
}

type AttachIngredientInput struct {
	IngredientID  string
	SelectionType string
	IsRequired    bool
	MaxQuantity   *int
	SortOrder     int
}

type UpdateLinkInput struct {
	SelectionType *string
	IsRequired    *bool
	MaxQuantity   *int
	SortOrder     *int
}

func parseSelectionType(raw string) (model.SelectionType, bool) {
	switch strings.TrimSpace(raw) {
	case "single":
		return model.SelectionTypeSingle, true
	case "multiple":
		return model.SelectionTypeMultiple, true
	default:
		return "", false
	}
}

// 商品のトッピング設定一覧（sortOrder昇順）。
func (u *ProductIngredientUsecase) List(ctx context.Context, productID string) ([]ProductIngredientOutput, error) {
	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusNotFound, "Продукт не найден")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "Ошибка при получении ингредиентов продукта")
	}

	links, err := u.linkRepo.ListByProductID(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Ошибка при получении ингредиентов продукта")
	}

	out := make([]ProductIngredientOutput, 0, len(links))
	for _, l := range links {
		out = append(out, toLinkOutput(l))
	}
	return out, nil
}

func (u *ProductIngredientUsecase) Attach(ctx context.Context, productID string, in AttachIngredientInput) (ProductIngredientOutput, error) {
	if strings.TrimSpace(in.IngredientID) == "" {
		return ProductIngredientOutput{}, NewHTTPError(http.StatusBadRequest, "ID ингредиента обязателен")
	}
	selType, ok := parseSelectionType(in.SelectionType)
	if !ok {
		return ProductIngredientOutput{}, NewHTTPError(http.StatusBadRequest, "Тип выбора должен быть single или multiple")
	}
	if in.MaxQuantity != nil && *in.MaxQuantity < 1 {
		return ProductIngredientOutput{}, NewHTTPError(http.StatusBadRequest, "Максимальное количество должно быть не меньше 1")
	}
	if in.SortOrder < 0 {
		return ProductIngredientOutput{}, NewHTTPError(http.StatusBadRequest, "Порядок сортировки не может быть отрицательным")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return ProductIngredientOutput{}, NewHTTPError(http.StatusNotFound, "Продукт не найден")
		}
		return ProductIngredientOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при добавлении ингредиента к продукту")
	}

	ingredient, err := u.ingredientRepo.FindByID(ctx, in.IngredientID)
	if err != nil {
		if err == repo.ErrNotFound {
			return ProductIngredientOutput{}, NewHTTPError(http.StatusBadRequest, "Ингредиент не найден")
		}
		return ProductIngredientOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при добавлении ингредиента к продукту")
	}

	//重複リンクは拒否
	if _, err := u.linkRepo.FindLink(ctx, productID, in.IngredientID); err == nil {
		return ProductIngredientOutput{}, NewHTTPError(http.StatusBadRequest, "Этот ингредиент уже добавлен к продукту")
	} else if err != repo.ErrNotFound {
		return ProductIngredientOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при добавлении ингредиента к продукту")
	}

	now := time.Now()
	created, err := u.linkRepo.Create(ctx, model.ProductIngredient{
		ID:            u.idGen.NewID(),
		ProductID:     productID,
		IngredientID:  in.IngredientID,
		SelectionType: selType,
		IsRequired:    in.IsRequired,
		MaxQuantity:   in.MaxQuantity,
		SortOrder:     in.SortOrder,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return ProductIngredientOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при добавлении ингредиента к продукту")
	}

	created.Ingredient = &ingredient
	u.invalidateMenu(ctx)
	return toLinkOutput(created), nil
}

func (u *ProductIngredientUsecase) UpdateLink(ctx context.Context, productID, ingredientID string, in UpdateLinkInput) (ProductIngredientOutput, error) {
	current, err := u.linkRepo.FindLink(ctx, productID, ingredientID)
	if err == repo.ErrNotFound {
		return ProductIngredientOutput{}, NewHTTPError(http.StatusNotFound, "Связь продукта и ингредиента не найдена")
	}
	if err != nil {
		return ProductIngredientOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при обновлении ингредиента продукта")
	}

	if in.SelectionType != nil {
		selType, ok := parseSelectionType(*in.SelectionType)
		if !ok {
			return ProductIngredientOutput{}, NewHTTPError(http.StatusBadRequest, "Тип выбора должен быть single или multiple")
		}
		current.SelectionType = selType
	}
	if in.IsRequired != nil {
		current.IsRequired = *in.IsRequired
	}
	if in.MaxQuantity != nil {
		if *in.MaxQuantity < 1 {
			return ProductIngredientOutput{}, NewHTTPError(http.StatusBadRequest, "Максимальное количество должно быть не меньше 1")
		}
		current.MaxQuantity = in.MaxQuantity
	}
	if in.SortOrder != nil {
		if *in.SortOrder < 0 {
			return ProductIngredientOutput{}, NewHTTPError(http.StatusBadRequest, "Порядок сортировки не может быть отрицательным")
		}
		current.SortOrder = *in.SortOrder
	}

	if err := u.linkRepo.Update(ctx, current); err != nil {
		if err == repo.ErrNotFound {
			return ProductIngredientOutput{}, NewHTTPError(http.StatusNotFound, "Связь продукта и ингредиента не найдена")
		}
		return ProductIngredientOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при обновлении ингредиента продукта")
	}

	u.invalidateMenu(ctx)
	return toLinkOutput(current), nil
}

func (u *ProductIngredientUsecase) Detach(ctx context.Context, productID, ingredientID string) error {
	err := u.linkRepo.Delete(ctx, productID, ingredientID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Связь продукта и ингредиента не найдена")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Ошибка при удалении ингредиента продукта")
	}

	u.invalidateMenu(ctx)
	return nil
}

// 一括再設定の前段：商品のリンクを全部消す。
func (u *ProductIngredientUsecase) DetachAll(ctx context.Context, productID string) error {
	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Продукт не найден")
		}
		return NewHTTPError(http.StatusInternalServerError, "Ошибка при удалении ингредиентов продукта")
	}

	if err := u.linkRepo.DeleteByProductID(ctx, productID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Ошибка при удалении ингредиентов продукта")
	}

	u.invalidateMenu(ctx)
	return nil
}

func (u *ProductIngredientUsecase) invalidateMenu(ctx context.Context) {
	_ = u.cache.Invalidate(ctx)
}

func toLinkOutput(l model.ProductIngredient) ProductIngredientOutput {
	return ProductIngredientOutput{
		ID:            l.ID,
		ProductID:     l.ProductID,
		IngredientID:  l.IngredientID,
		SelectionType: string(l.SelectionType),
		IsRequired:    l.IsRequired,
		MaxQuantity:   l.MaxQuantity,
		SortOrder:     l.SortOrder,
		Ingredient:    l.Ingredient,
	}
}
