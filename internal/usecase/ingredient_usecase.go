package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"serbburger/internal/domain/model"
	repo "serbburger/internal/repository"
)

type IngredientUsecase struct {
	ingredientRepo repo.IngredientRepository
	cache          MenuCache
	idGen          IDGenerator
}

// DI
func NewIngredientUsecase(ingredientRepo repo.IngredientRepository, cache MenuCache, idGen IDGenerator) *IngredientUsecase {
	return &IngredientUsecase{ingredientRepo: ingredientRepo, cache: cache, idGen: idGen}
}

type IngredientCount struct {
	Products int64 `json:"products"`
}

type IngredientOutput struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price int64           `json:"price"`
	Type  string          `json:"type"`
	Count IngredientCount `json:"_count"`
}

type CreateIngredientInput struct {
	Name  string
	Price int64
	Type  string
}

type UpdateIngredientInput struct {
	Name  *string
	Price *int64
	Type  *string
}

// normalizeIngredientType は入力typeを検証する。旧データの"veggie"はvegetableに寄せる。
func normalizeIngredientType(raw string) (model.IngredientType, bool) {
	switch strings.TrimSpace(raw) {
	case "bun":
		return model.IngredientTypeBun, true
	case "patty":
		return model.IngredientTypePatty, true
	case "cheese":
		return model.IngredientTypeCheese, true
	case "vegetable", "veggie":
		return model.IngredientTypeVegetable, true
	case "sauce":
		return model.IngredientTypeSauce, true
	case "addon":
		return model.IngredientTypeAddon, true
	default:
		return "", false
	}
}

func (u *IngredientUsecase) List(ctx context.Context) ([]IngredientOutput, error) {
	rows, err := u.ingredientRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Ошибка при получении ингредиентов")
	}

	out := make([]IngredientOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, toIngredientOutput(r.Ingredient, r.LinksCount))
	}
	return out, nil
}

func (u *IngredientUsecase) Get(ctx context.Context, id string) (IngredientOutput, error) {
	i, err := u.ingredientRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return IngredientOutput{}, NewHTTPError(http.StatusNotFound, "Ингредиент не найден")
	}
	if err != nil {
		return IngredientOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при получении ингредиента")
	}

	count, err := u.ingredientRepo.CountLinks(ctx, id)
	if err != nil {
		return IngredientOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при получении ингредиента")
	}

	return toIngredientOutput(i, count), nil
}

func (u *IngredientUsecase) Create(ctx context.Context, in CreateIngredientInput) (IngredientOutput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return IngredientOutput{}, NewHTTPError(http.StatusBadRequest, "Название ингредиента обязательно")
	}
	if in.Price < 0 {
		return IngredientOutput{}, NewHTTPError(http.StatusBadRequest, "Цена не может быть отрицательной")
	}
	typ, ok := normalizeIngredientType(in.Type)
	if !ok {
		return IngredientOutput{}, NewHTTPError(http.StatusBadRequest, "Некорректный тип ингредиента")
	}

	now := time.Now()
	created, err := u.ingredientRepo.Create(ctx, model.Ingredient{
		ID:        u.idGen.NewID(),
		Name:      name,
		Price:     in.Price,
		Type:      typ,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return IngredientOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при создании ингредиента")
	}

	u.invalidateMenu(ctx)
	return toIngredientOutput(created, 0), nil
}

func (u *IngredientUsecase) Update(ctx context.Context, id string, in UpdateIngredientInput) (IngredientOutput, error) {
	current, err := u.ingredientRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return IngredientOutput{}, NewHTTPError(http.StatusNotFound, "Ингредиент не найден")
	}
	if err != nil {
		return IngredientOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при обновлении ингредиента")
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return IngredientOutput{}, NewHTTPError(http.StatusBadRequest, "Название ингредиента обязательно")
		}
		current.Name = name
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return IngredientOutput{}, NewHTTPError(http.StatusBadRequest, "Цена не может быть отрицательной")
		}
		current.Price = *in.Price
	}
	if in.Type != nil {
		typ, ok := normalizeIngredientType(*in.Type)
		if !ok {
			return IngredientOutput{}, NewHTTPError(http.StatusBadRequest, "Некорректный тип ингредиента")
		}
		current.Type = typ
	}

	if err := u.ingredientRepo.Update(ctx, current); err != nil {
		if err == repo.ErrNotFound {
			return IngredientOutput{}, NewHTTPError(http.StatusNotFound, "Ингредиент не найден")
		}
		return IngredientOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при обновлении ингредиента")
	}

	count, err := u.ingredientRepo.CountLinks(ctx, id)
	if err != nil {
		return IngredientOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при обновлении ингредиента")
	}

	u.invalidateMenu(ctx)
	return toIngredientOutput(current, count), nil
}

func (u *IngredientUsecase) Delete(ctx context.Context, id string) error {
	_, err := u.ingredientRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Ингредиент не найден")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Ошибка при удалении ингредиента")
	}

	//商品に紐付いているトッピングは消せない
	count, err := u.ingredientRepo.CountLinks(ctx, id)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Ошибка при удалении ингредиента")
	}
	if count > 0 {
		return NewHTTPError(http.StatusBadRequest, "Невозможно удалить ингредиент, используемый в продуктах")
	}

	if err := u.ingredientRepo.Delete(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Ингредиент не найден")
		}
		return NewHTTPError(http.StatusInternalServerError, "Ошибка при удалении ингредиента")
	}

	u.invalidateMenu(ctx)
	return nil
}

func (u *IngredientUsecase) invalidateMenu(ctx context.Context) {
	_ = u.cache.Invalidate(ctx)
}

func toIngredientOutput(i model.Ingredient, links int64) IngredientOutput {
	return IngredientOutput{
		ID:    i.ID,
		Name:  i.Name,
		Price: i.Price,
		Type:  string(i.Type),
		Count: IngredientCount{Products: links},
	}
}
