package usecase

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"serbburger/internal/domain/model"
	repo "serbburger/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
	cache        MenuCache
	idGen        IDGenerator
}

// DI
func NewCategoryUsecase(categoryRepo repo.CategoryRepository, cache MenuCache, idGen IDGenerator) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo, cache: cache, idGen: idGen}
}

type CategoryCount struct {
	Products int64 `json:"products"`
}

type CategoryOutput struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Slug  string        `json:"slug"`
	Count CategoryCount `json:"_count"`
}

type CreateCategoryInput struct {
	Name string
	Slug string
}

type UpdateCategoryInput struct {
	Name *string
	Slug *string
}

func (u *CategoryUsecase) List(ctx context.Context) ([]CategoryOutput, error) {
	rows, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Ошибка при получении категорий")
	}

	out := make([]CategoryOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, toCategoryOutput(r.Category, r.ProductsCount))
	}
	return out, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id string) (CategoryOutput, error) {
	c, err := u.categoryRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return CategoryOutput{}, NewHTTPError(http.StatusNotFound, "Категория не найдена")
	}
	if err != nil {
		return CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при получении категории")
	}

	count, err := u.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при получении категории")
	}

	return toCategoryOutput(c, count), nil
}

func (u *CategoryUsecase) Create(ctx context.Context, in CreateCategoryInput) (CategoryOutput, error) {
	name := strings.TrimSpace(in.Name)
	slug := strings.TrimSpace(in.Slug)

	if name == "" {
		return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "Название категории обязательно")
	}
	if slug == "" {
		return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "Slug категории обязателен")
	}
	if !slugPattern.MatchString(slug) {
		return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "Slug может содержать только буквы, цифры и дефисы")
	}

	//slug重複チェック
	_, err := u.categoryRepo.FindBySlug(ctx, slug)
	if err == nil {
		return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "Категория с таким slug уже существует")
	}
	if err != repo.ErrNotFound {
		return CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при создании категории")
	}

	now := time.Now()
	created, err := u.categoryRepo.Create(ctx, model.Category{
		ID:        u.idGen.NewID(),
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при создании категории")
	}

	u.invalidateMenu(ctx)
	return toCategoryOutput(created, 0), nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id string, in UpdateCategoryInput) (CategoryOutput, error) {
	current, err := u.categoryRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return CategoryOutput{}, NewHTTPError(http.StatusNotFound, "Категория не найдена")
	}
	if err != nil {
		return CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при обновлении категории")
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "Название категории обязательно")
		}
		current.Name = name
	}
	if in.Slug != nil {
		slug := strings.TrimSpace(*in.Slug)
		if slug == "" {
			return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "Slug категории обязателен")
		}
		if !slugPattern.MatchString(slug) {
			return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "Slug может содержать только буквы, цифры и дефисы")
		}

		//slugを変えるなら他カテゴリとの重複を確認
		if slug != current.Slug {
			other, err := u.categoryRepo.FindBySlug(ctx, slug)
			if err == nil && other.ID != id {
				return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "Категория с таким slug уже существует")
			}
			if err != nil && err != repo.ErrNotFound {
				return CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при обновлении категории")
			}
		}
		current.Slug = slug
	}

	if err := u.categoryRepo.Update(ctx, current); err != nil {
		if err == repo.ErrNotFound {
			return CategoryOutput{}, NewHTTPError(http.StatusNotFound, "Категория не найдена")
		}
		return CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при обновлении категории")
	}

	count, err := u.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при обновлении категории")
	}

	u.invalidateMenu(ctx)
	return toCategoryOutput(current, count), nil
}

func (u *CategoryUsecase) Delete(ctx context.Context, id string) error {
	_, err := u.categoryRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Категория не найдена")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Ошибка при удалении категории")
	}

	//商品を持つカテゴリは消せない
	count, err := u.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Ошибка при удалении категории")
	}
	if count > 0 {
		return NewHTTPError(http.StatusBadRequest, "Невозможно удалить категорию, содержащую продукты")
	}

	if err := u.categoryRepo.Delete(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Категория не найдена")
		}
		return NewHTTPError(http.StatusInternalServerError, "Ошибка при удалении категории")
	}

	u.invalidateMenu(ctx)
	return nil
}

func (u *CategoryUsecase) invalidateMenu(ctx context.Context) {
	// キャッシュ破棄の失敗で書き込みを失敗扱いにはしない
	_ = u.cache.Invalidate(ctx)
}

func toCategoryOutput(c model.Category, products int64) CategoryOutput {
	return CategoryOutput{
		ID:    c.ID,
		Name:  c.Name,
		Slug:  c.Slug,
		Count: CategoryCount{Products: products},
	}
}
