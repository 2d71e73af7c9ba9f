package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"serbburger/internal/domain/model"
	repo "serbburger/internal/repository"
	"serbburger/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCategoryUC(cRepo *CategoryRepoMock, cache *menuCacheSpy) *usecase.CategoryUsecase {
	return usecase.NewCategoryUsecase(cRepo, cache, &seqIDGen{})
}

func TestCategoryUsecase_Create_Success(t *testing.T) {
	ctx := context.Background()

	cRepo := new(CategoryRepoMock)
	cache := &menuCacheSpy{}
	uc := newCategoryUC(cRepo, cache)

	cRepo.On("FindBySlug", mock.Anything, "burgers").Return(model.Category{}, repo.ErrNotFound)
	cRepo.On("Create", mock.Anything, mock.MatchedBy(func(c model.Category) bool {
		return c.Name == "Бургеры" && c.Slug == "burgers" && c.ID != ""
	})).Return(model.Category{ID: "cat-1", Name: "Бургеры", Slug: "burgers"}, nil)

	out, err := uc.Create(ctx, usecase.CreateCategoryInput{Name: " Бургеры ", Slug: "burgers"})
	assert.NoError(t, err)
	assert.Equal(t, "Бургеры", out.Name)
	assert.Equal(t, "burgers", out.Slug)
	assert.Equal(t, int64(0), out.Count.Products)
	assert.Equal(t, 1, cache.invalidated)

	cRepo.AssertExpectations(t)
}

func TestCategoryUsecase_Create_DuplicateSlug(t *testing.T) {
	cRepo := new(CategoryRepoMock)
	uc := newCategoryUC(cRepo, &menuCacheSpy{})

	cRepo.On("FindBySlug", mock.Anything, "burgers").Return(model.Category{ID: "cat-1", Slug: "burgers"}, nil)

	_, err := uc.Create(context.Background(), usecase.CreateCategoryInput{Name: "Бургеры", Slug: "burgers"})
	he := assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Категория с таким slug уже существует", he.Message)

	cRepo.AssertNotCalled(t, "Create")
}

func TestCategoryUsecase_Create_InvalidSlug(t *testing.T) {
	uc := newCategoryUC(new(CategoryRepoMock), &menuCacheSpy{})

	_, err := uc.Create(context.Background(), usecase.CreateCategoryInput{Name: "Бургеры", Slug: "Burgers!"})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCategoryUsecase_Create_MissingName(t *testing.T) {
	uc := newCategoryUC(new(CategoryRepoMock), &menuCacheSpy{})

	_, err := uc.Create(context.Background(), usecase.CreateCategoryInput{Name: "  ", Slug: "burgers"})
	he := assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Название категории обязательно", he.Message)
}

func TestCategoryUsecase_Update_SlugTakenByOther(t *testing.T) {
	cRepo := new(CategoryRepoMock)
	uc := newCategoryUC(cRepo, &menuCacheSpy{})

	cRepo.On("FindByID", mock.Anything, "cat-1").Return(model.Category{ID: "cat-1", Name: "Бургеры", Slug: "burgers"}, nil)
	cRepo.On("FindBySlug", mock.Anything, "drinks").Return(model.Category{ID: "cat-2", Slug: "drinks"}, nil)

	_, err := uc.Update(context.Background(), "cat-1", usecase.UpdateCategoryInput{Slug: strPtr("drinks")})
	he := assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Категория с таким slug уже существует", he.Message)
}

func TestCategoryUsecase_Delete_GuardedWhenHasProducts(t *testing.T) {
	cRepo := new(CategoryRepoMock)
	cache := &menuCacheSpy{}
	uc := newCategoryUC(cRepo, cache)

	cRepo.On("FindByID", mock.Anything, "cat-1").Return(model.Category{ID: "cat-1"}, nil)
	cRepo.On("CountProducts", mock.Anything, "cat-1").Return(int64(3), nil)

	err := uc.Delete(context.Background(), "cat-1")
	he := assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Невозможно удалить категорию, содержащую продукты", he.Message)

	cRepo.AssertNotCalled(t, "Delete")
	assert.Equal(t, 0, cache.invalidated)
}

func TestCategoryUsecase_Delete_Success(t *testing.T) {
	cRepo := new(CategoryRepoMock)
	cache := &menuCacheSpy{}
	uc := newCategoryUC(cRepo, cache)

	cRepo.On("FindByID", mock.Anything, "cat-1").Return(model.Category{ID: "cat-1"}, nil)
	cRepo.On("CountProducts", mock.Anything, "cat-1").Return(int64(0), nil)
	cRepo.On("Delete", mock.Anything, "cat-1").Return(nil)

	err := uc.Delete(context.Background(), "cat-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	cRepo.AssertExpectations(t)
}

func TestCategoryUsecase_Get_NotFound(t *testing.T) {
	cRepo := new(CategoryRepoMock)
	uc := newCategoryUC(cRepo, &menuCacheSpy{})

	cRepo.On("FindByID", mock.Anything, "missing").Return(model.Category{}, repo.ErrNotFound)

	_, err := uc.Get(context.Background(), "missing")
	he := assertHTTPStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "Категория не найдена", he.Message)
}

func TestCategoryUsecase_List_ReturnsCounts(t *testing.T) {
	cRepo := new(CategoryRepoMock)
	uc := newCategoryUC(cRepo, &menuCacheSpy{})

	cRepo.On("List", mock.Anything).Return([]repo.CategoryWithCount{
		{Category: model.Category{ID: "cat-1", Name: "Бургеры", Slug: "burgers"}, ProductsCount: 5},
		{Category: model.Category{ID: "cat-2", Name: "Напитки", Slug: "drinks"}, ProductsCount: 0},
	}, nil)

	out, err := uc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, int64(5), out[0].Count.Products)
	assert.Equal(t, int64(0), out[1].Count.Products)
}
