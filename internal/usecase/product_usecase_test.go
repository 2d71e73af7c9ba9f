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

func newProductUC(tx *txManagerStub, cache *menuCacheSpy) *usecase.ProductUsecase {
	return usecase.NewProductUsecase(tx.repos.products, tx.repos.categories, tx.repos.links, tx, cache, &seqIDGen{})
}

func TestProductUsecase_Create_Success(t *testing.T) {
	tx := newTxManagerStub()
	cache := &menuCacheSpy{}
	uc := newProductUC(tx, cache)

	tx.repos.categories.On("FindByID", mock.Anything, "cat-1").Return(model.Category{ID: "cat-1"}, nil)
	tx.repos.products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Чизбургер" && p.Price == 350 && p.CategoryID == "cat-1"
	})).Return(model.Product{ID: "prod-1", Name: "Чизбургер", Price: 350, CategoryID: "cat-1"}, nil)

	out, err := uc.Create(context.Background(), usecase.CreateProductInput{
		Name:       " Чизбургер ",
		Price:      350,
		CategoryID: "cat-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, "prod-1", out.ID)
	assert.Equal(t, 1, cache.invalidated)

	tx.repos.products.AssertExpectations(t)
}

func TestProductUsecase_Create_UnknownCategory(t *testing.T) {
	tx := newTxManagerStub()
	uc := newProductUC(tx, &menuCacheSpy{})

	tx.repos.categories.On("FindByID", mock.Anything, "missing").Return(model.Category{}, repo.ErrNotFound)

	_, err := uc.Create(context.Background(), usecase.CreateProductInput{
		Name:       "Чизбургер",
		Price:      350,
		CategoryID: "missing",
	})
	he := assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Указанная категория не существует", he.Message)

	tx.repos.products.AssertNotCalled(t, "Create")
}

func TestProductUsecase_Create_MissingName(t *testing.T) {
	uc := newProductUC(newTxManagerStub(), &menuCacheSpy{})

	_, err := uc.Create(context.Background(), usecase.CreateProductInput{Name: " ", Price: 1, CategoryID: "cat-1"})
	he := assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Название продукта обязательно", he.Message)
}

func TestProductUsecase_Update_ChangesCategoryAfterCheck(t *testing.T) {
	tx := newTxManagerStub()
	uc := newProductUC(tx, &menuCacheSpy{})

	tx.repos.products.On("FindByID", mock.Anything, "prod-1").Return(model.Product{
		ID: "prod-1", Name: "Чизбургер", Price: 350, CategoryID: "cat-1",
	}, nil)
	tx.repos.categories.On("FindByID", mock.Anything, "cat-2").Return(model.Category{ID: "cat-2"}, nil)
	tx.repos.products.On("Update", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.CategoryID == "cat-2" && p.Name == "Чизбургер"
	})).Return(nil)

	out, err := uc.Update(context.Background(), "prod-1", usecase.UpdateProductInput{CategoryID: strPtr("cat-2")})
	assert.NoError(t, err)
	assert.Equal(t, "cat-2", out.CategoryID)

	tx.repos.products.AssertExpectations(t)
}

func TestProductUsecase_Update_NotFound(t *testing.T) {
	tx := newTxManagerStub()
	uc := newProductUC(tx, &menuCacheSpy{})

	tx.repos.products.On("FindByID", mock.Anything, "missing").Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.Update(context.Background(), "missing", usecase.UpdateProductInput{Price: int64Ptr(100)})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestProductUsecase_Delete_GuardedWhenOrdered(t *testing.T) {
	tx := newTxManagerStub()
	cache := &menuCacheSpy{}
	uc := newProductUC(tx, cache)

	tx.repos.products.On("FindByID", mock.Anything, "prod-1").Return(model.Product{ID: "prod-1"}, nil)
	tx.repos.products.On("CountOrderItems", mock.Anything, "prod-1").Return(int64(4), nil)

	err := uc.Delete(context.Background(), "prod-1")
	he := assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Невозможно удалить продукт, присутствующий в заказах", he.Message)

	tx.repos.products.AssertNotCalled(t, "Delete")
	tx.repos.links.AssertNotCalled(t, "DeleteByProductID")
	assert.Equal(t, 0, cache.invalidated)
}

func TestProductUsecase_Delete_RemovesLinksFirst(t *testing.T) {
	tx := newTxManagerStub()
	cache := &menuCacheSpy{}
	uc := newProductUC(tx, cache)

	tx.repos.products.On("FindByID", mock.Anything, "prod-1").Return(model.Product{ID: "prod-1"}, nil)
	tx.repos.products.On("CountOrderItems", mock.Anything, "prod-1").Return(int64(0), nil)
	tx.repos.links.On("DeleteByProductID", mock.Anything, "prod-1").Return(nil)
	tx.repos.products.On("Delete", mock.Anything, "prod-1").Return(nil)

	err := uc.Delete(context.Background(), "prod-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	tx.repos.products.AssertExpectations(t)
	tx.repos.links.AssertExpectations(t)
}

func TestProductUsecase_List_MapsJoinedColumns(t *testing.T) {
	tx := newTxManagerStub()
	uc := newProductUC(tx, &menuCacheSpy{})

	tx.repos.products.On("List", mock.Anything).Return([]repo.ProductWithCategory{
		{
			Product:          model.Product{ID: "prod-1", Name: "Чизбургер", Price: 350, CategoryID: "cat-1"},
			CategoryName:     "Бургеры",
			CategorySlug:     "burgers",
			IngredientsCount: 3,
		},
	}, nil)

	out, err := uc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Бургеры", out[0].CategoryName)
	assert.Equal(t, "burgers", out[0].CategorySlug)
	assert.Equal(t, int64(3), out[0].Count.Ingredients)
}
