package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"serbburger/internal/domain/model"
	repo "serbburger/internal/repository"
)

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	linkRepo     repo.ProductIngredientRepository
	tx           repo.TransactionManager
	cache        MenuCache
	idGen        IDGenerator
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	linkRepo repo.ProductIngredientRepository,
	tx repo.TransactionManager,
	cache MenuCache,
	idGen IDGenerator,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		linkRepo:     linkRepo,
		tx:           tx,
		cache:        cache,
		idGen:        idGen,
	}
}

type ProductCount struct {
	Ingredients int64 `json:"ingredients"`
}

type ProductOutput struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Image        string       `json:"image,omitempty"`
	Price        int64        `json:"price"`
	CategoryID   string       `json:"category_id"`
	CategoryName string       `json:"category_name,omitempty"`
	CategorySlug string       `json:"category_slug,omitempty"`
	Count        ProductCount `json:"_count"`
}

type CreateProductInput struct {
	Name        string
	Description string
	Image       string
	Price       int64
	CategoryID  string
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Image       *string
	Price       *int64
	CategoryID  *string
}

func (u *ProductUsecase) List(ctx context.Context) ([]ProductOutput, error) {
	rows, err := u.productRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Ошибка при получении продуктов")
	}

	out := make([]ProductOutput, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProductOutput{
			ID:           r.Product.ID,
			Name:         r.Product.Name,
			Description:  r.Product.Description,
			Image:        r.Product.Image,
			Price:        r.Product.Price,
			CategoryID:   r.Product.CategoryID,
			CategoryName: r.CategoryName,
			CategorySlug: r.CategorySlug,
			Count:        ProductCount{Ingredients: r.IngredientsCount},
		})
	}
	return out, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id string) (ProductOutput, error) {
	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "Продукт не найден")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при получении продукта")
	}

	links, err := u.linkRepo.ListByProductID(ctx, id)
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "Ошибка при получении продукта")
	}

	return ProductOutput{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		Count:       ProductCount{Ingredients: int64(len(links))},
	}, nil
}

func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (ProductOutput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "Название продукта обязательно")
	}
	if in.Price < 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "Цена не может быть отрицательной")
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "Категория обязательна")
	}

	var created model.Product

	//カテゴリ存在確認と作成を同一Txで行う
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Categories().FindByID(ctx, in.CategoryID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "Указанная категория не существует")
			}
			return NewHTTPError(http.StatusInternalServerError, "Ошибка при создании продукта")
		}

		now := time.Now()
		p, err := r.Products().Create(ctx, model.Product{
			ID:          u.idGen.NewID(),
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			Image:       strings.TrimSpace(in.Image),
			Price:       in.Price,
			CategoryID:  in.CategoryID,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Ошибка при создании продукта")
		}

		created = p
		return nil
	})
	if err != nil {
		return ProductOutput{}, err
	}

	u.invalidateMenu(ctx)
	return ProductOutput{
		ID:          created.ID,
		Name:        created.Name,
		Description: created.Description,
		Image:       created.Image,
		Price:       created.Price,
		CategoryID:  created.CategoryID,
	}, nil
}

func (u *ProductUsecase) Update(ctx context.Context, id string, in UpdateProductInput) (ProductOutput, error) {
	var updated model.Product

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		current, err := r.Products().FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Продукт не найден")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Ошибка при обновлении продукта")
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return NewHTTPError(http.StatusBadRequest, "Название продукта обязательно")
			}
			current.Name = name
		}
		if in.Description != nil {
			current.Description = strings.TrimSpace(*in.Description)
		}
		if in.Image != nil {
			current.Image = strings.TrimSpace(*in.Image)
		}
		if in.Price != nil {
			if *in.Price < 0 {
				return NewHTTPError(http.StatusBadRequest, "Цена не может быть отрицательной")
			}
			current.Price = *in.Price
		}
		if in.CategoryID != nil {
			if _, err := r.Categories().FindByID(ctx, *in.CategoryID); err != nil {
				if err == repo.ErrNotFound {
					return NewHTTPError(http.StatusBadRequest, "Указанная категория не существует")
				}
				return NewHTTPError(http.StatusInternalServerError, "Ошибка при обновлении продукта")
			}
			current.CategoryID = *in.CategoryID
		}

		if err := r.Products().Update(ctx, current); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "Продукт не найден")
			}
			return NewHTTPError(http.StatusInternalServerError, "Ошибка при обновлении продукта")
		}

		updated = current
		return nil
	})
	if err != nil {
		return ProductOutput{}, err
	}

	u.invalidateMenu(ctx)
	return ProductOutput{
		ID:          updated.ID,
		Name:        updated.Name,
		Description: updated.Description,
		Image:       updated.Image,
		Price:       updated.Price,
		CategoryID:  updated.CategoryID,
	}, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, id string) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, id); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "Продукт не найден")
			}
			return NewHTTPError(http.StatusInternalServerError, "Ошибка при удалении продукта")
		}

		//注文履歴に載っている商品は消せない
		count, err := r.Products().CountOrderItems(ctx, id)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Ошибка при удалении продукта")
		}
		if count > 0 {
			return NewHTTPError(http.StatusBadRequest, "Невозможно удалить продукт, присутствующий в заказах")
		}

		//トッピング設定ごと削除
		if err := r.ProductIngredients().DeleteByProductID(ctx, id); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Ошибка при удалении продукта")
		}
		if err := r.Products().Delete(ctx, id); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "Продукт не найден")
			}
			return NewHTTPError(http.StatusInternalServerError, "Ошибка при удалении продукта")
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.invalidateMenu(ctx)
	return nil
}

func (u *ProductUsecase) invalidateMenu(ctx context.Context) {
	_ = u.cache.Invalidate(ctx)
}
