package repository

import (
	"context"
	"errors"

	"serbburger/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品数付きの一覧行
type CategoryWithCount struct {
	Category      model.Category
	ProductsCount int64
}

// カテゴリの永続化だけを約束。
type CategoryRepository interface {
	List(ctx context.Context) ([]CategoryWithCount, error)
	FindByID(ctx context.Context, id string) (model.Category, error)
	FindBySlug(ctx context.Context, slug string) (model.Category, error)
	CountProducts(ctx context.Context, categoryID string) (int64, error)

	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id string) error
}
