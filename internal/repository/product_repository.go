package repository

import (
	"context"

	"serbburger/internal/domain/model"
)

// カテゴリ名・トッピング数付きの一覧行
type ProductWithCategory struct {
	Product          model.Product
	CategoryName     string
	CategorySlug     string
	IngredientsCount int64
}

type ProductRepository interface {
	List(ctx context.Context) ([]ProductWithCategory, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	CountOrderItems(ctx context.Context, productID string) (int64, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id string) error
}
