package repository

import (
	"context"

	"serbburger/internal/domain/model"
)

// リンク数付きの一覧行
type IngredientWithCount struct {
	Ingredient model.Ingredient
	LinksCount int64
}

type IngredientRepository interface {
	List(ctx context.Context) ([]IngredientWithCount, error)
	FindByID(ctx context.Context, id string) (model.Ingredient, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Ingredient, error)
	CountLinks(ctx context.Context, ingredientID string) (int64, error)

	Create(ctx context.Context, i model.Ingredient) (model.Ingredient, error)
	Update(ctx context.Context, i model.Ingredient) error
	Delete(ctx context.Context, id string) error
}
