package repository

import (
	"context"

	"serbburger/internal/domain/model"
)

type ProductIngredientRepository interface {
	// sortOrder昇順、ingredientプリロード済み
	ListByProductID(ctx context.Context, productID string) ([]model.ProductIngredient, error)
	FindLink(ctx context.Context, productID string, ingredientID string) (model.ProductIngredient, error)

	Create(ctx context.Context, pi model.ProductIngredient) (model.ProductIngredient, error)
	Update(ctx context.Context, pi model.ProductIngredient) error
	Delete(ctx context.Context, productID string, ingredientID string) error
	DeleteByProductID(ctx context.Context, productID string) error
}
