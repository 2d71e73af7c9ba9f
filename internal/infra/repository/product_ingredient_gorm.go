package repository

import (
	"context"
	"errors"

	"serbburger/internal/domain/model"
	repo "serbburger/internal/repository"

	"gorm.io/gorm"
)

type ProductIngredientGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductIngredientGormRepository(db *gorm.DB) *ProductIngredientGormRepository {
	return &ProductIngredientGormRepository{db: db}
}

// 商品のトッピング設定をsortOrder昇順で返す。
func (r *ProductIngredientGormRepository) ListByProductID(ctx context.Context, productID string) ([]model.ProductIngredient, error) {
	var links []model.ProductIngredient
	err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("product_id = ?", productID).
		Order("sort_order asc").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *ProductIngredientGormRepository) FindLink(ctx context.Context, productID string, ingredientID string) (model.ProductIngredient, error) {
	var link model.ProductIngredient
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND ingredient_id = ?", productID, ingredientID).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductIngredient{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductIngredient{}, err
	}
	return link, nil
}

func (r *ProductIngredientGormRepository) Create(ctx context.Context, pi model.ProductIngredient) (model.ProductIngredient, error) {
	if err := r.db.WithContext(ctx).Create(&pi).Error; err != nil {
		return model.ProductIngredient{}, err
	}
	return pi, nil
}

func (r *ProductIngredientGormRepository) Update(ctx context.Context, pi model.ProductIngredient) error {
	res := r.db.WithContext(ctx).Model(&model.ProductIngredient{}).
		Where("product_id = ? AND ingredient_id = ?", pi.ProductID, pi.IngredientID).
		Updates(map[string]interface{}{
			"selection_type": pi.SelectionType,
			"is_required":    pi.IsRequired,
			"max_quantity":   pi.MaxQuantity,
			"sort_order":     pi.SortOrder,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductIngredientGormRepository) Delete(ctx context.Context, productID string, ingredientID string) error {
	res := r.db.WithContext(ctx).
		Where("product_id = ? AND ingredient_id = ?", productID, ingredientID).
		Delete(&model.ProductIngredient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 一括再設定用。リンク0件でもエラーにしない。
func (r *ProductIngredientGormRepository) DeleteByProductID(ctx context.Context, productID string) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.ProductIngredient{}).Error
}
