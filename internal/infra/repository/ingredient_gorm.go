package repository

import (
	"context"
	"errors"

	"serbburger/internal/domain/model"
	repo "serbburger/internal/repository"

	"gorm.io/gorm"
)

type IngredientGormRepository struct {
	db *gorm.DB
}

// DI
func NewIngredientGormRepository(db *gorm.DB) *IngredientGormRepository {
	return &IngredientGormRepository{db: db}
}

// リンク数付きで全トッピングを名前順に返す。
func (r *IngredientGormRepository) List(ctx context.Context) ([]repo.IngredientWithCount, error) {
	var ings []model.Ingredient
	if err := r.db.WithContext(ctx).Order("name asc").Find(&ings).Error; err != nil {
		return nil, err
	}

	out := make([]repo.IngredientWithCount, 0, len(ings))
	for _, i := range ings {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.ProductIngredient{}).
			Where("ingredient_id = ?", i.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		out = append(out, repo.IngredientWithCount{Ingredient: i, LinksCount: count})
	}
	return out, nil
}

func (r *IngredientGormRepository) FindByID(ctx context.Context, id string) (model.Ingredient, error) {
	var i model.Ingredient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&i).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Ingredient{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Ingredient{}, err
	}
	return i, nil
}

func (r *IngredientGormRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Ingredient, error) {
	if len(ids) == 0 {
		return []model.Ingredient{}, nil
	}
	var ings []model.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ings).Error; err != nil {
		return nil, err
	}
	return ings, nil
}

func (r *IngredientGormRepository) CountLinks(ctx context.Context, ingredientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProductIngredient{}).
		Where("ingredient_id = ?", ingredientID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *IngredientGormRepository) Create(ctx context.Context, i model.Ingredient) (model.Ingredient, error) {
	if err := r.db.WithContext(ctx).Create(&i).Error; err != nil {
		return model.Ingredient{}, err
	}
	return i, nil
}

func (r *IngredientGormRepository) Update(ctx context.Context, i model.Ingredient) error {
	res := r.db.WithContext(ctx).Model(&model.Ingredient{}).Where("id = ?", i.ID).Updates(map[string]interface{}{
		"name":  i.Name,
		"price": i.Price,
		"type":  i.Type,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *IngredientGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Ingredient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
