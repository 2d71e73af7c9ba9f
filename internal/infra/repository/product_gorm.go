package repository

import (
	"context"
	"errors"

	"serbburger/internal/domain/model"
	repo "serbburger/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// カテゴリ情報とトッピング数付きで全商品を返す。
func (r *ProductGormRepository) List(ctx context.Context) ([]repo.ProductWithCategory, error) {
	type row struct {
		model.Product
		CategoryName     string
		CategorySlug     string
		IngredientsCount int64
	}

	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select(`products.*,
			categories.name AS category_name,
			categories.slug AS category_slug,
			(SELECT COUNT(*) FROM product_ingredients pi WHERE pi.product_id = products.id) AS ingredients_count`).
		Joins("JOIN categories ON categories.id = products.category_id").
		Order("categories.name asc").
		Order("products.name asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]repo.ProductWithCategory, 0, len(rows))
	for _, w := range rows {
		out = append(out, repo.ProductWithCategory{
			Product:          w.Product,
			CategoryName:     w.CategoryName,
			CategorySlug:     w.CategorySlug,
			IngredientsCount: w.IngredientsCount,
		})
	}
	return out, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) CountOrderItems(ctx context.Context, productID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"image":       p.Image,
		"price":       p.Price,
		"category_id": p.CategoryID,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
