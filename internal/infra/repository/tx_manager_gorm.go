package repository

import (
	"context"

	repo "serbburger/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	categories         repo.CategoryRepository
	ingredients        repo.IngredientRepository
	products           repo.ProductRepository
	productIngredients repo.ProductIngredientRepository
	orders             repo.OrderRepository
	orderItems         repo.OrderItemRepository
}

func (r *txReposGorm) Categories() repo.CategoryRepository                 { return r.categories }
func (r *txReposGorm) Ingredients() repo.IngredientRepository              { return r.ingredients }
func (r *txReposGorm) Products() repo.ProductRepository                    { return r.products }
func (r *txReposGorm) ProductIngredients() repo.ProductIngredientRepository { return r.productIngredients }
func (r *txReposGorm) Orders() repo.OrderRepository                        { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository                { return r.orderItems }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fn内のrepoは全て同一トランザクションに乗る。
func (m *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &txReposGorm{
			categories:         NewCategoryGormRepository(tx),
			ingredients:        NewIngredientGormRepository(tx),
			products:           NewProductGormRepository(tx),
			productIngredients: NewProductIngredientGormRepository(tx),
			orders:             NewOrderGormRepository(tx),
			orderItems:         NewOrderItemGormRepository(tx),
		}
		return fn(repos)
	})
}
