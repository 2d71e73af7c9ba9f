package usecase

import (
	"context"
	"encoding/json"
	"net/http"

	repo "serbburger/internal/repository"
)

// /menuレスポンスのキャッシュの約束。Redis実装とNoop実装がある。
type MenuCache interface {
	Get(ctx context.Context) ([]byte, bool, error)
	Set(ctx context.Context, payload []byte) error
	Invalidate(ctx context.Context) error
}

type MenuUsecase struct {
	productRepo repo.ProductRepository
	linkRepo    repo.ProductIngredientRepository
	cache       MenuCache
}

// DI
func NewMenuUsecase(productRepo repo.ProductRepository, linkRepo repo.ProductIngredientRepository, cache MenuCache) *MenuUsecase {
	return &MenuUsecase{productRepo: productRepo, linkRepo: linkRepo, cache: cache}
}

// カスタマイザーが読む統一形。selectionType等のキー名は店頭UIとの既存契約。
type MenuIngredientOption struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	Type          string `json:"type"`
	SelectionType string `json:"selectionType"`
	IsRequired    bool   `json:"isRequired"`
	MaxQuantity   *int   `json:"maxQuantity,omitempty"`
}

type MenuItem struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Price       int64                  `json:"price"`
	Image       string                 `json:"image,omitempty"`
	Category    string                 `json:"category"`
	Ingredients []MenuIngredientOption `json:"ingredients"`
}

type MenuCategory struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Slug  string     `json:"slug"`
	Items []MenuItem `json:"items"`
}

// GetMenu はカテゴリごとにグループ化したメニューを返す。
func (u *MenuUsecase) GetMenu(ctx context.Context) ([]MenuCategory, error) {
	products, err := u.productRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Ошибка при получении меню")
	}

	//repoがカテゴリ名→商品名順で返すので、出現順のままグループ化する
	out := make([]MenuCategory, 0)
	index := map[string]int{}

	for _, p := range products {
		links, err := u.linkRepo.ListByProductID(ctx, p.Product.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "Ошибка при получении меню")
		}

		options := make([]MenuIngredientOption, 0, len(links))
		for _, l := range links {
			if l.Ingredient == nil {
				continue
			}
			options = append(options, MenuIngredientOption{
				ID:            l.Ingredient.ID,
				Name:          l.Ingredient.Name,
				Price:         l.Ingredient.Price,
				Type:          string(l.Ingredient.Type),
				SelectionType: string(l.SelectionType),
				IsRequired:    l.IsRequired,
				MaxQuantity:   l.MaxQuantity,
			})
		}

		item := MenuItem{
			ID:          p.Product.ID,
			Name:        p.Product.Name,
			Description: p.Product.Description,
			Price:       p.Product.Price,
			Image:       p.Product.Image,
			Category:    p.CategorySlug,
			Ingredients: options,
		}

		i, ok := index[p.CategorySlug]
		if !ok {
			index[p.CategorySlug] = len(out)
			out = append(out, MenuCategory{
				ID:    p.Product.CategoryID,
				Name:  p.CategoryName,
				Slug:  p.CategorySlug,
				Items: []MenuItem{item},
			})
			continue
		}
		out[i].Items = append(out[i].Items, item)
	}

	return out, nil
}

// GetMenuJSON はキャッシュ優先でシリアライズ済みメニューを返す。
func (u *MenuUsecase) GetMenuJSON(ctx context.Context) ([]byte, error) {
	if b, ok, err := u.cache.Get(ctx); err == nil && ok {
		return b, nil
	}
	// キャッシュ障害はDB読みにフォールバック

	menu, err := u.GetMenu(ctx)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(menu)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Ошибка при получении меню")
	}

	_ = u.cache.Set(ctx, b)
	return b, nil
}
