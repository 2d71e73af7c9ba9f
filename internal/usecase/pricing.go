package usecase

import "serbburger/internal/domain/model"

// UnitPrice は商品とトッピング選択に対する単価。
// クライアント表示と注文時のサーバー再計算で同じ式を使う。
func UnitPrice(product model.Product, ingredients []model.Ingredient) int64 {
	price := product.Price
	for _, i := range ingredients {
		price += i.Price
	}
	return price
}

// LineTotal は行合計（単価×個数）。
func LineTotal(product model.Product, ingredients []model.Ingredient, quantity int64) int64 {
	return UnitPrice(product, ingredients) * quantity
}
