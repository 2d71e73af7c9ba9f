package model

import "time"

type SelectionType string

const (
	SelectionTypeSingle   SelectionType = "single"
	SelectionTypeMultiple SelectionType = "multiple"
)

// 商品ごとのトッピング設定。(productID, ingredientID)は一意。
type ProductIngredient struct {
	ID            string        `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID     string        `gorm:"type:uuid;not null;uniqueIndex:idx_product_ingredient" json:"product_id"`
	IngredientID  string        `gorm:"type:uuid;not null;uniqueIndex:idx_product_ingredient" json:"ingredient_id"`
	SelectionType SelectionType `gorm:"type:varchar(10);not null" json:"selection_type"`
	IsRequired    bool          `gorm:"not null;default:false" json:"is_required"`
	MaxQuantity   *int          `json:"max_quantity,omitempty"`
	SortOrder     int           `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt     time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}
