package model

import "time"

type IngredientType string

const (
	IngredientTypeBun       IngredientType = "bun"
	IngredientTypePatty     IngredientType = "patty"
	IngredientTypeCheese    IngredientType = "cheese"
	IngredientTypeVegetable IngredientType = "vegetable"
	IngredientTypeSauce     IngredientType = "sauce"
	IngredientTypeAddon     IngredientType = "addon"
)

type Ingredient struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Price     int64          `gorm:"not null" json:"price"`
	Type      IngredientType `gorm:"type:varchar(20);not null" json:"type"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
