package model

import "time"

// 注文明細。価格とトッピングは注文時点のスナップショット。
type OrderItem struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     string `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   string `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int64  `gorm:"not null" json:"quantity"`
	// 単価（商品+トッピング）×個数の行合計
	Price int64 `gorm:"not null" json:"price"`
	// [{id, name, price}] のJSON文字列
	SelectedIngredients string    `gorm:"type:text;not null;default:'[]'" json:"selected_ingredients"`
	CreatedAt           time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
