package model

import "time"

// カートの明細。quantityは1以上。
type OrderItem struct {
	ID       int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID  int64 `gorm:"not null;index" json:"order_id"`
	ItemID   int64 `gorm:"not null;index" json:"item_id"`
	Quantity int64 `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
