package model

import "time"

// 販売商品
type Item struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Details string `gorm:"type:text" json:"details"`
	//価格（セント単位の整数）
	Price int64 `gorm:"not null" json:"price"`
	Stock int64 `gorm:"not null" json:"stock"`
	Img   string `gorm:"type:varchar(512)" json:"img"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
