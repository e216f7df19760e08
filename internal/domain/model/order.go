package model

import "time"

// Orderはユーザーのカート。IsOpen=trueの間だけ明細を変更できる。
// 1ユーザーにつきopenは1つ（アプリ層で維持、DBでは強制しない）
type Order struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`
	IsOpen bool  `gorm:"not null;default:true;index" json:"isOpen"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
