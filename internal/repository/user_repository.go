package repository

import (
	"app/internal/domain/model"
	"context"
)

// 保存・取得を約束
// FindはヒットしないときNotFoundではなくnilを返す（認証ミドルウェアが
// 「ユーザー不在＝匿名続行」を判断するため）
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//usernameからユーザーを一件取得する。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}
