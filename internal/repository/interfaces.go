// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/fblogin/internal/model"
)

// LoadUserAccountParams はアカウント検索の条件。
type LoadUserAccountParams struct {
	Email string
}

// UserAccountRepository はユーザーアカウントの永続化インターフェース。
type UserAccountRepository interface {
	// Load はメールアドレスでアカウントを検索する。見つからない場合はnilを返す。
	Load(ctx context.Context, params LoadUserAccountParams) (*model.UserAccount, error)

	// CreateFromFacebook はFacebook情報からアカウントを新規作成する。
	CreateFromFacebook(ctx context.Context, input model.CreateFromFacebookInput) error

	// UpdateWithFacebook は既存アカウントの名前とFacebook IDを更新する。
	UpdateWithFacebook(ctx context.Context, input model.UpdateWithFacebookInput) error
}
