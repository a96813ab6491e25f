// Package model はドメインモデルを定義する。
package model

import "time"

// UserAccount はサービス利用ユーザーのアカウントを表す。
// Nameは未設定の場合に空文字列となる。
type UserAccount struct {
	ID         string
	Email      string
	Name       string
	FacebookID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FacebookUser はFacebookのユーザー情報APIから取得した識別情報を表す。
type FacebookUser struct {
	Name       string
	Email      string
	FacebookID string
}

// AuthenticationInput はFacebookログインの入力を表す。
type AuthenticationInput struct {
	Token string
}

// CreateFromFacebookInput はFacebook情報からアカウントを新規作成する際の入力。
type CreateFromFacebookInput struct {
	Email      string
	Name       string
	FacebookID string
}

// UpdateWithFacebookInput は既存アカウントをFacebook情報で更新する際の入力。
type UpdateWithFacebookInput struct {
	ID         string
	Name       string
	FacebookID string
}
