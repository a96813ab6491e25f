// Package model はドメインモデルを定義する。
package model

import "fmt"

// AuthenticationError はアクセストークンをFacebookの識別情報に解決できなかったことを表す。
type AuthenticationError struct{}

// Error はerrorインターフェースを実装する。
func (e *AuthenticationError) Error() string {
	return "authentication failed"
}

// ErrAuthentication は認証失敗を表すセンチネル値。
// errors.Isで判定する。
var ErrAuthentication error = &AuthenticationError{}

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// NewUnauthorizedError は認証失敗エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証に失敗しました。",
		Category: "auth",
		Action:   "Facebookで再度ログインしてください。",
	}
}

// NewBadRequestError はリクエスト不正エラーを生成する。
// errのメッセージをそのままMessageに含める。
func NewBadRequestError(err error) *APIError {
	return &APIError{
		Code:     ErrCodeBadRequest,
		Message:  fmt.Sprintf("不正なリクエストです: %s", err.Error()),
		Category: "validation",
		Action:   "リクエスト内容を確認してください。",
	}
}

// NewInternalError は内部エラーを生成する。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
