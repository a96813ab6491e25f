// Package security はアプリケーションのセキュリティ機能を提供する。
//
// NameSanitizerService は外部IdPから受け取った表示名からHTMLを除去し、
// 保存・表示時のXSSリスクを防ぐ。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// NameSanitizerService は表示名のサニタイズ機能のインターフェースを定義する。
type NameSanitizerService interface {
	// Sanitize はすべてのHTMLタグを除去したプレーンテキストを返す。
	// 前後の空白は取り除く。
	Sanitize(name string) string
}

// nameSanitizer はNameSanitizerServiceの実装。
// bluemondayのStrictPolicyを保持し、スレッドセーフにサニタイズ処理を行う。
type nameSanitizer struct {
	policy *bluemonday.Policy
}

// NewNameSanitizer はNameSanitizerServiceの新しいインスタンスを生成する。
func NewNameSanitizer() *nameSanitizer {
	return &nameSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// 実体参照の多重エンコードを展開する回数の上限
const maxSanitizePasses = 8

// Sanitize はすべてのHTMLタグを除去したプレーンテキストを返す。
// bluemondayはテキストをHTMLエスケープして返すため、保存用にアンエスケープする。
// アンエスケープで実体参照からタグが現れるため、出力が変わらなくなるまで繰り返す。
// 上限までに収束しない場合はエスケープ済みの文字列を返す。
func (s *nameSanitizer) Sanitize(name string) string {
	current := strings.TrimSpace(name)
	for i := 0; i < maxSanitizePasses; i++ {
		next := strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(current)))
		if next == current {
			return next
		}
		current = next
	}
	return strings.TrimSpace(s.policy.Sanitize(current))
}
