package app

import (
	"fmt"
	"strings"
)

// Command はfbloginバイナリのサブコマンド。
type Command string

const (
	CommandServe       Command = "serve"
	CommandMigrate     Command = "migrate"
	CommandHealthcheck Command = "healthcheck"
)

// commands は受け付けるサブコマンドと説明。Usageの表示順を兼ねる。
var commands = []struct {
	cmd  Command
	desc string
}{
	{CommandServe, "ログインAPIサーバーを起動する（デフォルト）"},
	{CommandMigrate, "usersテーブルのマイグレーションを適用する"},
	{CommandHealthcheck, "ローカルの/healthを確認する（Docker HEALTHCHECK用）"},
}

// ParseCommand は先頭の引数をサブコマンドとして解釈する。
// 引数なしはserve。未知のサブコマンドもserveとして扱い、knownにfalseを返す。
func ParseCommand(args []string) (cmd Command, known bool) {
	if len(args) == 0 {
		return CommandServe, true
	}
	for _, c := range commands {
		if string(c.cmd) == args[0] {
			return c.cmd, true
		}
	}
	return CommandServe, false
}

// Usage はサブコマンド一覧の説明文を返す。
func Usage() string {
	var b strings.Builder
	b.WriteString("usage: fblogin [command]\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "  %-12s %s\n", c.cmd, c.desc)
	}
	return b.String()
}
