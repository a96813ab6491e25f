package app

import (
	"strings"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		want      Command
		wantKnown bool
	}{
		{name: "引数なしはserve", args: []string{}, want: CommandServe, wantKnown: true},
		{name: "serve", args: []string{"serve"}, want: CommandServe, wantKnown: true},
		{name: "migrate", args: []string{"migrate"}, want: CommandMigrate, wantKnown: true},
		{name: "healthcheck", args: []string{"healthcheck"}, want: CommandHealthcheck, wantKnown: true},
		{name: "未知のコマンドはserve", args: []string{"worker"}, want: CommandServe, wantKnown: false},
		{name: "余分な引数は無視", args: []string{"migrate", "--flag", "value"}, want: CommandMigrate, wantKnown: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := ParseCommand(tt.args)
			if got != tt.want || known != tt.wantKnown {
				t.Errorf("ParseCommand(%v) = (%q, %v), want (%q, %v)", tt.args, got, known, tt.want, tt.wantKnown)
			}
		})
	}
}

func TestUsage_ListsAllCommands(t *testing.T) {
	usage := Usage()
	for _, c := range []Command{CommandServe, CommandMigrate, CommandHealthcheck} {
		if !strings.Contains(usage, string(c)) {
			t.Errorf("Usage() does not mention %q:\n%s", c, usage)
		}
	}
}
