package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestCompletionCommand(t *testing.T) {
	sandbox(t)

	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "__blockfill_"},
		{"zsh", "#compdef blockfill"},
		{"fish", "complete -c blockfill"},
		{"powershell", "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var out bytes.Buffer
			root := New(io.Discard, LogInfo).RootCommand()
			root.SetArgs([]string{"completion", tt.shell})
			root.SetOut(&out)
			root.SetErr(io.Discard)
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatalf("completion %s: %v", tt.shell, err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("completion %s output missing %q", tt.shell, tt.want)
			}
		})
	}
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	sandbox(t)
	if err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
	if err := execute(t, "completion"); err == nil {
		t.Error("expected error without a shell")
	}
}
