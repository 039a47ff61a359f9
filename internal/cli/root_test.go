package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/blockfill/pkg/store"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

// sandbox points the config, cache and data directories at a temp dir.
func sandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	return executeWith(t, New(io.Discard, LogInfo), args...)
}

func executeWith(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "blockfill.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func readTiling(t *testing.T, path string) *tiling.Tiling {
	t.Helper()
	tl, err := tiling.ReadTilingFile(path)
	if err != nil {
		t.Fatalf("ReadTilingFile(%s): %v", path, err)
	}
	return tl
}

func TestGenerateCommand(t *testing.T) {
	dir := sandbox(t)
	out := filepath.Join(dir, "tiling.json")

	if err := execute(t, "generate", "--width", "10", "--height", "10", "--min", "3", "--max", "5", "-o", out); err != nil {
		t.Fatalf("generate: %v", err)
	}

	tl := readTiling(t, out)
	if tl.Reason != tiling.ReasonExhausted {
		t.Errorf("Reason = %q, want %q", tl.Reason, tiling.ReasonExhausted)
	}
	if tl.Area() != 100 {
		t.Errorf("Area() = %d, want 100", tl.Area())
	}
	if tl.Seed != 3 {
		t.Errorf("Seed = %d, want default 3", tl.Seed)
	}
}

func TestGenerateInvalidFlags(t *testing.T) {
	dir := sandbox(t)
	out := filepath.Join(dir, "tiling.json")

	tests := [][]string{
		{"generate", "--width", "0", "-o", out},
		{"generate", "--min", "9", "--max", "2", "-o", out},
		{"generate", "--strategy", "spiral", "-o", out},
	}
	for _, args := range tests {
		if err := execute(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output written despite invalid flags")
	}
}

func TestConfigFileAndFlagOverride(t *testing.T) {
	dir := sandbox(t)
	cfg := writeConfig(t, dir, `
[grid]
width = 6
height = 4

[blocks]
min = 1
max = 3

[generation]
seed = 9
strategy = "topleft"
`)
	out := filepath.Join(dir, "tiling.json")

	if err := execute(t, "--config", cfg, "generate", "-o", out); err != nil {
		t.Fatalf("generate: %v", err)
	}
	tl := readTiling(t, out)
	if tl.Width != 6 || tl.Height != 4 || tl.Seed != 9 || tl.Strategy != tiling.StrategyTopLeft {
		t.Errorf("got %dx%d seed %d %s, want 6x4 seed 9 topleft", tl.Width, tl.Height, tl.Seed, tl.Strategy)
	}

	if err := execute(t, "--config", cfg, "generate", "--width", "8", "-o", out); err != nil {
		t.Fatalf("generate: %v", err)
	}
	tl = readTiling(t, out)
	if tl.Width != 8 || tl.Height != 4 {
		t.Errorf("got %dx%d, want 8x4 (flag overrides file)", tl.Width, tl.Height)
	}
}

func TestConfigFileErrors(t *testing.T) {
	dir := sandbox(t)
	bad := writeConfig(t, dir, "[grid]\nwidht = 3\n")

	if err := execute(t, "--config", bad, "generate"); err == nil {
		t.Error("expected error for unknown config key")
	}
	if err := execute(t, "--config", filepath.Join(dir, "missing.toml"), "generate"); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := sandbox(t)
	in := filepath.Join(dir, "tiling.json")
	if err := execute(t, "generate", "--width", "12", "--height", "8", "--min", "2", "--max", "4", "-o", in); err != nil {
		t.Fatalf("generate: %v", err)
	}

	base := filepath.Join(dir, "out")
	if err := execute(t, "render", in, "-f", "svg,png,json", "--cell", "4", "-o", base); err != nil {
		t.Fatalf("render: %v", err)
	}

	prefixes := map[string]string{"svg": "<svg", "png": "\x89PNG", "json": "{"}
	for format, prefix := range prefixes {
		data, err := os.ReadFile(base + "." + format)
		if err != nil {
			t.Errorf("%s: %v", format, err)
			continue
		}
		if !bytes.HasPrefix(data, []byte(prefix)) {
			t.Errorf("%s output starts with %.8q", format, data)
		}
	}
}

func TestRenderDoesNotOverwriteInput(t *testing.T) {
	dir := sandbox(t)
	in := filepath.Join(dir, "tiling.json")
	if err := execute(t, "generate", "--width", "6", "--height", "4", "--min", "2", "--max", "3", "-o", in); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := execute(t, "render", in, "-f", "json,svg"); err != nil {
		t.Fatalf("render: %v", err)
	}

	readTiling(t, in)
	for _, name := range []string{"tiling.render.json", "tiling.svg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestRenderFromFlags(t *testing.T) {
	dir := sandbox(t)
	out := filepath.Join(dir, "anim.gif")

	if err := execute(t, "render", "--width", "8", "--height", "6", "--min", "2", "--max", "3", "-f", "gif", "--stride", "2", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("GIF89a")) {
		t.Errorf("output starts with %.6q, want GIF89a", data)
	}
}

func TestStatsAndGraphCommands(t *testing.T) {
	dir := sandbox(t)
	in := filepath.Join(dir, "tiling.json")
	if err := execute(t, "generate", "--width", "12", "--height", "8", "--min", "2", "--max", "4", "-o", in); err != nil {
		t.Fatalf("generate: %v", err)
	}

	hist := filepath.Join(dir, "areas.png")
	if err := execute(t, "stats", in, "--hist", hist, "--bins", "5"); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if data, err := os.ReadFile(hist); err != nil || !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Errorf("histogram not written as PNG (err %v)", err)
	}

	if err := execute(t, "graph", in, "-f", "dot", "--weighted", "--top", "3"); err != nil {
		t.Fatalf("graph: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "tiling.graph.dot"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("graph G {")) {
		t.Errorf("graph output starts with %.10q", data)
	}

	if err := execute(t, "graph", in, "-f", "pdf"); err == nil {
		t.Error("expected error for unsupported graph format")
	}
}

func TestRunsCommands(t *testing.T) {
	tests := []struct {
		name   string
		config func(dir string) string
	}{
		{"file", func(dir string) string { return "" }},
		{"sqlite", func(dir string) string {
			return fmt.Sprintf("[store]\ndriver = \"sqlite\"\ndsn = %q\n", filepath.Join(dir, "runs.db"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := sandbox(t)
			args := []string{}
			if cfg := tt.config(dir); cfg != "" {
				args = append(args, "--config", writeConfig(t, dir, cfg))
			}
			with := func(extra ...string) []string { return append(append([]string{}, args...), extra...) }

			c := New(io.Discard, LogInfo)
			if err := executeWith(t, c, with("generate", "--width", "6", "--height", "4", "--min", "2", "--max", "3",
				"-o", filepath.Join(dir, "t.json"), "--save", "--name", "demo")...); err != nil {
				t.Fatalf("generate --save: %v", err)
			}

			runs := listRuns(t, c)
			if len(runs) != 1 || runs[0].Name != "demo" {
				t.Fatalf("runs = %+v, want one run named demo", runs)
			}
			id := runs[0].ID

			if err := execute(t, with("runs", "list")...); err != nil {
				t.Fatalf("runs list: %v", err)
			}
			shown := filepath.Join(dir, "shown.json")
			if err := execute(t, with("runs", "show", id, "-o", shown)...); err != nil {
				t.Fatalf("runs show: %v", err)
			}
			if got := readTiling(t, shown); got.Area() != 24 {
				t.Errorf("shown tiling covers %d cells, want 24", got.Area())
			}
			if err := execute(t, with("render", "--run", id, "-f", "svg", "-o", filepath.Join(dir, "run.svg"))...); err != nil {
				t.Fatalf("render --run: %v", err)
			}

			if err := execute(t, with("runs", "delete", id)...); err != nil {
				t.Fatalf("runs delete: %v", err)
			}
			if runs := listRuns(t, c); len(runs) != 0 {
				t.Errorf("runs after delete = %d, want 0", len(runs))
			}
			if err := execute(t, with("runs", "show", id)...); err == nil {
				t.Error("expected error showing a deleted run")
			}
		})
	}
}

func listRuns(t *testing.T, c *CLI) []*store.Run {
	t.Helper()
	ctx := context.Background()
	s, err := c.openStore(ctx)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer s.Close()
	runs, err := s.List(ctx, store.ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return runs
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "tiling.json", "tiling"},
		{"", "dir/run.json", "dir/run"},
		{"out.svg", "tiling.json", "out"},
		{"out.gif", "tiling.json", "out"},
		{"out", "tiling.json", "out"},
		{"out.v2", "tiling.json", "out.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}
