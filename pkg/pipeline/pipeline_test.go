package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/blockfill/pkg/cache"
	"github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/observability"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"gif", false},
		{"dot", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"wireframe", false},
		{"handdrawn", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	want := tiling.Config{
		Width: DefaultWidth, Height: DefaultHeight,
		MinBlock: DefaultMinBlock, MaxBlock: DefaultMaxBlock,
		MaxSteps: DefaultMaxSteps, Seed: 0, Strategy: DefaultStrategy,
	}
	if got := opts.Config(); got != want {
		t.Errorf("Config() = %+v, want %+v", got, want)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Style != DefaultStyle || opts.CellSize != DefaultCellSize {
		t.Errorf("Style = %q, CellSize = %d", opts.Style, opts.CellSize)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}

	big := Options{MinBlock: 30}
	big.SetGenerateDefaults()
	if big.MaxBlock != 30 {
		t.Errorf("MaxBlock = %d, want 30", big.MaxBlock)
	}
}

func TestOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidConfig},
		{"min above max", Options{MinBlock: 5, MaxBlock: 2}, errors.ErrCodeInvalidConfig},
		{"unknown strategy", Options{Strategy: "spiral"}, errors.ErrCodeInvalidConfig},
		{"unknown format", Options{Formats: []string{"pdf"}}, errors.ErrCodeInvalidFormat},
		{"unknown style", Options{Style: "handdrawn"}, errors.ErrCodeInvalidStyle},
		{"huge cells", Options{CellSize: 1000}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{FrameStride: 5, MaxFrames: 50}
	opts.SetRenderDefaults()

	if got := opts.ArtifactKeyOpts(FormatSVG).Stride; got != 0 {
		t.Errorf("svg stride = %d, want 0", got)
	}
	if got := opts.ArtifactKeyOpts(FormatGIF).Stride; got != 5 {
		t.Errorf("gif stride = %d, want 5", got)
	}
	opts.FrameStride = 0
	if got := opts.ArtifactKeyOpts(FormatGIF).Stride; got != -50 {
		t.Errorf("gif stride = %d, want -50", got)
	}
}

func TestRenderAllFormats(t *testing.T) {
	opts := Options{Width: 12, Height: 8, MinBlock: 2, MaxBlock: 4, Seed: 3, CellSize: 4,
		Formats: []string{FormatSVG, FormatPNG, FormatJSON, FormatGIF, FormatDOT}}
	tl, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := Render(tl, opts)
	if err != nil {
		t.Fatal(err)
	}
	prefixes := map[string]string{
		FormatSVG:  "<svg",
		FormatPNG:  "\x89PNG",
		FormatJSON: "{",
		FormatGIF:  "GIF89a",
		FormatDOT:  "graph G {",
	}
	for format, prefix := range prefixes {
		if !strings.HasPrefix(string(artifacts[format]), prefix) {
			t.Errorf("%s artifact starts with %.8q, want %q", format, artifacts[format], prefix)
		}
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, Options{Width: 10, Height: 10, Seed: 1})
	if err == nil || !strings.Contains(err.Error(), "context canceled") {
		t.Errorf("error = %v, want context canceled", err)
	}
}

func TestRunnerCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{Width: 20, Height: 10, MinBlock: 2, MaxBlock: 5, Seed: 7, Formats: []string{FormatSVG, FormatJSON}}
	ctx := context.Background()

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.GenerateHit || first.CacheInfo.RenderHit {
		t.Errorf("first run hit cache: %+v", first.CacheInfo)
	}
	if first.Stats.Rects == 0 || first.Stats.Coverage != 1 || first.TilingHash == "" {
		t.Errorf("stats = %+v, hash %q", first.Stats, first.TilingHash)
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.GenerateHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run missed cache: %+v", second.CacheInfo)
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached SVG differs")
	}
	if first.TilingHash != second.TilingHash {
		t.Error("tiling hash differs between runs")
	}

	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.GenerateHit {
		t.Error("Refresh should bypass the tiling cache")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnGenerateStart(context.Context, string, int) { h.record("generate") }
func (h *recordingHooks) OnRenderStart(context.Context, []string)      { h.record("render") }

func TestRunnerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	runner := NewRunner(nil, nil, nil)
	if _, err := runner.Execute(context.Background(), Options{Width: 5, Height: 5, Seed: 1}); err != nil {
		t.Fatal(err)
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if strings.Join(hooks.events, ",") != "generate,render" {
		t.Errorf("events = %v", hooks.events)
	}
}
