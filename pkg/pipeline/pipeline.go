// Package pipeline provides the generate → render pipeline for blockfill.
//
// This package implements the complete pipeline that is used by the CLI and
// the HTTP server. By centralizing this logic, both entry points share the
// same defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: Run a tiling session to completion
//  2. Render: Produce output in various formats (SVG, PNG, JSON, GIF, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Width:   100,
//	    Height:  50,
//	    Seed:    3,
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	t, err := runner.Generate(ctx, opts)
//	artifacts, err := runner.Render(ctx, t, opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockfill/pkg/cache"
	"github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/render/sink"
	"github.com/matzehuels/blockfill/pkg/render/styles"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and server
// =============================================================================

const (
	// DefaultWidth is the default grid width in cells.
	DefaultWidth = 100

	// DefaultHeight is the default grid height in cells.
	DefaultHeight = 50

	// DefaultMinBlock is the default preferred minimum block side.
	DefaultMinBlock = 3

	// DefaultMaxBlock is the default maximum block side.
	DefaultMaxBlock = 20

	// DefaultMaxSteps bounds the number of rectangles placed.
	DefaultMaxSteps = 100000

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = int64(3)

	// DefaultCellSize is the default side of one cell in pixels.
	DefaultCellSize = sink.DefaultCellSize
)

// DefaultStrategy is the default planner.
const DefaultStrategy = tiling.StrategyGrowth

// DefaultStyle is the default visual style.
const DefaultStyle = styles.NameSimple

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatGIF  = "gif"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatGIF:  true,
	FormatDOT:  true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatJSON: "application/json",
	FormatGIF:  "image/gif",
	FormatDOT:  "text/vnd.graphviz",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
//
// Zero values mean "use the default" for every field except Seed, where
// zero is a valid seed. Callers that want DefaultSeed set it explicitly.
type Options struct {
	// Generate options
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	MinBlock int    `json:"min_block,omitempty"`
	MaxBlock int    `json:"max_block,omitempty"`
	MaxSteps int    `json:"max_steps,omitempty"`
	Seed     int64  `json:"seed"`
	Strategy string `json:"strategy,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	CellSize    int      `json:"cell_size,omitempty"`
	GridDots    bool     `json:"grid_dots,omitempty"`
	FrameStride int      `json:"frame_stride,omitempty"`
	MaxFrames   int      `json:"max_frames,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tiling is the generated tiling.
	Tiling *tiling.Tiling

	// TilingHash is the content hash of the tiling.
	TilingHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rects        int
	Steps        int
	Coverage     float64
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // Whether the tiling came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, json, gif, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !slices.Contains(styles.Names(), style) {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: %v)", style, styles.Names())
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetGenerateDefaults sets default values for tiling generation.
func (o *Options) SetGenerateDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MinBlock == 0 {
		o.MinBlock = DefaultMinBlock
	}
	if o.MaxBlock == 0 {
		o.MaxBlock = max(DefaultMaxBlock, o.MinBlock)
	}
	if o.MaxSteps == 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	if o.Strategy == "" {
		o.Strategy = string(DefaultStrategy)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForGenerate validates and sets defaults for tiling generation.
func (o *Options) ValidateForGenerate() error {
	o.SetGenerateDefaults()
	return o.Config().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.CellSize == 0 {
		o.CellSize = DefaultCellSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	return errors.ValidateCellSize(o.CellSize)
}

// Config returns the session configuration described by o.
func (o *Options) Config() tiling.Config {
	return tiling.Config{
		Width:    o.Width,
		Height:   o.Height,
		MinBlock: o.MinBlock,
		MaxBlock: o.MaxBlock,
		MaxSteps: o.MaxSteps,
		Seed:     o.Seed,
		Strategy: tiling.Strategy(o.Strategy),
	}
}

// TilingKeyOpts returns cache key options for tiling generation.
func (o *Options) TilingKeyOpts() cache.TilingKeyOpts {
	return cache.TilingKeyOpts{
		Width:    o.Width,
		Height:   o.Height,
		MinBlock: o.MinBlock,
		MaxBlock: o.MaxBlock,
		MaxSteps: o.MaxSteps,
		Seed:     o.Seed,
		Strategy: o.Strategy,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:   format,
		Style:    o.Style,
		CellSize: o.CellSize,
		GridDots: o.GridDots,
	}
	if format == FormatGIF {
		opts.Stride = o.FrameStride
		if opts.Stride == 0 {
			opts.Stride = -o.MaxFrames
		}
	}
	return opts
}
