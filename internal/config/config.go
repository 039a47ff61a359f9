// Package config loads the blockfill configuration file.
//
// The file is TOML. Every section is optional and missing keys keep the
// pipeline defaults:
//
//	[grid]
//	width = 100
//	height = 50
//
//	[blocks]
//	min = 3
//	max = 20
//
//	[generation]
//	seed = 3
//	strategy = "grow"
//	max_steps = 100000
//
//	[render]
//	cell_size = 10
//	style = "simple"
//	formats = ["svg"]
//
//	[cache]
//	backend = "file"    # file | redis | none
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[store]
//	driver = "sqlite"   # file | sqlite | mongo | none
//	dsn = "~/.local/share/blockfill/runs.db"
//	database = "blockfill"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/pipeline"
)

const appName = "blockfill"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store drivers.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
	StoreNone   = "none"
)

// DefaultAddr is the default HTTP listen address.
const DefaultAddr = ":8080"

// File mirrors the configuration file.
type File struct {
	Grid       Grid       `toml:"grid"`
	Blocks     Blocks     `toml:"blocks"`
	Generation Generation `toml:"generation"`
	Render     Render     `toml:"render"`
	Cache      Cache      `toml:"cache"`
	Store      Store      `toml:"store"`
	Server     Server     `toml:"server"`
}

type Grid struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Blocks struct {
	Min int `toml:"min"`
	Max int `toml:"max"`
}

type Generation struct {
	Seed     int64  `toml:"seed"`
	Strategy string `toml:"strategy"`
	MaxSteps int    `toml:"max_steps"`
}

type Render struct {
	CellSize int      `toml:"cell_size"`
	Style    string   `toml:"style"`
	Formats  []string `toml:"formats"`
}

type Cache struct {
	Backend   string   `toml:"backend"`
	RedisAddr string   `toml:"redis_addr"`
	RedisURL  string   `toml:"redis_url"`
	Prefix    string   `toml:"prefix"`
	TTL       Duration `toml:"ttl"`
}

type Store struct {
	Driver   string `toml:"driver"`
	DSN      string `toml:"dsn"`
	Database string `toml:"database"`
}

type Server struct {
	Addr string `toml:"addr"`
}

// Duration decodes TOML strings such as "90s" or "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *File {
	return &File{
		Grid:   Grid{Width: pipeline.DefaultWidth, Height: pipeline.DefaultHeight},
		Blocks: Blocks{Min: pipeline.DefaultMinBlock, Max: pipeline.DefaultMaxBlock},
		Generation: Generation{
			Seed:     pipeline.DefaultSeed,
			Strategy: string(pipeline.DefaultStrategy),
			MaxSteps: pipeline.DefaultMaxSteps,
		},
		Render: Render{
			CellSize: pipeline.DefaultCellSize,
			Style:    pipeline.DefaultStyle,
			Formats:  []string{pipeline.FormatSVG},
		},
		Cache:  Cache{Backend: CacheFile},
		Store:  Store{Driver: StoreFile},
		Server: Server{Addr: DefaultAddr},
	}
}

// Load reads path on top of the defaults. An empty path means DefaultPath.
// A missing file at the default path is not an error; a missing file that
// was asked for explicitly is.
func Load(path string) (*File, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields. Numeric ranges are checked later by
// the pipeline so that flags can still override them.
func (f *File) Validate() error {
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, f.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q (valid: file, redis, none)", f.Cache.Backend)
	}
	if !slices.Contains([]string{StoreFile, StoreSQLite, StoreMongo, StoreNone}, f.Store.Driver) {
		return errors.New(errors.ErrCodeInvalidConfig, "store.driver %q (valid: file, sqlite, mongo, none)", f.Store.Driver)
	}
	if f.Store.Driver == StoreMongo && f.Store.DSN == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "store.dsn is required for mongo")
	}
	return pipeline.ValidateFormats(f.Render.Formats)
}

// Options converts the file into pipeline options.
func (f *File) Options() pipeline.Options {
	return pipeline.Options{
		Width:    f.Grid.Width,
		Height:   f.Grid.Height,
		MinBlock: f.Blocks.Min,
		MaxBlock: f.Blocks.Max,
		MaxSteps: f.Generation.MaxSteps,
		Seed:     f.Generation.Seed,
		Strategy: f.Generation.Strategy,
		Formats:  slices.Clone(f.Render.Formats),
		Style:    f.Render.Style,
		CellSize: f.Render.CellSize,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/blockfill/config.toml, falling back
// to ~/.config/blockfill/config.toml.
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DataDir returns $XDG_DATA_HOME/blockfill, falling back to
// ~/.local/share/blockfill.
func DataDir() (string, error) {
	if home := os.Getenv("XDG_DATA_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// CacheDir returns $XDG_CACHE_HOME/blockfill, falling back to
// ~/.cache/blockfill.
func CacheDir() (string, error) {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
