// Package cli implements the blockfill command-line interface.
//
// Commands generate tilings, render them to SVG/PNG/GIF/JSON/DOT, show a
// live terminal view of a generation session, summarize block statistics,
// manage stored runs and serve the HTTP API. Values from the configuration
// file (see internal/config) are overridden by flags given on the command
// line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockfill/internal/config"
	"github.com/matzehuels/blockfill/pkg/cache"
	"github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/pipeline"
	"github.com/matzehuels/blockfill/pkg/store"
	"github.com/matzehuels/blockfill/pkg/store/mongo"
	"github.com/matzehuels/blockfill/pkg/store/sqlite"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "blockfill"

	// sqliteFile is the database file name under the data directory.
	sqliteFile = "runs.db"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.File
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration file named by --config, or the
// default location when the flag is empty.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend, "store", cfg.Store.Driver)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.cfg.Cache.Prefix)
	}
	runner := pipeline.NewRunner(cc, keyer, c.Logger)
	runner.TTL = c.cfg.Cache.TTL.Duration
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			URL:    c.cfg.Cache.RedisURL,
			Addr:   c.cfg.Cache.RedisAddr,
			Prefix: c.cfg.Cache.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		return rc, nil
	}
	dir, err := config.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Store Factory
// =============================================================================

// openStore opens the run store selected by store.driver.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	sc := c.cfg.Store
	switch sc.Driver {
	case config.StoreNone:
		return nil, errors.New(errors.ErrCodeUnsupported, "no run store configured (store.driver = none)")
	case config.StoreSQLite:
		path := config.ExpandHome(sc.DSN)
		if path == "" {
			dir, err := config.DataDir()
			if err != nil {
				return nil, fmt.Errorf("get data dir: %w", err)
			}
			path = filepath.Join(dir, sqliteFile)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		s, err := sqlite.Open(ctx, path, sqlite.WithLogger(c.Logger))
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreMongo:
		s, err := mongo.Open(ctx, mongo.Config{URI: sc.DSN, Database: sc.Database})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	dir := config.ExpandHome(sc.DSN)
	if dir == "" {
		data, err := config.DataDir()
		if err != nil {
			return nil, fmt.Errorf("get data dir: %w", err)
		}
		dir = filepath.Join(data, "runs")
	}
	fs, err := store.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return fs, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
