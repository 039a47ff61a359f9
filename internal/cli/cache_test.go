package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheClear(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	fc, err := openFileCache()
	if err != nil {
		t.Fatalf("openFileCache: %v", err)
	}
	if err := fc.Set(context.Background(), "tiling:abc", []byte("{}"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _, err := fc.Usage()
	if err != nil {
		t.Fatalf("Usage: %v", err)
	}
	if entries != 0 {
		t.Errorf("entries after clear = %d, want 0", entries)
	}
}

func TestCacheDirFollowsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	fc, err := openFileCache()
	if err != nil {
		t.Fatalf("openFileCache: %v", err)
	}
	if want := filepath.Join(dir, appName); fc.Dir() != want {
		t.Errorf("cache dir = %q, want %q", fc.Dir(), want)
	}
	if _, err := os.Stat(fc.Dir()); err != nil {
		t.Errorf("cache dir not created: %v", err)
	}
}
