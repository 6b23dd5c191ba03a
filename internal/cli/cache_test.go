package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "vendorjs")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join(base, "vendorjs") {
		t.Errorf("cacheDir() = %q, want it under XDG_CACHE_HOME", dir)
	}
}

func TestClearDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "vendorjs")
	for _, name := range []string{"ab/abcdef.json", "cd/cdef01.json", "cd/cdef02.json"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	count, err := clearDir(dir)
	if err != nil {
		t.Fatalf("clearDir() error: %v", err)
	}
	if count != 3 {
		t.Errorf("clearDir() = %d, want 3", count)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("cache directory should be removed")
	}
}

func TestClearDirMissing(t *testing.T) {
	count, err := clearDir(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("clearDir() error: %v", err)
	}
	if count != 0 {
		t.Errorf("clearDir() = %d, want 0", count)
	}
}

func TestNewCacheNoCache(t *testing.T) {
	c, err := newCache(t.Context(), true, "redis://unused:6379")
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	defer c.Close()
	if _, ok, _ := c.Get(t.Context(), "k"); ok {
		t.Error("null cache should never hit")
	}
}

func TestNewCacheFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c, err := newCache(t.Context(), false, "")
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	defer c.Close()

	if err := c.Set(t.Context(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, ok, err := c.Get(t.Context(), "k")
	if err != nil || !ok || string(data) != "v" {
		t.Errorf("Get() = %q, %v, %v", data, ok, err)
	}
}

func TestNewCacheUnsupported(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	if _, err := newCache(t.Context(), false, "memcached://x"); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("newCache() error = %v, want unsupported cache url", err)
	}
}
