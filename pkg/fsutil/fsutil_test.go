package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src", "lib.js")
	dst := filepath.Join(dir, "out", "nested", "lib.js")
	writeFile(t, src, "var a;")
	writeFile(t, dst, "stale")

	if err := Copy(src, dst); err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if got := readFile(t, dst); got != "var a;" {
		t.Errorf("dst = %q, want %q", got, "var a;")
	}
	if !Exists(src) {
		t.Error("Copy() should keep the source")
	}
}

func TestCopyDirReplacesTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeFile(t, filepath.Join(src, "a.js"), "a")
	writeFile(t, filepath.Join(src, "sub", "b.js"), "b")
	writeFile(t, filepath.Join(dst, "old.js"), "old")

	if err := Copy(src, dst); err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if got := readFile(t, filepath.Join(dst, "sub", "b.js")); got != "b" {
		t.Errorf("nested file = %q, want %q", got, "b")
	}
	if Exists(filepath.Join(dst, "old.js")) {
		t.Error("Copy() should replace an existing target directory")
	}
}

func TestMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tmp", "underscore.js")
	dst := filepath.Join(dir, "vendor", "underscore.js")
	writeFile(t, src, "_")
	writeFile(t, dst, "old")

	if err := Move(src, dst); err != nil {
		t.Fatalf("Move() error: %v", err)
	}
	if Exists(src) {
		t.Error("Move() should remove the source")
	}
	if got := readFile(t, dst); got != "_" {
		t.Errorf("dst = %q, want %q", got, "_")
	}
}

func TestMoveMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := Move(filepath.Join(dir, "nope"), filepath.Join(dir, "out")); err == nil {
		t.Error("Move() should fail for a missing source")
	}
}

func TestWithin(t *testing.T) {
	tests := []struct {
		path, dir string
		want      bool
	}{
		{"/a/b/c.js", "/a/b", true},
		{"/a/b", "/a/b", true},
		{"/a/b/../c", "/a/b", false},
		{"/a/bc", "/a/b", false},
		{"/x/y", "/a", false},
		{"/a/b/..c/d", "/a/b", true},
	}
	for _, tt := range tests {
		if got := Within(tt.path, tt.dir); got != tt.want {
			t.Errorf("Within(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
		}
	}
}

func TestRemoveGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".vendorjs-1", "x.zip"), "z")
	writeFile(t, filepath.Join(dir, ".vendorjs-2", "y.zip"), "z")
	writeFile(t, filepath.Join(dir, "keep.js"), "k")

	removed, err := RemoveGlob(dir, ".vendorjs-*")
	if err != nil {
		t.Fatalf("RemoveGlob() error: %v", err)
	}
	if len(removed) != 2 {
		t.Errorf("removed %d entries, want 2", len(removed))
	}
	if !Exists(filepath.Join(dir, "keep.js")) {
		t.Error("RemoveGlob() removed a non-matching entry")
	}
	if _, err := RemoveGlob(filepath.Join(dir, "missing"), "*"); err != nil {
		t.Errorf("RemoveGlob() on missing dir error: %v", err)
	}
}
