// Package fsutil provides the filesystem operations used to place installed
// resources: recursive copy, move with a cross-device fallback, and path
// containment checks.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	cp "github.com/otiai10/copy"
)

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Copy recursively copies src to dst, replacing anything already at dst.
// The parent of dst is created as needed.
func Copy(src, dst string) error {
	if err := prepare(dst); err != nil {
		return err
	}
	if err := cp.Copy(src, dst, cp.Options{
		OnSymlink:     func(string) cp.SymlinkAction { return cp.Deep },
		PreserveTimes: true,
	}); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return nil
}

// Move moves src to dst, replacing anything already at dst. When a rename is
// not possible (different devices) it falls back to copy and remove.
func Move(src, dst string) error {
	if err := prepare(dst); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := cp.Copy(src, dst); err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}
	return os.RemoveAll(src)
}

// Within reports whether path lies inside dir (or equals it).
// Both paths are cleaned and made absolute first.
func Within(path, dir string) bool {
	p, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	d, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(d, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// RemoveGlob removes every entry of dir whose name matches pattern and
// returns the removed paths. A missing dir is not an error.
func RemoveGlob(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, m := range matches {
		if err := os.RemoveAll(m); err != nil {
			return removed, err
		}
		removed = append(removed, m)
	}
	return removed, nil
}

func prepare(dst string) error {
	if err := os.RemoveAll(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("replace %s: %w", dst, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}
	return nil
}
