package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vendorjs.toml")
	writeFile(t, path, "[targets.a]\nsources = [\"x\"]\n")

	ctx, cancel := context.WithCancel(t.Context())
	changed := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, 20*time.Millisecond, func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	writeFile(t, filepath.Join(dir, "unrelated.txt"), "noise")
	writeFile(t, path, "[targets.a]\nsources = [\"y\"]\n")

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("change was not reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watchFile() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watchFile did not stop after cancellation")
	}
}

func TestWatchFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "vendorjs.toml")
	if err := watchFile(t.Context(), path, time.Millisecond, func() {}); err == nil {
		t.Error("watchFile() should fail when the directory does not exist")
	}
	if _, err := os.Stat(filepath.Dir(path)); !os.IsNotExist(err) {
		t.Error("watchFile() must not create directories")
	}
}
