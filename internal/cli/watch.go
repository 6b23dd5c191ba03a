package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the bursts of events editors emit on save.
const watchDebounce = 200 * time.Millisecond

// watchConfig calls run every time the file at path changes, until ctx is
// done. The parent directory is watched so that editors which replace the
// file on save are still noticed.
func (c *CLI) watchConfig(ctx context.Context, path string, run func(context.Context)) error {
	return watchFile(ctx, path, watchDebounce, func() {
		loggerFromContext(ctx).Info("configuration changed", "path", filepath.Base(path))
		run(ctx)
		printNextStep("Watching for changes", path)
	})
}

func watchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	printNextStep("Watching for changes", path)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			pending = time.After(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			loggerFromContext(ctx).Warn("watch error", "err", err)
		case <-pending:
			pending = nil
			onChange()
		}
	}
}
