package server

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/simonhull/firebird-suite/heron/pkg/logger"
)

// DefaultDebounce is the quiet period after the last change before a
// rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// Watch calls rebuild whenever files under dirs change, until ctx is
// cancelled. Bursts of events within debounce trigger a single rebuild.
// Rebuild errors are logged and watching continues.
func Watch(ctx context.Context, dirs []string, debounce time.Duration, log logger.Logger, rebuild func() error) error {
	if log == nil {
		log = logger.NewSilentLogger()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	for _, dir := range dirs {
		if err := addRecursive(w, dir); err != nil {
			return err
		}
	}
	log.Info("Watching for changes", logger.F("dirs", dirs))

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(w, event.Name); err != nil {
						log.Warn("Failed to watch new directory", logger.F("dir", event.Name), logger.F("error", err))
					}
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("Change detected", logger.F("file", event.Name), logger.F("op", event.Op.String()))
			timer.Reset(debounce)

		case <-timer.C:
			if err := rebuild(); err != nil {
				log.Error("Rebuild failed", logger.F("error", err))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error", logger.F("error", err))
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
