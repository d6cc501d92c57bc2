package logs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/technosupport/site-safety/internal/metrics"
)

// Watcher observes writes to the detection log and feeds the write metrics.
// It never caches events: queries still read the file.
type Watcher struct {
	path string
	log  *zap.Logger
	now  func() time.Time
}

func NewWatcher(path string, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{path: filepath.Clean(path), log: logger.Named("logs.watcher"), now: time.Now}
}

// Run blocks until ctx is done. The parent directory is watched so the log
// file may be created after startup or replaced by rotation.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify init: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.log.Info("watching detection log", zap.String("path", w.path))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				metrics.RecordLogWrite(w.now())
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.log.Info("detection log removed or rotated", zap.String("op", event.Op.String()))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("detection log watcher error", zap.Error(err))
		}
	}
}
