package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settle is how long the file must stay quiet before it is re-read, so an editor's
// truncate-then-write produces one reload.
const settle = 100 * time.Millisecond

// Watch reloads path whenever it changes and hands the result to fn, until ctx is done.
// fn receives either a valid config or the load error; it runs on the watcher goroutine.
// The parent directory is watched so rename-on-save editors are seen.
func Watch(ctx context.Context, path string, log *zap.Logger, fn func(*Config, error)) error {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	log.Debug("watching config", zap.String("path", target))

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(settle)
			} else {
				timer.Reset(settle)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			c, err := Load(target)
			if err != nil {
				log.Warn("config reload failed", zap.Error(err))
			} else {
				log.Info("config reloaded", zap.String("path", target))
			}
			fn(c, err)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watcher error", zap.Error(err))
		}
	}
}
