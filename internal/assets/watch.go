package assets

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Jay-Lokhande/lazmy/internal/logging"
)

const watchDebounce = 250 * time.Millisecond

// Watch re-probes names in dir whenever one of them is created, written,
// removed or renamed, and passes the result to onChange. Rapid bursts are
// coalesced. It blocks until ctx is done.
func Watch(ctx context.Context, dir string, names []string, onChange func(map[string]bool), log *zap.Logger) error {
	log = logging.OrNop(log)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	log.Debug("watching assets", zap.String("dir", dir), zap.Strings("names", names))

	src := DirSource{Dir: dir}
	var (
		pending bool
		timer   = time.NewTimer(watchDebounce)
	)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !slices.Contains(names, filepath.Base(ev.Name)) {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			log.Debug("asset changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if !pending {
				pending = true
				timer.Reset(watchDebounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("asset watcher error", zap.Error(err))

		case <-timer.C:
			pending = false
			onChange(ProbeAll(ctx, src, names...))
		}
	}
}
