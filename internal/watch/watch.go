// Package watch reports batches of changed documents in a set of directories.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 500 * time.Millisecond

// Editor droppings that never trigger a run.
var ignoreSuffixes = []string{".swp", ".swx", ".tmp", "~", ".DS_Store"}

type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	accept   func(path string) bool
	logger   *zap.Logger
}

type Option func(*Watcher)

// WithDebounce sets how long the directories must stay quiet before a batch fires.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithFilter limits reported paths to those accepted by fn.
func WithFilter(fn func(path string) bool) Option {
	return func(w *Watcher) { w.accept = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New starts watching dirs. They are not watched recursively.
func New(dirs []string, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fw:       fw,
		debounce: DefaultDebounce,
		accept:   func(string) bool { return true },
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	return w, nil
}

// Run blocks until ctx is done, calling onChange with the sorted set of paths that
// changed during each burst of events.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, paths []string)) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("document changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			pending[event.Name] = struct{}{}
			timer.Reset(w.debounce)
			fire = timer.C

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			clear(pending)
			sort.Strings(paths)

			onChange(ctx, paths)
		}
	}
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	for _, suffix := range ignoreSuffixes {
		if strings.HasSuffix(base, suffix) {
			return false
		}
	}

	return w.accept(event.Name)
}
