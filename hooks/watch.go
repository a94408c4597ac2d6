package hooks

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Loader turns a file path into a compiled template. Compilation stays
// outside this package; the watcher only decides when to reload.
type Loader func(path string) (Template, error)

// Watcher re-registers partials when their backing files change. The partial
// name is the file's base name without extension.
type Watcher struct {
	registry *PartialRegistry
	fsw      *fsnotify.Watcher
	load     Loader
	logger   *zap.Logger

	debounce    time.Duration
	lastEvent   map[string]time.Time
	lastEventMu sync.Mutex

	done chan struct{}
	once sync.Once
}

// Watch loads every regular file in dir through load, then keeps the
// registry in sync as files are created or rewritten. A nil logger disables
// diagnostics. Close the returned watcher to stop.
func (r *PartialRegistry) Watch(dir string, load Loader, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		registry:  r,
		fsw:       fsw,
		load:      load,
		logger:    logger,
		debounce:  100 * time.Millisecond,
		lastEvent: make(map[string]time.Time),
		done:      make(chan struct{}),
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}
	for _, path := range matches {
		w.reload(path)
	}

	go w.run()
	return w, nil
}

// Close stops watching. Pending reloads are dropped.
func (w *Watcher) Close() error {
	w.once.Do(func() { close(w.done) })
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if w.debounced(event.Name) {
				continue
			}
			w.reload(event.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("partial watcher error", zap.Error(err))
		}
	}
}

// debounced suppresses the burst of events editors emit on one save.
// Entries older than the debounce window are evicted on every call so the
// map stays bounded by the set of recently touched paths.
func (w *Watcher) debounced(path string) bool {
	w.lastEventMu.Lock()
	defer w.lastEventMu.Unlock()
	now := time.Now()
	for p, at := range w.lastEvent {
		if now.Sub(at) >= w.debounce {
			delete(w.lastEvent, p)
		}
	}
	if _, ok := w.lastEvent[path]; ok {
		return true
	}
	w.lastEvent[path] = now
	return false
}

func (w *Watcher) reload(path string) {
	name := partialName(path)
	tpl, err := w.load(path)
	if err != nil {
		w.logger.Warn("partial reload failed", zap.String("path", path), zap.Error(err))
		return
	}
	w.registry.Register(name, tpl)
	w.logger.Debug("partial reloaded", zap.String("name", name), zap.String("path", path))
}

func partialName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
