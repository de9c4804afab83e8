// Package watcher reloads the content store when collection files change.
// It watches the content directory with fsnotify, debounces bursts of
// writes (editors save in flurries), rebuilds a full store from the
// source, and swaps it into the snapshot only if it validates.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/novaforge/sitekit/internal/content"
	"github.com/novaforge/sitekit/internal/logging"
)

// ReloadHandler runs after a successful store swap, with the new store.
type ReloadHandler func(store *content.Store)

// ContentWatcher rebuilds the content snapshot on file changes.
type ContentWatcher struct {
	source   *content.DirSource
	snapshot *content.Snapshot
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   logging.Logger

	mutex    sync.RWMutex
	handlers []ReloadHandler

	timer      *time.Timer
	timerMutex sync.Mutex
}

// New creates a watcher over the source's directory. debounce groups rapid
// successive writes into one reload.
func New(source *content.DirSource, snapshot *content.Snapshot, debounce time.Duration, logger logging.Logger) (*ContentWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(source.Dir()); err != nil {
		fsw.Close()
		return nil, err
	}
	return &ContentWatcher{
		source:   source,
		snapshot: snapshot,
		watcher:  fsw,
		debounce: debounce,
		logger:   logger.WithComponent("watcher"),
	}, nil
}

// AddHandler registers a callback invoked after each successful reload.
func (w *ContentWatcher) AddHandler(handler ReloadHandler) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Start runs the watch loop until ctx is cancelled.
func (w *ContentWatcher) Start(ctx context.Context) {
	go w.watchLoop(ctx)
}

// Stop stops watching and releases the fsnotify handle.
func (w *ContentWatcher) Stop() error {
	w.timerMutex.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timerMutex.Unlock()
	return w.watcher.Close()
}

func (w *ContentWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isContentFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug(ctx, "content file changed", "path", event.Name, "op", event.Op.String())
			w.scheduleReload(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(ctx, err, "content watcher error")
		}
	}
}

// scheduleReload resets the debounce timer; the reload fires once the
// directory has been quiet for the full debounce window.
func (w *ContentWatcher) scheduleReload(ctx context.Context) {
	w.timerMutex.Lock()
	defer w.timerMutex.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.reload(ctx)
	})
}

// reload rebuilds the store from disk. A load or validation failure keeps
// the previous snapshot serving; broken edits never reach visitors.
func (w *ContentWatcher) reload(ctx context.Context) {
	store, err := w.source.Load()
	if err != nil {
		w.logger.Error(ctx, err, "content reload failed, keeping previous snapshot")
		return
	}

	w.snapshot.Swap(store)
	w.logger.Info(ctx, "content reloaded",
		"services", len(store.Services),
		"case_studies", len(store.CaseStudies),
		"blog_posts", len(store.BlogPosts),
		"testimonials", len(store.Testimonials),
		"team", len(store.Team),
	)

	w.mutex.RLock()
	handlers := w.handlers
	w.mutex.RUnlock()
	for _, handler := range handlers {
		handler(store)
	}
}

func isContentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
