package ml

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ArtifactWatcher reports when artifact files change on disk. The running
// Estimator is never reloaded; a restart is needed to pick up new files.
type ArtifactWatcher struct {
	watcher *fsnotify.Watcher
	targets map[string]struct{}
	changes chan string
	logger  *zap.Logger
}

// NewArtifactWatcher watches the parent directories of paths, since
// training jobs usually replace artifacts by rename rather than rewrite.
func NewArtifactWatcher(logger *zap.Logger, paths ...string) (*ArtifactWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return &ArtifactWatcher{
		watcher: watcher,
		targets: targets,
		changes: make(chan string, 16),
		logger:  logger,
	}, nil
}

// Changes delivers the path of each changed artifact. Events are dropped
// when nobody is reading.
func (w *ArtifactWatcher) Changes() <-chan string {
	return w.changes
}

// Run blocks until ctx is done, then releases the watcher.
func (w *ArtifactWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("artifact watcher error", zap.Error(err))
		}
	}
}

func (w *ArtifactWatcher) handle(event fsnotify.Event) {
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	if _, ok := w.targets[name]; !ok {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	w.logger.Warn("artifact changed on disk, restart to load it",
		zap.String("path", name),
		zap.String("op", event.Op.String()))

	select {
	case w.changes <- name:
	default:
	}
}
