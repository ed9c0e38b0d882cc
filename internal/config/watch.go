package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of events editors produce on save
const reloadDebounce = 100 * time.Millisecond

// Watch reloads the config file whenever it is written and calls onChange
// with the new value. Invalid edits are reported to onError and the previous
// configuration stays in effect. Watch returns once the watcher is set up;
// it stops when ctx is done.
func (s *Service) Watch(ctx context.Context, onChange func(*Config), onError func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory so atomic renames by editors are seen
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	go s.watchLoop(ctx, watcher, onChange, onError)
	return nil
}

func (s *Service) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, onChange func(*Config), onError func(error)) {
	defer watcher.Close()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(reloadDebounce, func() {
				s.reload(onChange, onError)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}

func (s *Service) reload(onChange func(*Config), onError func(error)) {
	cfg, err := loadFile(s.filePath)
	if err != nil {
		if onError != nil {
			onError(fmt.Errorf("reload config: %w", err))
		}
		return
	}

	s.Set(cfg)
	if onChange != nil {
		onChange(cfg)
	}
}
