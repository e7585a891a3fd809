// ABOUTME: Themes-root watcher emitting debounced catalog refresh ticks
// ABOUTME: fsnotify-based; hidden entries and temp files are ignored

package theme

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/swatchdev/swatch/internal/log"
)

const debounceDelay = 200 * time.Millisecond

// Watch observes the themes root and emits a tick after any burst of
// changes settles. The channel closes when ctx is cancelled or the
// underlying watcher fails.
func (r *Repository) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(r.root); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	ticks := make(chan struct{}, 1)

	go func() {
		defer close(ticks)
		defer watcher.Close()

		var timer *time.Timer
		var timerC <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if strings.HasPrefix(filepath.Base(event.Name), ".") {
					continue
				}
				// Coalesce bursts (theme installs touch many files).
				if timer == nil {
					timer = time.NewTimer(debounceDelay)
				} else {
					timer.Reset(debounceDelay)
				}
				timerC = timer.C
			case <-timerC:
				timerC = nil
				select {
				case ticks <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("themes watcher: %v", err)
			}
		}
	}()

	return ticks, nil
}
