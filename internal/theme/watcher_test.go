// ABOUTME: Tests for the fsnotify themes-root watcher
// ABOUTME: Verifies debounced ticks and clean shutdown on cancel

package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchEmitsTickOnChange(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := newRepo(t, root, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticks, err := repo.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.Mkdir(filepath.Join(root, "new-theme"), 0o755); err != nil {
		t.Fatal(err)
	}

	select {
	case _, ok := <-ticks:
		if !ok {
			t.Fatal("tick channel closed before any tick")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no tick after directory change")
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	t.Parallel()

	repo := newRepo(t, t.TempDir(), nil)
	ctx, cancel := context.WithCancel(context.Background())

	ticks, err := repo.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	cancel()

	select {
	case _, ok := <-ticks:
		if ok {
			// A tick may have raced the cancel; the channel must still close.
			select {
			case _, ok := <-ticks:
				if ok {
					t.Fatal("channel still open after cancel")
				}
			case <-time.After(2 * time.Second):
				t.Fatal("channel not closed after cancel")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
