// ABOUTME: Single-instance lock: pid file claimed with O_EXCL, stale-safe
// ABOUTME: A live conflict signals the owner and yields; a dead owner is reclaimed

package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/swatchdev/swatch/internal/log"
)

// ErrAlreadyRunning means a live process owns the theme store. The
// yielding process must exit with ExitYielded after signaling the owner.
var ErrAlreadyRunning = errors.New("another instance owns the theme store")

// ExitYielded is the process exit code for the yield path, distinct from
// plain errors so supervising tooling can tell the two apart.
const ExitYielded = 3

// Lock is the cross-process ownership marker for the theme store.
// Held for the owning process's whole life; the OS releases it
// implicitly on exit, and staleness is resolved by a liveness probe.
type Lock struct {
	path  string
	owned bool
}

// New creates a lock over the given marker path.
func New(path string) *Lock {
	return &Lock{path: path}
}

// Acquire claims the marker. If a live owner holds it, the activator is
// called exactly once with the owner's pid and ErrAlreadyRunning is
// returned; the caller must not touch the theme store. A marker whose
// recorded pid no longer exists is reclaimed.
func (l *Lock) Acquire(activate Activator) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating lock directory: %w", err)
	}

	// Two attempts: the second runs after reclaiming a stale marker.
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d\n", os.Getpid())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(l.path)
				return fmt.Errorf("writing instance marker: %w", errors.Join(werr, cerr))
			}
			l.owned = true
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("claiming instance marker: %w", err)
		}

		pid, rerr := l.OwnerPid()
		if rerr != nil || !processAlive(pid) {
			// Crash leftover: the recorded owner is gone.
			log.Debug("reclaiming stale instance marker (pid %d)", pid)
			_ = os.Remove(l.path)
			continue
		}

		if activate != nil {
			if aerr := activate.Activate(pid); aerr != nil {
				log.Warn("activating owner pid %d: %v", pid, aerr)
			}
		}
		return fmt.Errorf("pid %d: %w", pid, ErrAlreadyRunning)
	}

	return fmt.Errorf("could not claim instance marker at %s", l.path)
}

// OwnerPid reads the pid recorded in the marker.
func (l *Lock) OwnerPid() (int, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("malformed instance marker: %w", err)
	}
	return pid, nil
}

// Release removes the marker on orderly shutdown. After a crash the
// next Acquire reclaims via the liveness probe instead.
func (l *Lock) Release() {
	if !l.owned {
		return
	}
	l.owned = false
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		log.Warn("releasing instance marker: %v", err)
	}
}
