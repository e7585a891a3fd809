// ABOUTME: Current-theme pointer: a symlink replaced atomically via rename
// ABOUTME: Readers always see the old or new target, never a torn state

package pointer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrUnset means no theme has ever been activated.
	ErrUnset = errors.New("current theme not set")

	// ErrBroken means the pointer exists but its target directory is gone
	// (deleted out-of-band). The store stays usable; switching to a valid
	// theme self-heals.
	ErrBroken = errors.New("current theme pointer is broken")
)

// Pointer is the single mutable slot naming the active theme bundle.
type Pointer struct {
	link string
}

// New creates a pointer backed by the symlink at link.
func New(link string) *Pointer {
	return &Pointer{link: link}
}

// Path returns the symlink location.
func (p *Pointer) Path() string {
	return p.link
}

// Read returns the active bundle directory. Safe to call concurrently
// with Set: the rename-based swap guarantees a reader sees either the
// old or the new target.
func (p *Pointer) Read() (string, error) {
	target, err := os.Readlink(p.link)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrUnset
		}
		return "", fmt.Errorf("reading current pointer: %w", err)
	}
	info, err := os.Stat(target)
	switch {
	case os.IsNotExist(err):
		return "", fmt.Errorf("target %s: %w", target, ErrBroken)
	case err != nil:
		return "", fmt.Errorf("stat target %s: %w", target, err)
	case !info.IsDir():
		return "", fmt.Errorf("target %s is not a directory: %w", target, ErrBroken)
	}
	return target, nil
}

// Current returns the active theme id (the target's base name).
func (p *Pointer) Current() (string, error) {
	target, err := p.Read()
	if err != nil {
		return "", err
	}
	return filepath.Base(target), nil
}

// Set atomically repoints the link at dir. A fresh symlink is created
// beside the link and renamed over it; rename is atomic on POSIX, so
// there is no instant at which the pointer is absent or half-written.
// On failure the prior value is left intact.
func (p *Pointer) Set(dir string) error {
	if err := os.MkdirAll(filepath.Dir(p.link), 0o755); err != nil {
		return fmt.Errorf("creating pointer directory: %w", err)
	}

	tmp := fmt.Sprintf("%s.tmp.%d", p.link, os.Getpid())
	// A previous crash may have left the temp link behind.
	_ = os.Remove(tmp)

	if err := os.Symlink(dir, tmp); err != nil {
		return fmt.Errorf("staging pointer update: %w", err)
	}
	if err := os.Rename(tmp, p.link); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing current pointer: %w", err)
	}
	return nil
}
