// ABOUTME: Activator: the out-of-band "bring the owner to front" channel
// ABOUTME: Pluggable so the yield path is testable without a window system

package instance

import (
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

const activateTimeout = 5 * time.Second

// Activator asks the owning instance to bring its surface to the
// foreground. The transport is an external collaborator; this core only
// calls it.
type Activator interface {
	Activate(pid int) error
}

// CommandActivator shells out to a configured command with the owner
// pid appended as a positional argument.
type CommandActivator struct {
	Command string
}

// Activate runs the configured command. A missing command is a no-op.
func (a CommandActivator) Activate(pid int) error {
	if a.Command == "" {
		return nil
	}
	// The pid travels as a positional parameter so the configured command
	// string is never re-parsed with it interpolated.
	cmd := exec.Command("sh", "-c", a.Command+` "$@"`, "sh", strconv.Itoa(pid))
	done := make(chan error, 1)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting activate command: %w", err)
	}
	go func() { done <- cmd.Wait() }()
	select {
	case err := <-done:
		return err
	case <-time.After(activateTimeout):
		_ = cmd.Process.Kill()
		return fmt.Errorf("activate command timed out after %v", activateTimeout)
	}
}

// NopActivator ignores activation requests. Used in tests and headless runs.
type NopActivator struct{}

func (NopActivator) Activate(int) error { return nil }
