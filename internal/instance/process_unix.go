// ABOUTME: Unix liveness probe for the instance marker's recorded pid
// ABOUTME: Signal 0 existence check; EPERM counts as alive

//go:build unix

package instance

import (
	"errors"
	"syscall"
)

// processAlive reports whether pid refers to a running process.
// EPERM means the process exists but belongs to another user.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
