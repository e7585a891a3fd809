// ABOUTME: Hook invocation record: command, captured output, exit outcome
// ABOUTME: Defines the contract between switch engine and hook runner

package hook

import "time"

// Invocation records one hook run. Hook failure never propagates as a
// switch failure; the engine carries the record in its result instead.
type Invocation struct {
	Command   string
	Args      []string
	ExitCode  int
	Output    string // combined stdout+stderr, bounded
	Truncated bool
	Duration  time.Duration
	TimedOut  bool
	Skipped   bool // no hook configured, or hooks disabled for this switch
	Err       error
}

// Success reports whether the hook ran and exited cleanly. A skipped
// invocation is not a success, but callers treat it as benign.
func (inv Invocation) Success() bool {
	return !inv.Skipped && inv.Err == nil && !inv.TimedOut && inv.ExitCode == 0
}
