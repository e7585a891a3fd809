// ABOUTME: Hook runner: spawns the configured script after a theme switch
// ABOUTME: Enforces a timeout, kills the process group, captures bounded output

package hook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/swatchdev/swatch/internal/config"
	"github.com/swatchdev/swatch/internal/log"
)

// Runner executes the user-configured hook script.
type Runner struct {
	script      string
	timeout     time.Duration
	outputLimit int
	env         map[string]string
}

// NewRunner builds a runner from settings. An empty hook_script means
// every invocation is skipped.
func NewRunner(s *config.Settings) *Runner {
	return &Runner{
		script:      s.HookScript,
		timeout:     time.Duration(s.HookTimeoutMs) * time.Millisecond,
		outputLimit: s.HookOutputLimit,
		env:         s.Env,
	}
}

// Invoke runs `<script> <themeID> <bundleDir>` and returns a record of
// the outcome. It never returns an error: spawn failures, non-zero
// exits, and timeouts are all captured in the Invocation.
func (r *Runner) Invoke(ctx context.Context, themeID, bundleDir string) Invocation {
	if r.script == "" {
		return Invocation{Skipped: true}
	}

	inv := Invocation{
		Command: r.script,
		Args:    []string{themeID, bundleDir},
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.script, themeID, bundleDir)
	setProcGroup(cmd)
	cmd.Cancel = func() error {
		return killProcGroup(cmd)
	}

	cmd.Env = os.Environ()
	for k, v := range r.env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var buf bytes.Buffer
	lw := &limitedWriter{w: &buf, limit: r.outputLimit}
	cmd.Stdout = lw
	cmd.Stderr = lw

	start := time.Now()
	runErr := cmd.Run()
	inv.Duration = time.Since(start)
	inv.Output = buf.String()
	inv.Truncated = lw.truncated

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		inv.TimedOut = true
		inv.ExitCode = -1
		inv.Err = fmt.Errorf("hook timed out after %v", r.timeout)
		log.Warn("hook %s timed out for theme %s", r.script, themeID)
		return inv
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			inv.ExitCode = exitErr.ExitCode()
			inv.Err = fmt.Errorf("hook exited with status %d", inv.ExitCode)
		} else {
			// Spawn failure: missing executable, permission denied.
			inv.ExitCode = -1
			inv.Err = fmt.Errorf("running hook %s: %w", r.script, runErr)
		}
		log.Debug("hook failed for theme %s: %v", themeID, inv.Err)
		return inv
	}

	inv.ExitCode = 0
	return inv
}
