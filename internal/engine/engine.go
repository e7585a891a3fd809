// ABOUTME: Switch engine: validate, atomically repoint, then fire the hook
// ABOUTME: A single worker drains a FIFO queue so switches never interleave

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/swatchdev/swatch/internal/eventbus"
	"github.com/swatchdev/swatch/internal/hook"
	"github.com/swatchdev/swatch/internal/log"
	"github.com/swatchdev/swatch/internal/pointer"
	"github.com/swatchdev/swatch/internal/theme"
)

// ErrClosed is returned for switches requested after Close.
var ErrClosed = errors.New("switch engine closed")

// Result is the outcome of one switch request. Switched reports whether
// the pointer was updated; the hook outcome is carried separately so
// callers can distinguish "theme switched, downstream application may be
// incomplete" from "switch itself failed".
type Result struct {
	ThemeID  string
	Switched bool
	Hook     hook.Invocation
	Err      error
}

// Event is published after every completed switch.
type Event struct {
	ThemeID string
	Dir     string
	Hook    hook.Invocation
}

type request struct {
	ctx   context.Context
	id    string
	reply chan Result
}

// Engine orchestrates theme switches. At most one switch executes at a
// time; overlapping calls queue in submission order.
type Engine struct {
	repo  *theme.Repository
	ptr   *pointer.Pointer
	hooks *hook.Runner
	bus   *eventbus.Bus[Event]

	requests chan request
	mu       sync.RWMutex
	closed   bool
	wg       sync.WaitGroup

	busy    *atomic.Bool
	current *atomic.String
}

// New creates an engine and starts its worker. bus may be nil.
func New(repo *theme.Repository, ptr *pointer.Pointer, hooks *hook.Runner, bus *eventbus.Bus[Event]) *Engine {
	e := &Engine{
		repo:     repo,
		ptr:      ptr,
		hooks:    hooks,
		bus:      bus,
		requests: make(chan request),
		busy:     atomic.NewBool(false),
		current:  atomic.NewString(""),
	}
	e.wg.Add(1)
	go e.worker()
	return e
}

// SwitchTo requests a switch to the given theme and blocks until it
// completes. Overlapping calls are served first-in-first-out.
func (e *Engine) SwitchTo(ctx context.Context, id string) Result {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return Result{ThemeID: id, Err: ErrClosed}
	}
	req := request{ctx: ctx, id: id, reply: make(chan Result, 1)}
	e.requests <- req
	e.mu.RUnlock()

	return <-req.reply
}

// Busy reports whether a switch is currently executing.
func (e *Engine) Busy() bool {
	return e.busy.Load()
}

// Current returns the id applied by the most recent successful switch in
// this process, or "" if none.
func (e *Engine) Current() string {
	return e.current.Load()
}

// Close stops the worker after draining queued requests.
// Safe to call once; later SwitchTo calls fail with ErrClosed.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.requests)
	e.mu.Unlock()
	e.wg.Wait()
}

func (e *Engine) worker() {
	defer e.wg.Done()
	for req := range e.requests {
		e.busy.Store(true)
		res := e.apply(req.ctx, req.id)
		e.busy.Store(false)
		req.reply <- res
	}
}

// apply runs one switch: validate, repoint, invoke hook, publish.
// Validation failures leave the pointer untouched. Once the pointer is
// updated the switch is a success regardless of the hook outcome.
func (e *Engine) apply(ctx context.Context, id string) Result {
	bundle, err := e.repo.Validate(id)
	if err != nil {
		log.Debug("switch to %s rejected: %v", id, err)
		return Result{ThemeID: id, Err: err}
	}

	if err := e.ptr.Set(bundle.Dir); err != nil {
		// Atomic replace failed; the prior pointer value is intact.
		return Result{ThemeID: id, Err: fmt.Errorf("pointer update failed: %w", err)}
	}

	inv := e.hooks.Invoke(ctx, bundle.ID, bundle.Dir)

	e.current.Store(bundle.ID)
	log.Info("switched to theme %s", bundle.ID)
	if e.bus != nil {
		e.bus.Publish(Event{ThemeID: bundle.ID, Dir: bundle.Dir, Hook: inv})
	}

	return Result{ThemeID: bundle.ID, Switched: true, Hook: inv}
}
