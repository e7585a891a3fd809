// ABOUTME: Doctor subcommand: reports store health in one pass
// ABOUTME: Checks pointer state and re-validates every discovered bundle

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/swatchdev/swatch/internal/config"
	"github.com/swatchdev/swatch/internal/eventbus"
	"github.com/swatchdev/swatch/internal/pointer"
	"github.com/swatchdev/swatch/internal/theme"
)

// runDoctor prints a health report. It exits zero even when problems are
// found; problems are findings, not failures of the doctor itself.
func runDoctor(ctx context.Context, repo *theme.Repository, ptr *pointer.Pointer, settings *config.Settings) error {
	fmt.Printf("themes root:  %s\n", repo.Root())
	fmt.Printf("pointer:      %s\n", ptr.Path())
	if settings.HookScript == "" {
		fmt.Println("hook:         (none configured)")
	} else {
		fmt.Printf("hook:         %s (timeout %dms)\n", settings.HookScript, settings.HookTimeoutMs)
		if _, err := os.Stat(settings.HookScript); err != nil {
			fmt.Printf("  warning: hook script not found\n")
		}
	}

	switch id, err := ptr.Current(); {
	case err == nil:
		fmt.Printf("current:      %s\n", id)
	case errors.Is(err, pointer.ErrUnset):
		fmt.Println("current:      (unset)")
	case errors.Is(err, pointer.ErrBroken):
		fmt.Println("current:      BROKEN — target directory deleted; switch to a valid theme")
	default:
		fmt.Printf("current:      error: %v\n", err)
	}

	// Collect skip reasons from this listing only.
	var mu sync.Mutex
	skipped := map[string]error{}
	bus := eventbus.New[theme.Diagnostic]()
	bus.Subscribe(func(d theme.Diagnostic) {
		mu.Lock()
		skipped[d.ID] = d.Reason
		mu.Unlock()
	})
	scanRepo, err := theme.NewRepository(repo.Root(), settings.Fragments, bus)
	if err != nil {
		return err
	}

	bundles, err := scanRepo.List(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("themes:       %d valid", len(bundles))
	mu.Lock()
	defer mu.Unlock()
	if len(skipped) == 0 {
		fmt.Println()
		return nil
	}
	fmt.Printf(", %d invalid\n", len(skipped))

	ids := make([]string, 0, len(skipped))
	for id := range skipped {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("  %-24s %v\n", id, skipped[id])
	}
	return nil
}
