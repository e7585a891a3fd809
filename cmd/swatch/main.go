// ABOUTME: CLI entry point for swatch: theme store and switch engine
// ABOUTME: Parses flags, gates on the instance lock, dispatches to a subcommand

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/swatchdev/swatch/internal/config"
	"github.com/swatchdev/swatch/internal/engine"
	"github.com/swatchdev/swatch/internal/eventbus"
	"github.com/swatchdev/swatch/internal/hook"
	"github.com/swatchdev/swatch/internal/instance"
	swlog "github.com/swatchdev/swatch/internal/log"
	"github.com/swatchdev/swatch/internal/picker"
	"github.com/swatchdev/swatch/internal/pointer"
	"github.com/swatchdev/swatch/internal/theme"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func versionLine() string {
	return fmt.Sprintf("swatch %s (%s) built %s", version, commit, date)
}

func main() {
	// Intercept the version subcommand before flag parsing; it needs
	// neither config nor the instance lock.
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Println(versionLine())
		os.Exit(0)
	}

	args := parseFlags()

	if args.version {
		fmt.Println(versionLine())
		os.Exit(0)
	}
	if args.verbose {
		swlog.SetLevel(swlog.LevelDebug)
	}

	if err := run(args); err != nil {
		if errors.Is(err, instance.ErrAlreadyRunning) {
			fmt.Fprintf(os.Stderr, "swatch is already running (%v); yielding\n", err)
			os.Exit(instance.ExitYielded)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run claims instance ownership, wires the store, and dispatches.
// On a lock conflict nothing is initialized: the owner got one
// activation signal and this process exits on the yield path.
func run(args cliArgs) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	if args.themesDir != "" {
		settings.ThemesDir = args.themesDir
	}
	if args.noHooks {
		settings.HookScript = ""
	}

	lock := instance.New(config.LockFile())
	if err := lock.Acquire(instance.CommandActivator{Command: settings.ActivateCommand}); err != nil {
		return err
	}
	defer lock.Release()

	diagBus := eventbus.New[theme.Diagnostic]()
	diagBus.Subscribe(func(d theme.Diagnostic) {
		swlog.Warn("theme %s skipped: %v", d.ID, d.Reason)
	})

	repo, err := theme.NewRepository(settings.ThemesDir, settings.Fragments, diagBus)
	if err != nil {
		return err
	}
	ptr := pointer.New(config.CurrentLink())
	runner := hook.NewRunner(settings)
	eng := engine.New(repo, ptr, runner, nil)
	defer eng.Close()

	cmd := "menu"
	rest := args.remaining()
	if len(rest) > 0 {
		cmd = rest[0]
		rest = rest[1:]
	}

	ctx := context.Background()
	switch cmd {
	case "list":
		return runList(ctx, repo, ptr)
	case "current":
		return runCurrent(ptr)
	case "set":
		if len(rest) != 1 {
			return fmt.Errorf("usage: swatch set <theme>")
		}
		return runSet(ctx, eng, rest[0])
	case "menu":
		return runMenu(ctx, eng, repo, ptr)
	case "doctor":
		return runDoctor(ctx, repo, ptr, settings)
	case "version":
		// Reached with flags before the subcommand; the bare form is
		// intercepted in main.
		fmt.Println(versionLine())
		return nil
	default:
		return fmt.Errorf("unknown command %q (want list, current, set, menu, doctor, or version)", cmd)
	}
}

func runList(ctx context.Context, repo *theme.Repository, ptr *pointer.Pointer) error {
	bundles, err := repo.List(ctx)
	if err != nil {
		return err
	}
	current, _ := ptr.Current()
	for _, b := range bundles {
		marker := " "
		if b.ID == current {
			marker = "*"
		}
		fmt.Printf("%s %-24s %s\n", marker, b.ID, b.Manifest.Name)
	}
	return nil
}

func runCurrent(ptr *pointer.Pointer) error {
	id, err := ptr.Current()
	switch {
	case errors.Is(err, pointer.ErrUnset):
		return fmt.Errorf("no theme is active")
	case errors.Is(err, pointer.ErrBroken):
		return fmt.Errorf("current theme was deleted; switch to another theme")
	case err != nil:
		return err
	}
	fmt.Println(id)
	return nil
}

func runSet(ctx context.Context, eng *engine.Engine, id string) error {
	res := eng.SwitchTo(ctx, id)
	if res.Err != nil {
		return res.Err
	}
	fmt.Printf("switched to %s\n", res.ThemeID)
	switch {
	case res.Hook.Skipped:
		swlog.Debug("no hook configured")
	case res.Hook.TimedOut:
		fmt.Fprintf(os.Stderr, "warning: hook timed out after %v\n", res.Hook.Duration.Round(time.Millisecond))
	case !res.Hook.Success():
		fmt.Fprintf(os.Stderr, "warning: hook failed: %v\n", res.Hook.Err)
		if res.Hook.Output != "" {
			fmt.Fprintln(os.Stderr, res.Hook.Output)
		}
	}
	return nil
}

func runMenu(ctx context.Context, eng *engine.Engine, repo *theme.Repository, ptr *pointer.Pointer) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("menu needs a terminal; use 'swatch set <theme>' in scripts")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	refresh, err := repo.Watch(ctx)
	if err != nil {
		swlog.Warn("themes watcher unavailable: %v", err)
		refresh = nil
	}

	model := picker.New(eng, repo, ptr, refresh)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
