// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --verbose, --themes-dir, --no-hooks, --version

package main

import "flag"

type cliArgs struct {
	verbose   bool
	themesDir string
	noHooks   bool
	version   bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	flag.StringVar(&args.themesDir, "themes-dir", "", "Override the themes root directory")
	flag.BoolVar(&args.noHooks, "no-hooks", false, "Switch without invoking the hook script")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}

// remaining returns the non-flag command-line arguments.
func (a cliArgs) remaining() []string {
	return flag.Args()
}
