// ABOUTME: Per-verb CLI flag parsing using stdlib flag package, mirroring the teacher's flags.go split

package main

import "flag"

type runArgs struct {
	event     string
	allFiles  bool
	dryRun    bool
	localRef  string
	remoteRef string
	gitArgs   []string
}

// parseRunFlags parses `githooks run <event> [flags] [-- <git-args>]`.
func parseRunFlags(args []string) runArgs {
	var a runArgs
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		a.event = args[0]
		args = args[1:]
	}

	gitArgsStart := len(args)
	for i, arg := range args {
		if arg == "--" {
			gitArgsStart = i
			break
		}
	}
	flagArgs := args[:gitArgsStart]
	if gitArgsStart < len(args) {
		a.gitArgs = args[gitArgsStart+1:]
	}

	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.BoolVar(&a.allFiles, "all-files", false, "Run against every non-ignored file instead of the changed set")
	fs.BoolVar(&a.dryRun, "dry-run", false, "Report what would run without spawning any process")
	fs.StringVar(&a.localRef, "local-ref", "", "Local ref for range-mode events (default HEAD)")
	fs.StringVar(&a.remoteRef, "remote-ref", "", "Remote ref for range-mode events")
	fs.Parse(flagArgs)

	return a
}

type lintArgs struct {
	name   string
	dryRun bool
}

// parseLintFlags parses `githooks lint <name> [--dry-run]`.
func parseLintFlags(args []string) lintArgs {
	var a lintArgs
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		a.name = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet("lint", flag.ExitOnError)
	fs.BoolVar(&a.dryRun, "dry-run", false, "Report what would run without spawning any process")
	fs.Parse(args)

	return a
}

type validateArgs struct {
	traceImports bool
	json         bool
}

// parseValidateFlags parses `githooks validate [--trace-imports] [--json]`.
func parseValidateFlags(args []string) validateArgs {
	var a validateArgs

	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.BoolVar(&a.traceImports, "trace-imports", false, "Report each import's contribution and any overrides")
	fs.BoolVar(&a.json, "json", false, "Emit diagnostics as JSON")
	fs.Parse(args)

	return a
}
