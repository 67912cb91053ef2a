// Command lvpart splits a labeled weight sequence into K contiguous groups
// whose sums have the smallest variance.
//
// Usage:
//
//	lvpart solve    -k 3 -in items.json          search and print the result as JSON
//	lvpart serve    -config lvpart.yaml          run the HTTP service
//	lvpart generate -n 20 -dist normal -out x.csv write a synthetic dataset
//	lvpart count    -n 20 -k 4                   print the number of cut tuples
//
// Every subcommand reads the same configuration (file given with -config,
// then LVPART_* environment overrides).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/lvpart/internal/config"
	"github.com/katalvlaran/lvpart/internal/logging"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errUsage marks errors caused by bad command-line input.
var errUsage = errors.New("usage error")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run dispatches a subcommand and maps its error onto an exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	var err error
	switch args[0] {
	case "solve":
		err = runSolve(args[1:], stdin, stdout, stderr)
	case "serve":
		err = runServe(args[1:], stderr)
	case "generate":
		err = runGenerate(args[1:], stdout, stderr)
	case "count":
		err = runCount(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "lvpart: unknown command %q\n", args[0])
		usage(stderr)
		return exitUsage
	}

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, "lvpart:", err)
		return exitUsage
	default:
		fmt.Fprintln(stderr, "lvpart:", err)
		return exitError
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage: lvpart <command> [flags]

commands:
  solve     find the minimum-variance contiguous partition of a dataset
  serve     run the HTTP API
  generate  write a synthetic dataset
  count     print C(N-1, K-1) for N items and K groups

Run "lvpart <command> -h" for the flags of a command.
`)
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("lvpart "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parseFlags parses args and tags parse failures as usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}

	return nil
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// bootstrap loads the configuration and builds the logger writing to stderr.
func bootstrap(configPath string, stderr io.Writer) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log, err := logging.New(stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	return cfg, log, nil
}
