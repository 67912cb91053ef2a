package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/katalvlaran/lvpart/internal/config"
	"github.com/katalvlaran/lvpart/internal/dataset"
	"github.com/katalvlaran/lvpart/partition"
)

// runSolve reads a dataset, searches it and prints the result.
func runSolve(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("solve", stderr)
	var (
		k          = fs.Int("k", 0, "number of groups (required, 2 <= k <= items)")
		in         = fs.String("in", "-", "dataset path, - for stdin")
		format     = fs.String("format", "", "dataset format: json or csv (default from extension, json for stdin)")
		configPath = fs.String("config", "", "configuration file")
		epsilon    = fs.Float64("epsilon", partition.DefaultEpsilon, "tie tolerance")
		variance   = fs.String("variance", "sample", "variance convention: sample or population")
		workers    = fs.Int("workers", 1, "parallel workers, 0 or 1 for sequential")
		sentinel   = fs.String("sentinel", "inf", `initial minimum: "inf", "legacy" or a number`)
		timeout    = fs.Duration("timeout", 0, "abort the search after this long, 0 for no limit")
		progress   = fs.Bool("progress", false, "log search progress at info level")
	)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *k == 0 {
		return fmt.Errorf("%w: -k is required", errUsage)
	}

	cfg, log, err := bootstrap(*configPath, stderr)
	if err != nil {
		return err
	}

	opts, err := cfg.Search.Options()
	if err != nil {
		return err
	}
	overrides, err := solveOverrides(setFlags(fs), *epsilon, *variance, *workers, *sentinel)
	if err != nil {
		return err
	}
	opts = append(opts, overrides...)

	ds, err := readDataset(*in, *format, stdin)
	if err != nil {
		return err
	}
	log.Info().
		Str("source", *in).
		Interface("dataset", ds.Summary()).
		Int("k", *k).
		Msg("Dataset loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}
	opts = append(opts, partition.WithContext(ctx))
	if *progress {
		opts = append(opts, partition.WithProgress(cfg.Search.CheckEvery, func(p partition.Progress) {
			log.Info().Uint64("visited", p.Visited).Uint64("total", p.Total).Msg("Search progress")
		}))
	}

	start := time.Now()
	res, err := partition.Solve(ds.Weights, ds.Labels, *k, opts...)
	if err != nil {
		return err
	}
	log.Info().
		Uint64("combinations", res.CombinationsSearched).
		Float64("minimum_variance", res.MinimumVariance).
		Bool("ties", res.Ties).
		Dur("duration", time.Since(start)).
		Msg("Search completed")

	return dataset.WriteResult(stdout, res)
}

// solveOverrides turns explicitly set flags into options applied after the configuration.
func solveOverrides(set map[string]bool, epsilon float64, variance string, workers int, sentinel string) ([]partition.Option, error) {
	var opts []partition.Option
	if set["epsilon"] {
		opts = append(opts, partition.WithEpsilon(epsilon))
	}
	if set["variance"] {
		kind, err := partition.ParseVarianceKind(variance)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errUsage, err)
		}
		opts = append(opts, partition.WithVarianceKind(kind))
	}
	if set["workers"] {
		opts = append(opts, partition.WithWorkers(workers))
	}
	if set["sentinel"] {
		v, err := config.SearchConfig{Sentinel: sentinel}.SentinelValue()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errUsage, err)
		}
		opts = append(opts, partition.WithSentinel(v))
	}

	return opts, nil
}

// readDataset opens path (or stdin for "-") and decodes it.
func readDataset(path, format string, stdin io.Reader) (dataset.Dataset, error) {
	f := dataset.FormatJSON
	if path != "-" {
		f = dataset.FormatFromPath(path)
	}
	if format != "" {
		parsed, err := dataset.ParseFormat(format)
		if err != nil {
			return dataset.Dataset{}, fmt.Errorf("%w: %w", errUsage, err)
		}
		f = parsed
	}

	if path == "-" {
		return dataset.Read(stdin, f)
	}
	file, err := os.Open(path)
	if err != nil {
		return dataset.Dataset{}, err
	}
	defer file.Close()

	return dataset.Read(file, f)
}
