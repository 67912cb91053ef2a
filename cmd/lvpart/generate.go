package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/katalvlaran/lvpart/builder"
	"github.com/katalvlaran/lvpart/internal/dataset"
)

// Weight distributions accepted by -dist.
const (
	distConstant    = "constant"
	distUniform     = "uniform"
	distNormal      = "normal"
	distExponential = "exponential"
	distPulse       = "pulse"
)

// generateParams collects the generate flags.
type generateParams struct {
	n      int
	seed   int64
	dist   string
	labels string

	value     float64
	min, max  float64
	mean, std float64
	rate      float64

	amplitude, frequency, duty, trend, noise float64
	triangular                               bool
}

// runGenerate writes a synthetic dataset built by the builder package.
func runGenerate(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("generate", stderr)
	var p generateParams
	fs.IntVar(&p.n, "n", 0, "number of items (required)")
	fs.Int64Var(&p.seed, "seed", 1, "random seed")
	fs.StringVar(&p.dist, "dist", distUniform, "weight distribution: constant, uniform, normal, exponential or pulse")
	fs.StringVar(&p.labels, "labels", "alphabetic", "label scheme: default, alphabetic, excel, alphanumeric, hex or prefix:<p>")
	fs.Float64Var(&p.value, "value", builder.DefaultWeight, "constant weight")
	fs.Float64Var(&p.min, "min", 1, "uniform lower bound")
	fs.Float64Var(&p.max, "max", 100, "uniform upper bound")
	fs.Float64Var(&p.mean, "mean", 50, "normal mean")
	fs.Float64Var(&p.std, "stddev", 15, "normal standard deviation")
	fs.Float64Var(&p.rate, "rate", 0.1, "exponential rate")
	fs.Float64Var(&p.amplitude, "amplitude", 1, "pulse amplitude")
	fs.Float64Var(&p.frequency, "frequency", 0.125, "pulse frequency in cycles per item")
	fs.Float64Var(&p.duty, "duty", 0.5, "rectangular pulse duty cycle")
	fs.Float64Var(&p.trend, "trend", 0, "pulse linear trend per item")
	fs.Float64Var(&p.noise, "noise", 0, "pulse gaussian noise sigma")
	fs.BoolVar(&p.triangular, "triangular", false, "triangular instead of rectangular pulse")
	out := fs.String("out", "-", "output path, - for stdout")
	format := fs.String("format", "", "output format: json or csv (default from extension, json for stdout)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	items, err := generateItems(p)
	if err != nil {
		return err
	}

	f := dataset.FormatJSON
	if *out != "-" {
		f = dataset.FormatFromPath(*out)
	}
	if *format != "" {
		if f, err = dataset.ParseFormat(*format); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
	}

	if *out == "-" {
		return dataset.Write(stdout, dataset.FromItems(items), f)
	}
	file, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := dataset.Write(file, dataset.FromItems(items), f); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

// generateItems resolves p into builder options and builds the items.
// Builder options panic on invalid values; those become usage errors.
func generateItems(p generateParams) (items builder.Items, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errUsage, r)
		}
	}()

	labelOpt, err := labelScheme(p.labels)
	if err != nil {
		return builder.Items{}, err
	}
	opts := []builder.BuilderOption{labelOpt}

	switch p.dist {
	case distConstant:
		opts = append(opts, builder.WithConstantWeight(p.value))
	case distUniform:
		opts = append(opts, builder.WithUniformWeight(p.min, p.max))
	case distNormal:
		opts = append(opts, builder.WithNormalWeight(p.mean, p.std))
	case distExponential:
		opts = append(opts, builder.WithExponentialWeight(p.rate))
	case distPulse:
		opts = append(opts,
			builder.WithAmplitude(p.amplitude),
			builder.WithFrequency(p.frequency),
			builder.WithDuty(p.duty),
			builder.WithTrend(p.trend),
			builder.WithNoise(p.noise),
		)
		if p.triangular {
			opts = append(opts, builder.WithTriangular())
		}
		items, err = builder.BuildPulseItems(p.n, p.seed, opts...)
		return items, usageOnBadSize(err)
	default:
		return builder.Items{}, fmt.Errorf("%w: unknown distribution %q", errUsage, p.dist)
	}

	items, err = builder.BuildItems(p.n, p.seed, opts...)
	return items, usageOnBadSize(err)
}

// usageOnBadSize tags builder argument errors as usage errors.
func usageOnBadSize(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", errUsage, err)
}

// labelScheme maps the -labels value onto a builder option.
func labelScheme(name string) (builder.BuilderOption, error) {
	if prefix, ok := strings.CutPrefix(name, "prefix:"); ok {
		return builder.WithPrefixedLabels(prefix), nil
	}
	switch name {
	case "default":
		return builder.WithDefaultLabels(), nil
	case "alphabetic":
		return builder.WithAlphabeticLabels(), nil
	case "excel":
		return builder.WithExcelColumnLabels(), nil
	case "alphanumeric":
		return builder.WithAlphanumericLabels(), nil
	case "hex":
		return builder.WithHexLabels(), nil
	default:
		return nil, fmt.Errorf("%w: unknown label scheme %q", errUsage, name)
	}
}
