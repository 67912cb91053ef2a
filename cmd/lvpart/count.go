package main

import (
	"fmt"
	"io"

	"github.com/katalvlaran/lvpart/partition"
)

// runCount prints C(n-1, k-1), the number of tuples a search over n items scores.
func runCount(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("count", stderr)
	n := fs.Int("n", 0, "number of items")
	k := fs.Int("k", 0, "number of groups")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *k < 2 || *k > *n {
		return fmt.Errorf("%w: k=%d, n=%d: %w", errUsage, *k, *n, partition.ErrInvalidGroupCount)
	}

	total, err := partition.Count(*n-1, *k-1)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, total)

	return err
}
