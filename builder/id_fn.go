// Package builder provides internal helper functions and types
// for configuring label schemes in sequence generators.
package builder

import (
	"fmt"
	"strconv"
)

// LabelFn generates an item label from its zero-based index.
// It must be a pure, deterministic function: given the same idx, it always returns the same string.
// Panics in implementations indicate programmer error in configuration.
type LabelFn func(idx int) string

// DefaultLabelFn returns the decimal string of idx, e.g. 0→"0", 42→"42".
// Complexity: O(d) time where d = number of digits in idx, O(1) extra space.
// Never panics.
func DefaultLabelFn(idx int) string {
	return strconv.Itoa(idx)
}

// AlphabeticLabelFn returns lowercase spreadsheet letters, e.g. 0→"a", 25→"z", 26→"aa".
// Panics if idx < 0.
func AlphabeticLabelFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("AlphabeticLabelFn: idx must be ≥ 0, got %d", idx))
	}

	return spreadsheet(idx, 'a')
}

// ExcelColumnLabelFn returns the "Excel-style" column name for idx, e.g. 0→"A", 25→"Z", 26→"AA".
// Complexity: O(k) time where k ≈ log₍₂₆₎(idx), O(1) extra space.
// Panics if idx < 0.
func ExcelColumnLabelFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("ExcelColumnLabelFn: idx must be ≥ 0, got %d", idx))
	}

	return spreadsheet(idx, 'A')
}

// spreadsheet renders idx in bijective base 26 starting at letter first.
func spreadsheet(idx int, first rune) string {
	// build letters in reverse order
	var runes []rune
	var i, j int
	for i = idx; i >= 0; i = i/alphabetSize - 1 {
		runes = append(runes, first+rune(i%alphabetSize))
	}
	// reverse in-place to correct order
	for i, j = 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// AlphanumericLabelFn returns a base-36 string for idx, e.g. 0→"0", 10→"a", 35→"z", 36→"10".
// Panics if idx < 0.
func AlphanumericLabelFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("AlphanumericLabelFn: idx must be ≥ 0, got %d", idx))
	}

	return strconv.FormatInt(int64(idx), 36)
}

// HexLabelFn returns the lowercase hexadecimal representation of idx,
// e.g. 0→"0", 10→"a", 255→"ff".
// Panics if idx < 0.
func HexLabelFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("HexLabelFn: idx must be ≥ 0, got %d", idx))
	}

	return strconv.FormatInt(int64(idx), 16)
}

// PrefixedLabelFn returns prefix + decimal index, e.g. "item0", "item1", ...
// Panics if idx < 0.
func PrefixedLabelFn(prefix string) LabelFn {
	return func(idx int) string {
		if idx < 0 {
			panic(fmt.Sprintf("PrefixedLabelFn: idx must be ≥ 0, got %d", idx))
		}
		return prefix + strconv.Itoa(idx)
	}
}

// WithPrefixedLabels sets the label scheme to PrefixedLabelFn(prefix).
// Example: WithPrefixedLabels("item") → "item0","item1",...
func WithPrefixedLabels(prefix string) BuilderOption {
	return WithLabelScheme(PrefixedLabelFn(prefix))
}

// WithDefaultLabels resets the label scheme to DefaultLabelFn.
func WithDefaultLabels() BuilderOption {
	return WithLabelScheme(DefaultLabelFn)
}

// WithAlphabeticLabels sets the label scheme to AlphabeticLabelFn.
func WithAlphabeticLabels() BuilderOption {
	return WithLabelScheme(AlphabeticLabelFn)
}

// WithExcelColumnLabels sets the label scheme to ExcelColumnLabelFn.
func WithExcelColumnLabels() BuilderOption {
	return WithLabelScheme(ExcelColumnLabelFn)
}

// WithHexLabels sets the label scheme to HexLabelFn.
func WithHexLabels() BuilderOption {
	return WithLabelScheme(HexLabelFn)
}

// WithAlphanumericLabels sets the label scheme to AlphanumericLabelFn.
func WithAlphanumericLabels() BuilderOption {
	return WithLabelScheme(AlphanumericLabelFn)
}
