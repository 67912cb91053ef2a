// Package dataset reads labeled item sequences from JSON or CSV and writes
// them (and partition results) back out.
//
// JSON input:
//
//	{"weights": [4, 4, null, 4], "labels": ["a", "b", "c", "d"]}
//
// CSV input, one item per row, optional "label,weight" header:
//
//	a,4
//	b,4
//	c,
//
// A null / empty weight is a missing value and becomes NaN, which the
// partition search rejects with partition.ErrMissingWeight. When labels are
// omitted entirely they default to "0", "1", ...
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvpart/builder"
	"github.com/katalvlaran/lvpart/partition"
)

// Format is a serialization of an item sequence.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var (
	// ErrMalformed is returned when the input cannot be decoded.
	ErrMalformed = errors.New("dataset: malformed input")

	// ErrUnknownFormat is returned for a format other than json or csv.
	ErrUnknownFormat = errors.New("dataset: unknown format")
)

// Dataset is a labeled item sequence; NaN weights are missing.
type Dataset struct {
	Labels  []string
	Weights []float64
}

// Summary describes a dataset for logs.
type Summary struct {
	Items   int     `json:"items"`
	Missing int     `json:"missing"`
	Total   float64 `json:"total"` // sum of the present weights
}

// Summary counts items and missing weights and sums the rest.
func (d Dataset) Summary() Summary {
	present := make([]float64, 0, len(d.Weights))
	for _, w := range d.Weights {
		if !math.IsNaN(w) {
			present = append(present, w)
		}
	}

	return Summary{
		Items:   len(d.Weights),
		Missing: len(d.Weights) - len(present),
		Total:   floats.Sum(present),
	}
}

// FromItems converts generator output into a Dataset.
func FromItems(it builder.Items) Dataset {
	return Dataset{Labels: it.Labels, Weights: it.Weights}
}

// ParseFormat accepts "json" or "csv" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}

	return FormatJSON
}

// Read decodes r in the given format.
func Read(r io.Reader, f Format) (Dataset, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatCSV:
		return ReadCSV(r)
	default:
		return Dataset{}, fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
}

// Write encodes d in the given format.
func Write(w io.Writer, d Dataset, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, d)
	case FormatCSV:
		return WriteCSV(w, d)
	default:
		return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
}

// document is the JSON wire form; nil weights are missing.
type document struct {
	Weights []*float64 `json:"weights"`
	Labels  []string   `json:"labels,omitempty"`
}

// ReadJSON decodes a {"weights": [...], "labels": [...]} document.
func ReadJSON(r io.Reader) (Dataset, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Dataset{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if doc.Weights == nil {
		return Dataset{}, fmt.Errorf("missing \"weights\": %w", ErrMalformed)
	}

	return Dataset{
		Labels:  DefaultLabels(doc.Labels, len(doc.Weights)),
		Weights: Weights(doc.Weights),
	}, nil
}

// Weights converts nullable weights into floats with NaN for missing values.
func Weights(in []*float64) []float64 {
	out := make([]float64, len(in))
	for i, w := range in {
		if w == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *w
	}

	return out
}

// DefaultLabels returns labels, or decimal labels for n items when labels is nil.
func DefaultLabels(labels []string, n int) []string {
	if labels != nil {
		return labels
	}
	out := make([]string, n)
	for i := range out {
		out[i] = builder.DefaultLabelFn(i)
	}

	return out
}

// WriteJSON encodes d as a dataset document; NaN weights become null.
func WriteJSON(w io.Writer, d Dataset) error {
	doc := document{Weights: make([]*float64, len(d.Weights)), Labels: d.Labels}
	for i := range d.Weights {
		if !math.IsNaN(d.Weights[i]) {
			doc.Weights[i] = &d.Weights[i]
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

// csvHeader is the optional first row of a CSV dataset.
var csvHeader = []string{"label", "weight"}

// ReadCSV decodes label,weight rows. An empty weight is missing.
func ReadCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var d Dataset
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		if line == 1 && strings.EqualFold(rec[0], csvHeader[0]) && strings.EqualFold(rec[1], csvHeader[1]) {
			continue
		}

		w := math.NaN()
		if s := strings.TrimSpace(rec[1]); s != "" {
			if w, err = strconv.ParseFloat(s, 64); err != nil {
				return Dataset{}, fmt.Errorf("line %d weight %q: %w", line, s, ErrMalformed)
			}
		}
		d.Labels = append(d.Labels, rec[0])
		d.Weights = append(d.Weights, w)
	}
	if len(d.Weights) == 0 {
		return Dataset{}, fmt.Errorf("no rows: %w", ErrMalformed)
	}

	return d, nil
}

// WriteCSV encodes d as label,weight rows with a header; NaN weights are empty.
func WriteCSV(w io.Writer, d Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, wt := range d.Weights {
		cell := ""
		if !math.IsNaN(wt) {
			cell = strconv.FormatFloat(wt, 'g', -1, 64)
		}
		label := ""
		if i < len(d.Labels) {
			label = d.Labels[i]
		}
		if err := cw.Write([]string{label, cell}); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteResult encodes a partition result as indented JSON.
func WriteResult(w io.Writer, res partition.Result[string]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(res)
}
