// Package builder defines shared constants used by sequence generators,
// ensuring consistent defaults and validation across all of them.
package builder

//-----------------------------------------------------------------------------
// Generator Method Name Constants
//   used to prefix errors with the generator name for context.
//-----------------------------------------------------------------------------

const (
	// MethodItems is the canonical name for the BuildItems generator.
	MethodItems = "BuildItems"
	// MethodPulseItems is the canonical name for the BuildPulseItems generator.
	MethodPulseItems = "BuildPulseItems"
)

//-----------------------------------------------------------------------------
// Sizes and Defaults
//-----------------------------------------------------------------------------

// MinItems is the smallest meaningful item sequence length.
const MinItems = 1

// DefaultWeight is the weight assigned to every item when no custom WeightFn
// is provided.
const DefaultWeight float64 = 1

// Tiny numeric named constants shared by the waveform code.
const (
	unitZero  = 0.0 // named zero to avoid magic 0.0
	unitOne   = 1.0 // named one to avoid magic 1.0
	triDouble = 2.0 // factor used in triangular wave: 2*frac-1
	triCenter = 1.0 // center offset used in triangular wave
)

// alphabetSize is the number of letters used by the spreadsheet label schemes.
const alphabetSize = 26
