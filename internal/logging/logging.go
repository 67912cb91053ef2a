// Package logging builds the zerolog loggers shared by the lvpart binaries.
//
// The partition library never logs; binaries log request, job and search
// lifecycle events through the logger returned by New.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ErrUnknownFormat is returned for a format other than console or json.
var ErrUnknownFormat = errors.New("logging: unknown format")

// New returns a logger writing to w at the given level ("debug", "info", ...)
// in console or JSON format. An empty level means info, an empty format console.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logging: level %q: %w", level, err)
		}
		lvl = parsed
	}

	var out io.Writer
	switch strings.ToLower(format) {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case FormatJSON:
		out = w
	default:
		return zerolog.Nop(), fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "lvpart").Logger(), nil
}
