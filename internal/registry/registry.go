// Package registry maps detected formats to their tag parsers.
package registry

import (
	"io"
	"sort"

	"github.com/simonhull/coverart/internal/types"
)

// Parser is the interface all format parsers implement.
type Parser interface {
	// Parse reads the tags of an audio file and returns its handle variant.
	// The caller fills in the shared FileInfo fields (Path, Format, Size).
	// Tag-level damage is reported through FileInfo.Warnings; an error means
	// the container itself could not be read.
	Parse(r io.ReaderAt, size int64, path string) (types.File, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(r io.ReaderAt, size int64, path string) (types.File, error)

// Parse calls f(r, size, path).
func (f ParserFunc) Parse(r io.ReaderAt, size int64, path string) (types.File, error) {
	return f(r, size, path)
}

// parsers maps formats to their parsers.
var parsers = make(map[types.Format]Parser)

// Register registers a parser for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, parser Parser) {
	parsers[format] = parser
}

// Get returns the parser for a given format.
// Returns nil if no parser is registered for the format.
func Get(format types.Format) Parser {
	return parsers[format]
}

// Formats returns the formats that have a registered parser, in enum order.
func Formats() []types.Format {
	out := make([]types.Format, 0, len(parsers))
	for f := range parsers {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
