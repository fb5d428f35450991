package coverart

import (
	"github.com/simonhull/coverart/internal/types"
)

// Sentinel errors reported by LookupCover. Use errors.Is to test for them.
var (
	// ErrNotFound means no container of the file holds a cover.
	ErrNotFound = types.ErrNotFound
	// ErrMalformed means a cover item exists but its payload cannot be used.
	ErrMalformed = types.ErrMalformed
)

// OutOfBoundsError is an alias to types.OutOfBoundsError.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Open returns it when no container signature matches.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is an alias to types.CorruptedFileError.
type CorruptedFileError = types.CorruptedFileError

// Warning is an alias to types.Warning.
type Warning = types.Warning
