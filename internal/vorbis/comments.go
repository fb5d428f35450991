// Package vorbis provides shared Vorbis comment parsing utilities.
//
// Vorbis comments are used by both FLAC and Ogg Vorbis formats.
// The format is identical: a vendor string followed by UTF-8 strings in
// "KEY=VALUE" format, every length a 32-bit little-endian integer.
package vorbis

import (
	"fmt"
	"strings"

	"github.com/simonhull/coverart/internal/binary"
	"github.com/simonhull/coverart/internal/types"
)

// maxComments bounds the comment count declared by a block.
const maxComments = 1 << 20

// Parse decodes a Vorbis comment block.
//
// An error means the vendor string or the comment count could not be read.
// A comment that overruns the block ends parsing with a warning, and the
// comments before it are kept. Comments without '=' are skipped with a warning.
func Parse(data []byte) (*types.XiphComment, []types.Warning, error) {
	c := binary.NewCursor(data, "Vorbis comment")

	vendor := c.Bytes(int(c.Uint32LE("vendor length")), "vendor string")
	count := c.Uint32LE("comment count")
	if c.Err() != nil {
		return nil, nil, c.Err()
	}
	if count > maxComments {
		return nil, nil, fmt.Errorf("Vorbis comment count %d too large", count)
	}

	xc := &types.XiphComment{
		Vendor: string(vendor),
		Fields: make(map[string][]string),
	}
	var warnings []types.Warning

	for i := uint32(0); i < count; i++ {
		at := c.Pos()
		raw := c.Bytes(int(c.Uint32LE("comment length")), "comment")
		if c.Err() != nil {
			warnings = append(warnings, types.Warning{
				Stage:   "vorbis",
				Message: fmt.Sprintf("comment %d: %v", i, c.Err()),
				Offset:  int64(at),
			})
			break
		}

		if err := ParseComment(string(raw), xc); err != nil {
			// Non-fatal - add warning and continue
			warnings = append(warnings, types.Warning{
				Stage:   "vorbis",
				Message: fmt.Sprintf("invalid Vorbis comment: %s", err),
				Offset:  int64(at),
			})
		}
	}

	return xc, warnings, nil
}

// ParseComment parses a single Vorbis comment in "KEY=VALUE" format and
// appends the value to xc under the upper-cased key.
//
// Returns an error if the comment is not in valid "KEY=VALUE" format.
func ParseComment(comment string, xc *types.XiphComment) error {
	key, value, ok := strings.Cut(comment, "=")
	if !ok {
		return fmt.Errorf("missing '=' in comment: %s", truncate(comment, 64))
	}
	xc.Add(key, value)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
