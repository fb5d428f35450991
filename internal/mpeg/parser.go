// Package mpeg reads the tags of MPEG audio streams: an ID3v2 tag at the
// start of the file and an APE tag at the end.
package mpeg

import (
	"errors"
	"fmt"
	"io"

	"github.com/simonhull/coverart/internal/ape"
	binutil "github.com/simonhull/coverart/internal/binary"
	"github.com/simonhull/coverart/internal/id3v2"
	"github.com/simonhull/coverart/internal/registry"
	"github.com/simonhull/coverart/internal/types"
)

// parser implements registry.Parser for MPEG audio files
type parser struct{}

// Parse reads the leading ID3v2 tag and the trailing APE tag. Either may be
// missing; a damaged tag is dropped with a warning.
func (p *parser) Parse(r io.ReaderAt, size int64, path string) (types.File, error) {
	sr := binutil.NewSafeReader(r, size, path)
	file := &types.MPEGFile{}

	tagSize := int64(0)
	tag, n, warnings, err := id3v2.Read(sr, 0)
	switch {
	case err == nil:
		file.ID3v2 = tag
		file.Warnings = append(file.Warnings, warnings...)
		tagSize = n
	case !errors.Is(err, id3v2.ErrNoTag):
		file.Warnings = append(file.Warnings, types.Warning{
			Stage:   "id3v2",
			Message: "ID3v2 parsing failed: " + err.Error(),
		})
	}

	if err := checkFrameSync(sr, tagSize); err != nil {
		file.Warnings = append(file.Warnings, types.Warning{
			Stage:   "mpeg",
			Message: err.Error(),
			Offset:  tagSize,
		})
	}

	apeTag, warnings, err := ape.ReadTail(sr)
	switch {
	case err == nil:
		file.APE = apeTag
		file.Warnings = append(file.Warnings, warnings...)
	case !errors.Is(err, ape.ErrNoTag):
		file.Warnings = append(file.Warnings, types.Warning{
			Stage:   "ape",
			Message: "APE parsing failed: " + err.Error(),
		})
	}

	return file, nil
}

// checkFrameSync verifies that an MPEG frame header (11 set sync bits)
// follows the ID3v2 tag.
func checkFrameSync(sr *binutil.SafeReader, offset int64) error {
	header, err := binutil.Read[uint32](sr, offset, "MPEG frame header")
	if err != nil {
		return fmt.Errorf("no MPEG frame after tags: %w", err)
	}
	if header&0xFFE00000 != 0xFFE00000 {
		return fmt.Errorf("no MPEG frame sync at offset %d", offset)
	}
	return nil
}

// init registers the MPEG parser
func init() {
	registry.Register(types.FormatMPEG, &parser{})
}
