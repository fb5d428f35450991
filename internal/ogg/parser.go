package ogg

import (
	"fmt"
	"io"

	"github.com/simonhull/coverart/internal/binary"
	"github.com/simonhull/coverart/internal/registry"
	"github.com/simonhull/coverart/internal/types"
	"github.com/simonhull/coverart/internal/vorbis"
)

// Vorbis header packet types
const (
	headerIdentification = 0x01
	headerComment        = 0x03
)

// parser implements registry.Parser for Ogg Vorbis files.
type parser struct{}

// Parse reads the identification and comment headers of the first logical
// stream. The comment header may span many pages when it carries pictures.
func (p *parser) Parse(r io.ReaderAt, size int64, path string) (types.File, error) {
	sr := binary.NewSafeReader(r, size, path)
	file := &types.VorbisFile{}

	warn := func(off int64, msg string) {
		file.Warnings = append(file.Warnings, types.Warning{
			Stage:   "ogg",
			Message: msg,
			Offset:  off,
		})
	}

	magic, err := sr.Bytes(0, 4, "Ogg magic bytes")
	if err != nil {
		return nil, fmt.Errorf("read Ogg magic: %w", err)
	}
	if string(magic) != "OggS" {
		return nil, &types.CorruptedFileError{
			Path:   path,
			Offset: 0,
			Reason: "invalid Ogg magic bytes",
		}
	}

	pr := newPacketReader(sr, warn)

	ident, err := pr.next()
	if err != nil {
		return nil, fmt.Errorf("failed to read first Ogg packet: %w", err)
	}
	if !isVorbisHeader(ident.data, headerIdentification) {
		return nil, &types.CorruptedFileError{
			Path:   path,
			Offset: ident.offset,
			Reason: "first Ogg packet is not a Vorbis identification header",
		}
	}

	comment, err := pr.next()
	if err != nil {
		warn(pr.offset, fmt.Sprintf("failed to read Vorbis comment header: %v", err))
		return file, nil
	}
	if !isVorbisHeader(comment.data, headerComment) {
		warn(comment.offset, "second Ogg packet is not a Vorbis comment header")
		return file, nil
	}

	// The trailing framing bit is ignored by the comment decoder.
	xc, warnings, err := vorbis.Parse(comment.data[7:])
	if err != nil {
		warn(comment.offset, fmt.Sprintf("failed to parse Vorbis comment header: %v", err))
		return file, nil
	}
	for i := range warnings {
		warnings[i].Offset = comment.offset
	}
	file.Xiph = xc
	file.Warnings = append(file.Warnings, warnings...)

	return file, nil
}

// isVorbisHeader reports whether packet starts with the given header type
// followed by "vorbis".
func isVorbisHeader(packet []byte, typ byte) bool {
	return len(packet) >= 7 && packet[0] == typ && string(packet[1:7]) == "vorbis"
}

// init registers the Ogg Vorbis parser
func init() {
	registry.Register(types.FormatOgg, &parser{})
}
