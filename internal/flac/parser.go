package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/simonhull/coverart/internal/binary"
	"github.com/simonhull/coverart/internal/id3v2"
	"github.com/simonhull/coverart/internal/registry"
	"github.com/simonhull/coverart/internal/types"
	"github.com/simonhull/coverart/internal/vorbis"
)

// Metadata block types
const (
	blockTypeStreamInfo    = 0
	blockTypePadding       = 1
	blockTypeApplication   = 2
	blockTypeSeekTable     = 3
	blockTypeVorbisComment = 4
	blockTypeCueSheet      = 5
	blockTypePicture       = 6
	blockTypeInvalid       = 127
)

// parser implements registry.Parser for FLAC files
type parser struct{}

// Parse reads the metadata blocks of a FLAC stream, and a leading ID3v2 tag
// when one precedes the "fLaC" marker.
func (p *parser) Parse(r io.ReaderAt, size int64, path string) (types.File, error) {
	sr := binary.NewSafeReader(r, size, path)
	file := &types.FLACFile{}

	warn := func(off int64, format string, args ...any) {
		file.Warnings = append(file.Warnings, types.Warning{
			Stage:   "flac",
			Message: fmt.Sprintf(format, args...),
			Offset:  off,
		})
	}

	// Some taggers prepend an ID3v2 tag to FLAC files.
	start := int64(0)
	tag, tagSize, warnings, err := id3v2.Read(sr, 0)
	switch {
	case err == nil:
		file.ID3v2 = tag
		file.Warnings = append(file.Warnings, warnings...)
		start = tagSize
	case !errors.Is(err, id3v2.ErrNoTag):
		warn(0, "ID3v2 tag ignored: %v", err)
	}

	magic, err := sr.Bytes(start, 4, "FLAC magic bytes")
	if err != nil {
		return nil, fmt.Errorf("read FLAC magic: %w", err)
	}
	if string(magic) != "fLaC" {
		return nil, &types.CorruptedFileError{
			Path:   path,
			Offset: start,
			Reason: "invalid FLAC magic bytes",
		}
	}

	offset := start + 4
	for offset < size {
		header, err := binary.Read[uint32](sr, offset, "metadata block header")
		if err != nil {
			warn(offset, "failed to read metadata block header: %v", err)
			break
		}

		isLast := (header >> 31) == 1
		blockType := uint8((header >> 24) & 0x7F)
		blockLength := int64(header & 0x00FFFFFF)
		offset += 4

		if blockType == blockTypeInvalid {
			warn(offset-4, "invalid metadata block type")
			break
		}
		if offset+blockLength > size {
			warn(offset, "metadata block type %d overruns file", blockType)
			break
		}

		switch blockType {
		case blockTypeVorbisComment:
			if file.Xiph != nil {
				warn(offset, "multiple VORBIS_COMMENT blocks, keeping the first")
				break
			}
			if err := parseVorbisComment(sr, offset, blockLength, file); err != nil {
				warn(offset, "failed to parse Vorbis comments: %v", err)
			}

		case blockTypePicture:
			pic, err := parsePicture(sr, offset, blockLength)
			if err != nil {
				warn(offset, "failed to parse PICTURE: %v", err)
				break
			}
			file.Pictures = append(file.Pictures, pic)

		default:
			// STREAMINFO, padding, application, seek table and cue sheet
			// blocks carry no tags.
		}

		offset += blockLength
		if isLast {
			break
		}
	}

	return file, nil
}

// parseVorbisComment extracts tags from VORBIS_COMMENT block
func parseVorbisComment(sr *binary.SafeReader, offset, blockLength int64, file *types.FLACFile) error {
	data, err := sr.Bytes(offset, blockLength, "VORBIS_COMMENT block")
	if err != nil {
		return err
	}

	xc, warnings, err := vorbis.Parse(data)
	if err != nil {
		return err
	}
	for i := range warnings {
		warnings[i].Offset += offset
	}
	file.Xiph = xc
	file.Warnings = append(file.Warnings, warnings...)
	return nil
}

// parsePicture decodes a PICTURE block. All integers are big-endian:
//
//	type, mime length, mime, description length, description,
//	width, height, depth, colors, data length, data
func parsePicture(sr *binary.SafeReader, offset, blockLength int64) (types.FLACPicture, error) {
	block, err := sr.Bytes(offset, blockLength, "PICTURE block")
	if err != nil {
		return types.FLACPicture{}, err
	}

	c := binary.NewCursor(block, "PICTURE block")
	pic := types.FLACPicture{Type: c.Uint32BE("picture type")}
	pic.MIMEType = string(c.Bytes(int(c.Uint32BE("MIME type length")), "MIME type"))
	pic.Description = string(c.Bytes(int(c.Uint32BE("description length")), "description"))
	pic.Width = c.Uint32BE("width")
	pic.Height = c.Uint32BE("height")
	pic.Depth = c.Uint32BE("color depth")
	pic.Colors = c.Uint32BE("indexed colors")
	pic.Data = c.Bytes(int(c.Uint32BE("picture data length")), "picture data")
	if c.Err() != nil {
		return types.FLACPicture{}, c.Err()
	}
	return pic, nil
}

// init registers the FLAC parser
func init() {
	registry.Register(types.FormatFLAC, &parser{})
}
