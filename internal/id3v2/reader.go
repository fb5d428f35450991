// Package id3v2 reads ID3v2.2, 2.3 and 2.4 tags into an ordered frame list.
package id3v2

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	binutil "github.com/simonhull/coverart/internal/binary"
	"github.com/simonhull/coverart/internal/types"
)

// HeaderSize is the size of the fixed tag header and of the optional footer.
const HeaderSize = 10

// ErrNoTag is returned when no ID3v2 header is found at the requested offset.
var ErrNoTag = errors.New("no ID3v2 tag")

// maxFrameSize guards allocations driven by corrupt size fields.
const maxFrameSize = 100 * 1024 * 1024

// Header flags.
const (
	flagUnsync      = 0x80
	flagExtended    = 0x40
	flagV22Compress = 0x40
	flagFooter      = 0x10
)

// header represents an ID3v2 tag header.
type header struct {
	Version  byte // Major version (2, 3 or 4)
	Revision byte
	Flags    byte
	Size     uint32 // Tag size excluding header and footer, synchsafe on disk
}

// TotalSize returns the on-disk size of the tag including header and footer.
func (h header) TotalSize() int64 {
	total := int64(HeaderSize) + int64(h.Size)
	if h.Version >= 4 && h.Flags&flagFooter != 0 {
		total += HeaderSize
	}
	return total
}

// Read parses the ID3v2 tag that starts at off.
//
// It returns the tag and the number of bytes it occupies. A damaged frame
// ends frame parsing with a warning; the frames read before it are kept.
func Read(sr *binutil.SafeReader, off int64) (*types.ID3v2Tag, int64, []types.Warning, error) {
	buf, err := sr.Bytes(off, HeaderSize, "ID3v2 header")
	if err != nil || string(buf[:3]) != "ID3" {
		return nil, 0, nil, ErrNoTag
	}

	h := header{
		Version:  buf[3],
		Revision: buf[4],
		Flags:    buf[5],
		Size:     decodeSynchsafe(buf[6:10]),
	}

	if h.Version < 2 || h.Version > 4 {
		return nil, 0, nil, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: off,
			Reason: fmt.Sprintf("unsupported ID3v2 version: 2.%d", h.Version),
		}
	}

	var warnings []types.Warning
	warn := func(at int64, format string, args ...any) {
		warnings = append(warnings, types.Warning{
			Stage:   "id3v2",
			Message: fmt.Sprintf(format, args...),
			Offset:  at,
		})
	}

	bodyLen := int64(h.Size)
	if avail := sr.Size() - off - HeaderSize; bodyLen > avail {
		warn(off, "tag size %d exceeds file, truncated to %d bytes", bodyLen, avail)
		bodyLen = max(avail, 0)
	}
	body, err := sr.Bytes(off+HeaderSize, bodyLen, "ID3v2 tag body")
	if err != nil {
		return nil, 0, warnings, err
	}

	tag := &types.ID3v2Tag{
		Version:  h.Version,
		Revision: h.Revision,
		Flags:    h.Flags,
	}

	if h.Version == 2 && h.Flags&flagV22Compress != 0 {
		warn(off, "ID3v2.2 compression is not supported, frames skipped")
		return tag, h.TotalSize(), warnings, nil
	}

	// ID3v2.4 applies unsynchronisation per frame.
	if h.Flags&flagUnsync != 0 && h.Version < 4 {
		body = removeUnsync(body)
	}

	pos := 0
	if h.Version >= 3 && h.Flags&flagExtended != 0 {
		skip, ok := extendedHeaderSize(body, h.Version)
		if !ok {
			warn(off+HeaderSize, "extended header overruns tag")
			return tag, h.TotalSize(), warnings, nil
		}
		pos = skip
	}

	fp := frameParser{version: h.Version, tagUnsync: h.Flags&flagUnsync != 0}
	for pos < len(body) {
		frame, n, err := fp.next(body[pos:])
		if err != nil {
			warn(off+HeaderSize+int64(pos), "%v", err)
			break
		}
		if n == 0 {
			break // padding
		}
		if frame != nil {
			tag.Frames = append(tag.Frames, *frame)
			if frame.ID == "APIC" && frame.Picture == nil {
				warn(off+HeaderSize+int64(pos), "APIC frame could not be decoded")
			}
		}
		pos += n
	}

	return tag, h.TotalSize(), warnings, nil
}

func extendedHeaderSize(body []byte, version byte) (int, bool) {
	if len(body) < 4 {
		return 0, false
	}
	var n int
	if version == 4 {
		// Synchsafe and inclusive of the size field itself.
		n = int(decodeSynchsafe(body[:4]))
	} else {
		n = int(binary.BigEndian.Uint32(body[:4])) + 4
	}
	if n > len(body) {
		return 0, false
	}
	return n, true
}

// frameParser splits a tag body into frames.
type frameParser struct {
	version   byte
	tagUnsync bool
}

// headerSize returns the size of a frame header for this version.
func (fp frameParser) headerSize() int {
	if fp.version == 2 {
		return 6
	}
	return 10
}

// next reads one frame from data. It returns n == 0 when padding is reached
// and a nil frame for frames that are skipped (encrypted).
func (fp frameParser) next(data []byte) (*types.ID3v2Frame, int, error) {
	hs := fp.headerSize()
	if len(data) < hs || data[0] == 0 {
		return nil, 0, nil
	}

	var (
		id    string
		size  int
		flags uint16
	)
	if fp.version == 2 {
		id = string(data[:3])
		size = int(data[3])<<16 | int(data[4])<<8 | int(data[5])
	} else {
		id = string(data[:4])
		if fp.version == 4 {
			size = int(decodeSynchsafe(data[4:8]))
		} else {
			size = int(binary.BigEndian.Uint32(data[4:8]))
		}
		flags = binary.BigEndian.Uint16(data[8:10])
	}

	if !validFrameID(id) {
		return nil, 0, fmt.Errorf("invalid frame id %q", id)
	}
	if size > maxFrameSize || hs+size > len(data) {
		return nil, 0, fmt.Errorf("frame %s size %d overruns tag", id, size)
	}

	raw := data[hs : hs+size]
	n := hs + size

	if fp.version == 2 {
		id = upgradeFrameID(id)
	}

	body, skip, err := fp.decodeBody(id, flags, raw)
	if err != nil {
		return nil, 0, err
	}
	if skip {
		return nil, n, nil
	}

	frame := &types.ID3v2Frame{ID: id, Flags: flags, Data: body}
	fillFrame(frame, fp.version)
	return frame, n, nil
}

// decodeBody undoes grouping, data length indicators, unsynchronisation and
// compression. skip is set for encrypted frames.
func (fp frameParser) decodeBody(id string, flags uint16, raw []byte) ([]byte, bool, error) {
	var (
		grouping, compressed, encrypted, unsync, dataLen bool
	)
	switch fp.version {
	case 3:
		compressed = flags&0x0080 != 0
		encrypted = flags&0x0040 != 0
		grouping = flags&0x0020 != 0
		// Compressed v2.3 frames carry the decompressed size.
		dataLen = compressed
	case 4:
		grouping = flags&0x0040 != 0
		compressed = flags&0x0008 != 0
		encrypted = flags&0x0004 != 0
		unsync = flags&0x0002 != 0 || fp.tagUnsync
		dataLen = flags&0x0001 != 0
	}

	if encrypted {
		return nil, true, nil
	}

	// v2.3 stores the decompressed size before the group id; v2.4 stores the
	// group id first.
	var err error
	body := raw
	if fp.version == 3 {
		if body, err = skipExtra(body, dataLen, 4, id, "data length"); err != nil {
			return nil, false, err
		}
		if body, err = skipExtra(body, grouping, 1, id, "group id"); err != nil {
			return nil, false, err
		}
	} else {
		if body, err = skipExtra(body, grouping, 1, id, "group id"); err != nil {
			return nil, false, err
		}
		if body, err = skipExtra(body, dataLen, 4, id, "data length"); err != nil {
			return nil, false, err
		}
	}
	if unsync {
		body = removeUnsync(body)
	}
	if compressed {
		out, err := inflate(body)
		if err != nil {
			return nil, false, fmt.Errorf("frame %s: %w", id, err)
		}
		body = out
	}
	return body, false, nil
}

// skipExtra drops n leading header bytes from body when present is set.
func skipExtra(body []byte, present bool, n int, id, what string) ([]byte, error) {
	if !present {
		return body, nil
	}
	if len(body) < n {
		return nil, fmt.Errorf("frame %s missing %s", id, what)
	}
	return body[n:], nil
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, maxFrameSize))
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	return out, nil
}

// decodeSynchsafe decodes a synchsafe integer (7 bits per byte).
func decodeSynchsafe(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// removeUnsync reverses unsynchronisation: every 0xFF 0x00 becomes 0xFF.
func removeUnsync(data []byte) []byte {
	if bytes.IndexByte(data, 0xFF) < 0 {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		out = append(out, data[i])
		if data[i] == 0xFF && i+1 < len(data) && data[i+1] == 0x00 {
			i++
		}
	}
	return out
}

func validFrameID(id string) bool {
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
