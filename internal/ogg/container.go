// Package ogg implements Ogg Vorbis comment header parsing.
package ogg

import (
	"fmt"

	"github.com/simonhull/coverart/internal/binary"
)

const (
	pageHeaderSize = 27
	flagContinued  = 0x01
)

// Page represents an Ogg page.
//
// An Ogg page is the fundamental unit of the Ogg container format.
// Each page contains a header, a segment table and the payload the table
// describes.
type Page struct {
	Segments       []byte // Lacing values, one per segment
	Data           []byte // Page payload
	Offset         int64  // Position of the "OggS" capture pattern
	SerialNumber   uint32 // Logical bitstream identifier
	SequenceNumber uint32 // Page sequence number
	HeaderType     byte   // Bit flags: 0x01=continued, 0x02=BOS, 0x04=EOS
}

// readPage reads an Ogg page at the given offset.
//
// Returns the page and the offset of the page that follows it.
func readPage(sr *binary.SafeReader, offset int64) (*Page, int64, error) {
	header, err := sr.Bytes(offset, pageHeaderSize, "Ogg page header")
	if err != nil {
		return nil, 0, err
	}
	if string(header[:4]) != "OggS" {
		return nil, 0, fmt.Errorf("invalid Ogg page at offset %d", offset)
	}
	if header[4] != 0 {
		return nil, 0, fmt.Errorf("unsupported Ogg version: %d", header[4])
	}

	c := binary.NewCursor(header[5:], "Ogg page header")
	page := &Page{Offset: offset, HeaderType: c.Uint8("header type")}
	c.Skip(8, "granule position")
	page.SerialNumber = c.Uint32LE("serial number")
	page.SequenceNumber = c.Uint32LE("sequence number")
	c.Skip(4, "checksum")
	segmentCount := c.Uint8("segment count")
	if c.Err() != nil {
		return nil, 0, c.Err()
	}

	page.Segments, err = sr.Bytes(offset+pageHeaderSize, int64(segmentCount), "segment table")
	if err != nil {
		return nil, 0, err
	}

	dataSize := int64(0)
	for _, seg := range page.Segments {
		dataSize += int64(seg)
	}

	dataOffset := offset + pageHeaderSize + int64(segmentCount)
	page.Data, err = sr.Bytes(dataOffset, dataSize, "page data")
	if err != nil {
		return nil, 0, err
	}

	return page, dataOffset + dataSize, nil
}

// packet is a reassembled packet and the offset of the page it starts on.
type packet struct {
	data   []byte
	offset int64
}

// packetReader reassembles the packets of the first logical stream in a
// physical Ogg stream. A packet ends at the first segment shorter than 255
// bytes and may continue across any number of pages.
type packetReader struct {
	sr      *binary.SafeReader
	warn    func(off int64, msg string)
	queue   []packet
	partial packet
	offset  int64
	serial  uint32
	started bool
}

func newPacketReader(sr *binary.SafeReader, warn func(int64, string)) *packetReader {
	return &packetReader{sr: sr, warn: warn}
}

// next returns the next complete packet of the stream.
func (pr *packetReader) next() (packet, error) {
	for len(pr.queue) == 0 {
		if pr.offset >= pr.sr.Size() {
			return packet{}, fmt.Errorf("end of stream at offset %d inside Ogg headers", pr.offset)
		}

		page, next, err := readPage(pr.sr, pr.offset)
		if err != nil {
			return packet{}, err
		}
		pr.offset = next

		if !pr.started {
			pr.serial = page.SerialNumber
			pr.started = true
		}
		if page.SerialNumber != pr.serial {
			continue
		}
		pr.addPage(page)
	}

	p := pr.queue[0]
	pr.queue = pr.queue[1:]
	return p, nil
}

func (pr *packetReader) addPage(page *Page) {
	pending := pr.partial.data != nil
	continued := page.HeaderType&flagContinued != 0

	segments := page.Segments
	data := page.Data
	switch {
	case pending && !continued:
		pr.warn(page.Offset, "Ogg page does not continue the pending packet, dropping it")
		pr.partial = packet{}
	case !pending && continued:
		// The tail of a packet whose start was never seen.
		for len(segments) > 0 {
			seg := segments[0]
			segments = segments[1:]
			data = data[seg:]
			if seg < 255 {
				break
			}
		}
	}

	pos := 0
	for _, seg := range segments {
		if pr.partial.data == nil {
			pr.partial = packet{data: []byte{}, offset: page.Offset}
		}
		pr.partial.data = append(pr.partial.data, data[pos:pos+int(seg)]...)
		pos += int(seg)
		if seg < 255 {
			pr.queue = append(pr.queue, pr.partial)
			pr.partial = packet{}
		}
	}
}
