package fixture

import "encoding/binary"

// VorbisIdentification builds a Vorbis identification header packet.
func VorbisIdentification() []byte {
	p := make([]byte, 30)
	copy(p, "\x01vorbis")
	p[11] = 2                                    // channels
	binary.LittleEndian.PutUint32(p[12:], 44100) // sample rate
	p[28] = 0xB8                                 // block sizes
	p[29] = 1                                    // framing
	return p
}

// VorbisCommentPacket wraps a comment block as a Vorbis comment header packet.
func VorbisCommentPacket(block []byte) []byte {
	return concat([]byte("\x03vorbis"), block, []byte{1})
}

// OggVorbis builds an Ogg Vorbis stream holding the identification header,
// the comment header built from comments and a placeholder setup header.
// maxSegments limits the segment table of every page after the first, so
// small values force the comment packet across many pages.
func OggVorbis(maxSegments int, vendor string, comments ...string) []byte {
	return OggStream(1, maxSegments,
		VorbisIdentification(),
		VorbisCommentPacket(VorbisComment(vendor, comments...)),
		[]byte("\x05vorbis"),
	)
}

// OggStream pages the packets of one logical stream. The first packet gets a
// page of its own flagged beginning-of-stream.
func OggStream(serial uint32, maxSegments int, packets ...[]byte) []byte {
	if maxSegments <= 0 || maxSegments > 255 {
		maxSegments = 255
	}

	var out []byte
	seq := uint32(0)
	if len(packets) > 0 {
		out = append(out, oggPage(0x02, serial, seq, lacing(len(packets[0])), packets[0])...)
		seq++
	}

	// Lay the remaining packets out as one segment stream.
	var segs []byte
	var data []byte
	for _, p := range packets[1:] {
		segs = append(segs, lacing(len(p))...)
		data = append(data, p...)
	}

	continued := false
	for len(segs) > 0 {
		n := min(maxSegments, len(segs))
		pageSegs := segs[:n]
		size := 0
		for _, s := range pageSegs {
			size += int(s)
		}

		var flags byte
		if continued {
			flags = 0x01
		}
		segs = segs[n:]
		if len(segs) == 0 {
			flags |= 0x04
		}
		out = append(out, oggPage(flags, serial, seq, pageSegs, data[:size])...)
		seq++
		data = data[size:]
		continued = pageSegs[n-1] == 255
	}
	return out
}

// lacing returns the segment table entries for a packet of n bytes.
func lacing(n int) []byte {
	out := make([]byte, 0, n/255+1)
	for n >= 255 {
		out = append(out, 255)
		n -= 255
	}
	return append(out, byte(n))
}

func oggPage(flags byte, serial, seq uint32, segs, data []byte) []byte {
	h := make([]byte, 27)
	copy(h, "OggS")
	h[5] = flags
	binary.LittleEndian.PutUint32(h[14:], serial)
	binary.LittleEndian.PutUint32(h[18:], seq)
	h[26] = byte(len(segs))
	return concat(h, segs, data)
}
