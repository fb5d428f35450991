// Package fixture builds minimal tagged audio files in memory for tests.
//
// Every builder returns the raw bytes of a structure as it appears on disk.
// The output is only as valid as the parsers need: audio payloads are
// placeholders and checksums are left zero.
package fixture

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"
)

// Synchsafe encodes n as a 4-byte synchsafe integer.
func Synchsafe(n int) []byte {
	return []byte{
		byte(n>>21) & 0x7F,
		byte(n>>14) & 0x7F,
		byte(n>>7) & 0x7F,
		byte(n) & 0x7F,
	}
}

// UTF16LE encodes s as UTF-16LE without a terminator.
func UTF16LE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(out[2*i:], u)
	}
	return out
}

// UTF16LEZ encodes s as NUL-terminated UTF-16LE.
func UTF16LEZ(s string) []byte {
	return append(UTF16LE(s), 0, 0)
}

func u32be(n int) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(n))
	return b
}

func u32le(n int) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(n))
	return b
}

func u16le(n int) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(n))
	return b
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// MPEGFrame is a silent MPEG-1 Layer III frame header followed by padding,
// enough for format detection.
func MPEGFrame() []byte {
	return append([]byte{0xFF, 0xFB, 0x90, 0x64}, make([]byte, 413)...)
}
