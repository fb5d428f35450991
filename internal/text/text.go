// Package text decodes the string encodings used inside audio tags.
//
// ID3v2 frames declare one of four encodings in a leading byte, ASF stores
// UTF-16LE throughout, and MP4 items use UTF-8 or UTF-16BE.
package text

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is an ID3v2 text encoding byte.
type Encoding byte

const (
	Latin1  Encoding = 0 // ISO-8859-1
	UTF16   Encoding = 1 // UTF-16 with BOM
	UTF16BE Encoding = 2 // UTF-16BE without BOM (ID3v2.4)
	UTF8    Encoding = 3 // UTF-8 (ID3v2.4)
)

// Wide reports whether the encoding uses two-byte code units.
func (e Encoding) Wide() bool {
	return e == UTF16 || e == UTF16BE
}

// TerminatorSize returns the size of the NUL terminator for the encoding.
func (e Encoding) TerminatorSize() int {
	if e.Wide() {
		return 2
	}
	return 1
}

// Decode converts data in the given encoding to a Go string.
// Unknown encodings are treated as ISO-8859-1.
func Decode(data []byte, enc Encoding) string {
	switch enc {
	case UTF16:
		return DecodeUTF16(data)
	case UTF16BE:
		return DecodeUTF16BE(data)
	case UTF8:
		return strings.TrimRight(string(data), "\x00")
	default:
		return DecodeLatin1(data)
	}
}

// DecodeLatin1 decodes ISO-8859-1.
func DecodeLatin1(data []byte) string {
	return decode(charmap.ISO8859_1.NewDecoder(), data)
}

// DecodeUTF16 decodes UTF-16 honouring a leading BOM, big-endian otherwise.
func DecodeUTF16(data []byte) string {
	return decode(unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder(), evenLength(data))
}

// DecodeUTF16BE decodes UTF-16 big-endian.
func DecodeUTF16BE(data []byte) string {
	return decode(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder(), evenLength(data))
}

// DecodeUTF16LE decodes UTF-16 little-endian, the ASF string encoding.
func DecodeUTF16LE(data []byte) string {
	return decode(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder(), evenLength(data))
}

// IndexTerminator returns the offset of the first NUL terminator in data,
// aligned to code units for wide encodings, or -1.
func IndexTerminator(data []byte, enc Encoding) int {
	if !enc.Wide() {
		for i, b := range data {
			if b == 0 {
				return i
			}
		}
		return -1
	}
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			return i
		}
	}
	return -1
}

// Split breaks data into NUL-separated strings. A trailing terminator does
// not produce an empty final element.
func Split(data []byte, enc Encoding) []string {
	var out []string
	for len(data) > 0 {
		end := IndexTerminator(data, enc)
		if end < 0 {
			out = append(out, Decode(data, enc))
			break
		}
		out = append(out, Decode(data[:end], enc))
		data = data[end+enc.TerminatorSize():]
	}
	return out
}

func decode(dec *encoding.Decoder, data []byte) string {
	out, err := dec.Bytes(data)
	if err != nil {
		return strings.TrimRight(string(data), "\x00")
	}
	return strings.TrimRight(string(out), "\x00")
}

func evenLength(data []byte) []byte {
	if len(data)%2 != 0 {
		return data[:len(data)-1]
	}
	return data
}
