package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		enc  Encoding
		want string
	}{
		{"latin1 ascii", []byte("Bach"), Latin1, "Bach"},
		{"latin1 high byte", []byte{'D', 'v', 0xF8, 'r', 'a', 'k'}, Latin1, "Dvørak"},
		{"utf16 le bom", []byte{0xFF, 0xFE, 'B', 0, 'a', 0, 'c', 0, 'h', 0}, UTF16, "Bach"},
		{"utf16 be bom", []byte{0xFE, 0xFF, 0, 'B', 0, 'a', 0, 'c', 0, 'h'}, UTF16, "Bach"},
		{"utf16 without bom", []byte{0, 'H', 0, 'i'}, UTF16, "Hi"},
		{"utf16be", []byte{0, 'H', 0, 'i'}, UTF16BE, "Hi"},
		{"utf8", []byte("Dvořák"), UTF8, "Dvořák"},
		{"trailing nul trimmed", []byte("Bach\x00"), UTF8, "Bach"},
		{"odd utf16 length", []byte{0, 'H', 0, 'i', 0}, UTF16BE, "Hi"},
		{"unknown encoding", []byte("x"), Encoding(9), "x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decode(tc.data, tc.enc))
		})
	}
}

func TestDecodeUTF16LE(t *testing.T) {
	assert.Equal(t, "WM/Picture", DecodeUTF16LE([]byte{
		'W', 0, 'M', 0, '/', 0, 'P', 0, 'i', 0, 'c', 0, 't', 0, 'u', 0, 'r', 0, 'e', 0, 0, 0,
	}))
}

func TestIndexTerminator(t *testing.T) {
	assert.Equal(t, 3, IndexTerminator([]byte("abc\x00d"), Latin1))
	assert.Equal(t, -1, IndexTerminator([]byte("abc"), UTF8))
	// A zero high byte followed by a zero low byte across code units is not a terminator.
	assert.Equal(t, 4, IndexTerminator([]byte{'a', 0, 0, 'b', 0, 0}, UTF16))
	assert.Equal(t, -1, IndexTerminator([]byte{'a', 0, 0}, UTF16BE))
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"Bach", "Handel"}, Split([]byte("Bach\x00Handel"), UTF8))
	assert.Equal(t, []string{"Bach"}, Split([]byte("Bach\x00"), Latin1))
	assert.Equal(t, []string{"A", "B"}, Split([]byte{0, 'A', 0, 0, 0, 'B'}, UTF16BE))
	assert.Empty(t, Split(nil, UTF8))
}
