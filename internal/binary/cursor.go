package binary

import (
	"encoding/binary"
	"fmt"
)

// Cursor walks an in-memory block with deferred error checking.
//
// Once a read fails every later read returns a zero value, so a parser can
// decode a whole structure and check Err once at the end.
type Cursor struct {
	data []byte
	pos  int
	what string
	err  error
}

// NewCursor creates a Cursor over data. what names the structure in errors.
func NewCursor(data []byte, what string) *Cursor {
	return &Cursor{data: data, what: what}
}

// Err returns the first error encountered, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Pos returns the current offset into the block.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	if c.err != nil {
		return 0
	}
	return len(c.data) - c.pos
}

// Bytes returns the next n bytes without copying.
func (c *Cursor) Bytes(n int, field string) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 || n > len(c.data)-c.pos {
		c.err = fmt.Errorf("%s: %s needs %d bytes at offset %d, %d left",
			c.what, field, n, c.pos, len(c.data)-c.pos)
		return nil
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b
}

// Skip advances past n bytes.
func (c *Cursor) Skip(n int, field string) {
	c.Bytes(n, field)
}

// Uint8 reads one byte.
func (c *Cursor) Uint8(field string) uint8 {
	b := c.Bytes(1, field)
	if b == nil {
		return 0
	}
	return b[0]
}

// Uint16LE reads a little-endian uint16.
func (c *Cursor) Uint16LE(field string) uint16 {
	b := c.Bytes(2, field)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// Uint32LE reads a little-endian uint32.
func (c *Cursor) Uint32LE(field string) uint32 {
	b := c.Bytes(4, field)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Uint64LE reads a little-endian uint64.
func (c *Cursor) Uint64LE(field string) uint64 {
	b := c.Bytes(8, field)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// Uint32BE reads a big-endian uint32.
func (c *Cursor) Uint32BE(field string) uint32 {
	b := c.Bytes(4, field)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// Peek returns the unread bytes without advancing.
func (c *Cursor) Peek() []byte {
	if c.err != nil {
		return nil
	}
	return c.data[c.pos:]
}
