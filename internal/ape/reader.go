// Package ape reads APEv1 and APEv2 tags from the end of a file.
package ape

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	binutil "github.com/simonhull/coverart/internal/binary"
	"github.com/simonhull/coverart/internal/types"
)

// ErrNoTag is returned when no APE footer is found.
var ErrNoTag = errors.New("no APE tag")

const (
	footerSize = 32
	id3v1Size  = 128
	preamble   = "APETAGEX"

	// maxItems bounds the item count declared by a footer.
	maxItems = 1 << 16
)

// Footer is the 32-byte structure closing an APE tag.
type Footer struct {
	Version uint32
	Size    uint32 // items plus footer, excluding the optional header
	Count   uint32
	Flags   uint32
}

// HasHeader reports whether the tag also carries a 32-byte header.
func (f Footer) HasHeader() bool {
	return f.Flags&(1<<31) != 0
}

// ReadTail reads the APE tag at the end of the file, looking before a
// trailing ID3v1 tag when there is one.
func ReadTail(sr *binutil.SafeReader) (*types.APETag, []types.Warning, error) {
	end := sr.Size()
	if end >= id3v1Size {
		if magic, err := sr.Bytes(end-id3v1Size, 3, "ID3v1 magic"); err == nil && string(magic) == "TAG" {
			end -= id3v1Size
		}
	}
	tag, _, warnings, err := Read(sr, end)
	return tag, warnings, err
}

// Read reads the APE tag whose footer ends at end. It returns the tag and
// the offset where the tag (including any header) starts.
func Read(sr *binutil.SafeReader, end int64) (*types.APETag, int64, []types.Warning, error) {
	if end < footerSize {
		return nil, 0, nil, ErrNoTag
	}
	raw, err := sr.Bytes(end-footerSize, footerSize, "APE footer")
	if err != nil || string(raw[:8]) != preamble {
		return nil, 0, nil, ErrNoTag
	}

	c := binutil.NewCursor(raw[8:], "APE footer")
	footer := Footer{
		Version: c.Uint32LE("version"),
		Size:    c.Uint32LE("size"),
		Count:   c.Uint32LE("item count"),
		Flags:   c.Uint32LE("flags"),
	}

	itemsStart := end - int64(footer.Size)
	if footer.Size < footerSize || itemsStart < 0 {
		return nil, 0, nil, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: end - footerSize,
			Reason: fmt.Sprintf("APE tag size %d out of range", footer.Size),
		}
	}
	if footer.Count > maxItems {
		return nil, 0, nil, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: end - footerSize,
			Reason: fmt.Sprintf("APE item count %d too large", footer.Count),
		}
	}

	start := itemsStart
	if footer.Version >= 2000 && footer.HasHeader() {
		start -= footerSize
	}

	body, err := sr.Bytes(itemsStart, int64(footer.Size)-footerSize, "APE items")
	if err != nil {
		return nil, 0, nil, err
	}

	tag, warnings := parseItems(body, footer, itemsStart)
	return tag, start, warnings, nil
}

// parseItems decodes the item list. Parsing stops at the first item that
// does not fit; the items before it are kept.
func parseItems(body []byte, footer Footer, base int64) (*types.APETag, []types.Warning) {
	tag := &types.APETag{
		Version: footer.Version,
		Items:   make(map[string]types.APEItem, footer.Count),
	}
	var warnings []types.Warning

	c := binutil.NewCursor(body, "APE item")
	for i := uint32(0); i < footer.Count && c.Remaining() > 0; i++ {
		at := base + int64(c.Pos())
		item, err := parseItem(c, footer.Version)
		if err != nil {
			warnings = append(warnings, types.Warning{
				Stage:   "ape",
				Message: err.Error(),
				Offset:  at,
			})
			break
		}
		tag.Items[item.Key] = item
	}

	return tag, warnings
}

func parseItem(c *binutil.Cursor, version uint32) (types.APEItem, error) {
	valueLen := c.Uint32LE("value length")
	flags := c.Uint32LE("flags")
	if c.Err() != nil {
		return types.APEItem{}, c.Err()
	}

	rest := c.Peek()
	keyEnd := bytes.IndexByte(rest, 0)
	if keyEnd < 0 {
		return types.APEItem{}, errors.New("APE item key not null-terminated")
	}
	key := string(rest[:keyEnd])
	if !validKey(key) {
		return types.APEItem{}, fmt.Errorf("invalid APE item key %q", key)
	}

	c.Skip(keyEnd+1, "key")
	value := c.Bytes(int(valueLen), "value")
	if c.Err() != nil {
		return types.APEItem{}, fmt.Errorf("APE item %s value overruns tag", key)
	}

	item := types.APEItem{
		Key:   strings.ToUpper(key),
		Value: value,
	}
	if version >= 2000 {
		item.Type = types.APEItemType((flags >> 1) & 3)
	}
	return item, nil
}

// validKey accepts 2 to 255 printable ASCII characters.
func validKey(key string) bool {
	if len(key) < 2 || len(key) > 255 {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < 0x20 || key[i] > 0x7E {
			return false
		}
	}
	return true
}
