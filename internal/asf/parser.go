// Package asf reads the attribute objects of an ASF (WMA) header.
package asf

import (
	"fmt"
	"io"

	binutil "github.com/simonhull/coverart/internal/binary"
	"github.com/simonhull/coverart/internal/registry"
	"github.com/simonhull/coverart/internal/text"
	"github.com/simonhull/coverart/internal/types"
)

const (
	objectHeaderSize = 24 // GUID + uint64 size
	headerObjectSize = 30 // plus object count and two reserved bytes
	extensionPrefix  = 22 // reserved GUID, reserved uint16, data size

	// maxHeaderSize bounds the header object read into memory.
	maxHeaderSize = 256 * 1024 * 1024
)

// parser implements registry.Parser for ASF files.
type parser struct{}

// Parse reads the ASF header object and collects its attributes.
func (p *parser) Parse(r io.ReaderAt, size int64, path string) (types.File, error) {
	sr := binutil.NewSafeReader(r, size, path)
	file := &types.ASFFile{}

	head, err := sr.Bytes(0, headerObjectSize, "ASF header object")
	if err != nil {
		return nil, err
	}
	var id GUID
	copy(id[:], head[:16])
	if id != guidHeader {
		return nil, &types.UnsupportedFormatError{
			Path:   path,
			Reason: "missing ASF header object",
		}
	}

	c := binutil.NewCursor(head[16:], "ASF header object")
	headerSize := int64(c.Uint64LE("size"))
	count := c.Uint32LE("object count")

	if headerSize < headerObjectSize || headerSize > maxHeaderSize {
		return nil, &types.CorruptedFileError{
			Path:   path,
			Reason: fmt.Sprintf("ASF header size %d out of range", headerSize),
		}
	}
	if headerSize > size {
		file.Warnings = append(file.Warnings, types.Warning{
			Stage:   "asf",
			Message: fmt.Sprintf("header size %d exceeds file, truncated", headerSize),
		})
		headerSize = size
	}

	body, err := sr.Bytes(headerObjectSize, headerSize-headerObjectSize, "ASF header objects")
	if err != nil {
		return nil, err
	}

	tag := &types.ASFTag{}
	w := &walker{tag: tag, path: path}
	w.objects(body, int(count), headerObjectSize)

	file.Tag = tag
	file.Warnings = append(file.Warnings, w.warnings...)
	return file, nil
}

// walker collects attributes from a run of ASF objects.
type walker struct {
	tag      *types.ASFTag
	path     string
	warnings []types.Warning
}

func (w *walker) warn(off int64, format string, args ...any) {
	w.warnings = append(w.warnings, types.Warning{
		Stage:   "asf",
		Message: fmt.Sprintf(format, args...),
		Offset:  off,
	})
}

// objects walks up to count objects in data. base is the file offset of data.
// A negative count walks until data is exhausted.
func (w *walker) objects(data []byte, count int, base int64) {
	pos := 0
	for i := 0; (count < 0 || i < count) && len(data)-pos >= objectHeaderSize; i++ {
		var id GUID
		copy(id[:], data[pos:pos+16])
		c := binutil.NewCursor(data[pos+16:pos+objectHeaderSize], "object size")
		objSize := c.Uint64LE("size")
		if objSize < objectHeaderSize || objSize > uint64(len(data)-pos) {
			w.warn(base+int64(pos), "object %s size %d overruns header", id, objSize)
			return
		}

		body := data[pos+objectHeaderSize : pos+int(objSize)]
		at := base + int64(pos+objectHeaderSize)

		var err error
		switch id {
		case guidContentDesc:
			err = w.contentDescription(body)
		case guidExtendedContent:
			err = w.extendedContent(body)
		case guidHeaderExtension:
			err = w.headerExtension(body, at)
		case guidMetadata, guidMetadataLibrary:
			err = w.metadata(body)
		}
		if err != nil {
			w.warn(at, "%v", err)
		}

		pos += int(objSize)
	}
}

// contentDescription maps the five fixed fields to their WM attribute names.
func (w *walker) contentDescription(body []byte) error {
	c := binutil.NewCursor(body, "content description")
	lens := [5]int{}
	for i := range lens {
		lens[i] = int(c.Uint16LE("field length"))
	}
	names := [5]string{"Title", "Author", "Copyright", "Description", "Rating"}
	for i, n := range lens {
		v := c.Bytes(n, names[i])
		if c.Err() != nil {
			return c.Err()
		}
		if n > 0 {
			w.tag.Add(names[i], types.ASFAttribute{Type: types.ASFUnicode, Value: v})
		}
	}
	return nil
}

// extendedContent reads the Extended Content Description object:
//
//	count   uint16
//	entries { nameLen uint16; name UTF-16LE; type uint16; valueLen uint16; value }
func (w *walker) extendedContent(body []byte) error {
	c := binutil.NewCursor(body, "extended content description")
	count := int(c.Uint16LE("count"))
	for i := 0; i < count; i++ {
		name := text.DecodeUTF16LE(c.Bytes(int(c.Uint16LE("name length")), "name"))
		typ := types.ASFAttributeType(c.Uint16LE("value type"))
		value := c.Bytes(int(c.Uint16LE("value length")), "value")
		if c.Err() != nil {
			return c.Err()
		}
		w.tag.Add(name, types.ASFAttribute{Type: typ, Value: value})
	}
	return nil
}

// metadata reads a Metadata or Metadata Library object:
//
//	count   uint16
//	records { lang uint16; stream uint16; nameLen uint16; type uint16; dataLen uint32; name; data }
func (w *walker) metadata(body []byte) error {
	c := binutil.NewCursor(body, "metadata library")
	count := int(c.Uint16LE("count"))
	for i := 0; i < count; i++ {
		lang := c.Uint16LE("language")
		stream := c.Uint16LE("stream")
		nameLen := int(c.Uint16LE("name length"))
		typ := types.ASFAttributeType(c.Uint16LE("data type"))
		dataLen := int(c.Uint32LE("data length"))
		name := text.DecodeUTF16LE(c.Bytes(nameLen, "name"))
		value := c.Bytes(dataLen, "data")
		if c.Err() != nil {
			return c.Err()
		}
		w.tag.Add(name, types.ASFAttribute{
			Type:     typ,
			Value:    value,
			Language: lang,
			Stream:   stream,
		})
	}
	return nil
}

// headerExtension walks the objects nested inside the Header Extension.
func (w *walker) headerExtension(body []byte, at int64) error {
	c := binutil.NewCursor(body, "header extension")
	c.Skip(18, "reserved")
	dataSize := int(c.Uint32LE("data size"))
	nested := c.Bytes(min(dataSize, c.Remaining()), "extension data")
	if c.Err() != nil {
		return c.Err()
	}
	w.objects(nested, -1, at+extensionPrefix)
	return nil
}

func init() {
	registry.Register(types.FormatASF, &parser{})
}
