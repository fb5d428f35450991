package types

import (
	"encoding/binary"
	"strconv"

	"github.com/simonhull/coverart/internal/text"
)

// ASFAttributeType is the data type of an ASF attribute value.
type ASFAttributeType uint16

// ASF attribute data types.
const (
	ASFUnicode ASFAttributeType = iota
	ASFBytes
	ASFBool
	ASFDWord
	ASFQWord
	ASFWord
	ASFGUID
)

// ASFAttribute is one value of an ASF attribute.
//
// Value holds the raw little-endian encoding. Language and Stream are zero
// for attributes read from the Extended Content Description object.
type ASFAttribute struct {
	Value    []byte
	Type     ASFAttributeType
	Language uint16
	Stream   uint16
}

// String renders the value as text.
func (a ASFAttribute) String() string {
	switch a.Type {
	case ASFUnicode:
		return text.DecodeUTF16LE(a.Value)
	case ASFBool:
		return strconv.FormatBool(a.uint() != 0)
	case ASFDWord, ASFQWord, ASFWord:
		return strconv.FormatUint(a.uint(), 10)
	default:
		return ""
	}
}

func (a ASFAttribute) uint() uint64 {
	switch len(a.Value) {
	case 2:
		return uint64(binary.LittleEndian.Uint16(a.Value))
	case 4:
		return uint64(binary.LittleEndian.Uint32(a.Value))
	case 8:
		return binary.LittleEndian.Uint64(a.Value)
	default:
		if len(a.Value) > 0 {
			return uint64(a.Value[0])
		}
		return 0
	}
}

// ASFPicture is a decoded WM/Picture value.
type ASFPicture struct {
	MIMEType    string
	Description string
	Data        []byte
	Type        byte
	Valid       bool
}

// Picture decodes the value as a WM/Picture structure:
//
//	type        byte
//	size        uint32 LE
//	mime        UTF-16LE, NUL-terminated
//	description UTF-16LE, NUL-terminated
//	data        size bytes
//
// The result has Valid set only when the value is a byte array and every
// length field fits inside it.
func (a ASFAttribute) Picture() ASFPicture {
	if a.Type != ASFBytes || len(a.Value) < 9 {
		return ASFPicture{}
	}
	v := a.Value
	pic := ASFPicture{Type: v[0]}
	size := int64(binary.LittleEndian.Uint32(v[1:5]))
	pos := 5

	mime, n, ok := utf16z(v[pos:])
	if !ok {
		return ASFPicture{}
	}
	pic.MIMEType = mime
	pos += n

	desc, n, ok := utf16z(v[pos:])
	if !ok {
		return ASFPicture{}
	}
	pic.Description = desc
	pos += n

	if int64(pos)+size > int64(len(v)) {
		return ASFPicture{}
	}
	pic.Data = v[pos : pos+int(size)]
	pic.Valid = true
	return pic
}

// utf16z decodes a NUL-terminated UTF-16LE string and reports how many bytes
// it consumed including the terminator.
func utf16z(b []byte) (string, int, bool) {
	i := text.IndexTerminator(b, text.UTF16)
	if i < 0 {
		return "", 0, false
	}
	return text.DecodeUTF16LE(b[:i]), i + 2, true
}

// ASFTag holds the attributes of an ASF file keyed by name.
//
// Values from the Extended Content Description, Metadata and Metadata
// Library objects are merged in that order.
type ASFTag struct {
	Attributes map[string][]ASFAttribute
}

// AttributeList returns the values stored under name.
func (t *ASFTag) AttributeList(name string) []ASFAttribute {
	if t == nil {
		return nil
	}
	return t.Attributes[name]
}

// Add appends a value under name.
func (t *ASFTag) Add(name string, attr ASFAttribute) {
	if t.Attributes == nil {
		t.Attributes = make(map[string][]ASFAttribute)
	}
	t.Attributes[name] = append(t.Attributes[name], attr)
}
