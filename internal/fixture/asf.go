package fixture

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// ASF object GUIDs in string form.
const (
	ASFHeaderGUID          = "75B22630-668E-11CF-A6D9-00AA0062CE6C"
	ASFExtendedContentGUID = "D2D0A440-E307-11D2-97F0-00A0C95EA850"
	ASFHeaderExtensionGUID = "5FBF03B5-A92E-11CF-8EE3-00C00C205365"
	ASFMetadataLibraryGUID = "44231C94-9498-49D1-A141-1D134E457054"
	ASFMetadataGUID        = "C5F8CBEA-5BAF-4877-8467-AA8C44FA4CCA"
	asfReserved1GUID       = "ABD3D211-A9BA-11CF-8EE6-00C00C205365"
)

// GUID converts a GUID string to its little-endian on-disk layout.
func GUID(s string) []byte {
	u := uuid.MustParse(s)
	b := make([]byte, 16)
	copy(b, u[:])
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	b[4], b[5] = b[5], b[4]
	b[6], b[7] = b[7], b[6]
	return b
}

// ASFAttr is one attribute for the ASF builders.
type ASFAttr struct {
	Name  string
	Value []byte
	Type  int
}

// ASFObject builds a top-level or nested ASF object.
func ASFObject(guid string, body []byte) []byte {
	size := make([]byte, 8)
	binary.LittleEndian.PutUint64(size, uint64(24+len(body)))
	return concat(GUID(guid), size, body)
}

// ASF builds an ASF header object containing objects, followed by a stub
// data object.
func ASF(objects ...[]byte) []byte {
	body := concat(u32le(len(objects)), []byte{1, 2}, concat(objects...))
	return concat(ASFObject(ASFHeaderGUID, body), make([]byte, 50))
}

// ASFExtendedContent builds an Extended Content Description object.
func ASFExtendedContent(attrs ...ASFAttr) []byte {
	body := u16le(len(attrs))
	for _, a := range attrs {
		name := UTF16LEZ(a.Name)
		body = concat(body, u16le(len(name)), name, u16le(a.Type), u16le(len(a.Value)), a.Value)
	}
	return ASFObject(ASFExtendedContentGUID, body)
}

// ASFMetadataLibrary builds a Header Extension object holding a Metadata
// Library object with attrs.
func ASFMetadataLibrary(attrs ...ASFAttr) []byte {
	lib := u16le(len(attrs))
	for _, a := range attrs {
		name := UTF16LEZ(a.Name)
		lib = concat(lib, u16le(0), u16le(0), u16le(len(name)), u16le(a.Type), u32le(len(a.Value)), name, a.Value)
	}
	nested := ASFObject(ASFMetadataLibraryGUID, lib)
	ext := concat(GUID(asfReserved1GUID), u16le(6), u32le(len(nested)), nested)
	return ASFObject(ASFHeaderExtensionGUID, ext)
}

// ASFUnicode encodes a string attribute value.
func ASFUnicode(s string) []byte {
	return UTF16LEZ(s)
}

// WMPicture builds a WM/Picture attribute value.
func WMPicture(picType byte, mime, desc string, data []byte) []byte {
	return concat([]byte{picType}, u32le(len(data)), UTF16LEZ(mime), UTF16LEZ(desc), data)
}
