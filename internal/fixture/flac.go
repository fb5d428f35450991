package fixture

// FLAC block types.
const (
	FLACStreamInfo    = 0
	FLACPadding       = 1
	FLACVorbisComment = 4
	FLACPicture       = 6
)

// FLACBlock is one metadata block body with its type.
type FLACBlock struct {
	Body []byte
	Type byte
}

// FLAC builds a FLAC stream: "fLaC", a STREAMINFO block, the given blocks
// (the last one flagged), then a few placeholder frame bytes.
func FLAC(blocks ...FLACBlock) []byte {
	all := append([]FLACBlock{{Type: FLACStreamInfo, Body: make([]byte, 34)}}, blocks...)
	out := []byte("fLaC")
	for i, b := range all {
		typ := b.Type
		if i == len(all)-1 {
			typ |= 0x80
		}
		n := len(b.Body)
		out = append(out, typ, byte(n>>16), byte(n>>8), byte(n))
		out = append(out, b.Body...)
	}
	return append(out, 0xFF, 0xF8, 0x69, 0x08)
}

// FLACPictureBody builds a PICTURE block body.
func FLACPictureBody(picType int, mime, desc string, data []byte) []byte {
	return concat(
		u32be(picType),
		u32be(len(mime)), []byte(mime),
		u32be(len(desc)), []byte(desc),
		u32be(1), u32be(1), u32be(24), u32be(0),
		u32be(len(data)), data,
	)
}

// VorbisComment builds a Vorbis comment block (no framing bit).
// Each comment is a "KEY=value" string.
func VorbisComment(vendor string, comments ...string) []byte {
	out := concat(u32le(len(vendor)), []byte(vendor), u32le(len(comments)))
	for _, c := range comments {
		out = concat(out, u32le(len(c)), []byte(c))
	}
	return out
}
