package fixture

// APEItem builds one APE tag item.
func APEItem(key string, flags uint32, value []byte) []byte {
	return concat(u32le(len(value)), u32le(int(flags)), []byte(key), []byte{0}, value)
}

// APETextItem builds a UTF-8 text item.
func APETextItem(key, value string) []byte {
	return APEItem(key, 0, []byte(value))
}

// APEBinaryItem builds a binary item (flags bit 1 set).
func APEBinaryItem(key string, value []byte) []byte {
	return APEItem(key, 1<<1, value)
}

// APETag builds an APEv2 tag consisting of items and a footer.
func APETag(items ...[]byte) []byte {
	return apeTag(2000, items...)
}

// APETagV1 builds an APEv1 tag.
func APETagV1(items ...[]byte) []byte {
	return apeTag(1000, items...)
}

func apeTag(version int, items ...[]byte) []byte {
	body := concat(items...)
	footer := concat(
		[]byte("APETAGEX"),
		u32le(version),
		u32le(len(body)+32),
		u32le(len(items)),
		u32le(0),
		make([]byte, 8),
	)
	return concat(body, footer)
}

// ID3v1Tag builds a 128-byte ID3v1 tag with the given title.
func ID3v1Tag(title string) []byte {
	tag := make([]byte, 128)
	copy(tag, "TAG")
	copy(tag[3:33], title)
	return tag
}

// CoverArtValue builds a COVER ART (FRONT) value: a NUL-terminated file name
// followed by the image bytes.
func CoverArtValue(name string, image []byte) []byte {
	return concat([]byte(name), []byte{0}, image)
}

// MonkeysAudioHeader is a minimal "MAC " descriptor.
func MonkeysAudioHeader() []byte {
	return append([]byte("MAC "), make([]byte, 48)...)
}

// MusepackHeader is a minimal Musepack SV8 stream start.
func MusepackHeader() []byte {
	return append([]byte("MPCK"), make([]byte, 28)...)
}

// WavPackHeader is a minimal WavPack block header.
func WavPackHeader() []byte {
	return append([]byte("wvpk"), make([]byte, 28)...)
}
