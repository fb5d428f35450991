package fixture

// ID3v2Tag builds an ID3v2 tag of the given major version with no flags.
func ID3v2Tag(version byte, frames ...[]byte) []byte {
	return ID3v2TagFlags(version, 0, frames...)
}

// ID3v2TagFlags builds an ID3v2 tag with the given header flags. The body is
// written as given; callers apply unsynchronisation themselves.
func ID3v2TagFlags(version, flags byte, frames ...[]byte) []byte {
	body := concat(frames...)
	header := concat([]byte{'I', 'D', '3', version, 0, flags}, Synchsafe(len(body)))
	return concat(header, body)
}

// ID3v2Frame builds an ID3v2.3 frame (big-endian size, no flags).
func ID3v2Frame(id string, body []byte) []byte {
	return concat([]byte(id), u32be(len(body)), []byte{0, 0}, body)
}

// ID3v2FrameV4 builds an ID3v2.4 frame with a synchsafe size and the given flags.
func ID3v2FrameV4(id string, flags uint16, body []byte) []byte {
	return concat([]byte(id), Synchsafe(len(body)), []byte{byte(flags >> 8), byte(flags)}, body)
}

// ID3v2FrameV2 builds an ID3v2.2 frame with a three-character id.
func ID3v2FrameV2(id string, body []byte) []byte {
	n := len(body)
	return concat([]byte(id), []byte{byte(n >> 16), byte(n >> 8), byte(n)}, body)
}

// TextBody builds a Latin-1 text frame body. Multiple values are NUL-separated.
func TextBody(values ...string) []byte {
	out := []byte{0}
	for i, v := range values {
		if i > 0 {
			out = append(out, 0)
		}
		out = append(out, v...)
	}
	return out
}

// APICBody builds a Latin-1 APIC frame body.
func APICBody(mime string, picType byte, desc string, data []byte) []byte {
	return concat([]byte{0}, []byte(mime), []byte{0, picType}, []byte(desc), []byte{0}, data)
}

// PICBody builds an ID3v2.2 PIC frame body with a three-letter image format.
func PICBody(format string, picType byte, desc string, data []byte) []byte {
	return concat([]byte{0}, []byte(format), []byte{picType}, []byte(desc), []byte{0}, data)
}
