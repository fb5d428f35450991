package fixture

// Atom builds an MP4 atom from its children or payload.
func Atom(name string, children ...[]byte) []byte {
	body := concat(children...)
	return concat(u32be(8+len(body)), []byte(name), body)
}

// DataAtom builds an ilst "data" atom with the given type code.
func DataAtom(typ int, payload []byte) []byte {
	return Atom("data", u32be(typ), u32be(0), payload)
}

// TextItem builds a UTF-8 ilst item.
func TextItem(name string, values ...string) []byte {
	var data [][]byte
	for _, v := range values {
		data = append(data, DataAtom(1, []byte(v)))
	}
	return Atom(name, data...)
}

// CoverItem builds a covr item holding the given JPEG images.
func CoverItem(images ...[]byte) []byte {
	var data [][]byte
	for _, img := range images {
		data = append(data, DataAtom(13, img))
	}
	return Atom("covr", data...)
}

// FreeformItem builds a "----" item.
func FreeformItem(mean, name, value string) []byte {
	return Atom("----",
		Atom("mean", u32be(0), []byte(mean)),
		Atom("name", u32be(0), []byte(name)),
		DataAtom(1, []byte(value)),
	)
}

// TrackItem builds a trkn item.
func TrackItem(number, total int) []byte {
	payload := []byte{0, 0, byte(number >> 8), byte(number), byte(total >> 8), byte(total), 0, 0}
	return Atom("trkn", DataAtom(0, payload))
}

// M4A builds an M4A file whose moov/udta/meta/ilst holds items.
func M4A(brand string, items ...[]byte) []byte {
	hdlr := Atom("hdlr", make([]byte, 8), []byte("mdirappl"), make([]byte, 9))
	meta := Atom("meta", make([]byte, 4), hdlr, Atom("ilst", items...))
	return concat(
		Atom("ftyp", []byte(brand), u32be(0), []byte(brand), []byte("isom")),
		Atom("moov", Atom("mvhd", make([]byte, 100)), Atom("udta", meta)),
		Atom("mdat", make([]byte, 16)),
	)
}
