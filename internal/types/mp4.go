package types

// MP4CoverFormat is the data atom type code of a cover image.
type MP4CoverFormat uint32

// Cover image type codes. Implicit (type 0) data atoms hold covers of
// unknown format.
const (
	MP4CoverUnknown MP4CoverFormat = 0
	MP4CoverGIF     MP4CoverFormat = 12
	MP4CoverJPEG    MP4CoverFormat = 13
	MP4CoverPNG     MP4CoverFormat = 14
	MP4CoverBMP     MP4CoverFormat = 27
)

// MP4CoverArt is one image of a covr item.
type MP4CoverArt struct {
	Data   []byte
	Format MP4CoverFormat
}

// MP4IntPair is a track or disc number with its total.
type MP4IntPair struct {
	Number int
	Total  int
}

// MP4Item is the value of one ilst entry. Which field is set depends on the
// data atom types found under the entry.
type MP4Item struct {
	Pair    *MP4IntPair
	Strings []string
	Covers  []MP4CoverArt
	Data    [][]byte
}

// MP4Tag is the iTunes metadata item list.
//
// Keys are the four-byte atom names ("\251nam", "covr", ...). Freeform items
// are keyed "----:mean:name".
type MP4Tag struct {
	Items map[string]MP4Item
}

// Item returns the item stored under key.
func (t *MP4Tag) Item(key string) (MP4Item, bool) {
	if t == nil {
		return MP4Item{}, false
	}
	item, ok := t.Items[key]
	return item, ok
}
