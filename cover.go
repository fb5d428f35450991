package coverart

import (
	"bytes"
	"errors"
	"fmt"
)

// apeCoverKey is the APE item holding the front cover.
const apeCoverKey = "COVER ART (FRONT)"

// EmbeddedCover returns the embedded cover of f, or false when there is none.
//
// A cover item that exists but cannot be decoded also yields false; use
// LookupCover to tell the two apart.
func EmbeddedCover(f File) ([]byte, bool) {
	data, err := LookupCover(f)
	if err != nil {
		return nil, false
	}
	return data, true
}

// LookupCover returns the embedded cover of f.
//
// The containers of each variant are tried in a fixed order and the first
// one yielding a cover wins:
//
//	MPEG                        ID3v2, then APE
//	FLAC                        PICTURE blocks, then ID3v2
//	MP4                         covr item
//	ASF                         WM/Picture attribute
//	Monkey's Audio, Musepack,
//	WavPack                     APE
//
// Within a container the first candidate in stored order is authoritative;
// picture types are not inspected. The error is ErrNotFound when no container
// holds a cover, or wraps ErrMalformed when a candidate could not be decoded
// and nothing else matched.
func LookupCover(f File) ([]byte, error) {
	switch v := f.(type) {
	case *MPEGFile:
		if v == nil {
			break
		}
		return firstCover(
			func() ([]byte, error) { return extractID3(v.ID3v2) },
			func() ([]byte, error) { return extractAPE(v.APE) },
		)
	case *FLACFile:
		if v == nil {
			break
		}
		return firstCover(
			func() ([]byte, error) { return extractFLAC(v.Pictures) },
			func() ([]byte, error) { return extractID3(v.ID3v2) },
		)
	case *MP4File:
		if v == nil {
			break
		}
		return extractMP4(v.Tag)
	case *ASFFile:
		if v == nil {
			break
		}
		return extractASF(v.Tag)
	case *APEFile:
		if v == nil {
			break
		}
		return extractAPE(v.APE)
	case *MusepackFile:
		if v == nil {
			break
		}
		return extractAPE(v.APE)
	case *WavPackFile:
		if v == nil {
			break
		}
		return extractAPE(v.APE)
	default:
		// Ogg Vorbis and the containers without tags carry no picture
		// container this package reads.
	}
	return nil, ErrNotFound
}

// firstCover runs the extractors in order and returns the first cover found.
// When all fail, the first ErrMalformed error is reported over ErrNotFound.
func firstCover(extractors ...func() ([]byte, error)) ([]byte, error) {
	var malformed error
	for _, extract := range extractors {
		data, err := extract()
		if err == nil {
			return data, nil
		}
		if malformed == nil && errors.Is(err, ErrMalformed) {
			malformed = err
		}
	}
	if malformed != nil {
		return nil, malformed
	}
	return nil, ErrNotFound
}

// extractAPE returns the payload of the COVER ART (FRONT) item: the bytes
// after the NUL-terminated file name.
func extractAPE(tag *APETag) ([]byte, error) {
	item, ok := tag.Item(apeCoverKey)
	if !ok {
		return nil, ErrNotFound
	}
	i := bytes.IndexByte(item.Value, 0)
	if i < 0 {
		return nil, fmt.Errorf("%w: APE cover item has no file name terminator", ErrMalformed)
	}
	return item.Value[i+1:], nil
}

// extractID3 returns the picture of the first APIC frame.
func extractID3(tag *ID3v2Tag) ([]byte, error) {
	frames := tag.FrameList("APIC")
	if len(frames) == 0 {
		return nil, ErrNotFound
	}
	pic := frames[0].Picture
	if pic == nil {
		return nil, fmt.Errorf("%w: first APIC frame could not be decoded", ErrMalformed)
	}
	return pic.Data, nil
}

// extractASF returns the picture of the first WM/Picture attribute, which
// must decode as a valid picture structure.
func extractASF(tag *ASFTag) ([]byte, error) {
	attrs := tag.AttributeList("WM/Picture")
	if len(attrs) == 0 {
		return nil, ErrNotFound
	}
	pic := attrs[0].Picture()
	if !pic.Valid {
		return nil, fmt.Errorf("%w: first WM/Picture attribute is not a valid picture", ErrMalformed)
	}
	return pic.Data, nil
}

func extractFLAC(pictures []FLACPicture) ([]byte, error) {
	if len(pictures) == 0 {
		return nil, ErrNotFound
	}
	return pictures[0].Data, nil
}

// extractMP4 returns the first entry of the covr item. An empty first entry
// means no cover, whatever follows it.
func extractMP4(tag *MP4Tag) ([]byte, error) {
	item, ok := tag.Item("covr")
	if !ok || len(item.Covers) == 0 {
		return nil, ErrNotFound
	}
	if len(item.Covers[0].Data) == 0 {
		return nil, ErrNotFound
	}
	return item.Covers[0].Data, nil
}
