package coverart

import "strings"

// Composer returns the composer of f, or false when it has none.
//
//	Ogg Vorbis  Xiph COMPOSER
//	FLAC        Xiph COMPOSER if a Xiph comment exists, else ID3v2 TCOM
//	MPEG        ID3v2 TCOM
//	MP4         \251wrt, values joined with ", "
//
// Other variants have no composer.
func Composer(f File) (string, bool) {
	switch v := f.(type) {
	case *VorbisFile:
		if v == nil {
			break
		}
		return lookupField(v.Xiph, "COMPOSER", xiphValues, firstValue)
	case *FLACFile:
		if v == nil {
			break
		}
		if v.Xiph != nil {
			return lookupField(v.Xiph, "COMPOSER", xiphValues, firstValue)
		}
		return lookupField(v.ID3v2, "TCOM", id3Values, firstValue)
	case *MPEGFile:
		if v == nil {
			break
		}
		return lookupField(v.ID3v2, "TCOM", id3Values, firstValue)
	case *MP4File:
		if v == nil {
			break
		}
		return lookupField(v.Tag, "\251wrt", mp4Values, joinValues)
	}
	return "", false
}

// SetComposer is not supported: it never modifies f and always returns false.
func SetComposer(f File, composer string) bool {
	return false
}

// lookupField reads the values stored under key in container and renders
// them as one string. It fails when the key is absent or has no values.
func lookupField[C any](container C, key string, values func(C, string) []string, render func([]string) string) (string, bool) {
	v := values(container, key)
	if len(v) == 0 {
		return "", false
	}
	return render(v), true
}

func xiphValues(x *XiphComment, key string) []string {
	return x.Values(key)
}

// id3Values renders each frame with the given id as text.
func id3Values(tag *ID3v2Tag, id string) []string {
	frames := tag.FrameList(id)
	if len(frames) == 0 {
		return nil
	}
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = f.String()
	}
	return out
}

func mp4Values(tag *MP4Tag, key string) []string {
	item, ok := tag.Item(key)
	if !ok {
		return nil
	}
	return item.Strings
}

func firstValue(v []string) string { return v[0] }

func joinValues(v []string) string { return strings.Join(v, ", ") }
