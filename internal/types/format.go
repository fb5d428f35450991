package types

import (
	"bytes"
	"io"

	"github.com/simonhull/coverart/internal/binary"
)

// Format represents the detected audio container format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatMPEG represents MPEG audio (MP3) files.
	FormatMPEG
	// FormatFLAC represents FLAC audio files.
	FormatFLAC
	// FormatM4A represents M4A/MP4 audio files.
	FormatM4A
	// FormatM4B represents M4B audiobook files.
	FormatM4B
	// FormatOgg represents Ogg Vorbis audio files.
	FormatOgg
	// FormatOpus represents Ogg Opus audio files.
	FormatOpus
	// FormatASF represents ASF/WMA files.
	FormatASF
	// FormatAPE represents Monkey's Audio files.
	FormatAPE
	// FormatMusepack represents Musepack (SV7 and SV8) files.
	FormatMusepack
	// FormatWavPack represents WavPack files.
	FormatWavPack
	// FormatWAV represents WAV audio files.
	FormatWAV
	// FormatAIFF represents AIFF audio files.
	FormatAIFF
)

var formatNames = map[Format]string{
	FormatUnknown:  "Unknown",
	FormatMPEG:     "MPEG",
	FormatFLAC:     "FLAC",
	FormatM4A:      "M4A",
	FormatM4B:      "M4B",
	FormatOgg:      "Ogg Vorbis",
	FormatOpus:     "Opus",
	FormatASF:      "ASF",
	FormatAPE:      "Monkey's Audio",
	FormatMusepack: "Musepack",
	FormatWavPack:  "WavPack",
	FormatWAV:      "WAV",
	FormatAIFF:     "AIFF",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "Unknown"
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatMPEG:
		return []string{".mp3", ".mp2"}
	case FormatFLAC:
		return []string{".flac"}
	case FormatM4A:
		return []string{".m4a", ".mp4", ".m4p", ".aac"}
	case FormatM4B:
		return []string{".m4b"}
	case FormatOgg:
		return []string{".ogg", ".oga"}
	case FormatOpus:
		return []string{".opus"}
	case FormatASF:
		return []string{".wma", ".asf"}
	case FormatAPE:
		return []string{".ape"}
	case FormatMusepack:
		return []string{".mpc", ".mp+", ".mpp"}
	case FormatWavPack:
		return []string{".wv"}
	case FormatWAV:
		return []string{".wav"}
	case FormatAIFF:
		return []string{".aiff", ".aif"}
	default:
		return nil
	}
}

// asfHeaderGUID is the ASF Header Object GUID 75B22630-668E-11CF-A6D9-00AA0062CE6C
// in its on-disk byte order.
var asfHeaderGUID = []byte{
	0x30, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11,
	0xA6, 0xD9, 0x00, 0xAA, 0x00, 0x62, 0xCE, 0x6C,
}

// DetectFormat determines the audio container by examining magic bytes.
//
// A leading ID3v2 tag is skipped before looking again, so FLAC, Monkey's Audio,
// Musepack and WavPack files carrying a stray ID3v2 tag are still recognised.
// Anything else that starts with an ID3v2 tag is treated as MPEG.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) { //nolint:gocyclo // one branch per container signature
	if size < 4 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	headLen := min(size, 16)
	head, err := sr.Bytes(0, headLen, "file magic bytes")
	if err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	if string(head[:3]) == "ID3" {
		if f := detectAfterID3v2(sr, head); f != FormatUnknown {
			return f, nil
		}
		return FormatMPEG, nil
	}

	if f := detectNative(head); f != FormatUnknown {
		return f, nil
	}

	if len(head) == 16 && bytes.Equal(head, asfHeaderGUID) {
		return FormatASF, nil
	}

	// MP3 frame sync (11 set bits) catches files without ID3 tags.
	if head[0] == 0xFF && (head[1]&0xE0) == 0xE0 {
		return FormatMPEG, nil
	}

	if string(head[:4]) == "OggS" {
		return detectOggCodec(sr), nil
	}

	if size >= 12 {
		switch {
		case string(head[:4]) == "RIFF" && string(head[8:12]) == "WAVE":
			return FormatWAV, nil
		case string(head[:4]) == "FORM" && (string(head[8:12]) == "AIFF" || string(head[8:12]) == "AIFC"):
			return FormatAIFF, nil
		case string(head[4:8]) == "ftyp":
			return detectMP4Brand(sr, path)
		}
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unsupported file format",
	}
}

// detectNative matches the signatures that sit at the start of the audio stream.
func detectNative(head []byte) Format {
	switch {
	case len(head) >= 4 && string(head[:4]) == "fLaC":
		return FormatFLAC
	case len(head) >= 4 && string(head[:4]) == "MAC ":
		return FormatAPE
	case len(head) >= 4 && string(head[:4]) == "MPCK":
		return FormatMusepack
	case len(head) >= 3 && string(head[:3]) == "MP+":
		return FormatMusepack
	case len(head) >= 4 && string(head[:4]) == "wvpk":
		return FormatWavPack
	}
	return FormatUnknown
}

func detectAfterID3v2(sr *binary.SafeReader, head []byte) Format {
	if len(head) < 10 {
		return FormatUnknown
	}
	end := ID3v2TagSize(head[:10])
	if end+4 > sr.Size() {
		return FormatUnknown
	}
	next, err := sr.Bytes(end, 4, "stream magic after ID3v2")
	if err != nil {
		return FormatUnknown
	}
	return detectNative(next)
}

// ID3v2TagSize returns the total size of an ID3v2 tag (header, body and
// optional footer) given its 10-byte header.
func ID3v2TagSize(header []byte) int64 {
	size := int64(header[6]&0x7F)<<21 |
		int64(header[7]&0x7F)<<14 |
		int64(header[8]&0x7F)<<7 |
		int64(header[9]&0x7F)
	total := 10 + size
	if header[3] >= 4 && header[5]&0x10 != 0 {
		total += 10
	}
	return total
}

func detectOggCodec(sr *binary.SafeReader) Format {
	// First packet starts after the 27-byte page header and the segment table.
	segCount, err := binary.Read[uint8](sr, 26, "segment count")
	if err != nil {
		return FormatOgg
	}
	magic, err := sr.Bytes(27+int64(segCount), 8, "codec magic")
	if err != nil {
		return FormatOgg
	}
	if string(magic) == "OpusHead" {
		return FormatOpus
	}
	return FormatOgg
}

func detectMP4Brand(sr *binary.SafeReader, path string) (Format, error) {
	atomSize, err := binary.Read[uint32](sr, 0, "ftyp atom size")
	if err != nil || atomSize < 12 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "ftyp atom too small",
		}
	}

	brand, err := sr.Bytes(8, 4, "major brand")
	if err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read major brand",
		}
	}

	if string(brand) == "M4B " {
		return FormatM4B, nil
	}
	return FormatM4A, nil
}
