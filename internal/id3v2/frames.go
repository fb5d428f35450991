package id3v2

import (
	"bytes"
	"errors"
	"strings"

	"github.com/simonhull/coverart/internal/text"
	"github.com/simonhull/coverart/internal/types"
)

var (
	errAPICTooShort    = errors.New("APIC frame too short")
	errAPICNoMIMETerm  = errors.New("APIC MIME type not null-terminated")
	errAPICTruncated   = errors.New("APIC frame truncated after MIME type")
	errAPICNoImageData = errors.New("APIC frame has no image data")
)

// v22FrameIDs maps ID3v2.2 three-character ids to their ID3v2.3 equivalents.
var v22FrameIDs = map[string]string{
	"BUF": "RBUF", "CNT": "PCNT", "COM": "COMM", "CRA": "AENC",
	"ETC": "ETCO", "GEO": "GEOB", "IPL": "TIPL", "MCI": "MCDI",
	"MLL": "MLLT", "PIC": "APIC", "POP": "POPM", "REV": "RVRB",
	"SLT": "SYLT", "STC": "SYTC", "TAL": "TALB", "TBP": "TBPM",
	"TCM": "TCOM", "TCO": "TCON", "TCP": "TCMP", "TCR": "TCOP",
	"TDA": "TDAT", "TDY": "TDLY", "TEN": "TENC", "TFT": "TFLT",
	"TIM": "TIME", "TKE": "TKEY", "TLA": "TLAN", "TLE": "TLEN",
	"TMT": "TMED", "TOA": "TOPE", "TOF": "TOFN", "TOL": "TOLY",
	"TOR": "TORY", "TOT": "TOAL", "TP1": "TPE1", "TP2": "TPE2",
	"TP3": "TPE3", "TP4": "TPE4", "TPA": "TPOS", "TPB": "TPUB",
	"TRC": "TSRC", "TRD": "TRDA", "TRK": "TRCK", "TS2": "TSO2",
	"TSA": "TSOA", "TSC": "TSOC", "TSI": "TSIZ", "TSP": "TSOP",
	"TSS": "TSSE", "TST": "TSOT", "TT1": "TIT1", "TT2": "TIT2",
	"TT3": "TIT3", "TXT": "TEXT", "TXX": "TXXX", "TYE": "TYER",
	"UFI": "UFID", "ULT": "USLT", "WAF": "WOAF", "WAR": "WOAR",
	"WAS": "WOAS", "WCM": "WCOM", "WCP": "WCOP", "WPB": "WPUB",
	"WXX": "WXXX",
}

func upgradeFrameID(id string) string {
	if mapped, ok := v22FrameIDs[id]; ok {
		return mapped
	}
	return id
}

// fillFrame decodes the typed content of frames the library understands.
func fillFrame(f *types.ID3v2Frame, version byte) {
	switch {
	case f.ID == "TXXX":
		f.Description, f.Text = parseDescribedText(f.Data, 0)
	case f.ID == "COMM" || f.ID == "USLT":
		f.Description, f.Text = parseDescribedText(f.Data, 3)
	case strings.HasPrefix(f.ID, "T"):
		f.Text = parseTextFrame(f.Data)
	case f.ID == "APIC":
		if pic, err := parseAPICFrame(f.Data, version); err == nil {
			f.Picture = &pic
		}
	}
}

// parseTextFrame parses standard text frames (TIT2, TCOM, ...).
// Format: [encoding][text values, NUL-separated]
func parseTextFrame(data []byte) []string {
	if len(data) < 1 {
		return nil
	}
	return text.Split(data[1:], text.Encoding(data[0]))
}

// parseDescribedText parses TXXX, COMM and USLT frames.
// Format: [encoding][skip bytes][description\0][text]
func parseDescribedText(data []byte, skip int) (string, []string) {
	if len(data) < 1+skip {
		return "", nil
	}

	enc := text.Encoding(data[0])
	data = data[1+skip:]

	end := text.IndexTerminator(data, enc)
	if end < 0 {
		return "", []string{text.Decode(data, enc)}
	}

	desc := text.Decode(data[:end], enc)
	return desc, text.Split(data[end+enc.TerminatorSize():], enc)
}

// parseAPICFrame parses an APIC (Attached Picture) frame.
// Format:
//
//	[1 byte]              Text encoding
//	[null-terminated]     MIME type (ID3v2.3+) or [3 bytes] image format (ID3v2.2)
//	[1 byte]              Picture type
//	[null-terminated]     Description
//	[remaining]           Picture data
func parseAPICFrame(data []byte, version byte) (types.AttachedPicture, error) {
	if len(data) < 4 {
		return types.AttachedPicture{}, errAPICTooShort
	}

	enc := text.Encoding(data[0])
	pos := 1

	var mimeType string
	if version == 2 {
		mimeType = legacyMIME(string(data[pos : pos+3]))
		pos += 3
	} else {
		// MIME type is always ISO-8859-1
		mimeEnd := bytes.IndexByte(data[pos:], 0)
		if mimeEnd < 0 {
			return types.AttachedPicture{}, errAPICNoMIMETerm
		}
		mimeType = legacyMIME(string(data[pos : pos+mimeEnd]))
		pos += mimeEnd + 1
	}

	if pos >= len(data) {
		return types.AttachedPicture{}, errAPICTruncated
	}

	pictureType := data[pos]
	pos++

	// Some encoders leave the description unterminated; the rest is then
	// taken as picture data.
	description := ""
	if descEnd := text.IndexTerminator(data[pos:], enc); descEnd >= 0 {
		description = text.Decode(data[pos:pos+descEnd], enc)
		pos += descEnd + enc.TerminatorSize()
	}

	if pos >= len(data) {
		return types.AttachedPicture{}, errAPICNoImageData
	}

	return types.AttachedPicture{
		MIMEType:    mimeType,
		Type:        pictureType,
		Description: description,
		Data:        data[pos:],
	}, nil
}

// legacyMIME maps bare image format markers to MIME types.
func legacyMIME(m string) string {
	switch strings.ToUpper(m) {
	case "JPG", "JPEG":
		return "image/jpeg"
	case "PNG":
		return "image/png"
	case "GIF":
		return "image/gif"
	case "BMP":
		return "image/bmp"
	default:
		return m
	}
}
