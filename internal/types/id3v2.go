package types

import "strings"

// AttachedPicture is the decoded body of an APIC frame.
type AttachedPicture struct {
	MIMEType    string
	Description string
	Data        []byte
	Type        byte
}

// ID3v2Frame is one frame of an ID3v2 tag.
//
// Data is the frame body after unsynchronisation and decompression. Text is
// filled for text information frames (T***), TXXX and COMM. Picture is filled
// for APIC frames whose body decodes.
type ID3v2Frame struct {
	Picture     *AttachedPicture
	ID          string
	Description string
	Data        []byte
	Text        []string
	Flags       uint16
}

// String renders the frame's text fields separated by a space.
func (f ID3v2Frame) String() string {
	return strings.Join(f.Text, " ")
}

// ID3v2Tag is an ID3v2.2, 2.3 or 2.4 tag.
//
// Frames keep their stored order. ID3v2.2 frame ids are mapped to their
// four-character equivalents during parsing.
type ID3v2Tag struct {
	Frames   []ID3v2Frame
	Version  byte
	Revision byte
	Flags    byte
}

// FrameList returns the frames with the given id in stored order.
func (t *ID3v2Tag) FrameList(id string) []ID3v2Frame {
	if t == nil {
		return nil
	}
	var out []ID3v2Frame
	for _, f := range t.Frames {
		if f.ID == id {
			out = append(out, f)
		}
	}
	return out
}
