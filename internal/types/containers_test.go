package types

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func utf16leZ(s string) []byte {
	var buf bytes.Buffer
	for _, r := range s {
		buf.WriteByte(byte(r))
		buf.WriteByte(0)
	}
	buf.Write([]byte{0, 0})
	return buf.Bytes()
}

func wmPicture(picType byte, mime, desc string, data []byte, declared uint32) []byte {
	var buf bytes.Buffer
	buf.WriteByte(picType)
	_ = binary.Write(&buf, binary.LittleEndian, declared)
	buf.Write(utf16leZ(mime))
	buf.Write(utf16leZ(desc))
	buf.Write(data)
	return buf.Bytes()
}

func TestASFAttribute_Picture(t *testing.T) {
	img := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	attr := ASFAttribute{Type: ASFBytes, Value: wmPicture(3, "image/jpeg", "front", img, uint32(len(img)))}

	pic := attr.Picture()
	if !pic.Valid {
		t.Fatal("expected valid picture")
	}
	if pic.MIMEType != "image/jpeg" {
		t.Errorf("MIMEType = %q, want image/jpeg", pic.MIMEType)
	}
	if pic.Description != "front" {
		t.Errorf("Description = %q, want front", pic.Description)
	}
	if pic.Type != 3 {
		t.Errorf("Type = %d, want 3", pic.Type)
	}
	if !bytes.Equal(pic.Data, img) {
		t.Errorf("Data = %x, want %x", pic.Data, img)
	}
}

func TestASFAttribute_PictureInvalid(t *testing.T) {
	img := []byte{1, 2, 3}
	tests := []struct {
		name string
		attr ASFAttribute
	}{
		{"declared size overruns value", ASFAttribute{Type: ASFBytes, Value: wmPicture(3, "image/png", "", img, 100)}},
		{"wrong attribute type", ASFAttribute{Type: ASFUnicode, Value: wmPicture(3, "image/png", "", img, 3)}},
		{"too short", ASFAttribute{Type: ASFBytes, Value: []byte{3, 0, 0}}},
		{"unterminated mime", ASFAttribute{Type: ASFBytes, Value: []byte{3, 1, 0, 0, 0, 'i', 0, 'm', 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if pic := tt.attr.Picture(); pic.Valid {
				t.Errorf("expected invalid picture, got %+v", pic)
			}
		})
	}
}

func TestASFAttribute_String(t *testing.T) {
	dword := make([]byte, 4)
	binary.LittleEndian.PutUint32(dword, 1999)

	tests := []struct {
		attr ASFAttribute
		want string
	}{
		{ASFAttribute{Type: ASFUnicode, Value: utf16leZ("Satie")}, "Satie"},
		{ASFAttribute{Type: ASFDWord, Value: dword}, "1999"},
		{ASFAttribute{Type: ASFBool, Value: []byte{1, 0, 0, 0}}, "true"},
		{ASFAttribute{Type: ASFBytes, Value: []byte{1, 2}}, ""},
	}
	for _, tt := range tests {
		if got := tt.attr.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestID3v2Tag_FrameList(t *testing.T) {
	tag := &ID3v2Tag{Frames: []ID3v2Frame{
		{ID: "TIT2", Text: []string{"Gymnopédie"}},
		{ID: "APIC", Data: []byte{1}},
		{ID: "TCOM", Text: []string{"Erik", "Satie"}},
		{ID: "APIC", Data: []byte{2}},
	}}

	apic := tag.FrameList("APIC")
	if len(apic) != 2 || apic[0].Data[0] != 1 || apic[1].Data[0] != 2 {
		t.Errorf("FrameList(APIC) lost stored order: %+v", apic)
	}
	if got := tag.FrameList("TCOM")[0].String(); got != "Erik Satie" {
		t.Errorf("String() = %q, want %q", got, "Erik Satie")
	}

	var nilTag *ID3v2Tag
	if nilTag.FrameList("APIC") != nil {
		t.Error("nil tag should have no frames")
	}
}

func TestXiphComment_CaseInsensitiveKeys(t *testing.T) {
	var x XiphComment
	x.Add("Composer", "Debussy")
	x.Add("COMPOSER", "Ravel")

	if !x.Contains("composer") {
		t.Fatal("Contains(composer) = false")
	}
	got := x.Values("COMPOSER")
	if len(got) != 2 || got[0] != "Debussy" || got[1] != "Ravel" {
		t.Errorf("Values = %v, want [Debussy Ravel]", got)
	}

	var nilComment *XiphComment
	if nilComment.Contains("COMPOSER") {
		t.Error("nil comment should contain nothing")
	}
}

func TestAPEItem_Values(t *testing.T) {
	item := APEItem{Key: "ARTIST", Type: APEItemText, Value: []byte("A\x00B")}
	got := item.Values()
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("Values() = %v", got)
	}

	bin := APEItem{Key: "COVER ART (FRONT)", Type: APEItemBinary, Value: []byte("x\x00y")}
	if bin.Values() != nil {
		t.Error("binary item should have no text values")
	}

	var nilTag *APETag
	if _, ok := nilTag.Item("TITLE"); ok {
		t.Error("nil tag should have no items")
	}
}
