package asf

import (
	"bytes"
	"testing"

	"github.com/simonhull/coverart/internal/fixture"
	"github.com/simonhull/coverart/internal/types"
)

func parse(t *testing.T, data []byte) *types.ASFFile {
	t.Helper()
	f, err := (&parser{}).Parse(bytes.NewReader(data), int64(len(data)), "test.wma")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	asf, ok := f.(*types.ASFFile)
	if !ok {
		t.Fatalf("Parse() returned %T, want *types.ASFFile", f)
	}
	return asf
}

func TestGUID_RoundTrip(t *testing.T) {
	const s = "75b22630-668e-11cf-a6d9-00aa0062ce6c"
	g := mustGUID(s)
	if g.String() != s {
		t.Errorf("String() = %s, want %s", g.String(), s)
	}
	if !bytes.Equal(g[:4], []byte{0x30, 0x26, 0xB2, 0x75}) {
		t.Errorf("first field not little-endian: %x", g[:4])
	}
}

func TestParse_ExtendedContent(t *testing.T) {
	img := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	data := fixture.ASF(fixture.ASFExtendedContent(
		fixture.ASFAttr{Name: "WM/Composer", Type: 0, Value: fixture.ASFUnicode("Arvo Pärt")},
		fixture.ASFAttr{Name: "WM/Picture", Type: 1, Value: fixture.WMPicture(3, "image/jpeg", "", img)},
	))

	file := parse(t, data)
	if len(file.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", file.Warnings)
	}

	composer := file.Tag.AttributeList("WM/Composer")
	if len(composer) != 1 || composer[0].String() != "Arvo Pärt" {
		t.Errorf("WM/Composer = %+v", composer)
	}

	pics := file.Tag.AttributeList("WM/Picture")
	if len(pics) != 1 {
		t.Fatalf("got %d WM/Picture attributes, want 1", len(pics))
	}
	pic := pics[0].Picture()
	if !pic.Valid || !bytes.Equal(pic.Data, img) {
		t.Errorf("Picture() = %+v", pic)
	}
}

func TestParse_MetadataLibraryPicture(t *testing.T) {
	big := bytes.Repeat([]byte{0xAB}, 70000)
	data := fixture.ASF(
		fixture.ASFExtendedContent(fixture.ASFAttr{Name: "WM/AlbumTitle", Type: 0, Value: fixture.ASFUnicode("Tabula Rasa")}),
		fixture.ASFMetadataLibrary(fixture.ASFAttr{Name: "WM/Picture", Type: 1, Value: fixture.WMPicture(3, "image/png", "large", big)}),
	)

	file := parse(t, data)
	pics := file.Tag.AttributeList("WM/Picture")
	if len(pics) != 1 {
		t.Fatalf("got %d WM/Picture attributes, want 1", len(pics))
	}
	pic := pics[0].Picture()
	if !pic.Valid {
		t.Fatal("picture from metadata library should be valid")
	}
	if len(pic.Data) != len(big) {
		t.Errorf("picture size = %d, want %d", len(pic.Data), len(big))
	}
	if pic.MIMEType != "image/png" || pic.Description != "large" {
		t.Errorf("MIME/description = %q/%q", pic.MIMEType, pic.Description)
	}
}

func TestParse_OrderAcrossObjects(t *testing.T) {
	first := fixture.WMPicture(4, "image/jpeg", "back", []byte{1})
	second := fixture.WMPicture(3, "image/jpeg", "front", []byte{2})
	data := fixture.ASF(
		fixture.ASFExtendedContent(fixture.ASFAttr{Name: "WM/Picture", Type: 1, Value: first}),
		fixture.ASFMetadataLibrary(fixture.ASFAttr{Name: "WM/Picture", Type: 1, Value: second}),
	)

	pics := parse(t, data).Tag.AttributeList("WM/Picture")
	if len(pics) != 2 {
		t.Fatalf("got %d pictures, want 2", len(pics))
	}
	if pics[0].Picture().Description != "back" {
		t.Errorf("first picture = %q, want back", pics[0].Picture().Description)
	}
}

func TestParse_TruncatedObjectWarns(t *testing.T) {
	ext := fixture.ASFExtendedContent(fixture.ASFAttr{Name: "WM/Composer", Type: 0, Value: fixture.ASFUnicode("x")})
	// Count two entries while only one is present.
	ext[24] = 2

	file := parse(t, fixture.ASF(ext))
	if len(file.Warnings) == 0 {
		t.Error("expected a warning for the short object")
	}
}

func TestParse_NotASF(t *testing.T) {
	data := make([]byte, 64)
	if _, err := (&parser{}).Parse(bytes.NewReader(data), int64(len(data)), "x.wma"); err == nil {
		t.Error("expected error without header GUID")
	}
}
