package ogg

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/simonhull/coverart/internal/binary"
	"github.com/simonhull/coverart/internal/fixture"
	"github.com/simonhull/coverart/internal/types"
)

func parse(t *testing.T, data []byte) *types.VorbisFile {
	t.Helper()
	f, err := (&parser{}).Parse(bytes.NewReader(data), int64(len(data)), "test.ogg")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	vf, ok := f.(*types.VorbisFile)
	if !ok {
		t.Fatalf("Parse() returned %T, want *types.VorbisFile", f)
	}
	return vf
}

func TestParse_Comments(t *testing.T) {
	data := fixture.OggVorbis(255, "Xiph.Org libVorbis I 20200704",
		"TITLE=Fratres", "COMPOSER=Arvo Pärt", "composer=Second")

	file := parse(t, data)
	if len(file.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", file.Warnings)
	}
	if file.Xiph == nil {
		t.Fatal("Xiph = nil")
	}
	if file.Xiph.Vendor != "Xiph.Org libVorbis I 20200704" {
		t.Errorf("Vendor = %q", file.Xiph.Vendor)
	}
	got := file.Xiph.Values("COMPOSER")
	if len(got) != 2 || got[0] != "Arvo Pärt" || got[1] != "Second" {
		t.Errorf("COMPOSER = %q, want [Arvo Pärt Second]", got)
	}
}

func TestParse_CommentSpanningPages(t *testing.T) {
	picture := strings.Repeat("A", 3000)
	// Two segments per page forces the comment packet across several pages.
	data := fixture.OggVorbis(2, "vendor", "METADATA_BLOCK_PICTURE="+picture, "COMPOSER=Reich")

	file := parse(t, data)
	if len(file.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", file.Warnings)
	}
	if got := file.Xiph.Values("METADATA_BLOCK_PICTURE"); len(got) != 1 || got[0] != picture {
		t.Errorf("picture field length = %d, want %d", len(strings.Join(got, "")), len(picture))
	}
	if got := file.Xiph.Values("COMPOSER"); len(got) != 1 || got[0] != "Reich" {
		t.Errorf("COMPOSER = %q", got)
	}
}

func TestPacketReader_ExactMultipleOf255(t *testing.T) {
	ident := fixture.VorbisIdentification()
	body := bytes.Repeat([]byte{0x42}, 510)
	setup := []byte("\x05vorbis")
	data := fixture.OggStream(9, 1, ident, body, setup)

	sr := binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.ogg")
	pr := newPacketReader(sr, func(off int64, msg string) {
		t.Errorf("unexpected warning at %d: %s", off, msg)
	})

	for i, want := range [][]byte{ident, body, setup} {
		p, err := pr.next()
		if err != nil {
			t.Fatalf("packet %d: %v", i, err)
		}
		if !bytes.Equal(p.data, want) {
			t.Errorf("packet %d: got %d bytes, want %d", i, len(p.data), len(want))
		}
	}
	if _, err := pr.next(); err == nil {
		t.Error("expected error past the last page")
	}
}

func TestParse_IgnoresOtherStreams(t *testing.T) {
	stream := fixture.OggVorbis(255, "vendor", "COMPOSER=Glass")
	// The identification page: header, one lacing value, 30-byte packet.
	firstPage := 27 + 1 + len(fixture.VorbisIdentification())
	other := fixture.OggStream(2, 255, fixture.VorbisCommentPacket(fixture.VorbisComment("other", "COMPOSER=Wrong")))

	data := append(append(append([]byte{}, stream[:firstPage]...), other...), stream[firstPage:]...)

	file := parse(t, data)
	if got := file.Xiph.Values("COMPOSER"); len(got) != 1 || got[0] != "Glass" {
		t.Errorf("COMPOSER = %q, want [Glass]", got)
	}
}

func TestParse_NotVorbis(t *testing.T) {
	data := fixture.OggStream(1, 255, []byte("OpusHead\x01\x02"), []byte("OpusTags"))

	_, err := (&parser{}).Parse(bytes.NewReader(data), int64(len(data)), "test.opus")
	var corrupted *types.CorruptedFileError
	if !errors.As(err, &corrupted) {
		t.Fatalf("Parse() error = %v, want CorruptedFileError", err)
	}
}

func TestParse_InvalidMagic(t *testing.T) {
	data := []byte("RIFF\x00\x00\x00\x00WAVEfmt ")

	_, err := (&parser{}).Parse(bytes.NewReader(data), int64(len(data)), "test.ogg")
	var corrupted *types.CorruptedFileError
	if !errors.As(err, &corrupted) {
		t.Fatalf("Parse() error = %v, want CorruptedFileError", err)
	}
}

func TestParse_MissingCommentHeader(t *testing.T) {
	data := fixture.OggStream(1, 255, fixture.VorbisIdentification())

	file := parse(t, data)
	if file.Xiph != nil {
		t.Errorf("Xiph = %+v, want nil", file.Xiph)
	}
	if len(file.Warnings) != 1 {
		t.Errorf("got %d warnings, want 1: %v", len(file.Warnings), file.Warnings)
	}
}

func TestParse_SecondPacketNotComment(t *testing.T) {
	data := fixture.OggStream(1, 255, fixture.VorbisIdentification(), []byte("\x05vorbis"))

	file := parse(t, data)
	if file.Xiph != nil {
		t.Errorf("Xiph = %+v, want nil", file.Xiph)
	}
	if len(file.Warnings) != 1 {
		t.Errorf("got %d warnings, want 1: %v", len(file.Warnings), file.Warnings)
	}
}

func TestPacketReader_DropsUncontinuedPacket(t *testing.T) {
	var warnings []string
	pr := newPacketReader(nil, func(_ int64, msg string) {
		warnings = append(warnings, msg)
	})

	pr.addPage(&Page{Segments: []byte{255}, Data: make([]byte, 255), Offset: 0})
	pr.addPage(&Page{Segments: []byte{3}, Data: []byte("abc"), Offset: 300})

	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(warnings))
	}
	if len(pr.queue) != 1 || string(pr.queue[0].data) != "abc" || pr.queue[0].offset != 300 {
		t.Errorf("queue = %+v, want one packet \"abc\" at 300", pr.queue)
	}
}

func TestPacketReader_SkipsOrphanContinuation(t *testing.T) {
	pr := newPacketReader(nil, func(_ int64, msg string) {
		t.Errorf("unexpected warning: %s", msg)
	})

	data := append(make([]byte, 255+10), "tail"...)
	pr.addPage(&Page{HeaderType: flagContinued, Segments: []byte{255, 10, 4}, Data: data})

	if len(pr.queue) != 1 || string(pr.queue[0].data) != "tail" {
		t.Errorf("queue = %+v, want one packet \"tail\"", pr.queue)
	}
}
