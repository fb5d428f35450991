package coverart_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/simonhull/coverart"
	"github.com/simonhull/coverart/internal/fixture"
)

// benchmarkFLAC is a FLAC stream with comments and a 64 KiB picture.
func benchmarkFLAC() []byte {
	return fixture.FLAC(
		fixture.FLACBlock{Type: fixture.FLACVorbisComment, Body: fixture.VorbisComment("bench", "COMPOSER=Bach", "TITLE=Goldberg")},
		fixture.FLACBlock{Type: fixture.FLACPicture, Body: fixture.FLACPictureBody(3, "image/jpeg", "", make([]byte, 64<<10))},
	)
}

// BenchmarkOpen measures the performance of opening a single audio file.
func BenchmarkOpen(b *testing.B) {
	path := writeTemp(b, "bench.flac", benchmarkFLAC())

	b.ReportAllocs()
	for b.Loop() {
		if _, err := coverart.Open(path); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkOpenContext measures the performance with context support.
func BenchmarkOpenContext(b *testing.B) {
	path := writeTemp(b, "bench.m4a", fixture.M4A("M4A ", fixture.CoverItem(make([]byte, 64<<10))))
	ctx := context.Background()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := coverart.OpenContext(ctx, path); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDetectFormat measures format detection performance.
func BenchmarkDetectFormat(b *testing.B) {
	data := append(fixture.ID3v2Tag(3, fixture.ID3v2Frame("TIT2", fixture.TextBody("x"))), benchmarkFLAC()...)
	reader := bytes.NewReader(data)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := coverart.DetectFormat(reader, int64(len(data)), "bench.flac"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLookup measures cover and composer lookups on a parsed handle.
func BenchmarkLookup(b *testing.B) {
	data := benchmarkFLAC()
	f, err := coverart.OpenReader(bytes.NewReader(data), int64(len(data)), "bench.flac")
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		if _, ok := coverart.EmbeddedCover(f); !ok {
			b.Fatal("no cover")
		}
		if _, ok := coverart.Composer(f); !ok {
			b.Fatal("no composer")
		}
	}
}
