package coverart_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/coverart"
	"github.com/simonhull/coverart/internal/fixture"
)

var (
	jpeg = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	png  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
)

func writeTemp(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOpen_Formats(t *testing.T) {
	apeCover := fixture.APEBinaryItem("Cover Art (Front)", fixture.CoverArtValue("front.png", png))

	tests := []struct {
		name         string
		file         string
		data         []byte
		format       coverart.Format
		wantType     any
		wantCover    []byte
		wantComposer string
	}{
		{
			name: "mpeg with id3v2 and ape",
			file: "song.mp3",
			data: bytes.Join([][]byte{
				fixture.ID3v2Tag(3,
					fixture.ID3v2Frame("TCOM", fixture.TextBody("Hildegard von Bingen")),
					fixture.ID3v2Frame("APIC", fixture.APICBody("image/jpeg", 3, "", jpeg)),
				),
				fixture.MPEGFrame(),
				fixture.APETag(apeCover),
			}, nil),
			format:       coverart.FormatMPEG,
			wantType:     &coverart.MPEGFile{},
			wantCover:    jpeg,
			wantComposer: "Hildegard von Bingen",
		},
		{
			name: "flac with leading id3v2 only",
			file: "song.flac",
			data: append(
				fixture.ID3v2Tag(4,
					fixture.ID3v2FrameV4("APIC", 0, fixture.APICBody("image/png", 0, "", png)),
					fixture.ID3v2FrameV4("TCOM", 0, fixture.TextBody("Perotin")),
				),
				fixture.FLAC()...,
			),
			format:       coverart.FormatFLAC,
			wantType:     &coverart.FLACFile{},
			wantCover:    png,
			wantComposer: "Perotin",
		},
		{
			name: "flac xiph comment hides id3v2 composer",
			file: "mixed.flac",
			data: append(
				fixture.ID3v2Tag(4,
					fixture.ID3v2FrameV4("APIC", 0, fixture.APICBody("image/png", 0, "", png)),
					fixture.ID3v2FrameV4("TCOM", 0, fixture.TextBody("Perotin")),
				),
				fixture.FLAC(fixture.FLACBlock{Type: fixture.FLACVorbisComment, Body: fixture.VorbisComment("ref", "TITLE=Viderunt omnes")})...,
			),
			format:    coverart.FormatFLAC,
			wantType:  &coverart.FLACFile{},
			wantCover: png,
		},
		{
			name: "flac native",
			file: "native.flac",
			data: fixture.FLAC(
				fixture.FLACBlock{Type: fixture.FLACVorbisComment, Body: fixture.VorbisComment("ref", "COMPOSER=Machaut")},
				fixture.FLACBlock{Type: fixture.FLACPicture, Body: fixture.FLACPictureBody(3, "image/jpeg", "", jpeg)},
			),
			format:       coverart.FormatFLAC,
			wantType:     &coverart.FLACFile{},
			wantCover:    jpeg,
			wantComposer: "Machaut",
		},
		{
			name:         "m4a",
			file:         "song.m4a",
			data:         fixture.M4A("M4A ", fixture.CoverItem(png, jpeg), fixture.TextItem("\251wrt", "Gilbert", "Sullivan")),
			format:       coverart.FormatM4A,
			wantType:     &coverart.MP4File{},
			wantCover:    png,
			wantComposer: "Gilbert, Sullivan",
		},
		{
			name:      "m4b",
			file:      "book.m4b",
			data:      fixture.M4A("M4B ", fixture.CoverItem(jpeg)),
			format:    coverart.FormatM4B,
			wantType:  &coverart.MP4File{},
			wantCover: jpeg,
		},
		{
			name:         "ogg vorbis",
			file:         "song.ogg",
			data:         fixture.OggVorbis(3, "Xiph", "COMPOSER=Josquin", "TITLE=Ave Maria"),
			format:       coverart.FormatOgg,
			wantType:     &coverart.VorbisFile{},
			wantComposer: "Josquin",
		},
		{
			name: "asf",
			file: "song.wma",
			data: fixture.ASF(fixture.ASFExtendedContent(fixture.ASFAttr{
				Name:  "WM/Picture",
				Type:  1,
				Value: fixture.WMPicture(3, "image/jpeg", "front", jpeg),
			})),
			format:    coverart.FormatASF,
			wantType:  &coverart.ASFFile{},
			wantCover: jpeg,
		},
		{
			name:      "monkeys audio",
			file:      "song.ape",
			data:      append(fixture.MonkeysAudioHeader(), fixture.APETag(apeCover)...),
			format:    coverart.FormatAPE,
			wantType:  &coverart.APEFile{},
			wantCover: png,
		},
		{
			name:      "musepack",
			file:      "song.mpc",
			data:      append(fixture.MusepackHeader(), fixture.APETag(apeCover)...),
			format:    coverart.FormatMusepack,
			wantType:  &coverart.MusepackFile{},
			wantCover: png,
		},
		{
			name:      "wavpack",
			file:      "song.wv",
			data:      append(fixture.WavPackHeader(), fixture.APETag(apeCover)...),
			format:    coverart.FormatWavPack,
			wantType:  &coverart.WavPackFile{},
			wantCover: png,
		},
		{
			name:     "opus",
			file:     "song.opus",
			data:     fixture.OggStream(1, 255, []byte("OpusHead\x01\x02\x38\x01"), []byte("OpusTags")),
			format:   coverart.FormatOpus,
			wantType: &coverart.UnknownFile{},
		},
		{
			name:     "wav",
			file:     "song.wav",
			data:     append([]byte("RIFF\x24\x00\x00\x00WAVEfmt "), make([]byte, 32)...),
			format:   coverart.FormatWAV,
			wantType: &coverart.UnknownFile{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.file, tt.data)

			f, err := coverart.Open(path)
			require.NoError(t, err)
			require.IsType(t, tt.wantType, f)

			info := f.Info()
			assert.Equal(t, path, info.Path)
			assert.Equal(t, tt.format, info.Format)
			assert.Equal(t, int64(len(tt.data)), info.Size)
			assert.Empty(t, info.Warnings)

			cover, ok := coverart.EmbeddedCover(f)
			assert.Equal(t, tt.wantCover != nil, ok)
			assert.Equal(t, tt.wantCover, cover)

			composer, ok := coverart.Composer(f)
			assert.Equal(t, tt.wantComposer != "", ok)
			assert.Equal(t, tt.wantComposer, composer)
		})
	}
}

func TestOpen_Unsupported(t *testing.T) {
	path := writeTemp(t, "notes.txt", []byte("just some plain text"))

	_, err := coverart.Open(path)
	var unsupported *coverart.UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported), "error = %v", err)
	assert.Equal(t, path, unsupported.Path)
}

func TestOpen_Missing(t *testing.T) {
	_, err := coverart.Open(filepath.Join(t.TempDir(), "absent.mp3"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOpen_WarningOptions(t *testing.T) {
	bad := fixture.FLACPictureBody(3, "image/jpeg", "", jpeg)
	bad = bad[:len(bad)-2]
	path := writeTemp(t, "damaged.flac", fixture.FLAC(fixture.FLACBlock{Type: fixture.FLACPicture, Body: bad}))

	f, err := coverart.Open(path)
	require.NoError(t, err)
	assert.Len(t, f.Info().Warnings, 1)
	_, ok := coverart.EmbeddedCover(f)
	assert.False(t, ok)

	_, err = coverart.Open(path, coverart.WithStrictParsing())
	assert.ErrorContains(t, err, "strict parsing failed")

	f, err = coverart.Open(path, coverart.WithIgnoreWarnings())
	require.NoError(t, err)
	assert.Empty(t, f.Info().Warnings)
}

func TestOpenContext_Cancelled(t *testing.T) {
	path := writeTemp(t, "song.ogg", fixture.OggVorbis(255, "v"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, err := coverart.OpenContext(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, f)
}

func TestOpenReader(t *testing.T) {
	data := fixture.M4A("M4A ", fixture.CoverItem(jpeg))

	f, err := coverart.OpenReader(bytes.NewReader(data), int64(len(data)), "memory.m4a")
	require.NoError(t, err)
	assert.Equal(t, "memory.m4a", f.Info().Path)

	cover, ok := coverart.EmbeddedCover(f)
	require.True(t, ok)
	assert.Equal(t, jpeg, cover)
}

func TestSaveEmbeddedCover(t *testing.T) {
	audio := writeTemp(t, "song.wv", append(fixture.WavPackHeader(),
		fixture.APETag(fixture.APEBinaryItem("Cover Art (Front)", fixture.CoverArtValue("c.jpg", jpeg)))...))
	target := filepath.Join(t.TempDir(), "cover.jpg")

	require.True(t, coverart.SaveEmbeddedCover(audio, target))
	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, jpeg, got)

	bare := writeTemp(t, "bare.mp3", fixture.MPEGFrame())
	assert.False(t, coverart.SaveEmbeddedCover(bare, filepath.Join(t.TempDir(), "none.jpg")))
	assert.False(t, coverart.SaveEmbeddedCover(filepath.Join(t.TempDir(), "absent.mp3"), target))
}

func TestComposerOf(t *testing.T) {
	path := writeTemp(t, "song.ogg", fixture.OggVorbis(255, "v", "composer=Palestrina"))

	got, ok := coverart.ComposerOf(path)
	require.True(t, ok)
	assert.Equal(t, "Palestrina", got)

	_, ok = coverart.ComposerOf(filepath.Join(t.TempDir(), "absent.ogg"))
	assert.False(t, ok)
}
