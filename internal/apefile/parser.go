// Package apefile reads the APE tag of the formats that carry nothing else:
// Monkey's Audio, Musepack and WavPack.
package apefile

import (
	"errors"
	"fmt"
	"io"

	"github.com/simonhull/coverart/internal/ape"
	binutil "github.com/simonhull/coverart/internal/binary"
	"github.com/simonhull/coverart/internal/id3v2"
	"github.com/simonhull/coverart/internal/registry"
	"github.com/simonhull/coverart/internal/types"
)

// parser implements registry.Parser for one APE-tagged container.
type parser struct {
	wrap   func(*types.APETag) types.File
	name   string
	magics []string
}

var (
	monkeysAudio = &parser{
		name:   "Monkey's Audio",
		magics: []string{"MAC "},
		wrap:   func(t *types.APETag) types.File { return &types.APEFile{APE: t} },
	}
	musepack = &parser{
		name:   "Musepack",
		magics: []string{"MPCK", "MP+"},
		wrap:   func(t *types.APETag) types.File { return &types.MusepackFile{APE: t} },
	}
	wavPack = &parser{
		name:   "WavPack",
		magics: []string{"wvpk"},
		wrap:   func(t *types.APETag) types.File { return &types.WavPackFile{APE: t} },
	}
)

// Parse checks the stream signature, skipping a stray leading ID3v2 tag,
// and reads the APE tag at the end of the file.
func (p *parser) Parse(r io.ReaderAt, size int64, path string) (types.File, error) {
	sr := binutil.NewSafeReader(r, size, path)

	start := int64(0)
	if _, n, _, err := id3v2.Read(sr, 0); err == nil {
		start = n
	}

	if err := p.checkMagic(sr, start); err != nil {
		return nil, err
	}

	var warnings []types.Warning
	tag, tagWarnings, err := ape.ReadTail(sr)
	switch {
	case err == nil:
		warnings = tagWarnings
	case !errors.Is(err, ape.ErrNoTag):
		warnings = append(warnings, types.Warning{
			Stage:   "ape",
			Message: "APE parsing failed: " + err.Error(),
		})
	}

	file := p.wrap(tag)
	file.Info().Warnings = warnings
	return file, nil
}

func (p *parser) checkMagic(sr *binutil.SafeReader, off int64) error {
	head, err := sr.Bytes(off, 4, p.name+" magic bytes")
	if err != nil {
		return fmt.Errorf("read %s magic: %w", p.name, err)
	}
	for _, m := range p.magics {
		if string(head[:len(m)]) == m {
			return nil
		}
	}
	return &types.CorruptedFileError{
		Path:   sr.Path(),
		Offset: off,
		Reason: "invalid " + p.name + " magic bytes",
	}
}

// init registers the parsers
func init() {
	registry.Register(types.FormatAPE, monkeysAudio)
	registry.Register(types.FormatMusepack, musepack)
	registry.Register(types.FormatWavPack, wavPack)
}
