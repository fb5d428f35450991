package m4a

import (
	"errors"
	"io"

	"github.com/simonhull/coverart/internal/binary"
	"github.com/simonhull/coverart/internal/registry"
	"github.com/simonhull/coverart/internal/types"
)

// parser implements registry.Parser for MP4 audio files
type parser struct{}

// Parse locates moov/udta/meta/ilst (or moov/meta/ilst) and reads its items.
// A file without an item list parses to an MP4File with a nil Tag.
func (p *parser) Parse(r io.ReaderAt, size int64, path string) (types.File, error) {
	sr := binary.NewSafeReader(r, size, path)
	file := &types.MP4File{}

	warn := func(off int64, msg string) {
		file.Warnings = append(file.Warnings, types.Warning{
			Stage:   "mp4",
			Message: msg,
			Offset:  off,
		})
	}

	moovAtom, err := findAtom(sr, 0, size, "moov")
	if err != nil {
		if !errors.Is(err, errAtomNotFound) {
			return nil, err
		}
		warn(0, "no moov atom")
		return file, nil
	}

	ilstAtom, err := findIlst(sr, moovAtom)
	if err != nil {
		if !errors.Is(err, errAtomNotFound) {
			warn(moovAtom.Offset, err.Error())
		}
		return file, nil
	}

	tag := &types.MP4Tag{Items: make(map[string]types.MP4Item)}
	if err := extractIlstItems(sr, ilstAtom, tag, warn); err != nil {
		warn(ilstAtom.Offset, err.Error())
	}
	file.Tag = tag

	return file, nil
}

// findIlst looks for the item list under moov/udta/meta, then moov/meta.
func findIlst(sr *binary.SafeReader, moov *Atom) (*Atom, error) {
	if udta, err := findAtom(sr, moov.DataOffset(), moov.End(), "udta"); err == nil {
		if ilst, err := ilstInMeta(sr, udta); err == nil {
			return ilst, nil
		}
	}
	return ilstInMeta(sr, moov)
}

func ilstInMeta(sr *binary.SafeReader, parent *Atom) (*Atom, error) {
	metaAtom, err := findAtom(sr, parent.DataOffset(), parent.End(), "meta")
	if err != nil {
		return nil, err
	}
	// meta atom has 4 bytes of version+flags before its children
	return findAtom(sr, metaAtom.DataOffset()+4, metaAtom.End(), "ilst")
}

// init registers the M4A/M4B parser
func init() {
	p := &parser{}
	registry.Register(types.FormatM4A, p)
	registry.Register(types.FormatM4B, p)
}
