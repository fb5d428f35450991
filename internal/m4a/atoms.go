// Package m4a reads the iTunes metadata item list of MP4/M4A/M4B files.
package m4a

import (
	"errors"
	"fmt"

	"github.com/simonhull/coverart/internal/binary"
	"github.com/simonhull/coverart/internal/types"
)

// errAtomNotFound is returned by findAtom when no atom of the type exists.
var errAtomNotFound = errors.New("atom not found")

// Atom represents an MP4/M4A/M4B atom (box)
type Atom struct {
	Size     uint64 // Total size including header
	Type     string // 4-character type code
	Offset   int64  // Position in file
	Extended bool   // Whether this uses 64-bit extended size
}

// DataSize returns the size of the atom's data (excluding header)
func (a *Atom) DataSize() uint64 {
	headerSize := uint64(8)
	if a.Extended {
		headerSize = 16
	}
	if a.Size < headerSize {
		return 0
	}
	return a.Size - headerSize
}

// DataOffset returns the file offset where the atom's data starts
func (a *Atom) DataOffset() int64 {
	headerSize := int64(8)
	if a.Extended {
		headerSize = 16
	}
	return a.Offset + headerSize
}

// End returns the file offset just past the atom.
func (a *Atom) End() int64 {
	return a.Offset + int64(a.Size)
}

// readAtomHeader reads an atom header at the given offset
func readAtomHeader(sr *binary.SafeReader, offset int64) (*Atom, error) {
	size32, err := binary.Read[uint32](sr, offset, "atom size")
	if err != nil {
		return nil, err
	}

	typeBytes, err := sr.Bytes(offset+4, 4, "atom type")
	if err != nil {
		return nil, err
	}

	atom := &Atom{
		Type:   string(typeBytes),
		Offset: offset,
	}

	switch size32 {
	case 0:
		// Atom extends to the end of the file.
		atom.Size = uint64(sr.Size() - offset)
	case 1:
		size64, err := binary.Read[uint64](sr, offset+8, "extended atom size")
		if err != nil {
			return nil, err
		}
		atom.Size = size64
		atom.Extended = true
	default:
		atom.Size = uint64(size32)
	}

	if atom.Size < 8 {
		return nil, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: offset,
			Reason: fmt.Sprintf("invalid atom size %d (minimum is 8)", atom.Size),
		}
	}

	return atom, nil
}

// findAtom searches for an atom of the given type within a range
// Returns the first matching atom, errAtomNotFound, or a read error
func findAtom(sr *binary.SafeReader, start, end int64, atomType string) (*Atom, error) {
	var found *Atom
	err := walkAtoms(sr, start, end, func(a *Atom) (bool, error) {
		if a.Type == atomType {
			found = a
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: '%s'", errAtomNotFound, atomType)
	}
	return found, nil
}

// walkAtoms calls fn for each atom laid out between start and end until fn
// returns false or an error.
func walkAtoms(sr *binary.SafeReader, start, end int64, fn func(*Atom) (bool, error)) error {
	offset := start
	for offset+8 <= end {
		atom, err := readAtomHeader(sr, offset)
		if err != nil {
			return err
		}
		if atom.End() > end {
			return &types.CorruptedFileError{
				Path:   sr.Path(),
				Offset: offset,
				Reason: fmt.Sprintf("atom '%s' overruns its parent", atom.Type),
			}
		}

		more, err := fn(atom)
		if err != nil || !more {
			return err
		}
		offset = atom.End()
	}
	return nil
}

// readData reads an atom's payload.
func readData(sr *binary.SafeReader, atom *Atom) ([]byte, error) {
	return sr.Bytes(atom.DataOffset(), int64(atom.DataSize()), "atom '"+atom.Type+"' data")
}
