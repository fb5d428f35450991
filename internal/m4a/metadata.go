package m4a

import (
	"encoding/binary"
	"errors"
	"fmt"

	binutil "github.com/simonhull/coverart/internal/binary"
	"github.com/simonhull/coverart/internal/text"
	"github.com/simonhull/coverart/internal/types"
)

// Data atom type codes.
const (
	dataTypeUTF8  = 1
	dataTypeUTF16 = 2
)

// dataAtom is one decoded "data" child of an ilst item.
type dataAtom struct {
	value []byte
	typ   uint32
}

// extractIlstItems parses every item of the ilst atom into tag.
// A damaged item is skipped with a warning.
func extractIlstItems(sr *binutil.SafeReader, ilst *Atom, tag *types.MP4Tag, warn func(int64, string)) error {
	return walkAtoms(sr, ilst.DataOffset(), ilst.End(), func(item *Atom) (bool, error) {
		key, value, err := parseItem(sr, item)
		if err != nil {
			warn(item.Offset, fmt.Sprintf("failed to parse item %q: %v", item.Type, err))
			return true, nil
		}
		if key != "" {
			tag.Items[key] = value
		}
		return true, nil
	})
}

// parseItem decodes one ilst entry and returns its key.
func parseItem(sr *binutil.SafeReader, atom *Atom) (string, types.MP4Item, error) {
	key := atom.Type
	var (
		data []dataAtom
		mean string
		name string
	)

	err := walkAtoms(sr, atom.DataOffset(), atom.End(), func(child *Atom) (bool, error) {
		payload, err := readData(sr, child)
		if err != nil {
			return false, err
		}
		switch child.Type {
		case "data":
			if len(payload) < 8 {
				return false, fmt.Errorf("data atom too short (%d bytes)", len(payload))
			}
			// Version byte then 24-bit type, then a 4-byte locale.
			data = append(data, dataAtom{
				typ:   binary.BigEndian.Uint32(payload[0:4]) & 0x00FFFFFF,
				value: payload[8:],
			})
		case "mean":
			if len(payload) >= 4 {
				mean = string(payload[4:])
			}
		case "name":
			if len(payload) >= 4 {
				name = string(payload[4:])
			}
		}
		return true, nil
	})
	if err != nil {
		return "", types.MP4Item{}, err
	}

	if key == "----" {
		if mean == "" || name == "" {
			return "", types.MP4Item{}, errors.New("freeform item without mean or name")
		}
		key = "----:" + mean + ":" + name
	}

	switch atom.Type {
	case "covr":
		return key, types.MP4Item{Covers: parseCovers(data)}, nil
	case "trkn", "disk":
		pair, err := parseIntPair(data)
		if err != nil {
			return "", types.MP4Item{}, err
		}
		return key, types.MP4Item{Pair: &pair}, nil
	}

	return key, parseValues(data), nil
}

// parseCovers keeps every image-typed data atom, including empty ones.
func parseCovers(data []dataAtom) []types.MP4CoverArt {
	var covers []types.MP4CoverArt
	for _, d := range data {
		switch types.MP4CoverFormat(d.typ) {
		case types.MP4CoverJPEG, types.MP4CoverPNG, types.MP4CoverBMP, types.MP4CoverGIF, types.MP4CoverUnknown:
			covers = append(covers, types.MP4CoverArt{
				Format: types.MP4CoverFormat(d.typ),
				Data:   d.value,
			})
		}
	}
	return covers
}

// parseIntPair reads a trkn or disk payload.
//
// Structure:
// [2 bytes] reserved
// [2 bytes] number
// [2 bytes] total
// [2 bytes] reserved (trkn only)
func parseIntPair(data []dataAtom) (types.MP4IntPair, error) {
	if len(data) == 0 {
		return types.MP4IntPair{}, errors.New("no data atom")
	}
	v := data[0].value
	if len(v) < 6 {
		return types.MP4IntPair{}, fmt.Errorf("number pair too short (%d bytes)", len(v))
	}
	return types.MP4IntPair{
		Number: int(binary.BigEndian.Uint16(v[2:4])),
		Total:  int(binary.BigEndian.Uint16(v[4:6])),
	}, nil
}

// parseValues collects text values, keeping other payloads as raw data.
func parseValues(data []dataAtom) types.MP4Item {
	var item types.MP4Item
	for _, d := range data {
		switch d.typ {
		case dataTypeUTF8:
			item.Strings = append(item.Strings, string(d.value))
		case dataTypeUTF16:
			item.Strings = append(item.Strings, text.DecodeUTF16BE(d.value))
		default:
			item.Data = append(item.Data, d.value)
		}
	}
	return item
}
