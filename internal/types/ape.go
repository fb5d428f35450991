package types

import "strings"

// APEItemType is the value kind stored in bits 1-2 of an APE item's flags.
type APEItemType uint8

// APE item kinds.
const (
	APEItemText APEItemType = iota
	APEItemBinary
	APEItemLocator
	APEItemReserved
)

func (t APEItemType) String() string {
	switch t {
	case APEItemText:
		return "text"
	case APEItemBinary:
		return "binary"
	case APEItemLocator:
		return "locator"
	default:
		return "reserved"
	}
}

// APEItem is one key/value pair of an APE tag.
type APEItem struct {
	Key   string
	Value []byte
	Type  APEItemType
}

// Values splits a text item into its NUL-separated values.
func (i APEItem) Values() []string {
	if i.Type == APEItemBinary || len(i.Value) == 0 {
		return nil
	}
	return strings.Split(string(i.Value), "\x00")
}

// APETag is an APEv1 or APEv2 tag.
//
// Item keys are stored upper-cased. When a key repeats the last item wins.
type APETag struct {
	Items   map[string]APEItem
	Version uint32
}

// Item returns the item stored under key, compared case-sensitively
// against the upper-cased stored keys.
func (t *APETag) Item(key string) (APEItem, bool) {
	if t == nil {
		return APEItem{}, false
	}
	item, ok := t.Items[key]
	return item, ok
}
