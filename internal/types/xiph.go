package types

import "strings"

// XiphComment is a Vorbis comment block as found in Ogg Vorbis and FLAC.
//
// Field names are upper-cased. Values keep their stored order.
type XiphComment struct {
	Fields map[string][]string
	Vendor string
}

// Contains reports whether the comment has at least one value for key.
func (x *XiphComment) Contains(key string) bool {
	if x == nil {
		return false
	}
	return len(x.Fields[strings.ToUpper(key)]) > 0
}

// Values returns the values stored under key.
func (x *XiphComment) Values(key string) []string {
	if x == nil {
		return nil
	}
	return x.Fields[strings.ToUpper(key)]
}

// Add appends a value under key.
func (x *XiphComment) Add(key, value string) {
	if x.Fields == nil {
		x.Fields = make(map[string][]string)
	}
	k := strings.ToUpper(key)
	x.Fields[k] = append(x.Fields[k], value)
}
