//go:build !unix

package coverart

import "os"

func readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close() //nolint:errcheck // read-only handle
	return true
}
