package coverart

import (
	"fmt"
	"io"
	"os"
)

// WriteCover writes data to target, creating or truncating it. It reports
// success only when every byte was written and the file closed cleanly.
func WriteCover(data []byte, target string) bool {
	f, err := os.Create(target)
	if err != nil {
		return false
	}
	return writeCover(f, data) == nil
}

// writeCover writes data to w and closes w on every path.
func writeCover(w io.WriteCloser, data []byte) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close cover: %w", cerr)
		}
	}()

	n, err := w.Write(data)
	if err != nil {
		return fmt.Errorf("write cover: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("write cover: %w (%d of %d bytes)", io.ErrShortWrite, n, len(data))
	}
	return nil
}
