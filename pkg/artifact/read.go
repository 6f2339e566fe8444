package artifact

import (
	"fmt"
	"io"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"
)

// ReadFile maps path into memory and returns its contents, decompressing
// ".sz" files.
func ReadFile(path string) ([]byte, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if !IsCompressed(path) {
		return data, nil
	}
	decoded, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	return decoded, nil
}
