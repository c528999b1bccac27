//go:build !unix && !windows

package trace

import (
	"io"
	"os"
)

// mapping holds the whole file where memory mapping is unavailable
type mapping struct {
	data []byte
}

func mapFile(f *os.File, size int64) (*mapping, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return &mapping{data: data}, nil
}

func (m *mapping) unmap() error {
	m.data = nil
	return nil
}
