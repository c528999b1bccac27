//go:build windows

package trace

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// mapping is a read-only view of a whole file
type mapping struct {
	data          []byte
	mappingHandle windows.Handle
	addr          uintptr
}

func mapFile(f *os.File, size int64) (*mapping, error) {
	if size == 0 {
		return &mapping{}, nil
	}

	fileHandle := windows.Handle(f.Fd())
	maxSizeHigh := uint32(size >> 32)
	maxSizeLow := uint32(size & 0xFFFFFFFF)

	mappingHandle, err := windows.CreateFileMapping(
		fileHandle,
		nil,
		windows.PAGE_READONLY,
		maxSizeHigh,
		maxSizeLow,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create file mapping: %w", err)
	}

	addr, err := windows.MapViewOfFile(
		mappingHandle,
		windows.FILE_MAP_READ,
		0, // offset high
		0, // offset low
		uintptr(size),
	)
	if err != nil {
		windows.CloseHandle(mappingHandle)
		return nil, fmt.Errorf("failed to map view of file: %w", err)
	}

	return &mapping{
		data:          unsafe.Slice((*byte)(unsafe.Pointer(addr)), size),
		mappingHandle: mappingHandle,
		addr:          addr,
	}, nil
}

func (m *mapping) unmap() error {
	if m.data == nil {
		return nil
	}
	m.data = nil
	if err := windows.UnmapViewOfFile(m.addr); err != nil {
		windows.CloseHandle(m.mappingHandle)
		return fmt.Errorf("failed to unmap view: %w", err)
	}
	if err := windows.CloseHandle(m.mappingHandle); err != nil {
		return fmt.Errorf("failed to close mapping handle: %w", err)
	}
	return nil
}
