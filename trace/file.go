package trace

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sibexico/memsim/vmem"
)

// File is a trace file mapped read-only into memory
type File struct {
	*Reader
	path   string
	codec  Codec
	mapped *mapping
}

// Open maps the trace at path and returns a reader over its records.
// Snappy and LZ4 compressed traces are decompressed transparently.
// A missing or unreadable file is a trace-unavailable error.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, vmem.ErrTraceOpen("trace.Open", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, vmem.ErrTraceOpen("trace.Open", path, err)
	}
	if info.IsDir() {
		return nil, vmem.ErrTraceOpen("trace.Open", path, fmt.Errorf("is a directory"))
	}

	m, err := mapFile(f, info.Size())
	if err != nil {
		return nil, vmem.ErrTraceOpen("trace.Open", path, err)
	}

	reader, codec, err := NewAutoReader(bytes.NewReader(m.data))
	if err != nil {
		m.unmap()
		return nil, err
	}

	return &File{
		Reader: reader,
		path:   path,
		codec:  codec,
		mapped: m,
	}, nil
}

// Path returns the file path
func (tf *File) Path() string {
	return tf.path
}

// Codec returns the detected compression
func (tf *File) Codec() Codec {
	return tf.codec
}

// Close unmaps the file. Records must not be read after Close.
func (tf *File) Close() error {
	if tf.mapped == nil {
		return nil
	}
	err := tf.mapped.unmap()
	tf.mapped = nil
	return err
}
