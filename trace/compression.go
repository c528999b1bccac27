package trace

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"

	"github.com/sibexico/memsim/vmem"
)

// Codec represents the compression applied to a trace file
type Codec uint8

const (
	CodecNone   Codec = 0
	CodecLZ4    Codec = 1
	CodecSnappy Codec = 2
)

// String returns the codec name used on the command line
func (c Codec) String() string {
	switch c {
	case CodecLZ4:
		return "lz4"
	case CodecSnappy:
		return "snappy"
	default:
		return "none"
	}
}

// ParseCodec converts a codec name
func ParseCodec(name string) (Codec, error) {
	switch name {
	case "", "none":
		return CodecNone, nil
	case "lz4":
		return CodecLZ4, nil
	case "snappy":
		return CodecSnappy, nil
	}
	return CodecNone, fmt.Errorf("unsupported codec: %s (must be none, snappy, or lz4)", name)
}

// Stream magic numbers:
// snappy framing format starts with a stream identifier chunk,
// an LZ4 frame starts with 0x184D2204 (little endian).
var snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")

const lz4FrameMagic = 0x184D2204

// DetectCodec sniffs the codec from the first bytes of a trace
func DetectCodec(head []byte) Codec {
	if bytes.HasPrefix(head, snappyMagic) {
		return CodecSnappy
	}
	if len(head) >= 4 && binary.LittleEndian.Uint32(head[:4]) == lz4FrameMagic {
		return CodecLZ4
	}
	return CodecNone
}

// Decompress wraps r with the decompressor for codec
func Decompress(r io.Reader, codec Codec) (io.Reader, error) {
	switch codec {
	case CodecNone:
		return r, nil
	case CodecSnappy:
		return snappy.NewReader(r), nil
	case CodecLZ4:
		return lz4.NewReader(r), nil
	default:
		return nil, fmt.Errorf("unsupported codec: %d", codec)
	}
}

// NewAutoReader sniffs the codec of r and returns a trace reader over the
// decompressed records
func NewAutoReader(r io.Reader) (*Reader, Codec, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(snappyMagic))
	if err != nil && err != io.EOF {
		return nil, CodecNone, vmem.NewSimError(vmem.ErrCodeTraceUnavailable, "trace.NewAutoReader", "failed to read trace header", err)
	}
	codec := DetectCodec(head)
	dr, err := Decompress(br, codec)
	if err != nil {
		return nil, codec, err
	}
	return NewReader(dr), codec, nil
}

// Writer writes trace records, optionally compressed
type Writer struct {
	buf        *bufio.Writer
	compressor io.WriteCloser // nil for CodecNone
	count      int
}

// NewWriter creates a trace writer on w. Close must be called to flush;
// it does not close w.
func NewWriter(w io.Writer, codec Codec) (*Writer, error) {
	tw := &Writer{}
	switch codec {
	case CodecNone:
		tw.buf = bufio.NewWriter(w)
	case CodecSnappy:
		tw.compressor = snappy.NewBufferedWriter(w)
		tw.buf = bufio.NewWriter(tw.compressor)
	case CodecLZ4:
		tw.compressor = lz4.NewWriter(w)
		tw.buf = bufio.NewWriter(tw.compressor)
	default:
		return nil, fmt.Errorf("unsupported codec: %d", codec)
	}
	return tw, nil
}

// Write appends one record
func (tw *Writer) Write(a vmem.Access) error {
	if _, err := fmt.Fprintf(tw.buf, "%08x %s\n", a.Address, a.Kind); err != nil {
		return fmt.Errorf("failed to write trace record: %w", err)
	}
	tw.count++
	return nil
}

// Count returns the number of records written
func (tw *Writer) Count() int {
	return tw.count
}

// Close flushes buffered records and finishes the compressed stream
func (tw *Writer) Close() error {
	if err := tw.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush trace: %w", err)
	}
	if tw.compressor != nil {
		if err := tw.compressor.Close(); err != nil {
			return fmt.Errorf("failed to finish %T stream: %w", tw.compressor, err)
		}
	}
	return nil
}
