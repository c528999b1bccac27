package trace

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/sibexico/memsim/vmem"
)

// maxLineSize bounds a single trace line
const maxLineSize = 1 << 20

// Reader parses "<hex address> <R|W>" records, one per line.
// Blank lines and lines starting with '#' are skipped.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a trace reader over r
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{scanner: scanner}
}

// Next returns the next record, io.EOF at the end of the trace, or a
// trace format error naming the offending line
func (r *Reader) Next() (vmem.Access, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return ParseRecord(line, r.line)
	}

	if err := r.scanner.Err(); err != nil {
		return vmem.Access{}, vmem.NewSimError(vmem.ErrCodeTraceFormat, "trace.Reader",
			"failed to read trace after line "+strconv.Itoa(r.line), err)
	}
	return vmem.Access{}, io.EOF
}

// Line returns the number of lines consumed so far
func (r *Reader) Line() int {
	return r.line
}

// ParseRecord parses one non-empty trace line
func ParseRecord(line string, lineNo int) (vmem.Access, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return vmem.Access{}, vmem.ErrMalformedRecord("trace.ParseRecord", lineNo,
			"expected \"<hex address> <R|W>\", got "+strconv.Quote(line))
	}

	hex := fields[0]
	if len(hex) > 2 && (hex[:2] == "0x" || hex[:2] == "0X") {
		hex = hex[2:]
	}
	addr, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return vmem.Access{}, vmem.ErrMalformedRecord("trace.ParseRecord", lineNo,
			"invalid address "+strconv.Quote(fields[0]))
	}

	var kind vmem.AccessKind
	switch fields[1] {
	case "R", "r":
		kind = vmem.Read
	case "W", "w":
		kind = vmem.Write
	default:
		return vmem.Access{}, vmem.ErrMalformedRecord("trace.ParseRecord", lineNo,
			"invalid access kind "+strconv.Quote(fields[1])+" (must be R or W)")
	}

	return vmem.Access{Address: addr, Kind: kind}, nil
}

// ReadAll drains src into memory
func ReadAll(src vmem.Source) ([]vmem.Access, error) {
	var out []vmem.Access
	for {
		a, err := src.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
}
