package trace

import (
	"bytes"
	"testing"

	"github.com/sibexico/memsim/vmem"
)

func sampleAccesses(n int) []vmem.Access {
	out := make([]vmem.Access, n)
	for i := range out {
		kind := vmem.Read
		if i%5 == 0 {
			kind = vmem.Write
		}
		out[i] = vmem.Access{Address: uint64(0x00400000 + (i%37)*vmem.PageSize + i%100), Kind: kind}
	}
	return out
}

func encode(t *testing.T, codec Codec, accesses []vmem.Access) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := NewWriter(&buf, codec)
	if err != nil {
		t.Fatalf("NewWriter(%s) failed: %v", codec, err)
	}
	for _, a := range accesses {
		if err := w.Write(a); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if w.Count() != len(accesses) {
		t.Errorf("Expected %d records written, got %d", len(accesses), w.Count())
	}
	return buf.Bytes()
}

func TestAutoReaderAllCodecs(t *testing.T) {
	accesses := sampleAccesses(2000)

	for _, codec := range []Codec{CodecNone, CodecSnappy, CodecLZ4} {
		t.Run(codec.String(), func(t *testing.T) {
			data := encode(t, codec, accesses)

			if got := DetectCodec(data); got != codec {
				t.Errorf("Expected detected codec %s, got %s", codec, got)
			}

			r, detected, err := NewAutoReader(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("NewAutoReader failed: %v", err)
			}
			if detected != codec {
				t.Errorf("Expected codec %s, got %s", codec, detected)
			}

			got, err := ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll failed: %v", err)
			}
			if len(got) != len(accesses) {
				t.Fatalf("Expected %d records, got %d", len(accesses), len(got))
			}
			for i := range got {
				if got[i] != accesses[i] {
					t.Fatalf("Record %d: expected %+v, got %+v", i, accesses[i], got[i])
				}
			}
		})
	}
}

func TestCompressedTracesAreSmaller(t *testing.T) {
	accesses := sampleAccesses(5000)
	plain := encode(t, CodecNone, accesses)

	for _, codec := range []Codec{CodecSnappy, CodecLZ4} {
		if packed := encode(t, codec, accesses); len(packed) >= len(plain) {
			t.Errorf("%s: expected compressed size below %d, got %d", codec, len(plain), len(packed))
		}
	}
}

func TestWriterFormat(t *testing.T) {
	data := encode(t, CodecNone, []vmem.Access{
		{Address: 0x41f7a0, Kind: vmem.Read},
		{Address: 0x13f5e2c0, Kind: vmem.Write},
	})

	want := "0041f7a0 R\n13f5e2c0 W\n"
	if string(data) != want {
		t.Errorf("Expected %q, got %q", want, string(data))
	}
}

func TestParseCodec(t *testing.T) {
	for _, name := range []string{"none", "snappy", "lz4"} {
		c, err := ParseCodec(name)
		if err != nil || c.String() != name {
			t.Errorf("ParseCodec(%q) = %s, %v", name, c, err)
		}
	}
	if _, err := ParseCodec("gzip"); err == nil {
		t.Error("Expected error for unsupported codec")
	}
}

func TestDetectCodecShortInput(t *testing.T) {
	if DetectCodec(nil) != CodecNone {
		t.Error("Empty input should be uncompressed")
	}
	if DetectCodec([]byte("10 R")) != CodecNone {
		t.Error("Plain text should be uncompressed")
	}
}

func TestCorruptSnappyStream(t *testing.T) {
	data := encode(t, CodecSnappy, sampleAccesses(500))
	corrupt := append([]byte(nil), data...)
	for i := len(snappyMagic) + 8; i < len(corrupt); i += 7 {
		corrupt[i] ^= 0x5a
	}

	r, _, err := NewAutoReader(bytes.NewReader(corrupt))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ReadAll(r); !vmem.IsErrorCode(err, vmem.ErrCodeTraceFormat) {
		t.Errorf("Expected trace format error for corrupt stream, got %v", err)
	}
}
