package wave

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func chunk(id string, body []byte) []byte {
	out := make([]byte, 0, 8+len(body)+1)
	out = append(out, id...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))
	out = append(out, body...)
	if len(body)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

// chunkWithSize writes a chunk header that declares size regardless of body.
func chunkWithSize(id string, size uint32, body []byte) []byte {
	out := append([]byte(id), binary.LittleEndian.AppendUint32(nil, size)...)
	return append(out, body...)
}

func riff(chunks ...[]byte) []byte {
	var body []byte
	body = append(body, "WAVE"...)
	for _, c := range chunks {
		body = append(body, c...)
	}
	out := append([]byte("RIFF"), binary.LittleEndian.AppendUint32(nil, uint32(len(body)))...)
	return append(out, body...)
}

func fmtBody(enc Encoding, channels, rate, bits int) []byte {
	le := binary.LittleEndian
	b := le.AppendUint16(nil, uint16(enc))
	b = le.AppendUint16(b, uint16(channels))
	b = le.AppendUint32(b, uint32(rate))
	b = le.AppendUint32(b, uint32(rate*channels*bits/8))
	b = le.AppendUint16(b, uint16(channels*bits/8))
	b = le.AppendUint16(b, uint16(bits))
	return b
}

func int16Data(values ...int16) []byte {
	var b []byte
	for _, v := range values {
		b = binary.LittleEndian.AppendUint16(b, uint16(v))
	}
	return b
}

func encodeStream(t *testing.T, f Format, samples []float64) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Encode(&buf, f, samples); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf.Bytes()
}

func mustOpen(t *testing.T, data []byte, opts ...ReaderOption) *Reader {
	t.Helper()
	r, err := Open(bytes.NewReader(data), opts...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return r
}

func mustFormat(t *testing.T, enc Encoding, channels, bits, rate int) Format {
	t.Helper()
	f, err := NewFormat(enc, channels, bits, rate)
	if err != nil {
		t.Fatalf("NewFormat: %v", err)
	}
	return f
}

type countingObserver struct {
	calls   int
	samples int
	kind    SampleKind
}

func (o *countingObserver) SamplesDecoded(kind SampleKind, n int) {
	o.calls++
	o.samples += n
	o.kind = kind
}
