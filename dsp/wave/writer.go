package wave

import (
	"encoding/binary"
	"fmt"
	"io"
)

const riffHeaderSize = 12

// extensibleGUIDTail follows the two sub-format bytes of the KSDATAFORMAT
// sub-type GUID.
var extensibleGUIDTail = [14]byte{
	0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9b, 0x71,
}

// headerBytes returns the RIFF, fmt and data chunk headers for a data
// chunk of dataSize bytes.
func headerBytes(f Format, dataSize uint32) []byte {
	fmtSize := f.FmtChunkSize()
	buf := make([]byte, 0, riffHeaderSize+8+fmtSize+8)
	le := binary.LittleEndian

	riffSize := uint32(4+8+fmtSize+8) + dataSize + dataSize%2
	buf = append(buf, "RIFF"...)
	buf = le.AppendUint32(buf, riffSize)
	buf = append(buf, "WAVE"...)

	buf = append(buf, "fmt "...)
	buf = le.AppendUint32(buf, uint32(fmtSize))
	buf = le.AppendUint16(buf, uint16(f.Encoding()))
	buf = le.AppendUint16(buf, uint16(f.Channels()))
	buf = le.AppendUint32(buf, uint32(f.FrameRate()))
	buf = le.AppendUint32(buf, uint32(f.ByteRate()))
	buf = le.AppendUint16(buf, uint16(f.FrameSize()))
	buf = le.AppendUint16(buf, uint16(f.BitsPerSample()))
	if fmtSize > 16 {
		buf = le.AppendUint16(buf, uint16(f.extensionSize()))
	}
	if f.Encoding() == EncodingExtensible {
		buf = le.AppendUint16(buf, uint16(f.ValidBits()))
		buf = le.AppendUint32(buf, f.ChannelMask())
		buf = le.AppendUint16(buf, uint16(f.SubEncoding()))
		buf = append(buf, extensibleGUIDTail[:]...)
	}

	buf = append(buf, "data"...)
	buf = le.AppendUint32(buf, dataSize)
	return buf
}

// Encode writes a complete WAVE stream holding samples in format f.
func Encode(w io.Writer, f Format, samples []float64) error {
	if err := f.Validate(); err != nil {
		return err
	}
	kind := f.Kind()
	data := make([]byte, len(samples)*kind.Size(), len(samples)*kind.Size()+1)
	kind.EncodeInto(data, samples)
	if len(data)%2 == 1 {
		data = append(data, 0)
	}

	if _, err := w.Write(headerBytes(f, uint32(len(samples)*kind.Size()))); err != nil {
		return fmt.Errorf("wave: write header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("wave: write data: %w", err)
	}
	return nil
}

// Writer streams samples into a WAVE file. The chunk sizes are patched
// when the Writer is closed.
type Writer struct {
	dst     io.WriteSeeker
	format  Format
	kind    SampleKind
	written int64
	scratch []byte
	closed  bool
}

// NewWriter validates f and writes a provisional header to dst.
func NewWriter(dst io.WriteSeeker, f Format) (*Writer, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if _, err := dst.Write(headerBytes(f, 0)); err != nil {
		return nil, fmt.Errorf("wave: write header: %w", err)
	}
	return &Writer{dst: dst, format: f, kind: f.Kind()}, nil
}

// Format returns the layout samples are written in.
func (w *Writer) Format() Format { return w.format }

// Samples returns the number of samples written so far.
func (w *Writer) Samples() int { return int(w.written / int64(w.kind.Size())) }

// WriteSamples encodes and appends samples.
func (w *Writer) WriteSamples(samples []float64) error {
	if w.closed {
		return fmt.Errorf("wave: write to closed writer")
	}
	need := len(samples) * w.kind.Size()
	if cap(w.scratch) < need {
		w.scratch = make([]byte, need)
	}
	buf := w.scratch[:need]
	w.kind.EncodeInto(buf, samples)
	n, err := w.dst.Write(buf)
	w.written += int64(n)
	if err != nil {
		return fmt.Errorf("wave: write data: %w", err)
	}
	return nil
}

// Close pads the data chunk to an even length and rewrites the header with
// the final sizes. It does not close dst.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.written%2 == 1 {
		if _, err := w.dst.Write([]byte{0}); err != nil {
			return fmt.Errorf("wave: write pad: %w", err)
		}
	}
	if _, err := w.dst.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("wave: rewind: %w", err)
	}
	if _, err := w.dst.Write(headerBytes(w.format, uint32(w.written))); err != nil {
		return fmt.Errorf("wave: write header: %w", err)
	}
	_, err := w.dst.Seek(0, io.SeekEnd)
	return err
}
