package wave

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Observer receives decode statistics from a Reader.
type Observer interface {
	SamplesDecoded(kind SampleKind, n int)
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithLogger mirrors the reader's diagnostics to logger.
func WithLogger(logger *slog.Logger) ReaderOption {
	return func(r *Reader) {
		r.diag.logger = logger
	}
}

// WithObserver registers an observer for decoded sample counts.
func WithObserver(o Observer) ReaderOption {
	return func(r *Reader) {
		r.observer = o
	}
}

// Reader decodes samples from a RIFF/WAVE stream.
//
// A Reader is not safe for concurrent use. Positions are sample indices
// relative to the start of the data chunk; a sample is one channel of one
// frame.
type Reader struct {
	src    io.ReadSeeker
	closer io.Closer

	format    Format
	kind      SampleKind
	dataStart int64
	dataSize  int64
	pos       int64 // bytes from dataStart
	ready     bool

	diag     diagnostics
	observer Observer
	scratch  []byte
}

// NewReader returns a Reader with no stream attached.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Open parses the header of src and returns a ready Reader.
func Open(src io.ReadSeeker, opts ...ReaderOption) (*Reader, error) {
	r := NewReader(opts...)
	if err := r.Open(src); err != nil {
		return nil, err
	}
	return r, nil
}

// OpenFile opens the named file and parses its header. Close releases the file.
func OpenFile(path string, opts ...ReaderOption) (*Reader, error) {
	r := NewReader(opts...)
	if err := r.OpenFile(path); err != nil {
		return nil, err
	}
	return r, nil
}

// OpenFile opens the named file and parses its header.
func (r *Reader) OpenFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		r.diag.warnf("error opening %s: %v", path, err)
		return fmt.Errorf("wave: open %s: %w", path, err)
	}
	if err := r.Open(f); err != nil {
		_ = f.Close()
		return err
	}
	r.closer = f
	return nil
}

// Open attaches src and parses its header. On failure the Reader is left
// not ready and every read reports ErrNotReady; Log explains what went wrong.
func (r *Reader) Open(src io.ReadSeeker) error {
	r.release()
	r.src = src
	r.format = Format{}
	r.kind = KindUnknown
	r.dataStart, r.dataSize, r.pos = 0, 0, 0

	if err := r.parseHeader(); err != nil {
		r.ready = false
		return err
	}

	r.ready = true
	r.pos = 0
	if _, err := r.src.Seek(r.dataStart, io.SeekStart); err != nil {
		r.ready = false
		r.diag.warnf("error reading file: %v", err)
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	r.diag.debugf("file initialized with format %s, %d samples", r.format, r.Samples())
	return nil
}

// Close releases the underlying file when the Reader opened it itself.
func (r *Reader) Close() error {
	return r.release()
}

func (r *Reader) release() error {
	r.ready = false
	r.src = nil
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// Ready reports whether a header has been parsed successfully.
func (r *Reader) Ready() bool { return r.ready }

// Format returns the parsed sample layout.
func (r *Reader) Format() Format { return r.format }

// Samples returns the number of whole samples in the data chunk.
func (r *Reader) Samples() int {
	if r.kind == KindUnknown {
		return 0
	}
	return int(r.dataSize / int64(r.kind.Size()))
}

// Frames returns the number of whole frames in the data chunk.
func (r *Reader) Frames() int {
	fs := r.format.FrameSize()
	if fs == 0 {
		return 0
	}
	return int(r.dataSize / int64(fs))
}

// DataSize returns the size of the data chunk in bytes, clamped to what the
// stream actually holds.
func (r *Reader) DataSize() int64 { return r.dataSize }

// Log returns a copy of the most recent diagnostics, oldest first.
func (r *Reader) Log() []string { return r.diag.snapshot() }

// Tell returns the current sample index.
func (r *Reader) Tell() int {
	if r.kind == KindUnknown {
		return 0
	}
	return int(r.pos / int64(r.kind.Size()))
}

// Seek moves to sample index. Positions past the end of the data chunk fail
// with ErrSeekOutOfBounds and leave the position unchanged. Seeking exactly
// to the end is allowed. The end is DataSize, which for a data chunk that
// declares more bytes than the stream holds is the clamped size.
func (r *Reader) Seek(index int) error {
	off, err := r.offsetOf(index)
	if err != nil {
		return err
	}
	r.pos = off
	return nil
}

func (r *Reader) offsetOf(index int) (int64, error) {
	if !r.ready {
		return 0, ErrNotReady
	}
	off := int64(index) * int64(r.kind.Size())
	if index < 0 || off > r.dataSize {
		r.diag.warnf("couldn't move to sample %d, out of bounds", index)
		return 0, fmt.Errorf("%w: sample %d of %d", ErrSeekOutOfBounds, index, r.Samples())
	}
	return off, nil
}

// ReadSamples decodes len(dst) samples from the current position and
// advances by the number decoded. Samples past the end of the data are
// zeroed; the returned count excludes them.
func (r *Reader) ReadSamples(dst []float64) (int, error) {
	if !r.ready {
		return 0, ErrNotReady
	}
	n, err := r.readAt(dst, r.pos)
	r.pos += int64(n) * int64(r.kind.Size())
	return n, err
}

// ReadSamplesAt seeks to index and then behaves like ReadSamples.
func (r *Reader) ReadSamplesAt(dst []float64, index int) (int, error) {
	if err := r.Seek(index); err != nil {
		return 0, err
	}
	return r.ReadSamples(dst)
}

// PeekSamples is ReadSamples without moving the position.
func (r *Reader) PeekSamples(dst []float64) (int, error) {
	if !r.ready {
		return 0, ErrNotReady
	}
	return r.readAt(dst, r.pos)
}

// PeekSamplesAt decodes from index without moving the position.
func (r *Reader) PeekSamplesAt(dst []float64, index int) (int, error) {
	off, err := r.offsetOf(index)
	if err != nil {
		return 0, err
	}
	return r.readAt(dst, off)
}

// ReadAppend decodes count samples from the current position and appends
// them to dst. Like ReadSamples, samples past the end are zero.
func (r *Reader) ReadAppend(dst []float64, count int) ([]float64, int, error) {
	if count <= 0 {
		return dst, 0, nil
	}
	start := len(dst)
	dst = append(dst, make([]float64, count)...)
	n, err := r.ReadSamples(dst[start:])
	return dst, n, err
}

// ReadAll decodes the whole data chunk and leaves the position at its end.
func (r *Reader) ReadAll() ([]float64, error) {
	if !r.ready {
		return nil, ErrNotReady
	}
	out := make([]float64, r.Samples())
	n, err := r.readAt(out, 0)
	r.pos = int64(n) * int64(r.kind.Size())
	return out[:n], err
}

// readAt decodes into dst starting at byte offset off of the data chunk.
func (r *Reader) readAt(dst []float64, off int64) (int, error) {
	size := int64(r.kind.Size())
	avail := int((r.dataSize - off) / size)
	n := min(len(dst), max(avail, 0))
	if n < len(dst) {
		clear(dst[n:])
		r.diag.debugf("could only read %d of %d samples, end of data reached", n, len(dst))
	}
	if n == 0 {
		return 0, nil
	}

	if _, err := r.src.Seek(r.dataStart+off, io.SeekStart); err != nil {
		r.diag.warnf("error reading file: %v", err)
		clear(dst)
		return 0, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	need := n * int(size)
	if cap(r.scratch) < need {
		r.scratch = make([]byte, need)
	}
	buf := r.scratch[:need]

	got, err := io.ReadFull(r.src, buf)
	if err != nil {
		whole := got / int(size)
		r.kind.DecodeInto(dst[:whole], buf)
		clear(dst[whole:])
		r.diag.warnf("error reading file after %d of %d samples: %v", whole, n, err)
		r.notify(whole)
		return whole, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	r.kind.DecodeInto(dst[:n], buf)
	r.notify(n)
	return n, nil
}

func (r *Reader) notify(n int) {
	if r.observer != nil && n > 0 {
		r.observer.SamplesDecoded(r.kind, n)
	}
}

// chunk header
type chunkHeader struct {
	id   [4]byte
	size uint32
}

func (h chunkHeader) is(id string) bool {
	return string(h.id[:]) == id
}

func (r *Reader) parseHeader() error {
	end, err := r.src.Seek(0, io.SeekEnd)
	if err != nil {
		r.diag.warnf("error reading file: %v", err)
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if _, err := r.src.Seek(0, io.SeekStart); err != nil {
		r.diag.warnf("error reading file: %v", err)
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	p := &headerParser{src: r.src, end: end}

	var riff [12]byte
	if err := p.read(riff[:]); err != nil {
		r.diag.warnf("error reading file: %v", err)
		return err
	}
	if string(riff[0:4]) != "RIFF" {
		r.diag.warnf("file is not RIFF format")
		return fmt.Errorf("%w: missing RIFF tag", ErrMalformedHeader)
	}
	if string(riff[8:12]) != "WAVE" {
		r.diag.warnf("file is not WAVE format")
		return fmt.Errorf("%w: missing WAVE tag", ErrMalformedHeader)
	}

	h, err := p.next()
	if err != nil {
		r.diag.warnf("error reading chunk header: %v", err)
		return err
	}
	for !h.is("fmt ") {
		r.diag.debugf("unexpected chunk %q, expected \"fmt \"", h.id[:])
		if err := p.skip(h); err != nil {
			r.diag.warnf("error reading unexpected chunk of size %d", h.size)
			return err
		}
		if h, err = p.next(); err != nil {
			r.diag.warnf("error reading chunk header: %v", err)
			return err
		}
	}

	format, err := r.parseFmt(p, h)
	if err != nil {
		return err
	}

	if h, err = p.next(); err != nil {
		r.diag.warnf("error reading chunk header: %v", err)
		return err
	}
	for !h.is("data") {
		if !h.is("fact") {
			r.diag.debugf("unexpected chunk %q, expected \"data\"", h.id[:])
		}
		if err := p.skip(h); err != nil {
			r.diag.warnf("error reading unexpected chunk of size %d", h.size)
			return err
		}
		if h, err = p.next(); err != nil {
			r.diag.warnf("error reading chunk header: %v", err)
			return err
		}
	}

	r.format = format
	r.kind = format.Kind()
	r.dataStart = p.off
	r.dataSize = int64(h.size)
	if remaining := p.remaining(); r.dataSize > remaining {
		r.diag.warnf("data chunk declares %d bytes but only %d remain, clamping", r.dataSize, remaining)
		r.dataSize = remaining
	}
	return nil
}

func (r *Reader) parseFmt(p *headerParser, h chunkHeader) (Format, error) {
	if h.size < 16 {
		r.diag.warnf("fmt chunk of %d bytes is too short", h.size)
		return Format{}, fmt.Errorf("%w: fmt chunk of %d bytes", ErrMalformedHeader, h.size)
	}
	if int64(h.size) > p.remaining() {
		r.diag.warnf("error reading fmt chunk of size %d", h.size)
		return Format{}, fmt.Errorf("%w: fmt chunk of %d bytes", ErrTruncated, h.size)
	}

	body := make([]byte, h.size)
	if err := p.read(body); err != nil {
		r.diag.warnf("error reading fmt chunk: %v", err)
		return Format{}, err
	}
	if err := p.skipPad(h); err != nil {
		return Format{}, err
	}

	le := binary.LittleEndian
	enc := Encoding(le.Uint16(body[0:2]))
	channels := int(le.Uint16(body[2:4]))
	rate := int(le.Uint32(body[4:8]))
	byteRate := int(le.Uint32(body[8:12]))
	blockAlign := int(le.Uint16(body[12:14]))
	bits := int(le.Uint16(body[14:16]))

	var f Format
	err := errors.Join(
		f.SetEncoding(enc),
		f.SetChannels(channels),
		f.SetBitsPerSample(bits),
		f.SetFrameRate(rate),
	)
	if err != nil {
		r.diag.warnf("format %s with %d channels and %d bits is not supported", enc, channels, bits)
		return Format{}, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	if enc == EncodingExtensible {
		if h.size < 40 {
			r.diag.warnf("extensible fmt chunk of %d bytes is too short", h.size)
			return Format{}, fmt.Errorf("%w: extensible fmt chunk of %d bytes", ErrMalformedHeader, h.size)
		}
		f.validBits = int(le.Uint16(body[18:20]))
		f.SetChannelMask(le.Uint32(body[20:24]))
		sub := Encoding(le.Uint16(body[24:26]))
		if err := f.SetSubEncoding(sub); err != nil {
			r.diag.warnf("format 0xfffe with subformat %s is not supported", sub)
			return Format{}, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
	}

	if err := f.Validate(); err != nil {
		r.diag.warnf("format %s is not supported", f)
		return Format{}, err
	}

	if blockAlign != f.FrameSize() || byteRate != f.ByteRate() {
		r.diag.debugf("header declares frame size %d and byte rate %d, using %d and %d",
			blockAlign, byteRate, f.FrameSize(), f.ByteRate())
	}
	return f, nil
}

// headerParser reads chunk headers while tracking the offset so that
// declared lengths can be checked against the bytes left in the stream.
type headerParser struct {
	src io.ReadSeeker
	off int64
	end int64
}

func (p *headerParser) remaining() int64 {
	return p.end - p.off
}

func (p *headerParser) read(b []byte) error {
	n, err := io.ReadFull(p.src, b)
	p.off += int64(n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return nil
}

func (p *headerParser) next() (chunkHeader, error) {
	var b [8]byte
	if err := p.read(b[:]); err != nil {
		return chunkHeader{}, err
	}
	var h chunkHeader
	copy(h.id[:], b[:4])
	h.size = binary.LittleEndian.Uint32(b[4:])
	return h, nil
}

// skip discards the body of h and its pad byte. A chunk that claims more
// bytes than remain is a truncation error.
func (p *headerParser) skip(h chunkHeader) error {
	size := int64(h.size)
	if size > p.remaining() {
		return fmt.Errorf("%w: chunk %q declares %d bytes, %d remain", ErrTruncated, h.id[:], size, p.remaining())
	}
	if _, err := p.src.Seek(size, io.SeekCurrent); err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	p.off += size
	return p.skipPad(h)
}

// skipPad steps over the pad byte that follows odd-sized chunks, if present.
func (p *headerParser) skipPad(h chunkHeader) error {
	if h.size%2 == 0 || p.remaining() == 0 {
		return nil
	}
	if _, err := p.src.Seek(1, io.SeekCurrent); err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	p.off++
	return nil
}
