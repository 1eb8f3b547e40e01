package wave

import (
	"errors"
	"fmt"
)

// Encoding is the format tag of a fmt chunk.
type Encoding uint16

const (
	EncodingPCM        Encoding = 0x0001
	EncodingIEEEFloat  Encoding = 0x0003
	EncodingExtensible Encoding = 0xFFFE
)

// String returns the conventional name of the encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingPCM:
		return "pcm"
	case EncodingIEEEFloat:
		return "ieee-float"
	case EncodingExtensible:
		return "extensible"
	default:
		return fmt.Sprintf("0x%04x", uint16(e))
	}
}

// MaxChannels is the largest channel count a Format accepts.
const MaxChannels = 18

// Format describes the sample layout of a stream.
//
// Frame size and byte rate are derived from the channel count, bit depth
// and frame rate on every call, so they always agree with each other.
// A Format is a value: copying it duplicates a stream's layout.
type Format struct {
	encoding    Encoding
	channels    int
	bits        int
	frameRate   int
	subEncoding Encoding
	validBits   int
	channelMask uint32
}

// NewFormat returns a plain PCM or IEEE float format.
func NewFormat(enc Encoding, channels, bits, frameRate int) (Format, error) {
	var f Format
	err := errors.Join(
		f.SetEncoding(enc),
		f.SetChannels(channels),
		f.SetBitsPerSample(bits),
		f.SetFrameRate(frameRate),
	)
	if err != nil {
		return Format{}, err
	}
	if enc == EncodingExtensible {
		return Format{}, fmt.Errorf("%w: use NewExtensibleFormat for the extensible encoding", ErrInvalidFormat)
	}
	if err := f.Validate(); err != nil {
		return Format{}, err
	}
	return f, nil
}

// NewExtensibleFormat returns a WAVE_FORMAT_EXTENSIBLE format whose samples
// use sub, which must be EncodingPCM or EncodingIEEEFloat.
func NewExtensibleFormat(sub Encoding, channels, bits, frameRate int, channelMask uint32) (Format, error) {
	var f Format
	err := errors.Join(
		f.SetEncoding(EncodingExtensible),
		f.SetChannels(channels),
		f.SetBitsPerSample(bits),
		f.SetFrameRate(frameRate),
		f.SetSubEncoding(sub),
	)
	if err != nil {
		return Format{}, err
	}
	f.SetChannelMask(channelMask)
	if err := f.Validate(); err != nil {
		return Format{}, err
	}
	return f, nil
}

// Encoding returns the declared format tag.
func (f Format) Encoding() Encoding { return f.encoding }

// Channels returns the channel count.
func (f Format) Channels() int { return f.channels }

// BitsPerSample returns the container bit depth.
func (f Format) BitsPerSample() int { return f.bits }

// FrameRate returns the number of frames per second.
func (f Format) FrameRate() int { return f.frameRate }

// ChannelMask returns the speaker position mask of an extensible format.
func (f Format) ChannelMask() uint32 { return f.channelMask }

// SubEncoding returns the encoding the samples actually use. For plain
// formats this is the encoding itself.
func (f Format) SubEncoding() Encoding {
	if f.encoding == EncodingExtensible {
		return f.subEncoding
	}
	return f.encoding
}

// ValidBits returns the number of meaningful bits per sample.
func (f Format) ValidBits() int {
	if f.encoding == EncodingExtensible && f.validBits > 0 {
		return f.validBits
	}
	return f.bits
}

// SampleSize returns the number of bytes per sample.
func (f Format) SampleSize() int { return f.bits / 8 }

// FrameSize returns the number of bytes per frame.
func (f Format) FrameSize() int { return f.channels * f.SampleSize() }

// ByteRate returns the number of bytes per second.
func (f Format) ByteRate() int { return f.frameRate * f.FrameSize() }

// FmtChunkSize returns the size of the fmt chunk written for f.
func (f Format) FmtChunkSize() int {
	switch f.encoding {
	case EncodingIEEEFloat:
		return 18
	case EncodingExtensible:
		return 40
	default:
		return 16
	}
}

// extensionSize returns the cbSize field of the fmt chunk.
func (f Format) extensionSize() int {
	if f.encoding == EncodingExtensible {
		return 22
	}
	return 0
}

// Kind resolves the format to one of the supported sample kinds.
// It returns KindUnknown when no supported pair matches.
func (f Format) Kind() SampleKind {
	if f.encoding == EncodingExtensible && f.ValidBits() != f.bits {
		return KindUnknown
	}
	return ResolveKind(f.SubEncoding(), f.ValidBits())
}

// Validate reports whether samples of this format can be decoded.
func (f Format) Validate() error {
	if f.channels < 1 {
		return fmt.Errorf("%w: no channels", ErrInvalidFormat)
	}
	if f.frameRate <= 0 {
		return fmt.Errorf("%w: frame rate %d", ErrInvalidFormat, f.frameRate)
	}
	if f.Kind() == KindUnknown {
		return fmt.Errorf("%w: %s with %d bits", ErrUnsupportedFormat, f.describeEncoding(), f.ValidBits())
	}
	return nil
}

func (f Format) describeEncoding() string {
	if f.encoding == EncodingExtensible {
		return fmt.Sprintf("extensible/%s", f.subEncoding)
	}
	return f.encoding.String()
}

// String summarises the format.
func (f Format) String() string {
	return fmt.Sprintf("%s %dch %dbit %dHz", f.describeEncoding(), f.channels, f.ValidBits(), f.frameRate)
}

// SetEncoding sets the format tag. Only PCM, IEEE float and extensible are
// accepted.
func (f *Format) SetEncoding(enc Encoding) error {
	switch enc {
	case EncodingPCM, EncodingIEEEFloat, EncodingExtensible:
		f.encoding = enc
		return nil
	}
	return fmt.Errorf("%w: encoding %s not recognised", ErrInvalidFormat, enc)
}

// SetChannels sets the channel count, between 1 and MaxChannels.
func (f *Format) SetChannels(n int) error {
	if n < 1 || n > MaxChannels {
		return fmt.Errorf("%w: %d channels, want 1..%d", ErrInvalidFormat, n, MaxChannels)
	}
	f.channels = n
	return nil
}

// SetBitsPerSample sets the container bit depth, which must be a positive
// multiple of 8. For extensible formats the valid bits follow.
func (f *Format) SetBitsPerSample(bits int) error {
	if bits <= 0 || bits%8 != 0 {
		return fmt.Errorf("%w: %d bits per sample, must be a multiple of 8", ErrInvalidFormat, bits)
	}
	f.bits = bits
	f.validBits = bits
	return nil
}

// SetFrameRate sets the number of frames per second.
func (f *Format) SetFrameRate(rate int) error {
	if rate <= 0 {
		return fmt.Errorf("%w: frame rate %d", ErrInvalidFormat, rate)
	}
	f.frameRate = rate
	return nil
}

// SetSubEncoding sets the sample encoding of an extensible format.
func (f *Format) SetSubEncoding(sub Encoding) error {
	if f.encoding != EncodingExtensible {
		return fmt.Errorf("%w: sub-encoding requires the extensible encoding", ErrInvalidFormat)
	}
	switch sub {
	case EncodingPCM, EncodingIEEEFloat:
		f.subEncoding = sub
		return nil
	}
	return fmt.Errorf("%w: sub-encoding %s not recognised", ErrInvalidFormat, sub)
}

// SetChannelMask sets the speaker position mask.
func (f *Format) SetChannelMask(mask uint32) {
	f.channelMask = mask
}
