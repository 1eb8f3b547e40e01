package wave

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

// SampleKind is one of the resolved (encoding, bit depth) pairs a stream
// can carry.
type SampleKind uint8

const (
	KindUnknown SampleKind = iota
	KindInt8
	KindInt16
	KindInt24
	KindInt32
	KindFloat32
)

// ResolveKind maps a plain encoding and bit depth onto a sample kind.
// Unsupported pairs yield KindUnknown.
func ResolveKind(enc Encoding, bits int) SampleKind {
	switch enc {
	case EncodingPCM:
		switch bits {
		case 8:
			return KindInt8
		case 16:
			return KindInt16
		case 24:
			return KindInt24
		case 32:
			return KindInt32
		}
	case EncodingIEEEFloat:
		if bits == 32 {
			return KindFloat32
		}
	}
	return KindUnknown
}

// String returns a short name such as "int16".
func (k SampleKind) String() string {
	switch k {
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt24:
		return "int24"
	case KindInt32:
		return "int32"
	case KindFloat32:
		return "float32"
	default:
		return "unknown"
	}
}

// Size returns the number of bytes per sample, or 0 for KindUnknown.
func (k SampleKind) Size() int {
	switch k {
	case KindInt8:
		return 1
	case KindInt16:
		return 2
	case KindInt24:
		return 3
	case KindInt32, KindFloat32:
		return 4
	default:
		return 0
	}
}

const (
	scale8  = 1 << 7
	scale16 = 1 << 15
	scale24 = 1 << 23
	scale32 = 1 << 31
)

// Decode converts one little-endian sample to float64.
// b must hold at least Size() bytes.
func (k SampleKind) Decode(b []byte) float64 {
	switch k {
	case KindInt8:
		// 8-bit samples are unsigned with a 128 offset.
		return float64(int(b[0])-128) / scale8
	case KindInt16:
		return float64(int16(binary.LittleEndian.Uint16(b))) / scale16
	case KindInt24:
		v := int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
		return float64(v) / scale24
	case KindInt32:
		return float64(int32(binary.LittleEndian.Uint32(b))) / scale32
	case KindFloat32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	default:
		return 0
	}
}

// Encode writes x as one little-endian sample into b.
// Integer kinds clamp to the representable range, then truncate toward zero.
// b must hold at least Size() bytes.
func (k SampleKind) Encode(b []byte, x float64) {
	if math.IsNaN(x) && k != KindFloat32 {
		x = 0
	}

	switch k {
	case KindInt8:
		b[0] = uint8(core.Clamp((x+1)*scale8, 0, 255))
	case KindInt16:
		v := int16(core.Clamp(x*scale16, -scale16, scale16-1))
		binary.LittleEndian.PutUint16(b, uint16(v))
	case KindInt24:
		v := int32(core.Clamp(x*scale24, -scale24, scale24-1))
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
	case KindInt32:
		v := int32(core.Clamp(x*scale32, -scale32, scale32-1))
		binary.LittleEndian.PutUint32(b, uint32(v))
	case KindFloat32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(x)))
	}
}

// DecodeInto decodes len(dst) consecutive samples from src.
func (k SampleKind) DecodeInto(dst []float64, src []byte) {
	size := k.Size()
	for i := range dst {
		dst[i] = k.Decode(src[i*size:])
	}
}

// EncodeInto encodes src into consecutive samples of dst.
func (k SampleKind) EncodeInto(dst []byte, src []float64) {
	size := k.Size()
	for i, x := range src {
		k.Encode(dst[i*size:], x)
	}
}
