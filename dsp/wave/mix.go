package wave

import "github.com/cwbudde/algo-pitch/dsp/core"

// Downmix averages interleaved frames of src down to one sample per frame.
// A trailing partial frame is ignored. dst is reused when it has capacity.
func Downmix(dst, src []float64, channels int) []float64 {
	if channels <= 1 {
		return append(dst[:0], src...)
	}
	frames := len(src) / channels
	dst = core.EnsureLen(dst, frames)
	inv := 1 / float64(channels)
	for i := range frames {
		var sum float64
		for _, x := range src[i*channels : (i+1)*channels] {
			sum += x
		}
		dst[i] = sum * inv
	}
	return dst
}
