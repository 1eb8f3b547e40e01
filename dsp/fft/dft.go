package fft

import (
	"math"

	"github.com/cwbudde/algo-pitch/dsp/window"
)

// Bin evaluates the spectrum of x at a fractional bin index, measured in
// cycles per len(x) samples. The result is conjugated, so the returned phase
// follows exp(+i*phi).
func Bin(x []float64, frequency float64) complex128 {
	size := len(x)
	if size == 0 {
		return 0
	}

	var re, im float64
	step := -2 * math.Pi / float64(size) * frequency
	for i, v := range x {
		s, c := math.Sincos(step * float64(i))
		re += v * c
		im += v * s
	}

	return complex(re, -im)
}

func binOffset(withDC bool) int {
	if withDC {
		return 0
	}
	return 1
}

// FT evaluates the first bins of the DFT of x, scaled by 2/len(x) so that a
// full-scale sinusoid reads as magnitude 1. Without withDC bin j holds
// frequency j+1.
func (e *Engine) FT(x []float64, bins int, withDC bool) []complex128 {
	out := make([]complex128, max(bins, 0))
	size := len(x)
	if size == 0 {
		return out
	}

	circle := e.Circle()
	exp := make([]complex128, size)
	for i := range exp {
		exp[i] = circle.At(float64(size-i) / float64(size))
	}

	offset := binOffset(withDC)
	for i, v := range x {
		for j := range out {
			out[j] += exp[(i*(j+offset))%size] * complex(v, 0)
		}
	}

	scale := complex(2/float64(size), 0)
	for j := range out {
		out[j] *= scale
	}

	return out
}

// CosWindowFT applies a periodic Hann window to a copy of x and evaluates
// every other bin, so bin j holds frequency 2*(j+1) cycles per block (or 2*j
// with withDC). For a block holding exactly two periods, bin j is therefore
// harmonic j+1. The window acts as a [0.25 0.5 0.25] kernel on the
// frequency side, which halves resolution and suppresses leakage. The scale
// is 4/len(x).
func (e *Engine) CosWindowFT(x []float64, bins int, withDC bool) []complex128 {
	out := make([]complex128, max(bins, 0))
	size := len(x)
	if size == 0 {
		return out
	}

	windowed := make([]float64, size)
	copy(windowed, x)
	window.Apply(window.TypeHann, windowed, window.WithPeriodic())

	circle := e.Circle()
	exp := make([]complex128, size)
	for i := range exp {
		exp[i] = circle.At(-float64(i) / float64(size))
	}

	offset := binOffset(withDC)
	for i, v := range windowed {
		for j := range out {
			out[j] += exp[(i*2*(j+offset))%size] * complex(v, 0)
		}
	}

	scale := complex(4/float64(size), 0)
	for j := range out {
		out[j] *= scale
	}

	return out
}

// PreciseFT is FT with exact twiddles and a bin spacing stretched by speed.
// The scale is 2*speed/len(x).
func (e *Engine) PreciseFT(x []float64, bins int, withDC bool, speed float64) []complex128 {
	out := make([]complex128, max(bins, 0))
	size := len(x)
	if size == 0 {
		return out
	}

	offset := binOffset(withDC)
	step := -2 * math.Pi / float64(size) * speed
	for i, v := range x {
		for j := range out {
			s, c := math.Sincos(step * float64(i) * float64(j+offset))
			out[j] += complex(v*c, v*s)
		}
	}

	scale := complex(2*speed/float64(size), 0)
	for j := range out {
		out[j] *= scale
	}

	return out
}

// IFT synthesises size samples from the given bins. It inverts FT for
// signals whose energy lies inside the given bins.
func (e *Engine) IFT(freqs []complex128, size int, withDC bool) []float64 {
	if size <= 0 {
		return nil
	}
	out := make([]float64, size)

	circle := e.Circle()
	exp := make([]complex128, size)
	for i := range exp {
		exp[i] = circle.At(float64(i) / float64(size))
	}

	offset := binOffset(withDC)
	for j, f := range freqs {
		for i := range out {
			out[i] += real(f * exp[(i*(j+offset))%size])
		}
	}

	return out
}

// SizedIFT synthesises size samples of a signal with the given period from
// harmonic bins: bin j is harmonic j+1 of the period.
func (e *Engine) SizedIFT(freqs []complex128, period, size int) []float64 {
	if size <= 0 {
		return nil
	}
	out := make([]float64, size)
	if period <= 0 {
		return out
	}

	circle := e.Circle()
	exp := make([]complex128, period)
	for i := range exp {
		exp[i] = circle.At(float64(i) / float64(period))
	}

	for j, f := range freqs {
		for i := range out {
			out[i] += real(f * exp[(i*(j+1))%period])
		}
	}

	return out
}

// FT runs [Engine.FT] on the default engine.
func FT(x []float64, bins int, withDC bool) []complex128 {
	return Default().FT(x, bins, withDC)
}

// CosWindowFT runs [Engine.CosWindowFT] on the default engine.
func CosWindowFT(x []float64, bins int, withDC bool) []complex128 {
	return Default().CosWindowFT(x, bins, withDC)
}

// PreciseFT runs [Engine.PreciseFT] on the default engine.
func PreciseFT(x []float64, bins int, withDC bool, speed float64) []complex128 {
	return Default().PreciseFT(x, bins, withDC, speed)
}

// IFT runs [Engine.IFT] on the default engine.
func IFT(freqs []complex128, size int, withDC bool) []float64 {
	return Default().IFT(freqs, size, withDC)
}

// SizedIFT runs [Engine.SizedIFT] on the default engine.
func SizedIFT(freqs []complex128, period, size int) []float64 {
	return Default().SizedIFT(freqs, period, size)
}
