package fft

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

// bluestein computes a DFT of arbitrary length z by rewriting it as a
// circular convolution of size n >= 2z-1 with the chirp exp(i*pi*k^2/z).
func (e *Engine) bluestein(v []complex128, inverse bool) {
	z := len(v)
	n := core.NextPowerOfTwo(2*z - 1)
	if core.Log2(n) > e.maxOrder {
		directDFT(v, inverse)
		return
	}

	chirp := make([]complex128, z)
	a := make([]complex128, n)
	kernel := make([]complex128, n)

	for i := 0; i < z; i++ {
		// i^2 mod 2z keeps the phase argument small for long inputs.
		phase := math.Pi * float64((i*i)%(2*z)) / float64(z)
		s, c := math.Sincos(phase)
		w := complex(c, s)

		chirp[i] = w
		kernel[i] = w
		kernel[(n-i)%n] = w
		a[i] = v[i] * cmplx.Conj(w)
	}

	e.Transform(a, false)
	e.Transform(kernel, false)
	for i := range a {
		a[i] *= kernel[i]
	}
	e.Transform(a, true)

	for i := 0; i < z; i++ {
		v[i] = a[i] * cmplx.Conj(chirp[i])
	}

	if inverse {
		finishInverse(v)
	}
}

// directDFT evaluates the DFT by definition. Twiddles are indexed by
// (j*k) mod n so that the phase never leaves [0, 2*pi).
func directDFT(v []complex128, inverse bool) {
	n := len(v)
	if n <= 1 {
		return
	}

	roots := make([]complex128, n)
	for m := range roots {
		s, c := math.Sincos(-2 * math.Pi * float64(m) / float64(n))
		roots[m] = complex(c, s)
	}

	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for j := 0; j < n; j++ {
			sum += v[j] * roots[(j*k)%n]
		}
		out[k] = sum
	}
	copy(v, out)

	if inverse {
		finishInverse(v)
	}
}
