package conv

import (
	"errors"
	"math/cmplx"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/fft"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput  = errors.New("conv: empty input")
	ErrEmptyKernel = errors.New("conv: empty kernel")
)

// Convolver runs convolutions on a fixed transform engine.
type Convolver struct {
	engine *fft.Engine
}

// New returns a Convolver bound to engine. A nil engine selects [fft.Default].
func New(engine *fft.Engine) *Convolver {
	if engine == nil {
		engine = fft.Default()
	}
	return &Convolver{engine: engine}
}

// Engine returns the transform engine used by c.
func (c *Convolver) Engine() *fft.Engine {
	return c.engine
}

func outputSize(size, lenA, lenB int) int {
	if size > 0 {
		return size
	}
	return lenA + lenB - 1
}

// ConvolveComplex returns the first size samples of the convolution of a and
// b computed with a transform of the next power of two >= size. A size <= 0
// selects len(a)+len(b)-1, the full linear convolution. Smaller sizes wrap
// around circularly.
func (c *Convolver) ConvolveComplex(a, b []complex128, size int) ([]complex128, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	n := outputSize(size, len(a), len(b))
	z := core.NextPowerOfTwo(n)

	fa := make([]complex128, z)
	fb := make([]complex128, z)
	copy(fa, a)
	copy(fb, b)

	c.engine.Transform(fa, false)
	c.engine.Transform(fb, false)
	for i := range fa {
		fa[i] *= fb[i]
	}
	c.engine.Transform(fa, true)

	return fa[:n], nil
}

// Convolve returns the first size samples of the linear convolution of the
// real signals a and b (size <= 0 selects len(a)+len(b)-1). Both signals
// share one complex transform.
func (c *Convolver) Convolve(a, b []float64, size int) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	n := outputSize(size, len(a), len(b))
	z := core.NextPowerOfTwo(n)

	buf := make([]complex128, z)
	for i := 0; i < len(a) && i < z; i++ {
		buf[i] = complex(a[i], 0)
	}
	for i := 0; i < len(b) && i < z; i++ {
		buf[i] = complex(real(buf[i]), b[i])
	}

	c.engine.Transform(buf, false)

	// With C = FFT(a + ib): A[k] = (C[k] + conj C[-k]) / 2 and
	// B[k] = (C[k] - conj C[-k]) / 2i, so A*B = -(i/4)(C[k]-conj C[-k])(C[k]+conj C[-k]).
	for i := 0; 2*i <= z; i++ {
		j := (z - i) % z
		ci := buf[i]
		cj := cmplx.Conj(buf[j])
		p := -(ci - cj) * (ci + cj) * complex(0, 0.25)
		buf[i] = p
		buf[j] = cmplx.Conj(p)
	}

	c.engine.Transform(buf, true)

	out := make([]float64, n)
	for i := range out {
		out[i] = real(buf[i])
	}
	return out, nil
}

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)
	return result, nil
}

// DirectTo performs direct convolution, writing to a pre-allocated destination.
// dst must have length len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) {
	core.Zero(dst)
	for i, x := range a {
		for j, y := range b {
			dst[i+j] += x * y
		}
	}
}

// ConvolveComplex runs [Convolver.ConvolveComplex] on the default engine
// with the full output size.
func ConvolveComplex(a, b []complex128) ([]complex128, error) {
	return New(nil).ConvolveComplex(a, b, 0)
}

// Convolve runs [Convolver.Convolve] on the default engine with the full
// output size.
func Convolve(a, b []float64) ([]float64, error) {
	return New(nil).Convolve(a, b, 0)
}
