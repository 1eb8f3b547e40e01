package conv

import (
	"github.com/cwbudde/algo-pitch/dsp/core"
)

// Correlate computes the cross-correlation of a and b as the convolution of
// a with b reversed around index 0.
//
// The result has size samples (size <= 0 selects len(a)+len(b)-1). Element k
// with k < len(a) holds sum_i a[i+k]*b[i]. Later elements hold negative lags
// in circular order.
func (c *Convolver) Correlate(a, b []float64, size int) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	n := outputSize(size, len(a), len(b))
	z := core.NextPowerOfTwo(n)

	pa := make([]float64, z)
	pb := make([]float64, z)
	copy(pa, a)
	copy(pb, b)
	core.ReverseTail(pb)

	full, err := c.Convolve(pa, pb, z)
	if err != nil {
		return nil, err
	}
	return full[:n], nil
}

// AutoCorrelatePair returns the autocorrelations r[k] = sum_i x[i]*x[i+k]
// of a and b for lags 0..len-1. b may be empty, in which case rb is empty.
// Both signals share one forward and one inverse transform of twice the
// next power of two >= max(len(a), len(b)), so no lag wraps around.
func (c *Convolver) AutoCorrelatePair(a, b []float64) (ra, rb []float64, err error) {
	n, m := len(a), len(b)
	if n == 0 && m == 0 {
		return nil, nil, ErrEmptyInput
	}

	z := core.NextPowerOfTwo(max(n, m))
	buf := make([]complex128, 2*z)
	for i, v := range a {
		buf[i] = complex(v, 0)
	}
	for i, v := range b {
		buf[i] = complex(real(buf[i]), v)
	}

	c.engine.Transform(buf, false)

	// |A[k]|^2 goes to the real channel and |B[k]|^2 to the imaginary one.
	for i := 0; i <= z; i++ {
		j := (2*z - i) % (2 * z)
		xr := real(buf[i]) + real(buf[j])
		xi := imag(buf[i]) - imag(buf[j])
		yr := real(buf[i]) - real(buf[j])
		yi := imag(buf[i]) + imag(buf[j])
		v := complex((xr*xr+xi*xi)*0.25, (yr*yr+yi*yi)*0.25)
		buf[i] = v
		buf[j] = v
	}

	c.engine.Transform(buf, true)

	ra = make([]float64, n)
	rb = make([]float64, m)
	for i := range ra {
		ra[i] = real(buf[i])
	}
	for i := range rb {
		rb[i] = imag(buf[i])
	}
	return ra, rb, nil
}

// CorrelateDirect computes sum_i a[i+k]*b[i] for lags 0..len(a)-1 by definition.
func CorrelateDirect(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	out := make([]float64, len(a))
	for k := range out {
		var sum float64
		for i := 0; i < len(b) && i+k < len(a); i++ {
			sum += a[i+k] * b[i]
		}
		out[k] = sum
	}
	return out, nil
}

// Correlate runs [Convolver.Correlate] on the default engine with the full
// output size.
func Correlate(a, b []float64) ([]float64, error) {
	return New(nil).Correlate(a, b, 0)
}

// AutoCorrelate returns the autocorrelation of a for lags 0..len(a)-1 on the
// default engine.
func AutoCorrelate(a []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	ra, _, err := New(nil).AutoCorrelatePair(a, nil)
	return ra, err
}

// AutoCorrelatePair runs [Convolver.AutoCorrelatePair] on the default engine.
func AutoCorrelatePair(a, b []float64) (ra, rb []float64, err error) {
	return New(nil).AutoCorrelatePair(a, b)
}
