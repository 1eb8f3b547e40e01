package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// parts holds pooled real and imaginary scratch for the vecmath kernels.
type parts struct {
	data []float64
}

var partsPool = sync.Pool{
	New: func() any { return &parts{} },
}

func split(in []complex128) (re, im []float64, p *parts) {
	p = partsPool.Get().(*parts)
	n := len(in)
	if cap(p.data) < 2*n {
		p.data = make([]float64, 2*n)
	}
	re, im = p.data[:n], p.data[n:2*n]
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im, p
}

// Magnitude returns |X[k]| for every bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	re, im, p := split(in)
	vecmath.Magnitude(out, re, im)
	partsPool.Put(p)
	return out
}

// Power returns |X[k]|^2 for every bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	re, im, p := split(in)
	vecmath.Power(out, re, im)
	partsPool.Put(p)
	return out
}

// Sum returns the sum of x.
func Sum(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v
	}
	return s
}
