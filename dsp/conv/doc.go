// Package conv provides FFT-backed convolution and correlation routines.
//
// All transform work goes through a [github.com/cwbudde/algo-pitch/dsp/fft.Engine],
// so arbitrary sizes are accepted: the transform length is always rounded
// up to a power of two.
//
// # Usage
//
// For one-shot work on the shared engine, use the package functions:
//
//	y, err := conv.Convolve(signal, kernel)   // linear convolution
//	r, err := conv.Correlate(a, b)            // lags 0..len(a)-1 first
//
// To bind a specific engine, create a [Convolver]:
//
//	c := conv.New(fft.New(fft.WithMaxOrder(20)))
//	y, err := c.Convolve(signal, kernel, 0)
//
// # Real packing
//
// [Convolver.Convolve] places a in the real and b in the imaginary channel of
// a single complex transform and separates both spectra from the even/odd
// symmetry of the result. [Convolver.AutoCorrelatePair] uses the same trick
// to compute the autocorrelation of two real signals with one forward and
// one inverse transform.
//
// [Direct] and [CorrelateDirect] are O(N*M) references for short inputs and
// for tests.
package conv
