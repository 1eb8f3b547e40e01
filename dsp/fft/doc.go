// Package fft implements the discrete Fourier transform used by the pitch
// tracker and its helpers.
//
// An [Engine] owns a lazily grown cache of twiddle factors and bit-reversal
// indices. Power-of-two lengths run through an in-place radix-2
// Cooley-Tukey transform; every other length is routed through Bluestein's
// chirp-z algorithm, which reduces it to three radix-2 transforms of the
// next power of two at or above 2n-1.
//
// # Usage
//
//	eng := fft.New(fft.WithMaxOrder(16))
//	spec := eng.Forward(samples)
//	back := eng.Inverse(spec)
//
// The package level functions use a shared engine returned by [Default].
//
// # Partial spectra
//
// [Engine.FT], [Engine.CosWindowFT], [Engine.PreciseFT], [Engine.IFT] and
// [Engine.SizedIFT] evaluate only a handful of bins by brute force in
// O(len(x)*bins). They are useful when the block length is not transform
// friendly or when only the first harmonics are of interest. Their twiddles
// come from a shared unit-circle table instead of per-term sin/cos calls.
//
// # Concurrency
//
// An Engine is safe for concurrent use. Cache growth takes a write lock;
// transforms hold a read lock while they use the tables.
package fft
