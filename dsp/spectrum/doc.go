// Package spectrum derives level and timbre features from complex spectra.
//
// Besides per-bin magnitude and power, it measures the harmonic power of a
// two-period snapshot of a pitched signal and resamples those harmonics
// onto a fixed frequency grid, giving a pitch-independent spectral profile.
package spectrum
