package spectrum

import (
	"math"

	"github.com/cwbudde/algo-pitch/dsp/fft"
)

// ProfileSum is the total a harmonic profile is scaled to.
const ProfileSum = 10

// HarmonicCount returns the number of harmonics of pitch up to maxFreq.
func HarmonicCount(pitch, maxFreq float64) int {
	if pitch <= 0 || maxFreq <= 0 {
		return 0
	}
	return int(math.Ceil(maxFreq / pitch))
}

// HarmonicPower returns the power of the first n harmonics of a snapshot
// holding exactly two periods. A nil engine selects fft.Default.
func HarmonicPower(e *fft.Engine, twoPeriods []float64, n int) []float64 {
	if e == nil {
		e = fft.Default()
	}
	return Power(e.CosWindowFT(twoPeriods, n, false))
}

// HarmonicProfile resamples harmonic powers onto a grid of bins points
// spaced spacing Hz apart, starting at spacing.
//
// power[j] is the power of harmonic j+1 of pitch. Amplitudes (square roots
// of power) are interpolated linearly between neighbouring harmonics, with
// an implied zero at DC and above the last harmonic. The result sums to
// ProfileSum, or is all zero when there is no energy.
func HarmonicProfile(power []float64, pitch, spacing float64, bins int) []float64 {
	out := make([]float64, max(bins, 0))
	if pitch <= 0 || spacing <= 0 {
		return out
	}

	amp := make([]float64, len(power))
	for i, v := range power {
		amp[i] = math.Sqrt(math.Abs(v))
	}
	at := func(j int) float64 {
		if j < 0 || j >= len(amp) {
			return 0
		}
		return amp[j]
	}

	j := 0
	for i := range out {
		f := float64(i+1) * spacing
		for float64(j+1)*pitch < f {
			j++
		}
		l := (f - float64(j)*pitch) / pitch
		r := (float64(j+1)*pitch - f) / pitch
		out[i] = at(j-1)*r + at(j)*l
	}

	sum := Sum(out)
	if sum <= 0 {
		clear(out)
		return out
	}
	scale := ProfileSum / sum
	for i := range out {
		out[i] *= scale
	}
	return out
}
