package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Harmonics generates a periodic signal at f0 whose k-th harmonic
// (k starting at 1) has amplitude amps[k-1].
func Harmonics(f0, sampleRate float64, amps []float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * f0 / sampleRate
	for i := range out {
		var v float64
		for k, a := range amps {
			v += a * math.Sin(step*float64(k+1)*float64(i))
		}
		out[i] = v
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Blocks splits x into consecutive blocks of size n. A short tail is dropped.
func Blocks(x []float64, n int) [][]float64 {
	if n <= 0 {
		return nil
	}
	out := make([][]float64, 0, len(x)/n)
	for start := 0; start+n <= len(x); start += n {
		out = append(out, x[start:start+n])
	}
	return out
}
