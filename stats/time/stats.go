// Package time computes time-domain level statistics of sample blocks.
package time

import (
	"math"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

// Stats summarises a block or stream of samples.
//
//nolint:revive
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	RMS_dB        float64
	Peak          float64 // max |x|
	Peak_dB       float64
	Energy        float64 // sum of squares
	Variance      float64 // population variance
	ZeroCrossings int
}

// ampTodB converts an amplitude to decibels. Zero maps to -Inf.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(a)
}

// Calculate returns the statistics of signal in one pass.
func Calculate(signal []float64) Stats {
	var s StreamingStats
	s.Update(signal)
	return s.Result()
}

// DC returns the mean of the signal using Kahan summation.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum / float64(len(signal))
}

// Energy returns the sum of squares of the signal.
func Energy(signal []float64) float64 {
	return core.SumSquares(signal)
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return math.Sqrt(Energy(signal) / float64(len(signal)))
}

// Variance returns the population variance of the signal, computed around
// its mean in two passes.
func Variance(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	mean := DC(signal)
	var sum float64
	for _, x := range signal {
		d := x - mean
		sum += d * d
	}
	return sum / float64(len(signal))
}

// Peak returns the largest absolute sample value.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		peak = math.Max(peak, math.Abs(x))
	}
	return peak
}

// StreamingStats accumulates Stats across consecutive blocks. The mean and
// variance use Welford's update so long streams stay accurate.
type StreamingStats struct {
	n             int
	mean          float64
	m2            float64
	sumSq         float64
	peak          float64
	zeroCrossings int
	last          float64
}

// NewStreamingStats returns an empty accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples.
func (s *StreamingStats) Update(samples []float64) {
	for _, x := range samples {
		s.n++
		delta := x - s.mean
		s.mean += delta / float64(s.n)
		s.m2 += delta * (x - s.mean)

		s.sumSq += x * x
		s.peak = math.Max(s.peak, math.Abs(x))

		if s.n > 1 && s.last*x < 0 {
			s.zeroCrossings++
		}
		s.last = x
	}
}

// Len returns the number of samples seen.
func (s *StreamingStats) Len() int { return s.n }

// Result returns the statistics of everything seen so far.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return Stats{RMS_dB: math.Inf(-1), Peak_dB: math.Inf(-1)}
	}
	nf := float64(s.n)
	rms := math.Sqrt(s.sumSq / nf)
	return Stats{
		Length:        s.n,
		DC:            s.mean,
		RMS:           rms,
		RMS_dB:        ampTodB(rms),
		Peak:          s.peak,
		Peak_dB:       ampTodB(s.peak),
		Energy:        s.sumSq,
		Variance:      s.m2 / nf,
		ZeroCrossings: s.zeroCrossings,
	}
}

// Reset clears the accumulator.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
