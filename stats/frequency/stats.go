// Package frequency describes the shape of magnitude spectra sampled on a
// uniform frequency grid, such as the harmonic profiles of dsp/spectrum.
package frequency

import "math"

// Grid places bin i of a spectrum at Start + i*Step Hz.
type Grid struct {
	Start float64
	Step  float64
}

// FFTGrid returns the grid of a one-sided spectrum with binCount bins from
// DC to Nyquist.
func FFTGrid(sampleRate float64, binCount int) Grid {
	if binCount < 2 {
		return Grid{}
	}
	return Grid{Step: sampleRate / float64(2*(binCount-1))}
}

// ProfileGrid returns the grid of a harmonic profile with the given spacing.
// Its first bin sits at spacing, not at DC.
func ProfileGrid(spacing float64) Grid {
	return Grid{Start: spacing, Step: spacing}
}

// Freq returns the frequency of bin i in Hz.
func (g Grid) Freq(i int) float64 {
	return g.Start + float64(i)*g.Step
}

// Stats holds shape descriptors of a linear magnitude spectrum.
type Stats struct {
	BinCount int
	Sum      float64 // sum of magnitudes
	Energy   float64 // sum of squared magnitudes
	Max      float64
	MaxBin   int
	MaxFreq  float64 // Hz

	Centroid float64 // Hz
	Spread   float64 // Hz, standard deviation around Centroid
	Flatness float64 // Wiener entropy, 0..1
	Rolloff  float64 // Hz below which 85% of the energy lies
}

// Calculate computes every descriptor of magnitude on grid g.
func Calculate(magnitude []float64, g Grid) Stats {
	s := Stats{BinCount: len(magnitude)}
	if len(magnitude) == 0 {
		return s
	}

	s.Max = magnitude[0]
	for i, v := range magnitude {
		s.Sum += v
		s.Energy += v * v
		if v > s.Max {
			s.Max = v
			s.MaxBin = i
		}
	}
	s.MaxFreq = g.Freq(s.MaxBin)

	s.Centroid = centroid(magnitude, g, s.Sum)
	s.Spread = spread(magnitude, g, s.Centroid, s.Sum)
	s.Flatness = flatness(magnitude)
	s.Rolloff = rolloff(magnitude, g, 0.85, s.Energy)
	return s
}

// Centroid returns the magnitude weighted mean frequency in Hz.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(magnitude []float64, g Grid) float64 {
	sum := 0.0
	for _, v := range magnitude {
		sum += v
	}
	return centroid(magnitude, g, sum)
}

func centroid(magnitude []float64, g Grid, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	weightedSum := 0.0
	for i, v := range magnitude {
		weightedSum += g.Freq(i) * v
	}
	return weightedSum / sumMag
}

func spread(magnitude []float64, g Grid, cent, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}
	weightedSqSum := 0.0
	for i, v := range magnitude {
		diff := g.Freq(i) - cent
		weightedSqSum += diff * diff * v
	}
	return math.Sqrt(weightedSqSum / sumMag)
}

// Flatness returns the ratio of geometric to arithmetic mean of magnitude.
// A single zero bin makes it 0.
func Flatness(magnitude []float64) float64 {
	return flatness(magnitude)
}

func flatness(magnitude []float64) float64 {
	if len(magnitude) == 0 {
		return 0
	}
	sumLin, sumLog := 0.0, 0.0
	for _, v := range magnitude {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}
	n := float64(len(magnitude))
	return math.Exp(sumLog/n) / (sumLin / n)
}

// Rolloff returns the frequency of the first bin at which the cumulative
// energy reaches percent (0..1) of the total.
func Rolloff(magnitude []float64, g Grid, percent float64) float64 {
	energy := 0.0
	for _, v := range magnitude {
		energy += v * v
	}
	return rolloff(magnitude, g, percent, energy)
}

func rolloff(magnitude []float64, g Grid, percent, totalEnergy float64) float64 {
	if totalEnergy == 0 {
		return 0
	}
	threshold := percent * totalEnergy
	cumEnergy := 0.0
	for i, v := range magnitude {
		cumEnergy += v * v
		if cumEnergy >= threshold {
			return g.Freq(i)
		}
	}
	return g.Freq(len(magnitude) - 1)
}
