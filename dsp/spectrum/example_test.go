package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-pitch/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleHarmonicProfile() {
	// A single harmonic at 120 Hz sampled on a 60 Hz grid.
	out := spectrum.HarmonicProfile([]float64{1}, 120, 60, 4)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", out[0], out[1], out[2], out[3])
	// Output:
	// 2.50 5.00 2.50 0.00
}
