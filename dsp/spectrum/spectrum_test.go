package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/internal/testutil"
)

func TestMagnitudeAndPower(t *testing.T) {
	in := []complex128{3 + 4i, -1, 2i, 0}
	testutil.RequireSliceNearlyEqual(t, Magnitude(in), []float64{5, 1, 2, 0}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, Power(in), []float64{25, 1, 4, 0}, 1e-12)
	if Magnitude(nil) != nil || Power(nil) != nil {
		t.Fatal("empty input should give nil")
	}
}

func TestHarmonicCount(t *testing.T) {
	if got := HarmonicCount(200, 6000); got != 30 {
		t.Fatalf("HarmonicCount(200, 6000) = %d", got)
	}
	if got := HarmonicCount(170, 6000); got != 36 {
		t.Fatalf("HarmonicCount(170, 6000) = %d", got)
	}
	if HarmonicCount(0, 6000) != 0 {
		t.Fatal("zero pitch")
	}
}

func TestHarmonicPowerFindsHarmonics(t *testing.T) {
	// Two periods of 100 samples each, harmonics 1 and 3.
	x := testutil.Harmonics(1, 100, []float64{0.8, 0, 0.4}, 200)
	p := HarmonicPower(fft.New(), x, 5)
	if len(p) != 5 {
		t.Fatalf("len = %d", len(p))
	}
	if math.Abs(p[0]-0.64) > 1e-3 || math.Abs(p[2]-0.16) > 1e-3 {
		t.Fatalf("harmonic powers %v", p)
	}
	if p[1] > 1e-6 || p[3] > 1e-6 || p[4] > 1e-6 {
		t.Fatalf("leakage %v", p)
	}
}

func TestHarmonicProfileInterpolates(t *testing.T) {
	// Harmonics at 100, 200, 300 Hz with amplitudes 1, 2, 0.
	power := []float64{1, 4, 0}
	out := HarmonicProfile(power, 100, 50, 6)

	// Raw grid at 50..300 Hz: 0.5, 1, 1.5, 2, 1, 0 (sum 6).
	want := []float64{0.5, 1, 1.5, 2, 1, 0}
	for i := range want {
		want[i] *= ProfileSum / 6.0
	}
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-12)

	if s := Sum(out); math.Abs(s-ProfileSum) > 1e-12 {
		t.Fatalf("sum = %g", s)
	}
}

func TestHarmonicProfileSilent(t *testing.T) {
	out := HarmonicProfile([]float64{0, 0}, 120, 60, 4)
	for _, v := range out {
		if v != 0 {
			t.Fatalf("profile %v, want zeros", out)
		}
	}
	if len(HarmonicProfile(nil, 0, 60, 3)) != 3 {
		t.Fatal("length should follow bins")
	}
}
