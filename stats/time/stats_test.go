package time

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pitch/internal/testutil"
)

const tolerance = 1e-10

func TestCalculateDC(t *testing.T) {
	s := Calculate(testutil.DC(0.5, 1000))
	if s.Length != 1000 {
		t.Fatalf("Length = %d", s.Length)
	}
	if math.Abs(s.DC-0.5) > tolerance || math.Abs(s.RMS-0.5) > tolerance {
		t.Fatalf("DC %g RMS %g", s.DC, s.RMS)
	}
	if s.Variance > tolerance {
		t.Fatalf("Variance = %g, want 0", s.Variance)
	}
	if math.Abs(s.Energy-250) > 1e-9 {
		t.Fatalf("Energy = %g", s.Energy)
	}
}

func TestCalculateSine(t *testing.T) {
	// 100 full cycles of a 100 Hz sine at 10 kHz.
	x := testutil.DeterministicSine(100, 10000, 1, 10000)
	s := Calculate(x)
	if math.Abs(s.RMS-math.Sqrt2/2) > 1e-6 {
		t.Fatalf("RMS = %g", s.RMS)
	}
	if math.Abs(s.Variance-0.5) > 1e-6 {
		t.Fatalf("Variance = %g", s.Variance)
	}
	if math.Abs(s.RMS_dB-20*math.Log10(math.Sqrt2/2)) > 1e-4 {
		t.Fatalf("RMS_dB = %g", s.RMS_dB)
	}
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)
	if s.Length != 0 || !math.IsInf(s.RMS_dB, -1) || !math.IsInf(s.Peak_dB, -1) {
		t.Fatalf("empty stats %+v", s)
	}
}

func TestStreamingMatchesBlock(t *testing.T) {
	x := testutil.DeterministicNoise(7, 0.8, 1024)
	want := Calculate(x)

	s := NewStreamingStats()
	for _, b := range testutil.Blocks(x, 128) {
		s.Update(b)
	}
	got := s.Result()
	if got.Length != want.Length || got.ZeroCrossings != want.ZeroCrossings || got.Peak != want.Peak {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if math.Abs(got.Variance-want.Variance) > tolerance || math.Abs(got.DC-want.DC) > tolerance {
		t.Fatalf("moments differ: %+v vs %+v", got, want)
	}

	s.Reset()
	if s.Len() != 0 {
		t.Fatal("Reset did not clear")
	}
}

func TestVarianceMatchesStreaming(t *testing.T) {
	x := testutil.DeterministicNoise(3, 1, 512)
	for i := range x {
		x[i] += 0.25
	}
	if v, s := Variance(x), Calculate(x).Variance; math.Abs(v-s) > 1e-12 {
		t.Fatalf("Variance %g, streaming %g", v, s)
	}
	if math.Abs(DC(x)-Calculate(x).DC) > 1e-12 {
		t.Fatal("DC mismatch")
	}
}

func TestPeakAndRMS(t *testing.T) {
	x := []float64{0.25, -0.75, 0.5}
	if Peak(x) != 0.75 {
		t.Fatalf("Peak = %g", Peak(x))
	}
	if Peak(nil) != 0 || RMS(nil) != 0 || Variance(nil) != 0 || DC(nil) != 0 {
		t.Fatal("empty input should give zero")
	}
	want := math.Sqrt((0.0625 + 0.5625 + 0.25) / 3)
	if math.Abs(RMS(x)-want) > tolerance {
		t.Fatalf("RMS = %g, want %g", RMS(x), want)
	}
}
