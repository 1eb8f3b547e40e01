package fft

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-pitch/internal/testutil"
)

func cosine(cycles float64, n int, amp, phase float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Cos(2*math.Pi*cycles*float64(i)/float64(n)+phase)
	}
	return out
}

func TestUnitCircle(t *testing.T) {
	u := NewUnitCircle(10)
	if u.Size() != 1024 {
		t.Fatalf("Size() = %d, want 1024", u.Size())
	}

	tests := []struct {
		turns float64
		want  complex128
	}{
		{turns: 0, want: 1},
		{turns: 0.25, want: 1i},
		{turns: 0.5, want: -1},
		{turns: -0.25, want: -1i},
		{turns: 1.25, want: 1i},
		{turns: 3, want: 1},
	}
	for _, tt := range tests {
		got := u.At(tt.turns)
		if cmplx.Abs(got-tt.want) > 1e-12 {
			t.Errorf("At(%v) = %v, want %v", tt.turns, got, tt.want)
		}
	}

	// Tiny negative phases wrap onto the duplicated last entry.
	if got := u.At(-1e-20); cmplx.Abs(got-1) > 1e-12 {
		t.Fatalf("At(-1e-20) = %v, want 1", got)
	}
}

func TestBin(t *testing.T) {
	const n = 128
	x := cosine(3, n, 1, 0)

	got := Bin(x, 3)
	if math.Abs(real(got)-n/2) > 1e-9 || math.Abs(imag(got)) > 1e-9 {
		t.Fatalf("Bin(x, 3) = %v, want %v", got, complex(n/2, 0))
	}
	if got := Bin(x, 5); cmplx.Abs(got) > 1e-9 {
		t.Fatalf("Bin(x, 5) = %v, want 0", got)
	}
	if got := Bin(nil, 1); got != 0 {
		t.Fatalf("Bin(nil) = %v, want 0", got)
	}
}

func TestFTReadsSinusoidAmplitude(t *testing.T) {
	const n = 256
	x := cosine(4, n, 0.5, 0.3)

	bins := FT(x, 8, false)
	for j, b := range bins {
		want := 0.0
		if j == 3 {
			want = 0.5
		}
		if math.Abs(cmplx.Abs(b)-want) > 1e-3 {
			t.Fatalf("bin %d: |X| = %v, want %v", j, cmplx.Abs(b), want)
		}
	}
	if math.Abs(cmplx.Phase(bins[3])-0.3) > 1e-3 {
		t.Fatalf("phase = %v, want 0.3", cmplx.Phase(bins[3]))
	}

	withDC := FT(x, 8, true)
	if cmplx.Abs(withDC[4]-bins[3]) > 1e-9 {
		t.Fatalf("withDC bin 4 = %v, want %v", withDC[4], bins[3])
	}
}

func TestPreciseFTMatchesFT(t *testing.T) {
	x := testutil.DeterministicNoise(3, 1, 200)
	a := FT(x, 12, true)
	b := PreciseFT(x, 12, true, 1)
	testutil.RequireComplexNearlyEqual(t, b, a, 1e-3)

	// Speed 0.5 halves the bin spacing: bin 2 lands on frequency 1.
	half := PreciseFT(cosine(1, 200, 1, 0), 4, true, 0.5)
	if math.Abs(cmplx.Abs(half[2])-0.5) > 1e-9 {
		t.Fatalf("|half[2]| = %v, want 0.5", cmplx.Abs(half[2]))
	}
}

func TestCosWindowFTHarmonics(t *testing.T) {
	const n = 64
	// Two periods of a waveform whose third harmonic is the only component.
	x := cosine(2*3, n, 1, 0)

	bins := CosWindowFT(x, 5, false)
	for j, b := range bins {
		want := 0.0
		if j == 2 {
			want = 1
		}
		if math.Abs(cmplx.Abs(b)-want) > 1e-3 {
			t.Fatalf("bin %d: |X| = %v, want %v", j, cmplx.Abs(b), want)
		}
	}

	// The input must not be windowed in place.
	if x[0] != 1 {
		t.Fatalf("input modified: x[0] = %v", x[0])
	}
}

func TestIFTInvertsFT(t *testing.T) {
	const n = 64
	x := cosine(2, n, 0.5, 0)
	y := cosine(5, n, 0.25, -math.Pi/2)
	for i := range x {
		x[i] += y[i]
	}

	back := IFT(FT(x, 10, false), n, false)
	testutil.RequireSliceNearlyEqual(t, back, x, 1e-3)

	if IFT(nil, 0, false) != nil {
		t.Fatal("IFT with size 0 should return nil")
	}
}

func TestSizedIFT(t *testing.T) {
	out := SizedIFT([]complex128{1, 0.5i}, 16, 40)
	if len(out) != 40 {
		t.Fatalf("len = %d, want 40", len(out))
	}
	for i, v := range out {
		phase := 2 * math.Pi * float64(i) / 16
		want := math.Cos(phase) - 0.5*math.Sin(2*phase)
		if math.Abs(v-want) > 1e-3 {
			t.Fatalf("out[%d] = %v, want %v", i, v, want)
		}
	}
}
