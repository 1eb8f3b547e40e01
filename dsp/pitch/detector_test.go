package pitch

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/internal/testutil"
)

func mustDetector(t *testing.T, rate int, lower, upper float64, opts ...Option) *Detector {
	t.Helper()
	d, err := NewDetector(rate, lower, upper, opts...)
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}
	return d
}

func TestNewDetectorPeriods(t *testing.T) {
	d := mustDetector(t, 8000, 900, 60)
	lo, hi := d.PeriodRange()
	if lo != 8 || hi != 134 {
		t.Fatalf("PeriodRange() = %d..%d, want 8..134", lo, hi)
	}
	if d.Size() != 268 {
		t.Fatalf("Size() = %d, want 268", d.Size())
	}
	if !d.Quiet() || d.Voiced() || d.Mode() != ModeQuiet {
		t.Fatalf("initial frame %+v", d.Frame())
	}
}

func TestNewDetectorRejects(t *testing.T) {
	tests := []struct {
		name         string
		rate         int
		lower, upper float64
	}{
		{"zero rate", 0, 60, 900},
		{"negative bound", 8000, -60, 900},
		{"empty range", 8000, 100, 100},
		{"upper above rate", 8000, 60, 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDetector(tt.rate, tt.lower, tt.upper)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigValidateJoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TrustLimit = -1
	cfg.MomentumDecay = 2
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "trust limit") || !strings.Contains(err.Error(), "momentum decay") {
		t.Fatalf("err = %v, want both problems", err)
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
}

func TestDetectorRecoversSinePitch(t *testing.T) {
	tests := []struct {
		rate int
		freq float64
	}{
		{16000, 220},
		{44100, 330},
	}
	for _, tt := range tests {
		d := mustDetector(t, tt.rate, 60, 900)
		x := testutil.DeterministicSine(tt.freq, float64(tt.rate), 0.5, tt.rate)

		checked := 0
		for i, block := range testutil.Blocks(x, 128) {
			d.Feed(block)
			if i*128 < tt.rate/4 || d.Trust() <= d.Config().TrustLimit {
				continue
			}
			checked++
			if !d.Voiced() {
				t.Fatalf("%g Hz: block %d not voiced while trusted", tt.freq, i)
			}
			if rel := math.Abs(d.Pitch()-tt.freq) / tt.freq; rel >= 0.02 {
				t.Fatalf("%g Hz: block %d pitch %g", tt.freq, i, d.Pitch())
			}
		}
		if checked == 0 {
			t.Fatalf("%g Hz: trust never exceeded the limit", tt.freq)
		}
		if d.Mode() != ModeTracking {
			t.Fatalf("%g Hz: mode %s, want tracking", tt.freq, d.Mode())
		}
		if math.Abs(d.RealPeriod()-float64(tt.rate)/d.Pitch()) > 1e-9 {
			t.Fatalf("RealPeriod() = %g", d.RealPeriod())
		}
	}
}

func TestDetectorSilence(t *testing.T) {
	d := mustDetector(t, 16000, 60, 900)
	zeros := make([]float64, 128)
	for range 20 {
		d.Feed(zeros)
	}
	if !d.Quiet() || d.Voiced() || d.Confidence() != 1 {
		t.Fatalf("silence frame %+v", d.Frame())
	}
	if d.Mode() != ModeQuiet || d.Trust() != 0 {
		t.Fatalf("mode %s trust %d", d.Mode(), d.Trust())
	}
}

func TestDetectorFallsQuietAfterSignal(t *testing.T) {
	d := mustDetector(t, 16000, 60, 900)
	x := testutil.DeterministicSine(200, 16000, 0.5, 8000)
	for _, b := range testutil.Blocks(x, 128) {
		d.Feed(b)
	}
	if d.Quiet() {
		t.Fatal("sine reported quiet")
	}

	zeros := make([]float64, 128)
	for range (3*d.Size())/128 + 1 {
		d.Feed(zeros)
	}
	if !d.Quiet() || d.Voiced() || d.Trust() != 0 {
		t.Fatalf("after silence %+v trust %d", d.Frame(), d.Trust())
	}
}

func TestDetectorGetLengths(t *testing.T) {
	d := mustDetector(t, 16000, 60, 900)
	x := testutil.DeterministicSine(250, 16000, 0.5, 8000)
	for _, b := range testutil.Blocks(x, 128) {
		d.Feed(b)
	}
	p := d.Period()
	if p == 0 {
		t.Fatal("no period detected")
	}
	if got := len(d.Get(0)); got != p {
		t.Fatalf("len(Get(0)) = %d, want %d", got, p)
	}
	if got := len(d.Get2(0)); got != 2*p {
		t.Fatalf("len(Get2(0)) = %d, want %d", got, 2*p)
	}
	_, hi := d.PeriodRange()
	if got := len(d.Get(1 << 20)); got != hi {
		t.Fatalf("len(Get(huge)) = %d, want %d", got, hi)
	}

	two := d.Get2(10)
	one := d.Get(10)
	testutil.RequireSliceNearlyEqual(t, two[10:], one, 0)

	if len(d.MSE()) != d.Size() {
		t.Fatalf("len(MSE()) = %d", len(d.MSE()))
	}
}

func TestDetectorReset(t *testing.T) {
	d := mustDetector(t, 16000, 60, 900)
	x := testutil.DeterministicSine(180, 16000, 0.5, 8000)
	for _, b := range testutil.Blocks(x, 128) {
		d.Feed(b)
	}
	d.Reset()

	if d.Pitch() != 0 || d.Period() != 0 || d.Voiced() || !d.Quiet() || d.Trust() != 0 {
		t.Fatalf("after Reset %+v", d.Frame())
	}
	if d.RealPeriod() != 0 {
		t.Fatalf("RealPeriod() = %g", d.RealPeriod())
	}
	for i, v := range d.Get(50) {
		if v != 0 {
			t.Fatalf("Get()[%d] = %g after Reset", i, v)
		}
	}
}

func TestFeedSplitsLongBlocks(t *testing.T) {
	whole := mustDetector(t, 16000, 60, 900)
	pieces := mustDetector(t, 16000, 60, 900)
	size := pieces.Size()

	x := testutil.DeterministicSine(300, 16000, 0.5, 8*size)
	whole.Feed(x)
	for _, b := range testutil.Blocks(x, size) {
		pieces.Feed(b)
	}

	if whole.Frame() != pieces.Frame() {
		t.Fatalf("whole %+v, pieces %+v", whole.Frame(), pieces.Frame())
	}

	before := whole.Frame()
	whole.Feed(nil)
	if whole.Frame() != before {
		t.Fatal("empty Feed changed the output")
	}
}

func TestFeedBelowWindowIsOneFrame(t *testing.T) {
	obs := &frameCounter{}
	d := mustDetector(t, 16000, 60, 900, WithObserver(obs))
	_, hi := d.PeriodRange()

	lead := 4000
	x := testutil.DeterministicSine(220, 16000, 0.5, lead+3*hi/2)
	for _, b := range testutil.Blocks(x[:lead], 125) {
		d.Feed(b)
	}
	if !d.Voiced() {
		t.Fatalf("not voiced after lead-in: %+v", d.Frame())
	}

	trust := d.Trust()
	frames := len(obs.frames)
	d.Feed(x[lead:])

	if !d.Voiced() {
		t.Fatalf("long block not voiced: %+v", d.Frame())
	}
	if d.Trust() != trust+1 {
		t.Fatalf("Trust() = %d after one Feed, want %d", d.Trust(), trust+1)
	}
	if got := len(obs.frames) - frames; got != 1 {
		t.Fatalf("%d frames published for one Feed, want 1", got)
	}
}

type frameCounter struct {
	frames []Frame
}

func (c *frameCounter) FrameAnalyzed(f Frame) {
	c.frames = append(c.frames, f)
}

func TestDetectorObserverAndLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := &frameCounter{}

	d := mustDetector(t, 16000, 60, 900,
		WithObserver(obs), WithLogger(logger), WithEngine(fft.New(fft.WithMaxOrder(12))))
	x := testutil.DeterministicSine(220, 16000, 0.5, 6400)
	blocks := testutil.Blocks(x, 128)
	for _, b := range blocks {
		d.Feed(b)
	}

	if len(obs.frames) != len(blocks) {
		t.Fatalf("observer saw %d frames, want %d", len(obs.frames), len(blocks))
	}
	if obs.frames[0].Mode != ModeQuiet {
		t.Fatalf("first frame %+v", obs.frames[0])
	}
	if last := obs.frames[len(obs.frames)-1]; last != d.Frame() {
		t.Fatalf("last frame %+v, detector %+v", last, d.Frame())
	}
	if !strings.Contains(logs.String(), "mode change") {
		t.Fatalf("logs = %q", logs.String())
	}
}

func TestModeString(t *testing.T) {
	for m, want := range map[Mode]string{ModeQuiet: "quiet", ModeProbing: "probing", ModeTracking: "tracking", Mode(9): "unknown"} {
		if m.String() != want {
			t.Errorf("Mode(%d).String() = %q, want %q", m, m.String(), want)
		}
	}
}
