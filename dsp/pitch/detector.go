package pitch

import (
	"context"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-pitch/dsp/buffer"
	"github.com/cwbudde/algo-pitch/dsp/conv"
	"github.com/cwbudde/algo-pitch/dsp/fft"
	timestats "github.com/cwbudde/algo-pitch/stats/time"
)

// Option configures a Detector.
type Option func(*Detector)

// WithEngine selects the transform engine used for correlation.
func WithEngine(e *fft.Engine) Option {
	return func(d *Detector) {
		d.conv = conv.New(e)
	}
}

// WithLogger receives mode transitions at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithObserver registers an observer for every analysed block.
func WithObserver(o Observer) Option {
	return func(d *Detector) {
		d.observer = o
	}
}

// Detector is a streaming pitch detector.
type Detector struct {
	cfg  Config
	rate float64

	minPeriod, maxPeriod int
	size                 int // two maximum periods

	history *buffer.Window // 2*size samples, oldest first
	conv    *conv.Convolver

	logger   *slog.Logger
	observer Observer

	trust int
	power float64

	// nonorm is the decayed, unnormalised difference function; momentum is
	// its normalised copy that peaks are picked from.
	nonorm   []float64
	momentum []float64
	strength float64
	top      int
	value    float64

	period     int
	pitch      float64
	confidence float64
	voiced     bool
	quiet      bool
	mode       Mode

	scratch []float64
}

// NewDetector returns a detector for the given sample rate and pitch range
// in Hz, using the default tunables.
func NewDetector(sampleRate int, lower, upper float64, opts ...Option) (*Detector, error) {
	cfg := DefaultConfig()
	cfg.SampleRate = sampleRate
	cfg.Lower = lower
	cfg.Upper = upper
	return New(cfg, opts...)
}

// New returns a detector configured by cfg.
func New(cfg Config, opts ...Option) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	minPeriod, maxPeriod := cfg.periods()
	size := 2 * maxPeriod

	d := &Detector{
		cfg:       cfg,
		rate:      float64(cfg.SampleRate),
		minPeriod: minPeriod,
		maxPeriod: maxPeriod,
		size:      size,
		history:   buffer.NewWindow(2 * size),
		conv:      conv.New(nil),
		logger:    slog.New(slog.DiscardHandler),
		nonorm:    make([]float64, size),
		momentum:  make([]float64, size),
		quiet:     true,
		scratch:   make([]float64, size),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

// Config returns the configuration the detector was built with.
func (d *Detector) Config() Config { return d.cfg }

// Period returns the detected period in whole samples.
func (d *Detector) Period() int { return d.period }

// Pitch returns the interpolated pitch in Hz. Rate / Pitch need not equal
// Period; see RealPeriod.
func (d *Detector) Pitch() float64 { return d.pitch }

// RealPeriod returns the fractional period rate / pitch, or 0 before any
// pitch was found.
func (d *Detector) RealPeriod() float64 {
	if d.pitch == 0 {
		return 0
	}
	return d.rate / d.pitch
}

// Confidence returns the confidence of the last classification in [0, 1].
func (d *Detector) Confidence() float64 { return d.confidence }

// Voiced reports whether the last block carried a pitch.
func (d *Detector) Voiced() bool { return d.voiced }

// Quiet reports whether the last block was below the quiet threshold.
func (d *Detector) Quiet() bool { return d.quiet }

// Mode returns the analysis path of the last block.
func (d *Detector) Mode() Mode { return d.mode }

// Trust returns the number of consecutive voiced blocks.
func (d *Detector) Trust() int { return d.trust }

// Size returns the analysis window length, two maximum periods. The output
// lags the input by this many samples.
func (d *Detector) Size() int { return d.size }

// PeriodRange returns the shortest and longest period searched, in samples.
func (d *Detector) PeriodRange() (minPeriod, maxPeriod int) {
	return d.minPeriod, d.maxPeriod
}

// Frame returns the current output.
func (d *Detector) Frame() Frame {
	return Frame{
		Mode:       d.mode,
		Voiced:     d.voiced,
		Quiet:      d.quiet,
		Period:     d.period,
		Pitch:      d.pitch,
		Confidence: d.confidence,
	}
}

// Feed appends samples to the history and updates the estimate. Blocks
// longer than the analysis window are analysed in consecutive pieces; an
// empty block is ignored.
func (d *Detector) Feed(samples []float64) {
	for len(samples) > 0 {
		n := min(len(samples), d.size)
		d.feedBlock(samples[:n])
		samples = samples[n:]
	}
}

func (d *Detector) feedBlock(block []float64) {
	d.history.Push(block)
	prev := d.Frame()

	// The analysis point sits size samples behind the newest input.
	level := d.scratch[:d.maxPeriod]
	d.history.CopyTo(level, d.size)
	d.power = timestats.Variance(level)
	d.quiet = d.power < d.cfg.QuietThreshold

	if d.quiet {
		d.voiced = false
		d.confidence = 1
		d.trust = 0
		d.mode = ModeQuiet

		w := math.Pow(d.cfg.MomentumDecay, float64(len(block))/float64(d.size))
		for i := range d.nonorm {
			d.nonorm[i] *= w
		}
		d.publish(prev)
		return
	}

	oneMove := len(block) / 2
	twoMove := len(block) - oneMove

	var one, two analysis
	if d.trust > d.cfg.TrustLimit {
		d.mode = ModeTracking
		one, two = d.track(twoMove)
	} else {
		d.mode = ModeProbing
		one, two = d.probe(twoMove)
	}
	one.move = oneMove
	two.move = twoMove

	d.normalize(one.mse)
	d.normalize(two.mse)

	d.blend(one)
	d.blend(two)
	copy(d.momentum, d.nonorm)
	d.normalize(d.momentum)

	d.top, d.value = d.findPeak(d.momentum)
	d.classify()
	d.publish(prev)
}

// blend folds x into the decayed difference function.
func (d *Detector) blend(x analysis) {
	newWeight := x.voiced * d.power
	oldWeight := math.Pow(d.cfg.MomentumDecay, float64(x.move)/float64(d.size))
	for i := range d.nonorm {
		d.nonorm[i] = newWeight*x.mse[i] + oldWeight*d.nonorm[i]
	}
	d.strength = x.voiced
}

func (d *Detector) classify() {
	if d.strength <= d.cfg.VoicedThreshold || d.top == 0 {
		d.confidence = 1 - d.strength
		d.voiced = false
		d.trust = 0
		return
	}

	d.confidence = 1 - d.value
	d.voiced = true
	d.period = d.top
	d.pitch = d.rate / float64(d.period)

	p := d.period
	if p > 1 && p+1 <= d.maxPeriod {
		// Fit y = ax^2 + bx through the neighbours, with the peak at the origin.
		y0 := d.momentum[p-1] - d.momentum[p]
		y1 := d.momentum[p+1] - d.momentum[p]
		a := (y1 + y0) / 2
		b := (y1 - y0) / 2
		bottom := -b / (2 * a)
		if bottom > -1 && bottom < 1 {
			d.pitch = d.rate / (float64(p) + bottom)
		}
	}
	d.trust++
}

func (d *Detector) publish(prev Frame) {
	cur := d.Frame()
	if cur.Mode != prev.Mode {
		d.logger.Log(context.Background(), slog.LevelDebug, "pitch: mode change",
			"from", prev.Mode.String(), "to", cur.Mode.String())
	}
	if prev.Voiced && !cur.Voiced {
		d.logger.Log(context.Background(), slog.LevelDebug, "pitch: voicing lost",
			"pitch", prev.Pitch, "confidence", cur.Confidence)
	}
	if d.observer != nil {
		d.observer.FrameAnalyzed(cur)
	}
}

// Get returns amount samples starting at the analysis point. amount <= 0
// selects the current period; it is capped at the maximum period.
func (d *Detector) Get(amount int) []float64 {
	amount = d.amount(amount)
	return d.history.Slice(d.size, amount)
}

// Get2 returns 2*amount samples centred on the analysis point: one period
// before it and one after.
func (d *Detector) Get2(amount int) []float64 {
	amount = d.amount(amount)
	return d.history.Slice(d.size-amount, 2*amount)
}

func (d *Detector) amount(n int) int {
	if n <= 0 {
		n = d.period
	}
	return min(n, d.maxPeriod)
}

// MSE returns a copy of the normalised difference function the last pitch
// was picked from, indexed by lag.
func (d *Detector) MSE() []float64 {
	out := make([]float64, len(d.momentum))
	copy(out, d.momentum)
	return out
}

// Reset clears the history and every published value.
func (d *Detector) Reset() {
	d.history.Reset()
	d.period = 0
	d.pitch = 0
	d.confidence = 0
	d.voiced = false
	d.quiet = true
	d.mode = ModeQuiet
	d.trust = 0
	d.power = 0
	d.strength = 0
	d.top = 0
	d.value = 0
	clear(d.nonorm)
	clear(d.momentum)
}
