// Package observe records detector and codec activity as OpenTelemetry
// metrics.
//
// [Metrics] implements both [pitch.Observer] and [wave.Observer], so one
// instance can be handed to every Detector and Reader of a run. Tests and
// tools that want to inspect the numbers use [NewMetrics] with an SDK meter
// provider and a manual reader; [DefaultMetrics] uses the global provider.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"github.com/cwbudde/algo-pitch/dsp/wave"
)

// meterName is the instrumentation scope of every instrument.
const meterName = "github.com/cwbudde/algo-pitch"

// Instrument names.
const (
	FramesName  = "pitch.frames"
	PitchName   = "pitch.hz"
	SamplesName = "wave.samples"
)

// Metrics holds the metric instruments. All fields are safe for concurrent
// use.
type Metrics struct {
	// Frames counts analysed blocks. Attributes: mode, voiced.
	Frames metric.Int64Counter

	// Pitch records the pitch of voiced blocks in Hz.
	Pitch metric.Float64Histogram

	// Samples counts decoded samples. Attribute: kind.
	Samples metric.Int64Counter
}

// pitchBuckets covers the speech and singing range.
var pitchBuckets = []float64{
	50, 80, 100, 150, 200, 300, 400, 600, 900, 1200,
}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Frames, err = m.Int64Counter(FramesName,
		metric.WithDescription("Analysed detector blocks by mode and voicing."),
	); err != nil {
		return nil, err
	}
	if met.Pitch, err = m.Float64Histogram(PitchName,
		metric.WithDescription("Pitch of voiced blocks."),
		metric.WithUnit("Hz"),
		metric.WithExplicitBucketBoundaries(pitchBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Samples, err = m.Int64Counter(SamplesName,
		metric.WithDescription("Decoded samples by sample kind."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var defaultMetrics = sync.OnceValue(func() *Metrics {
	m, err := NewMetrics(otel.GetMeterProvider())
	if err != nil {
		panic("observe: failed to create default metrics: " + err.Error())
	}
	return m
})

// DefaultMetrics returns a shared instance bound to the global meter
// provider.
func DefaultMetrics() *Metrics {
	return defaultMetrics()
}

// FrameAnalyzed records one detector block.
func (m *Metrics) FrameAnalyzed(f pitch.Frame) {
	ctx := context.Background()
	m.Frames.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", f.Mode.String()),
		attribute.Bool("voiced", f.Voiced),
	))
	if f.Voiced {
		m.Pitch.Record(ctx, f.Pitch)
	}
}

// SamplesDecoded records n decoded samples of the given kind.
func (m *Metrics) SamplesDecoded(kind wave.SampleKind, n int) {
	m.Samples.Add(context.Background(), int64(n),
		metric.WithAttributes(attribute.String("kind", kind.String())),
	)
}

var (
	_ pitch.Observer = (*Metrics)(nil)
	_ wave.Observer  = (*Metrics)(nil)
)
