package observe

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Summary condenses the collected instruments.
type Summary struct {
	Frames      map[string]int64 // blocks per mode
	Voiced      int64
	Samples     int64
	PitchCount  uint64
	PitchMean   float64
	PitchBounds []float64
	PitchCounts []uint64
}

// Summarize collects reader and folds every data point into a Summary.
func Summarize(ctx context.Context, reader *sdkmetric.ManualReader) (Summary, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return Summary{}, fmt.Errorf("observe: collect: %w", err)
	}

	s := Summary{Frames: make(map[string]int64)}
	for _, sm := range rm.ScopeMetrics {
		for _, met := range sm.Metrics {
			switch data := met.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					switch met.Name {
					case FramesName:
						mode, _ := dp.Attributes.Value("mode")
						s.Frames[mode.AsString()] += dp.Value
						if voiced, ok := dp.Attributes.Value("voiced"); ok && voiced.AsBool() {
							s.Voiced += dp.Value
						}
					case SamplesName:
						s.Samples += dp.Value
					}
				}
			case metricdata.Histogram[float64]:
				if met.Name != PitchName {
					continue
				}
				var sum float64
				for _, dp := range data.DataPoints {
					s.PitchCount += dp.Count
					sum += dp.Sum
					s.PitchBounds = dp.Bounds
					if s.PitchCounts == nil {
						s.PitchCounts = make([]uint64, len(dp.BucketCounts))
					}
					for i, c := range dp.BucketCounts {
						s.PitchCounts[i] += c
					}
				}
				if s.PitchCount > 0 {
					s.PitchMean = sum / float64(s.PitchCount)
				}
			}
		}
	}
	return s, nil
}
