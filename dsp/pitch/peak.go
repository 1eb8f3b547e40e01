package pitch

// findPeak returns the first lag in the searched range that is the minimum
// of its neighbourhood and lower than every earlier candidate, stopping as
// soon as a candidate falls below MinCutoff. top is 0 when nothing
// qualifies; value starts at 1.
func (d *Detector) findPeak(mse []float64) (top int, value float64) {
	w := min(d.minPeriod/2, d.cfg.PeakWindowMax)
	value = 1

	for i := w; i <= d.maxPeriod && i+w+1 < len(mse); i++ {
		if i < d.minPeriod || mse[i] >= value {
			continue
		}
		if mse[i] != minOf(mse[i-w:i+w+1]) {
			continue
		}
		top, value = i, mse[i]
		if value < d.cfg.MinCutoff {
			break
		}
	}
	return top, value
}

func minOf(x []float64) float64 {
	m := x[0]
	for _, v := range x[1:] {
		m = min(m, v)
	}
	return m
}
