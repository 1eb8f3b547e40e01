package pitch

import (
	"github.com/cwbudde/algo-pitch/dsp/core"
	timestats "github.com/cwbudde/algo-pitch/stats/time"
)

// analysis is the difference function of one sub-window.
type analysis struct {
	move   int       // samples between this sub-window and the previous one
	mse    []float64 // normalised difference per lag, length size
	voiced float64   // voicing strength
}

// probe autocorrelates two full-size windows: one ending move samples
// before the newest input and one ending at it.
func (d *Detector) probe(move int) (one, two analysis) {
	onev := d.history.Slice(d.size-move, d.size)
	twov := d.history.Slice(d.size, d.size)

	ra, rb, err := d.conv.AutoCorrelatePair(onev, twov)
	if err != nil {
		ra, rb = make([]float64, d.size), make([]float64, d.size)
	}
	return d.autoDifference(onev, ra), d.autoDifference(twov, rb)
}

// autoDifference turns the autocorrelation ac of x into a cumulative-mean
// normalised difference function.
func (d *Detector) autoDifference(x, ac []float64) analysis {
	n := d.size
	out := analysis{mse: make([]float64, n)}

	sum := 2 * timestats.Energy(x)
	out.mse[0] = 2
	for i := 1; i < n; i++ {
		sum -= x[i-1]*x[i-1] + x[n-i]*x[n-i]
		if i >= d.minPeriod && i <= d.maxPeriod && sum != 0 {
			out.voiced = max(out.voiced, ac[i]/sum)
		}
		out.mse[i] = (sum - 2*ac[i]) / float64(n-i)
	}

	cumulativeNormalize(out.mse, n-1)
	return out
}

// track cross-correlates the maximum period before each analysis point with
// the maximum period after it, for the points move samples back and at the
// current one.
func (d *Detector) track(move int) (one, two analysis) {
	p := d.maxPeriod
	left1 := d.history.Slice(d.size-move-p, p)
	right1 := d.history.Slice(d.size-move, p)
	left2 := d.history.Slice(d.size-p, p)
	right2 := d.history.Slice(d.size, p)
	return d.crossDifference(left1, right1), d.crossDifference(left2, right2)
}

// crossDifference builds the difference function between the samples left
// of an analysis point and those right of it. Index k of the result is the
// distance between compared samples.
func (d *Detector) crossDifference(left, right []float64) analysis {
	p := d.maxPeriod
	out := analysis{mse: make([]float64, d.size)}

	corr, err := d.conv.Correlate(left, right, 0)
	if err != nil {
		corr = make([]float64, p)
	}

	sum := timestats.Energy(left) + timestats.Energy(right)
	// Lag i of the correlation compares samples p-i apart.
	for i := range p {
		if i+d.minPeriod <= p && sum != 0 {
			out.voiced = max(out.voiced, corr[i]/sum)
		}
		out.mse[p-i] = (sum - 2*corr[i]) / float64(p-i)
		sum -= left[i]*left[i] + right[p-i-1]*right[p-i-1]
	}
	out.mse[0] = 2

	cumulativeNormalize(out.mse, p)
	core.Fill(out.mse[p+1:], 2)
	return out
}

// cumulativeNormalize divides mse[i] by the mean of mse[1..i] for i in 1..last.
func cumulativeNormalize(mse []float64, last int) {
	var sum float64
	for i := 1; i <= last; i++ {
		sum += mse[i]
		if sum != 0 {
			mse[i] *= float64(i) / sum
		}
	}
}

// normalize scales mse so that its mean over the searched periods is one.
// A flat zero function becomes a constant 2.
func (d *Detector) normalize(mse []float64) {
	var avg float64
	for i := d.minPeriod; i < d.maxPeriod; i++ {
		avg += mse[i]
	}
	avg /= float64(d.maxPeriod - d.minPeriod)

	if avg > 1e-18 {
		inv := 1 / avg
		for i := range mse {
			mse[i] *= inv
		}
		return
	}
	core.Fill(mse, 2)
}
