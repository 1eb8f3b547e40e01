package pitch

import (
	"errors"
	"fmt"
	"math"
)

// Config holds the sample rate, the pitch search range and the detector
// tunables.
type Config struct {
	SampleRate int     `yaml:"sample_rate"`
	Lower      float64 `yaml:"lower"` // Hz
	Upper      float64 `yaml:"upper"` // Hz

	// PeakWindowMax caps the half-width of the neighbourhood a lag must be
	// the minimum of to count as a peak.
	PeakWindowMax int `yaml:"peak_window_max"`
	// TrustLimit is the number of consecutive voiced blocks after which
	// probing gives way to tracking.
	TrustLimit int `yaml:"trust_limit"`
	// MinCutoff stops the peak search early once a candidate falls below it.
	MinCutoff float64 `yaml:"min_cutoff"`
	// VoicedThreshold is the voicing strength above which a block is voiced.
	VoicedThreshold float64 `yaml:"voiced_threshold"`
	// QuietThreshold is the signal variance below which a block is quiet.
	QuietThreshold float64 `yaml:"quiet_threshold"`
	// MomentumDecay is the weight left of the previous difference function
	// after one full window of new samples.
	MomentumDecay float64 `yaml:"momentum_decay"`
}

// DefaultConfig returns the defaults for speech at 44.1 kHz.
func DefaultConfig() Config {
	return Config{
		SampleRate:      44100,
		Lower:           60,
		Upper:           900,
		PeakWindowMax:   5,
		TrustLimit:      5,
		MinCutoff:       0.25,
		VoicedThreshold: 0.3,
		QuietThreshold:  5e-5,
		MomentumDecay:   0.35,
	}
}

// periods returns the shortest and longest period in samples. The bounds
// may be given in either order.
func (c Config) periods() (minPeriod, maxPeriod int) {
	lower, upper := c.Lower, c.Upper
	if lower > upper {
		lower, upper = upper, lower
	}
	rate := float64(c.SampleRate)
	return int(math.Floor(rate / upper)), int(math.Ceil(rate / lower))
}

// Validate reports every problem with c.
func (c Config) Validate() error {
	var errs []error
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate))
	}
	if c.Lower <= 0 || c.Upper <= 0 || math.IsNaN(c.Lower) || math.IsNaN(c.Upper) {
		errs = append(errs, fmt.Errorf("%w: pitch bounds %g..%g must be positive", ErrInvalidConfig, c.Lower, c.Upper))
	} else if c.SampleRate > 0 {
		lo, hi := c.periods()
		if lo < 1 {
			errs = append(errs, fmt.Errorf("%w: upper bound %g Hz leaves no whole-sample period", ErrInvalidConfig, max(c.Lower, c.Upper)))
		}
		if hi <= lo {
			errs = append(errs, fmt.Errorf("%w: period range %d..%d is empty", ErrInvalidConfig, lo, hi))
		}
	}
	if c.PeakWindowMax < 0 {
		errs = append(errs, fmt.Errorf("%w: peak window %d", ErrInvalidConfig, c.PeakWindowMax))
	}
	if c.TrustLimit < 0 {
		errs = append(errs, fmt.Errorf("%w: trust limit %d", ErrInvalidConfig, c.TrustLimit))
	}
	if c.MomentumDecay < 0 || c.MomentumDecay > 1 {
		errs = append(errs, fmt.Errorf("%w: momentum decay %g outside [0, 1]", ErrInvalidConfig, c.MomentumDecay))
	}
	if c.QuietThreshold < 0 {
		errs = append(errs, fmt.Errorf("%w: quiet threshold %g", ErrInvalidConfig, c.QuietThreshold))
	}
	return errors.Join(errs...)
}
