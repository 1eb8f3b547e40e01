package fft

import (
	"fmt"
	"math"
	"math/bits"
	"sync"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

const (
	// DefaultMaxOrder allows radix-2 transforms up to 2^18 points.
	DefaultMaxOrder = 18
	// DefaultCircleBits is the resolution of the unit-circle table (2^18 points).
	DefaultCircleBits = 18

	maxSupportedOrder = 30
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	maxOrder   int
	circleBits int
}

// WithMaxOrder sets the largest radix-2 order the engine will cache.
// Larger power-of-two inputs fall back to a direct O(n^2) transform.
func WithMaxOrder(order int) Option {
	return func(cfg *config) {
		if order > 0 && order <= maxSupportedOrder {
			cfg.maxOrder = order
		}
	}
}

// WithCircleBits sets the unit-circle table resolution to 2^b points.
func WithCircleBits(b int) Option {
	return func(cfg *config) {
		if b >= 4 && b <= 24 {
			cfg.circleBits = b
		}
	}
}

// Engine holds the transform precomputation cache.
//
// The cache for order B holds twiddle tables for every stage r < B and a
// bit-reversal table of 2^B entries; smaller orders reuse it by shifting the
// reversed indices right. The cache only grows.
type Engine struct {
	maxOrder int

	mu      sync.RWMutex
	order   int
	twiddle [][]complex128
	bitrev  []int

	circle func() *UnitCircle
}

// New returns an engine with an empty cache.
func New(opts ...Option) *Engine {
	cfg := config{
		maxOrder:   DefaultMaxOrder,
		circleBits: DefaultCircleBits,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	circleBits := cfg.circleBits
	return &Engine{
		maxOrder: cfg.maxOrder,
		order:    -1,
		circle: sync.OnceValue(func() *UnitCircle {
			return NewUnitCircle(circleBits)
		}),
	}
}

var defaultEngine = sync.OnceValue(func() *Engine { return New() })

// Default returns the process-wide engine used by the package level functions.
func Default() *Engine {
	return defaultEngine()
}

// MaxOrder returns the largest order this engine will cache.
func (e *Engine) MaxOrder() int {
	return e.maxOrder
}

// Order returns the largest order built so far, or -1 if the cache is empty.
func (e *Engine) Order() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.order
}

// Circle returns the engine's unit-circle table, building it on first use.
func (e *Engine) Circle() *UnitCircle {
	return e.circle()
}

// EnsureOrder grows the cache so that transforms of 2^order points can run.
func (e *Engine) EnsureOrder(order int) error {
	if order < 0 {
		order = 0
	}
	if order > e.maxOrder {
		return fmt.Errorf("%w: order %d, max %d", ErrOrderExceeded, order, e.maxOrder)
	}

	e.mu.RLock()
	built := order <= e.order
	e.mu.RUnlock()
	if built {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if order <= e.order {
		return nil
	}
	e.grow(order)
	return nil
}

// grow must be called with the write lock held.
func (e *Engine) grow(order int) {
	for r := len(e.twiddle); r < order; r++ {
		half := 1 << r
		w := make([]complex128, half)
		for k := range w {
			s, c := math.Sincos(-math.Pi * float64(k) / float64(half))
			w[k] = complex(c, s)
		}
		e.twiddle = append(e.twiddle, w)
	}

	n := 1 << order
	rev := make([]int, n)
	if order > 0 {
		shift := bits.UintSize - order
		for i := range rev {
			rev[i] = int(bits.Reverse(uint(i)) >> shift)
		}
	}
	e.bitrev = rev
	e.order = order
}

// Transform computes the DFT of v in place, or the inverse DFT when inverse
// is set. The inverse is scaled by 1/len(v).
//
// Power-of-two lengths use the radix-2 path. Other lengths use Bluestein's
// algorithm. Lengths beyond the engine's maximum order are computed directly.
func (e *Engine) Transform(v []complex128, inverse bool) {
	n := len(v)
	if n <= 1 {
		return
	}

	if !core.IsPowerOfTwo(n) {
		e.bluestein(v, inverse)
		return
	}

	b := core.Log2(n)
	if err := e.EnsureOrder(b); err != nil {
		directDFT(v, inverse)
		return
	}

	e.mu.RLock()
	e.radix2(v, b)
	e.mu.RUnlock()

	if inverse {
		finishInverse(v)
	}
}

// radix2 must be called with at least the read lock held.
func (e *Engine) radix2(v []complex128, b int) {
	n := len(v)
	shift := e.order - b

	for i := 0; i < n; i++ {
		j := e.bitrev[i] >> shift
		if i < j {
			v[i], v[j] = v[j], v[i]
		}
	}

	for r := 0; r < b; r++ {
		half := 1 << r
		w := e.twiddle[r]
		for start := 0; start < n; start += 2 * half {
			for k := 0; k < half; k++ {
				lo := start + k
				hi := lo + half
				t := w[k] * v[hi]
				v[hi] = v[lo] - t
				v[lo] += t
			}
		}
	}
}

// finishInverse turns a forward transform into an inverse one:
// x[k] = X[-k mod n] / n.
func finishInverse(v []complex128) {
	core.ReverseTail(v)
	scale := complex(1/float64(len(v)), 0)
	for i := range v {
		v[i] *= scale
	}
}

// Forward returns the DFT of a real sequence.
func (e *Engine) Forward(x []float64) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = complex(v, 0)
	}
	e.Transform(out, false)
	return out
}

// Inverse returns the real part of the inverse DFT of spec.
// The imaginary residue is discarded, which is exact for conjugate-symmetric input.
func (e *Engine) Inverse(spec []complex128) []float64 {
	tmp := make([]complex128, len(spec))
	copy(tmp, spec)
	e.Transform(tmp, true)

	out := make([]float64, len(tmp))
	for i, c := range tmp {
		out[i] = real(c)
	}
	return out
}

// Transform runs [Engine.Transform] on the default engine.
func Transform(v []complex128, inverse bool) {
	Default().Transform(v, inverse)
}

// Forward runs [Engine.Forward] on the default engine.
func Forward(x []float64) []complex128 {
	return Default().Forward(x)
}

// Inverse runs [Engine.Inverse] on the default engine.
func Inverse(spec []complex128) []float64 {
	return Default().Inverse(spec)
}
