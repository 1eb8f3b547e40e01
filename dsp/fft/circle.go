package fft

import "math"

// UnitCircle is a lookup table of exp(2*pi*i*k/N) for k in [0, N].
// The extra entry equals the first so that rounding up at the wrap point
// stays in range.
type UnitCircle struct {
	size  int
	table []complex128
}

// NewUnitCircle builds a table with 2^bits points.
func NewUnitCircle(bits int) *UnitCircle {
	n := 1 << bits
	table := make([]complex128, n+1)
	for i := 0; i < n; i++ {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		table[i] = complex(c, s)
	}
	table[n] = table[0]

	return &UnitCircle{size: n, table: table}
}

// Size returns the number of distinct points on the table.
func (u *UnitCircle) Size() int {
	return u.size
}

// At returns exp(2*pi*i*turns), using only the fractional part of turns.
// The phase is truncated to the table resolution.
func (u *UnitCircle) At(turns float64) complex128 {
	frac := turns - math.Floor(turns)
	idx := int(frac * float64(u.size))
	if idx < 0 {
		idx = 0
	} else if idx > u.size {
		idx = u.size
	}
	return u.table[idx]
}
