package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
// Newly exposed elements are not cleared.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Fill sets all values in buf to v.
func Fill(buf []float64, v float64) {
	for i := range buf {
		buf[i] = v
	}
}

// Reverse reverses s in place.
func Reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// ReverseTail reverses every element but the first in place.
// This maps a sequence indexed by k onto one indexed by -k modulo len(s).
func ReverseTail[T any](s []T) {
	if len(s) > 1 {
		Reverse(s[1:])
	}
}

// SumSquares returns the sum of x[i]^2.
func SumSquares(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum
}
