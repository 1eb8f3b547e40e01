package buffer

// Window keeps the most recent Len() samples of a stream. Index 0 is the
// oldest sample. Pushing new samples evicts the oldest ones; the length
// never changes.
type Window struct {
	samples []float64
	head    int
}

// NewWindow returns a zero-filled Window of the given length.
func NewWindow(length int) *Window {
	if length < 0 {
		length = 0
	}
	return &Window{samples: make([]float64, length)}
}

// Len returns the window length.
func (w *Window) Len() int {
	return len(w.samples)
}

// Push appends x, evicting the same number of oldest samples.
func (w *Window) Push(x []float64) {
	n := len(w.samples)
	if n == 0 || len(x) == 0 {
		return
	}
	if len(x) >= n {
		copy(w.samples, x[len(x)-n:])
		w.head = 0
		return
	}

	c := copy(w.samples[w.head:], x)
	copy(w.samples, x[c:])
	w.head = (w.head + len(x)) % n
}

// At returns the sample at position i, counted from the oldest.
func (w *Window) At(i int) float64 {
	return w.samples[(w.head+i)%len(w.samples)]
}

// CopyTo copies the samples at positions [start, start+len(dst)) into dst
// and returns the number copied. Positions past the end are not copied.
func (w *Window) CopyTo(dst []float64, start int) int {
	n := len(w.samples)
	if start < 0 || start >= n {
		return 0
	}
	if len(dst) > n-start {
		dst = dst[:n-start]
	}

	idx := (w.head + start) % n
	c := copy(dst, w.samples[idx:])
	c += copy(dst[c:], w.samples)
	return c
}

// Slice returns a copy of positions [start, start+length).
func (w *Window) Slice(start, length int) []float64 {
	out := make([]float64, max(length, 0))
	w.CopyTo(out, start)
	return out
}

// Reset zeroes the history.
func (w *Window) Reset() {
	for i := range w.samples {
		w.samples[i] = 0
	}
	w.head = 0
}
