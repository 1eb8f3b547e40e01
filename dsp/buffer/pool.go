package buffer

import "sync"

// Pool provides sync.Pool-based reuse of float64 scratch slices to reduce
// GC pressure in streaming loops.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return new([]float64)
			},
		},
	}
}

// Get returns a zeroed slice with the requested length.
// Callers must return it via Put when done.
func (p *Pool) Get(length int) *[]float64 {
	if length < 0 {
		length = 0
	}
	s := p.pool.Get().(*[]float64)
	if cap(*s) < length {
		*s = make([]float64, length)
	} else {
		*s = (*s)[:length]
		for i := range *s {
			(*s)[i] = 0
		}
	}
	return s
}

// Put returns a slice to the pool for reuse.
// The caller must not use the slice after calling Put.
func (p *Pool) Put(s *[]float64) {
	if s == nil {
		return
	}
	p.pool.Put(s)
}
