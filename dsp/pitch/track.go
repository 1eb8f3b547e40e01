package pitch

import (
	"github.com/cwbudde/algo-pitch/dsp/buffer"
	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/wave"
)

var blockPool = buffer.NewPool()

// Source is a sequential sample reader such as *wave.Reader. ReadSamples
// reports how many samples it produced; fewer than requested marks the end.
type Source interface {
	ReadSamples(dst []float64) (int, error)
}

// Track reads src block by block until it is exhausted, feeds the mono
// mixdown of each block to d and calls visit with the resulting frame.
// Block size and channel count come from opts. A visit error stops the
// loop and is returned.
func Track(src Source, d *Detector, visit func(Frame) error, opts ...core.StreamOption) error {
	cfg := core.ApplyStreamOptions(opts...)
	rawp := blockPool.Get(cfg.BlockSize * cfg.Channels)
	defer blockPool.Put(rawp)
	raw := *rawp
	var mono []float64

	for {
		n, err := src.ReadSamples(raw)
		if err != nil {
			return err
		}
		whole := n - n%cfg.Channels
		if whole == 0 {
			return nil
		}

		mono = wave.Downmix(mono, raw[:whole], cfg.Channels)
		d.Feed(mono)
		if visit != nil {
			if err := visit(d.Frame()); err != nil {
				return err
			}
		}
		if n < len(raw) {
			return nil
		}
	}
}
