package main

import (
	"context"
	"log/slog"
	"slices"

	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"github.com/cwbudde/algo-pitch/dsp/spectrum"
	"github.com/cwbudde/algo-pitch/dsp/wave"
	"github.com/cwbudde/algo-pitch/internal/config"
	"github.com/cwbudde/algo-pitch/internal/observe"
	timestats "github.com/cwbudde/algo-pitch/stats/time"
)

// Harmonic profiles are taken from voiced frames in this pitch range, up to
// profileMaxFreq, on a grid of profileBins points profileSpacing Hz apart.
const (
	profileLow      = 80
	profileHigh     = 500
	profileMaxFreq  = 6000
	profileSpacing  = 60
	profileBins     = 100
	profileMinPower = 1e-3
)

type analyzer struct {
	cfg     *config.Config
	engine  *fft.Engine
	logger  *slog.Logger
	metrics *observe.Metrics
}

type report struct {
	path    string
	format  wave.Format
	seconds float64
	level   timestats.Stats

	frames  int
	voiced  int
	pitches []float64

	profileFrames int
	profile       []float64 // mean over profileFrames
}

func (r *report) voicedRatio() float64 {
	if r.frames == 0 {
		return 0
	}
	return float64(r.voiced) / float64(r.frames)
}

func (r *report) medianPitch() float64 {
	if len(r.pitches) == 0 {
		return 0
	}
	s := slices.Clone(r.pitches)
	slices.Sort(s)
	return s[len(s)/2]
}

// levelSource decodes through a go-audio buffer and feeds every sample
// read into a running level statistic.
type levelSource struct {
	rd    *wave.Reader
	buf   audio.FloatBuffer
	stats *timestats.StreamingStats
}

func (l *levelSource) ReadSamples(dst []float64) (int, error) {
	l.buf.Data = dst
	n, err := l.rd.PCMBuffer(&l.buf)
	l.stats.Update(dst[:n])
	return n, err
}

func (a *analyzer) analyze(ctx context.Context, path string) (*report, error) {
	logger := a.logger.With("path", path)

	rd, err := wave.OpenFile(path, wave.WithLogger(logger), wave.WithObserver(a.metrics))
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	format := rd.Format()
	dcfg := a.cfg.Detector
	dcfg.SampleRate = format.FrameRate()
	det, err := pitch.New(dcfg,
		pitch.WithEngine(a.engine),
		pitch.WithLogger(logger),
		pitch.WithObserver(a.metrics),
	)
	if err != nil {
		return nil, err
	}

	rep := &report{
		path:    path,
		format:  format,
		seconds: float64(rd.Frames()) / float64(format.FrameRate()),
	}
	var profileSum []float64

	src := &levelSource{rd: rd, stats: timestats.NewStreamingStats()}
	err = pitch.Track(src, det, func(f pitch.Frame) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep.frames++
		if !f.Voiced {
			return nil
		}
		rep.voiced++
		rep.pitches = append(rep.pitches, f.Pitch)

		if f.Pitch <= profileLow || f.Pitch >= profileHigh {
			return nil
		}
		power := spectrum.HarmonicPower(a.engine, det.Get2(0), spectrum.HarmonicCount(f.Pitch, profileMaxFreq))
		if spectrum.Sum(power) <= profileMinPower {
			return nil
		}
		p := spectrum.HarmonicProfile(power, f.Pitch, profileSpacing, profileBins)
		if profileSum == nil {
			profileSum = make([]float64, len(p))
		}
		for i, v := range p {
			profileSum[i] += v
		}
		rep.profileFrames++
		return nil
	}, core.WithBlockSize(a.cfg.BlockSize), core.WithChannels(format.Channels()))
	if err != nil {
		return nil, err
	}

	rep.level = src.stats.Result()
	if rep.profileFrames > 0 {
		inv := 1 / float64(rep.profileFrames)
		for i := range profileSum {
			profileSum[i] *= inv
		}
		rep.profile = profileSum
	}

	logger.Debug("file analysed", "frames", rep.frames, "voiced", rep.voiced, "profiles", rep.profileFrames)
	return rep, nil
}
