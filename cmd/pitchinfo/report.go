package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-pitch/internal/observe"
	frequencystats "github.com/cwbudde/algo-pitch/stats/frequency"
)

func printReports(w io.Writer, reports []*report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File\tFormat\tLength [s]\tRMS [dB]\tPeak [dB]\tFrames\tVoiced\tMedian [Hz]\n")
	fmt.Fprintf(tw, "----\t------\t----------\t--------\t---------\t------\t------\t-----------\n")

	for _, r := range reports {
		if r == nil {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\t%d\t%.0f%%\t%.1f\n",
			r.path,
			r.format,
			r.seconds,
			formatDB(r.level.RMS_dB),
			formatDB(r.level.Peak_dB),
			r.frames,
			100*r.voicedRatio(),
			r.medianPitch(),
		)
	}
	return tw.Flush()
}

func formatDB(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%.1f", v)
}

func printProfiles(w io.Writer, reports []*report) error {
	for _, r := range reports {
		if r == nil || r.profile == nil {
			continue
		}
		vals := make([]string, len(r.profile))
		for i, v := range r.profile {
			vals[i] = fmt.Sprintf("%.4f", v)
		}
		shape := frequencystats.Calculate(r.profile, frequencystats.ProfileGrid(profileSpacing))
		if _, err := fmt.Fprintf(w, "%s (%d frames, centroid %.0f Hz, rolloff %.0f Hz): %s\n",
			r.path, r.profileFrames, shape.Centroid, shape.Rolloff, strings.Join(vals, " ")); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(w io.Writer, s observe.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Samples decoded\t%d\n", s.Samples)
	for _, mode := range []string{"quiet", "probing", "tracking"} {
		fmt.Fprintf(tw, "Frames %s\t%d\n", mode, s.Frames[mode])
	}
	fmt.Fprintf(tw, "Frames voiced\t%d\n", s.Voiced)
	fmt.Fprintf(tw, "Mean pitch [Hz]\t%.1f\n", s.PitchMean)
	for i, c := range s.PitchCounts {
		if c == 0 {
			continue
		}
		fmt.Fprintf(tw, "Pitch %s\t%d\n", bucketLabel(s.PitchBounds, i), c)
	}
	return tw.Flush()
}

func bucketLabel(bounds []float64, i int) string {
	switch {
	case len(bounds) == 0:
		return "all"
	case i == 0:
		return fmt.Sprintf("<= %g Hz", bounds[0])
	case i >= len(bounds):
		return fmt.Sprintf("> %g Hz", bounds[len(bounds)-1])
	default:
		return fmt.Sprintf("%g-%g Hz", bounds[i-1], bounds[i])
	}
}
