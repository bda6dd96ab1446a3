package stats

import (
	"fmt"
	"io"
	"strings"
)

const (
	rhythmWindow = 5
	weakTop      = 5
)

// ReportOptions controls the layout of RenderReport.
type ReportOptions struct {
	// Width is the terminal width; zero uses the detected width.
	Width int
	// PlotHeight is the rhythm plot height in rows; zero skips the plot.
	PlotHeight int
	// Color forces ANSI colors in the plot.
	Color bool
}

// RenderReport prints the summary, the per-finger and per-character tables,
// the characters worth drilling and the typing rhythm.
func RenderReport(w io.Writer, sum Summary, opts ReportOptions) error {
	if err := RenderSummary(w, sum.Snapshot); err != nil {
		return err
	}
	if !sum.Snapshot.Filled {
		return nil
	}
	if err := RenderFingerTable(w, sum.Fingers); err != nil {
		return err
	}
	if err := RenderCharTable(w, sum.Chars); err != nil {
		return err
	}
	if weak := WeakChars(sum.Chars, weakTop); len(weak) > 0 {
		labels := make([]string, 0, len(weak))
		for _, r := range weak {
			labels = append(labels, charLabel(r))
		}
		if _, err := fmt.Fprintf(w, "Practice next: %s\n\n", strings.Join(labels, " ")); err != nil {
			return err
		}
	}
	return RenderRhythm(w, sum.Intervals, opts)
}

// RenderRhythm prints the milliseconds between completions as a sparkline
// and, when opts.PlotHeight is set, a braille plot.
func RenderRhythm(w io.Writer, intervals []float64, opts ReportOptions) error {
	if len(intervals) < 2 {
		return nil
	}
	width := PlotWidthFor(opts.Width)
	if opts.Width <= 0 {
		width = autoPlotWidth()
	}
	smoothed := MovingAverage(intervals, rhythmWindow)
	line := Sparkline(resampleSeries(smoothed, min(width, len(smoothed))))
	if _, err := fmt.Fprintf(w, "Rhythm (ms between keys): %s\n", line); err != nil {
		return err
	}
	if opts.PlotHeight <= 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return PlotSeries(w, "Rhythm", []Series{
		{Name: "Interval", Values: intervals},
		{Name: "Smoothed", Values: smoothed},
	}, width, opts.PlotHeight, opts.Color)
}
