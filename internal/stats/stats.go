// Package stats renders the end-of-session report.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/keydrill/internal/keymap"
	"github.com/verte-zerg/keydrill/internal/practice"
)

const sparkChars = " .:-=+*#%@"

// Summary is everything the report needs from a finished session.
type Summary struct {
	Snapshot  practice.Snapshot
	Chars     []practice.CharTally
	Fingers   []practice.FingerTally
	Intervals []float64
}

// FromSession collects a Summary from s.
func FromSession(s *practice.Session) Summary {
	return Summary{
		Snapshot:  s.Stats.Snapshot(),
		Chars:     s.Tally.Chars(),
		Fingers:   s.Tally.Fingers(),
		Intervals: s.Intervals(),
	}
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := seriesMinMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the headline numbers of a session.
func RenderSummary(w io.Writer, snap practice.Snapshot) error {
	if !snap.Filled {
		_, err := fmt.Fprintln(w, "No results: nothing was typed.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Characters: %d", snap.Typed),
		fmt.Sprintf("Attempts: %d", snap.Attempts),
		fmt.Sprintf("Time: %s", snap.Elapsed.Round(100*time.Millisecond)),
		fmt.Sprintf("WPM: %.2f", snap.WPM),
		fmt.Sprintf("Accuracy: %.2f%%", snap.Accuracy),
		"",
	}
	return writeLines(w, lines)
}

// RenderFingerTable prints per-finger accuracy in keyboard order.
func RenderFingerTable(w io.Writer, fingers []practice.FingerTally) error {
	if len(fingers) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Per-Finger"); err != nil {
		return err
	}
	headers := []string{"Finger", "Accuracy", "Typed", "Misses"}
	rows := make([][]string, 0, len(fingers))
	for _, f := range fingers {
		rows = append(rows, []string{
			f.Finger.Label(),
			formatPct(accuracy(f.Completed, f.Misses)),
			fmt.Sprintf("%d", f.Completed),
			fmt.Sprintf("%d", f.Misses),
		})
	}
	lines := formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true})
	return writeLines(w, append(lines, ""))
}

// RenderCharTable prints per-character counts, lowest accuracy first.
func RenderCharTable(w io.Writer, chars []practice.CharTally) error {
	if len(chars) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	sorted := sortByAccuracy(chars)

	if _, err := fmt.Fprintln(w, "Per-Character"); err != nil {
		return err
	}
	headers := []string{"Char", "Finger", "Accuracy", "Typed", "Misses"}
	rows := make([][]string, 0, len(sorted))
	for _, c := range sorted {
		finger := "-"
		if c.Finger != keymap.None {
			finger = c.Finger.Label()
		}
		rows = append(rows, []string{
			charLabel(c.Char),
			finger,
			formatPct(accuracy(c.Completed, c.Misses)),
			fmt.Sprintf("%d", c.Completed),
			fmt.Sprintf("%d", c.Misses),
		})
	}
	lines := formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true})
	return writeLines(w, append(lines, ""))
}

func sortByAccuracy(chars []practice.CharTally) []practice.CharTally {
	out := make([]practice.CharTally, len(chars))
	copy(out, chars)
	sort.SliceStable(out, func(i, j int) bool {
		ai := accuracy(out[i].Completed, out[i].Misses)
		aj := accuracy(out[j].Completed, out[j].Misses)
		if ai == aj {
			return out[i].Char < out[j].Char
		}
		return ai < aj
	})
	return out
}

func accuracy(completed, misses int) float64 {
	total := completed + misses
	if total == 0 {
		return 1.0
	}
	return float64(completed) / float64(total)
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func charLabel(r rune) string {
	if r == practice.Separator {
		return "<space>"
	}
	return string(r)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
