// Package stats contains statistics calculations and history reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/alpherox/typingtxt/internal/store"
)

const sparkChars = " .:-=+*#%@"

// Window size for smoothing the WPM trend.
const trendWindow = 5

// SessionMetrics computes WPM and accuracy for a finished session.
func SessionMetrics(correct, typed int, durationMs int64) (wpm, accuracy float64) {
	if typed > 0 {
		accuracy = float64(correct) / float64(typed)
	}
	if durationMs <= 0 {
		return 0, accuracy
	}
	minutes := float64(durationMs) / 60000.0
	wpm = (float64(correct) / 5.0) / minutes
	return wpm, accuracy
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
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
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

// WPMSeries extracts per-session WPM values in session order.
func WPMSeries(sessions []store.Session) []float64 {
	out := make([]float64, len(sessions))
	for i, s := range sessions {
		wpm, _ := SessionMetrics(s.Correct, s.Typed, s.DurationMs)
		out[i] = wpm
	}
	return out
}

// TrendWPM returns the smoothed per-session WPM series rendered as the
// history trend.
func TrendWPM(sessions []store.Session) []float64 {
	return MovingAverage(WPMSeries(sessions), trendWindow)
}

// RenderSummary prints a plain-text summary of the session history.
func RenderSummary(w io.Writer, sessions []store.Session) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}
	var totalWPM, totalAcc, totalScore float64
	bestWPM := 0.0
	for _, s := range sessions {
		wpm, acc := SessionMetrics(s.Correct, s.Typed, s.DurationMs)
		totalWPM += wpm
		totalAcc += acc
		totalScore += s.Score
		if wpm > bestWPM {
			bestWPM = wpm
		}
	}
	count := float64(len(sessions))
	lines := []string{
		"History",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Best WPM: %.2f", bestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", (totalAcc/count)*100),
		fmt.Sprintf("Total Score: %d", int(totalScore)),
		fmt.Sprintf("WPM trend: %s", Sparkline(TrendWPM(sessions))),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
