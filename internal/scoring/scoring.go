// Package scoring implements the word scoring and metric rules for a
// typing session: streak/multiplier state transitions on word boundaries
// and the accuracy/WPM formulas.
package scoring

import (
	"math"
	"time"
	"unicode"
)

// Scoring constants. A fully correct word awards
// BasePointFactor * wordLength * multiplier points.
const (
	BasePointFactor = 10
	MultiplierStart = 0.5
	MultiplierStep  = 0.1
	MultiplierMax   = 5.0
	WPMDivisor      = 5
)

// Elapsed time is floored to this many seconds in the WPM formula.
const minElapsedSeconds = 0.0001

// State holds the live score, streak, and multiplier.
type State struct {
	Score      float64
	Streak     int
	Multiplier float64
}

// NewState returns a zero score with the multiplier at its baseline.
func NewState() State {
	return State{Multiplier: MultiplierStart}
}

// EvaluateWordBoundary checks the word ending at the separator index
// sepIdx (chars[sepIdx] is whitespace, exclusive of the word) and awards
// points when every typed character in the word matches the expected
// stream. It is a no-op when the word is empty or when entered does not
// yet cover it. Reports whether points were awarded.
func (s *State) EvaluateWordBoundary(chars, entered []rune, sepIdx int) bool {
	i := sepIdx - 1
	for i >= 0 && !unicode.IsSpace(chars[i]) {
		i--
	}
	wordStart := i + 1
	wordLen := sepIdx - wordStart
	if wordLen <= 0 {
		return false
	}
	if len(entered) < sepIdx {
		return false
	}
	for k := wordStart; k < sepIdx; k++ {
		if entered[k] != chars[k] {
			return false
		}
	}
	s.Score += float64(BasePointFactor*wordLen) * s.Multiplier
	s.Streak++
	s.Multiplier = math.Min(MultiplierMax, s.Multiplier+MultiplierStep)
	return true
}

// ResetStreak zeroes the streak and returns the multiplier to baseline.
func (s *State) ResetStreak() {
	s.Streak = 0
	s.Multiplier = MultiplierStart
}

// CountCorrect returns how many entered characters match the expected
// stream at the same index. Entries beyond the stream never count.
func CountCorrect(chars, entered []rune) int {
	correct := 0
	for i, r := range entered {
		if i < len(chars) && r == chars[i] {
			correct++
		}
	}
	return correct
}

// Accuracy returns the percentage of typed characters that were correct.
// An untouched session reports 100.
func Accuracy(correct, typed int) float64 {
	if typed == 0 {
		return 100
	}
	return float64(correct) / float64(typed) * 100
}

// WPM returns words per minute using the standard five-characters-per-word
// convention. Elapsed is floored to a small positive value.
func WPM(correct int, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs < minElapsedSeconds {
		secs = minElapsedSeconds
	}
	return (float64(correct) / WPMDivisor) / (secs / 60)
}
