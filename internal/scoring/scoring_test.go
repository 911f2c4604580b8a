package scoring

import (
	"math"
	"testing"
	"time"
)

func TestEvaluateWordBoundaryAwards(t *testing.T) {
	chars := []rune("cat dog")
	entered := []rune("cat ")
	state := NewState()

	awarded := state.EvaluateWordBoundary(chars, entered, 3)
	if !awarded {
		t.Fatalf("expected award for fully-correct word")
	}
	want := float64(BasePointFactor*3) * MultiplierStart
	if state.Score != want {
		t.Fatalf("expected score %f, got %f", want, state.Score)
	}
	if state.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", state.Streak)
	}
	if math.Abs(state.Multiplier-(MultiplierStart+MultiplierStep)) > 1e-9 {
		t.Fatalf("expected multiplier %f, got %f", MultiplierStart+MultiplierStep, state.Multiplier)
	}
}

func TestEvaluateWordBoundaryMismatch(t *testing.T) {
	chars := []rune("cat dog")
	entered := []rune("cot ")
	state := NewState()

	if state.EvaluateWordBoundary(chars, entered, 3) {
		t.Fatalf("expected no award on mismatch")
	}
	if state.Score != 0 || state.Streak != 0 {
		t.Fatalf("mismatch must not change score or streak: %+v", state)
	}
	if state.Multiplier != MultiplierStart {
		t.Fatalf("mismatch must not change multiplier, got %f", state.Multiplier)
	}
}

func TestEvaluateWordBoundaryPartialBuffer(t *testing.T) {
	chars := []rune("cat dog")
	entered := []rune("ca")
	state := NewState()

	if state.EvaluateWordBoundary(chars, entered, 3) {
		t.Fatalf("expected no award when word is not fully typed")
	}
	if state.Score != 0 {
		t.Fatalf("expected untouched score, got %f", state.Score)
	}
}

func TestEvaluateWordBoundaryEmptyWord(t *testing.T) {
	chars := []rune("  cat")
	entered := []rune("  ")
	state := NewState()

	if state.EvaluateWordBoundary(chars, entered, 1) {
		t.Fatalf("expected no award for an empty word")
	}
}

func TestMultiplierCap(t *testing.T) {
	chars := []rune("ab ")
	entered := []rune("ab ")
	state := State{Multiplier: MultiplierMax - MultiplierStep/2}

	if !state.EvaluateWordBoundary(chars, entered, 2) {
		t.Fatalf("expected award")
	}
	if state.Multiplier != MultiplierMax {
		t.Fatalf("expected multiplier capped at %f, got %f", MultiplierMax, state.Multiplier)
	}
}

func TestResetStreak(t *testing.T) {
	state := State{Score: 120, Streak: 7, Multiplier: 2.5}
	state.ResetStreak()
	if state.Streak != 0 {
		t.Fatalf("expected streak 0, got %d", state.Streak)
	}
	if state.Multiplier != MultiplierStart {
		t.Fatalf("expected multiplier %f, got %f", MultiplierStart, state.Multiplier)
	}
	if state.Score != 120 {
		t.Fatalf("reset must not touch the score, got %f", state.Score)
	}
}

func TestCountCorrect(t *testing.T) {
	chars := []rune("cat dog")
	entered := []rune("cot doggy")
	// 'c', 't', ' ', 'd', 'o', 'g' match; "gy" is past the stream.
	if got := CountCorrect(chars, entered); got != 6 {
		t.Fatalf("expected 6 correct, got %d", got)
	}
}

func TestAccuracy(t *testing.T) {
	if got := Accuracy(0, 0); got != 100 {
		t.Fatalf("expected 100%% before typing, got %f", got)
	}
	if got := Accuracy(3, 4); got != 75 {
		t.Fatalf("expected 75%%, got %f", got)
	}
}

func TestWPM(t *testing.T) {
	if got := WPM(25, time.Minute); got != 5 {
		t.Fatalf("expected 5 WPM, got %f", got)
	}
	if got := WPM(0, 0); got != 0 {
		t.Fatalf("expected 0 WPM with nothing correct, got %f", got)
	}
	// The zero-elapsed guard must keep the result finite.
	if got := WPM(10, 0); math.IsInf(got, 1) || math.IsNaN(got) {
		t.Fatalf("expected finite WPM at zero elapsed, got %f", got)
	}
}
