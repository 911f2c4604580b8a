// Package session owns the live state of one typing session: the typed
// buffer, the cursor position, the session clock, and the score. The
// engine holds no package-level state; callers thread it through
// explicitly.
package session

import (
	"time"
	"unicode"

	"github.com/alpherox/typingtxt/internal/scoring"
	"github.com/alpherox/typingtxt/internal/snapshot"
	"github.com/alpherox/typingtxt/internal/textproc"
)

// Engine is the typing state machine for a single session. It is not
// safe for concurrent use; the event loop owns it exclusively.
//
// Invariant: len(entered) == position at all times.
type Engine struct {
	text      textproc.Result
	source    string
	entered   []rune
	position  int
	startedAt time.Time
	score     scoring.State
}

// LiveStats is the read-only statistics tuple polled per redraw.
type LiveStats struct {
	Typed     int
	Correct   int
	Incorrect int
	Elapsed   time.Duration
	Accuracy  float64
	WPM       float64
}

// New creates a fresh session over preprocessed text. Source names the
// practice text file and may be empty for pasted text.
func New(text textproc.Result, source string) *Engine {
	return &Engine{
		text:   text,
		source: source,
		score:  scoring.NewState(),
	}
}

// Restore rebuilds a session from a snapshot. The typed buffer is
// restored verbatim from the raw buffer when present; legacy saves
// without one synthesize a perfectly-typed buffer up to the saved
// position. The session clock is backdated by the saved elapsed time.
func Restore(text textproc.Result, source string, snap snapshot.Snapshot) *Engine {
	e := New(text, source)
	if snap.RawEntered != nil {
		e.entered = snapshot.DecodeRunes(snap.RawEntered)
	} else {
		pos := snap.Position
		if pos > len(text.Chars) {
			pos = len(text.Chars)
		}
		e.entered = append([]rune(nil), text.Chars[:pos]...)
	}
	e.position = len(e.entered)
	e.score = scoring.State{
		Score:      snap.Score,
		Streak:     snap.Streak,
		Multiplier: snap.Multiplier,
	}
	if e.score.Multiplier <= 0 {
		e.score.Multiplier = scoring.MultiplierStart
	}
	e.startedAt = time.Now().Add(-time.Duration(snap.ElapsedTime * float64(time.Second)))
	return e
}

// Start begins the session clock. It is a no-op when already running;
// every keystroke handler also starts the clock implicitly.
func (e *Engine) Start() {
	if e.startedAt.IsZero() {
		e.startedAt = time.Now()
	}
}

// Started reports whether the session clock is running.
func (e *Engine) Started() bool {
	return !e.startedAt.IsZero()
}

// HandleRune records one printable character. A mismatch against the
// expected character (or typing past the end of the stream) resets the
// streak. When the expected character at the new previous index is
// whitespace the preceding word is evaluated, regardless of what was
// actually typed.
func (e *Engine) HandleRune(r rune) {
	e.Start()
	hasExpected := e.position < len(e.text.Chars)
	var expected rune
	if hasExpected {
		expected = e.text.Chars[e.position]
	}
	e.entered = append(e.entered, r)
	e.position++
	if !hasExpected || r != expected {
		e.score.ResetStreak()
	}
	e.evaluateSeparator()
}

// HandleEnter records a newline keystroke. A mismatched Enter does not
// reset the streak on its own; only separator alignment matters here.
func (e *Engine) HandleEnter() {
	e.Start()
	e.entered = append(e.entered, '\n')
	e.position++
	e.evaluateSeparator()
}

// HandleBackspace removes the last typed character. No-op at position 0.
func (e *Engine) HandleBackspace() {
	e.Start()
	if len(e.entered) == 0 {
		return
	}
	e.entered = e.entered[:len(e.entered)-1]
	e.position--
}

// HandleWordDelete removes the previous word from the buffer tail and
// returns how many characters were removed.
func (e *Engine) HandleWordDelete() int {
	e.Start()
	buf, removed := smartDelete(e.entered)
	e.entered = buf
	e.position -= removed
	return removed
}

func (e *Engine) evaluateSeparator() {
	idx := e.position - 1
	if idx >= 0 && idx < len(e.text.Chars) && unicode.IsSpace(e.text.Chars[idx]) {
		e.score.EvaluateWordBoundary(e.text.Chars, e.entered, idx)
	}
}

// Stats computes live statistics over the full typed buffer. Callable at
// any time, including before the session starts.
func (e *Engine) Stats() LiveStats {
	typed := len(e.entered)
	correct := scoring.CountCorrect(e.text.Chars, e.entered)
	stats := LiveStats{
		Typed:     typed,
		Correct:   correct,
		Incorrect: typed - correct,
		Accuracy:  scoring.Accuracy(correct, typed),
	}
	if !e.startedAt.IsZero() {
		stats.Elapsed = time.Since(e.startedAt)
		stats.WPM = scoring.WPM(correct, stats.Elapsed)
	}
	return stats
}

// IsComplete reports whether the cursor has reached the end of the text.
func (e *Engine) IsComplete() bool {
	return e.position >= e.text.TotalChars
}

// Position returns the cursor position in the character stream.
func (e *Engine) Position() int {
	return e.position
}

// Entered returns the typed buffer. The caller must not mutate it.
func (e *Engine) Entered() []rune {
	return e.entered
}

// Text returns the preprocessed text the session runs over.
func (e *Engine) Text() textproc.Result {
	return e.text
}

// Source returns the practice text path, or "" for pasted text.
func (e *Engine) Source() string {
	return e.source
}

// Score returns the current score.
func (e *Engine) Score() float64 { return e.score.Score }

// Streak returns the current streak of fully-correct words.
func (e *Engine) Streak() int { return e.score.Streak }

// Multiplier returns the current score multiplier.
func (e *Engine) Multiplier() float64 { return e.score.Multiplier }

// Snapshot captures the complete resumable state of the session.
func (e *Engine) Snapshot(now time.Time) snapshot.Snapshot {
	stats := e.Stats()
	snap := snapshot.Snapshot{
		Position:    e.position,
		ElapsedTime: stats.Elapsed.Seconds(),
		Correct:     stats.Correct,
		Incorrect:   stats.Incorrect,
		Score:       e.score.Score,
		Streak:      e.score.Streak,
		Multiplier:  e.score.Multiplier,
		Timestamp:   now.Format(snapshot.TimestampLayout),
		WrapWidth:   e.text.WrapWidth,
		RawEntered:  snapshot.EncodeRunes(e.entered),
	}
	if e.source != "" {
		src := e.source
		snap.Filename = &src
	}
	return snap
}
