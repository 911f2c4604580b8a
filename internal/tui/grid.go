// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"

	"github.com/alpherox/typingtxt/internal/textproc"
)

type typedCell struct {
	entry   rune
	correct bool
}

// buildTypedMap indexes every typed character by its grid position.
// Entries beyond the character stream have no grid cell and are skipped.
func buildTypedMap(text textproc.Result, entered []rune) map[textproc.Pos]typedCell {
	cells := make(map[textproc.Pos]typedCell, len(entered))
	for i, entry := range entered {
		if i >= len(text.Chars) {
			break
		}
		cells[text.Positions[i]] = typedCell{entry: entry, correct: entry == text.Chars[i]}
	}
	return cells
}

// renderGrid renders the display lines in [top, top+height) with typed
// characters styled by correctness and the cursor cell highlighted.
func renderGrid(text textproc.Result, entered []rune, position, top, height int) string {
	cells := buildTypedMap(text, entered)
	end := top + height
	if end > len(text.Lines) {
		end = len(text.Lines)
	}
	var cursor *textproc.Pos
	if position < len(text.Positions) {
		p := text.Positions[position]
		cursor = &p
	}

	var b strings.Builder
	for ln := top; ln < end; ln++ {
		if ln > top {
			b.WriteRune('\n')
		}
		for col, target := range []rune(text.Lines[ln]) {
			pos := textproc.Pos{Line: ln, Col: col}
			if cursor != nil && pos == *cursor {
				b.WriteString(cursorStyle.Render(string(displayRune(text.Chars[position]))))
				continue
			}
			if cell, ok := cells[pos]; ok {
				b.WriteString(styleTyped(target, cell))
				continue
			}
			b.WriteString(pendingStyle.Render(string(target)))
		}
		// The newline separator cell sits past the end of the line.
		if cursor != nil && cursor.Line == ln && cursor.Col >= len([]rune(text.Lines[ln])) {
			b.WriteString(cursorStyle.Render(string(displayRune(text.Chars[position]))))
		}
	}
	return b.String()
}

func styleTyped(target rune, cell typedCell) string {
	if cell.correct {
		return correctStyle.Render(string(displayRune(cell.entry)))
	}
	shown := cell.entry
	if target == ' ' || shown == '\n' || shown == ' ' {
		shown = '•'
	}
	return incorrectStyle.Render(string(shown))
}

func displayRune(r rune) rune {
	if r == '\n' {
		return '¶'
	}
	return r
}
