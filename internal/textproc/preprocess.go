// Package textproc prepares raw text for fixed-width typing display.
package textproc

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/mattn/go-runewidth"
)

const (
	defaultWrapWidth = 80
	reportInterval   = 10 * time.Millisecond
)

// ProgressFunc receives advisory preprocessing progress updates. Calls are
// throttled; fraction is in [0, 1] and the final call always reports 1.0.
type ProgressFunc func(fraction float64, label string)

// Pos locates a character-stream index on the display grid.
type Pos struct {
	Line int
	Col  int
}

// Result holds the preprocessed form of a practice text: the wrapped
// display lines, the flattened character stream (one '\n' between
// consecutive lines, none after the last), and the index-to-grid map.
type Result struct {
	Lines      []string
	Chars      []rune
	Positions  []Pos
	TotalChars int
	WrapWidth  int
}

// Preprocess wraps text to the given display width and builds the
// character stream and position map. Line endings must already be
// normalized to '\n'. A non-positive width falls back to 80.
func Preprocess(text string, wrapWidth int, progress ProgressFunc) Result {
	if wrapWidth <= 0 {
		wrapWidth = defaultWrapWidth
	}
	rep := &reporter{fn: progress}

	paragraphs := strings.Split(text, "\n")
	totalLen := 0
	for _, p := range paragraphs {
		totalLen += len(p)
	}

	var lines []string
	accLen := 0
	for i, p := range paragraphs {
		lines = append(lines, wrapParagraph(p, wrapWidth)...)
		accLen += len(p)
		fraction := 1.0
		if totalLen > 0 {
			fraction = float64(accLen) / float64(totalLen)
		}
		rep.report(fraction, fmt.Sprintf("Wrapping text (paragraph %d/%d)", i+1, len(paragraphs)))
	}

	chars := make([]rune, 0, len(text))
	for i, line := range lines {
		chars = append(chars, []rune(line)...)
		if i != len(lines)-1 {
			chars = append(chars, '\n')
		}
		rep.report(float64(i+1)/float64(len(lines)), fmt.Sprintf("Building char map (%d/%d lines)", i+1, len(lines)))
	}

	positions := make([]Pos, len(chars))
	line, col := 0, 0
	for i, ch := range chars {
		positions[i] = Pos{Line: line, Col: col}
		if ch == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}

	rep.report(1.0, "Preprocessing complete")
	return Result{
		Lines:      lines,
		Chars:      chars,
		Positions:  positions,
		TotalChars: len(chars),
		WrapWidth:  wrapWidth,
	}
}

// wrapParagraph greedily wraps one paragraph into lines of at most width
// display cells. Whitespace is preserved so that joining the returned
// lines reproduces the paragraph exactly. Chunks wider than the wrap
// width are hard-split.
func wrapParagraph(p string, width int) []string {
	runes := []rune(p)
	if len(runes) == 0 {
		return []string{""}
	}
	var lines []string
	line := make([]rune, 0, width)
	lineWidth := 0
	for i := 0; i < len(runes); {
		j := i + 1
		space := unicode.IsSpace(runes[i])
		for j < len(runes) && unicode.IsSpace(runes[j]) == space {
			j++
		}
		chunk := runes[i:j]
		chunkWidth := runesWidth(chunk)
		switch {
		case lineWidth+chunkWidth <= width:
			line = append(line, chunk...)
			lineWidth += chunkWidth
		case chunkWidth <= width:
			lines = append(lines, string(line))
			line = append(line[:0], chunk...)
			lineWidth = chunkWidth
		default:
			for _, r := range chunk {
				rw := runewidth.RuneWidth(r)
				if lineWidth+rw > width && len(line) > 0 {
					lines = append(lines, string(line))
					line = line[:0]
					lineWidth = 0
				}
				line = append(line, r)
				lineWidth += rw
			}
		}
		i = j
	}
	lines = append(lines, string(line))
	return lines
}

func runesWidth(runes []rune) int {
	total := 0
	for _, r := range runes {
		total += runewidth.RuneWidth(r)
	}
	return total
}

type reporter struct {
	fn   ProgressFunc
	last time.Time
}

func (r *reporter) report(fraction float64, label string) {
	if r.fn == nil {
		return
	}
	now := time.Now()
	if fraction < 1.0 && now.Sub(r.last) < reportInterval {
		return
	}
	if fraction > 1.0 {
		fraction = 1.0
	}
	r.fn(fraction, label)
	r.last = now
}
