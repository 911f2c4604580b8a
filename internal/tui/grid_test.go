package tui

import (
	"strings"
	"testing"

	"github.com/alpherox/typingtxt/internal/textproc"
)

func TestBuildTypedMap(t *testing.T) {
	text := textproc.Preprocess("ab", 10, nil)
	cells := buildTypedMap(text, []rune("ax"))
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	first := cells[textproc.Pos{Line: 0, Col: 0}]
	if !first.correct || first.entry != 'a' {
		t.Fatalf("unexpected first cell %+v", first)
	}
	second := cells[textproc.Pos{Line: 0, Col: 1}]
	if second.correct || second.entry != 'x' {
		t.Fatalf("unexpected second cell %+v", second)
	}
}

func TestBuildTypedMapSkipsOverflow(t *testing.T) {
	text := textproc.Preprocess("ab", 10, nil)
	cells := buildTypedMap(text, []rune("abcd"))
	if len(cells) != 2 {
		t.Fatalf("entries past the stream must be skipped, got %d cells", len(cells))
	}
}

func TestRenderGridStyles(t *testing.T) {
	text := textproc.Preprocess("cat", 10, nil)
	got := renderGrid(text, []rune("cx"), 2, 0, 1)
	want := correctStyle.Render("c") +
		incorrectStyle.Render("x") +
		cursorStyle.Render("t")
	if got != want {
		t.Fatalf("unexpected render:\n got %q\nwant %q", got, want)
	}
}

func TestRenderGridPendingRow(t *testing.T) {
	text := textproc.Preprocess("ab", 10, nil)
	got := renderGrid(text, nil, 0, 0, 1)
	want := cursorStyle.Render("a") + pendingStyle.Render("b")
	if got != want {
		t.Fatalf("unexpected render:\n got %q\nwant %q", got, want)
	}
}

func TestRenderGridWrongSpaceShowsBullet(t *testing.T) {
	text := textproc.Preprocess("a b", 10, nil)
	got := renderGrid(text, []rune("axb"), 3, 0, 1)
	if !strings.Contains(got, incorrectStyle.Render("•")) {
		t.Fatalf("expected a bullet for the mistyped space, got %q", got)
	}
}

func TestRenderGridNewlineCursor(t *testing.T) {
	// "cat dog" at width 3 wraps so the cursor lands on a newline cell
	// past the end of the first line.
	text := textproc.Preprocess("cat dog", 3, nil)
	got := renderGrid(text, []rune("cat"), 3, 0, 1)
	if !strings.HasSuffix(got, cursorStyle.Render("¶")) {
		t.Fatalf("expected a pilcrow cursor after the line, got %q", got)
	}
}

func TestRenderGridWindow(t *testing.T) {
	text := textproc.Preprocess("one two three four five six", 4, nil)
	if len(text.Lines) < 4 {
		t.Fatalf("expected several wrapped lines, got %v", text.Lines)
	}
	got := renderGrid(text, nil, 0, 1, 2)
	if rows := strings.Count(got, "\n") + 1; rows != 2 {
		t.Fatalf("expected a 2-row window, got %d rows", rows)
	}
}

func TestRenderGridHeightPastEnd(t *testing.T) {
	text := textproc.Preprocess("ab", 10, nil)
	got := renderGrid(text, []rune("ab"), 2, 0, 50)
	if strings.Count(got, "\n") != 0 {
		t.Fatalf("window must clamp to the available lines, got %q", got)
	}
}
