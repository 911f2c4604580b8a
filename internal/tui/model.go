package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/alpherox/typingtxt/internal/session"
	"github.com/alpherox/typingtxt/internal/snapshot"
	"github.com/alpherox/typingtxt/internal/store"
)

const (
	refreshInterval = 100 * time.Millisecond
	statusTTL       = 2 * time.Second
	fallbackSave    = "typing_save.json"
)

type tickMsg time.Time

// Model implements the Bubble Tea practice UI around a session engine.
type Model struct {
	engine   *session.Engine
	history  *store.Store
	savePath string

	width  int
	height int

	status      string
	statusUntil time.Time

	finished bool
	recorded bool
}

// NewPractice constructs the practice UI. history may be nil when the
// session database could not be opened; savePath may be empty to use the
// default save location for the session's source file.
func NewPractice(engine *session.Engine, history *store.Store, savePath string) *Model {
	m := &Model{
		engine:   engine,
		history:  history,
		savePath: savePath,
	}
	if engine.IsComplete() {
		// Degenerate empty text: the session is complete before it starts.
		m.finished = true
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.status != "" && time.Now().After(m.statusUntil) {
			m.status = ""
		}
		if m.finished {
			return m, nil
		}
		return m, tickCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.finished {
		return m, tea.Quit
	}
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyCtrlS:
		m.save()
		return m, nil
	case tea.KeyCtrlW:
		m.engine.HandleWordDelete()
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		m.engine.HandleBackspace()
		return m, nil
	case tea.KeyEnter:
		m.engine.HandleEnter()
	case tea.KeySpace:
		m.engine.HandleRune(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.engine.HandleRune(r)
		}
	default:
		return m, nil
	}
	if m.engine.IsComplete() {
		m.finish()
	}
	return m, nil
}

func (m *Model) finish() {
	m.finished = true
	if m.recorded || m.history == nil || !m.engine.Started() {
		return
	}
	m.recorded = true
	stats := m.engine.Stats()
	sess := store.Session{
		FinishedAt: time.Now(),
		Source:     m.engine.Source(),
		Typed:      stats.Typed,
		Correct:    stats.Correct,
		Incorrect:  stats.Incorrect,
		DurationMs: stats.Elapsed.Milliseconds(),
		Score:      m.engine.Score(),
		Streak:     m.engine.Streak(),
		Multiplier: m.engine.Multiplier(),
	}
	if _, err := m.history.InsertSession(context.Background(), sess); err != nil {
		logErrf("failed to record session: %v\n", err)
	}
}

func (m *Model) save() {
	path := m.savePath
	if path == "" {
		if src := m.engine.Source(); src != "" {
			path = snapshot.DefaultPathFor(src)
		} else {
			path = fallbackSave
		}
	}
	if err := snapshot.Save(path, m.engine.Snapshot(time.Now())); err != nil {
		m.setStatus(fmt.Sprintf("Save failed: %v", err))
		return
	}
	m.setStatus(fmt.Sprintf("Saved to %s", path))
}

func (m *Model) setStatus(status string) {
	m.status = status
	m.statusUntil = time.Now().Add(statusTTL)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.finished {
		return m.summaryView()
	}
	text := m.engine.Text()
	if text.TotalChars == 0 {
		return "(No text provided)\n"
	}

	var b strings.Builder
	b.WriteString(m.topBar())
	b.WriteRune('\n')

	gridHeight := m.height - 4
	if gridHeight < 1 {
		gridHeight = 1
	}
	top := m.viewportTop(gridHeight)
	b.WriteString(renderGrid(text, m.engine.Entered(), m.engine.Position(), top, gridHeight))
	b.WriteRune('\n')

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteRune('\n')
	b.WriteString(footerStyle.Render("esc quit · backspace delete · ctrl+w delete word · ctrl+s save"))
	return b.String()
}

func (m *Model) viewportTop(height int) int {
	text := m.engine.Text()
	cursorLine := 0
	if pos := m.engine.Position(); pos < len(text.Positions) {
		cursorLine = text.Positions[pos].Line
	} else if len(text.Positions) > 0 {
		cursorLine = text.Positions[len(text.Positions)-1].Line
	}
	top := cursorLine - height/2
	if top+height > len(text.Lines) {
		top = len(text.Lines) - height
	}
	if top < 0 {
		top = 0
	}
	return top
}

func (m *Model) topBar() string {
	stats := m.engine.Stats()
	text := m.engine.Text()
	progress := 1.0
	if text.TotalChars > 0 {
		progress = float64(m.engine.Position()) / float64(text.TotalChars)
	}
	bar := progressBar(progress, barWidthFor(m.width))
	status := fmt.Sprintf(" Time: %6.2fs  Accuracy: %6.2f%%  WPM: %6.2f  Streak: %d  Mult: %.2fx  Score: %d  %s",
		stats.Elapsed.Seconds(), stats.Accuracy, stats.WPM,
		m.engine.Streak(), m.engine.Multiplier(), int(m.engine.Score()), bar)
	return topBarStyle.Render(clipToWidth(status, m.width))
}

// clipToWidth truncates to at most width display cells without splitting
// a multi-byte rune. Non-positive widths leave the string untouched.
func clipToWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "")
}

func barWidthFor(totalWidth int) int {
	width := totalWidth / 10
	if width < 8 {
		width = 8
	}
	if width > 16 {
		width = 16
	}
	return width
}

func progressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	if filled >= width {
		return "[" + strings.Repeat("=", width) + "]"
	}
	return "[" + strings.Repeat("=", filled) + ">" + strings.Repeat(".", width-filled-1) + "]"
}

func (m *Model) summaryView() string {
	stats := m.engine.Stats()
	lines := []string{
		titleStyle.Render("Typing session finished!"),
		fmt.Sprintf("Time elapsed: %.2f seconds", stats.Elapsed.Seconds()),
		fmt.Sprintf("Characters typed: %d", stats.Typed),
		fmt.Sprintf("Correct characters: %d", stats.Correct),
		fmt.Sprintf("Incorrect characters: %d", stats.Incorrect),
		fmt.Sprintf("Accuracy: %.2f%%", stats.Accuracy),
		fmt.Sprintf("WPM (approx): %.2f", stats.WPM),
		fmt.Sprintf("Score: %d   Streak: %d   Multiplier: %.2fx",
			int(m.engine.Score()), m.engine.Streak(), m.engine.Multiplier()),
		"",
		dimStyle.Render("Press any key to exit..."),
	}
	return strings.Join(lines, "\n")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
