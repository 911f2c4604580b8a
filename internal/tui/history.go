package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alpherox/typingtxt/internal/stats"
	"github.com/alpherox/typingtxt/internal/store"
)

// HistoryModel renders past sessions as a browsable table with a WPM
// trend sparkline underneath.
type HistoryModel struct {
	table table.Model
	spark string
	count int
}

// NewHistory constructs the history view from sessions ordered
// oldest-first; the table lists them newest-first.
func NewHistory(sessions []store.Session) *HistoryModel {
	columns := []table.Column{
		{Title: "When", Width: 19},
		{Title: "Source", Width: 24},
		{Title: "WPM", Width: 7},
		{Title: "Accuracy", Width: 9},
		{Title: "Score", Width: 8},
		{Title: "Streak", Width: 6},
	}
	rows := make([]table.Row, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		wpm, acc := stats.SessionMetrics(s.Correct, s.Typed, s.DurationMs)
		source := "(pasted text)"
		if s.Source != "" {
			source = filepath.Base(s.Source)
		}
		rows = append(rows, table.Row{
			s.FinishedAt.Format("2006-01-02 15:04:05"),
			source,
			fmt.Sprintf("%.1f", wpm),
			fmt.Sprintf("%.1f%%", acc*100),
			fmt.Sprintf("%d", int(s.Score)),
			fmt.Sprintf("%d", s.Streak),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#1C1C1C")).
		Background(lipgloss.Color("#C89A3A"))
	t.SetStyles(styles)

	return &HistoryModel{
		table: t,
		spark: stats.Sparkline(stats.TrendWPM(sessions)),
		count: len(sessions),
	}
}

// Init implements tea.Model.
func (m *HistoryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *HistoryModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Session history (%d sessions)", m.count)))
	b.WriteString("\n\n")
	if m.count == 0 {
		b.WriteString(dimStyle.Render("No sessions recorded yet."))
		b.WriteRune('\n')
	} else {
		b.WriteString(m.table.View())
		b.WriteRune('\n')
		b.WriteString(dimStyle.Render("WPM trend: " + m.spark))
		b.WriteRune('\n')
	}
	b.WriteString(footerStyle.Render("q quit"))
	b.WriteRune('\n')
	return b.String()
}
