package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alpherox/typingtxt/internal/textproc"
)

type progressMsg struct {
	fraction float64
	label    string
}

type preprocessedMsg struct {
	result textproc.Result
}

// LoadingModel runs text preprocessing in the background and renders a
// progress bar from its throttled updates. Result is valid once Done is
// true; Canceled is set when the user quits before preprocessing ends.
type LoadingModel struct {
	bar      progress.Model
	label    string
	fraction float64
	updates  chan tea.Msg
	done     chan struct{}

	Result   textproc.Result
	Done     bool
	Canceled bool
}

// NewLoading starts preprocessing text at the given wrap width.
func NewLoading(text string, wrapWidth int) *LoadingModel {
	m := &LoadingModel{
		bar:     progress.New(progress.WithDefaultGradient()),
		label:   "Preparing text...",
		updates: make(chan tea.Msg, 64),
		done:    make(chan struct{}),
	}
	go func() {
		result := textproc.Preprocess(text, wrapWidth, func(fraction float64, label string) {
			select {
			case m.updates <- progressMsg{fraction: fraction, label: label}:
			default:
				// Drop a throttled update rather than block preprocessing.
			}
		})
		// A cancel may leave the updates channel undrained; done releases
		// the worker instead of blocking it on the final send.
		select {
		case m.updates <- preprocessedMsg{result: result}:
		case <-m.done:
		}
	}()
	return m
}

// Init implements tea.Model.
func (m *LoadingModel) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m *LoadingModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		return <-m.updates
	}
}

// Update implements tea.Model.
func (m *LoadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := msg.Width - 24
		if width < 10 {
			width = 10
		}
		m.bar.Width = width
		return m, nil
	case progressMsg:
		m.fraction = msg.fraction
		m.label = msg.label
		return m, m.waitForUpdate()
	case preprocessedMsg:
		m.Result = msg.result
		m.Done = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if !m.Canceled {
				m.Canceled = true
				close(m.done)
			}
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *LoadingModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Preparing and pre-processing text..."))
	b.WriteRune('\n')
	b.WriteString(dimStyle.Render(m.label))
	b.WriteRune('\n')
	b.WriteString(m.bar.ViewAs(m.fraction))
	b.WriteString(fmt.Sprintf(" %5.1f%%", m.fraction*100))
	b.WriteRune('\n')
	return b.String()
}
