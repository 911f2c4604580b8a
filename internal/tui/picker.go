package tui

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PickerModel lets the user choose a practice text from the texts folder,
// switch to custom pasted text, or exit.
type PickerModel struct {
	files []string
	index int

	Choice string
	Custom bool
	Quit   bool
}

// NewPicker constructs a file picker over the scanned text paths.
func NewPicker(files []string) *PickerModel {
	return &PickerModel{files: files}
}

// Init implements tea.Model.
func (m *PickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.Quit = true
		return m, tea.Quit
	case "up", "k":
		if m.index > 0 {
			m.index--
		}
	case "down", "j":
		if m.index < len(m.files)-1 {
			m.index++
		}
	case "c":
		m.Custom = true
		return m, tea.Quit
	case "enter":
		if len(m.files) == 0 {
			m.Custom = true
		} else {
			m.Choice = m.files[m.index]
		}
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m *PickerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Which text would you like to practice typing?"))
	b.WriteString("\n\n")
	if len(m.files) == 0 {
		b.WriteString(dimStyle.Render("No text files found in the texts folder."))
		b.WriteRune('\n')
	}
	for i, file := range m.files {
		name := filepath.Base(file)
		if i == m.index {
			b.WriteString(selectedStyle.Render("> " + name))
		} else {
			b.WriteString(dimStyle.Render("  " + name))
		}
		b.WriteRune('\n')
	}
	b.WriteRune('\n')
	b.WriteString(footerStyle.Render("enter select · c custom text · q quit"))
	b.WriteRune('\n')
	return b.String()
}
