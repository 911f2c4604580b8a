package tui

import "github.com/charmbracelet/lipgloss"

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Underline(true)
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#1C1C1C")).Background(lipgloss.Color("#C89A3A")).Bold(true)
	topBarStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#56B6C2")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)
