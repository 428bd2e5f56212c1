package commands

import (
	"github.com/charmbracelet/lipgloss"

	"context-variants/internal/diagnostic"
)

// Palette.
var (
	colorError   = lipgloss.Color("#e53935")
	colorWarning = lipgloss.Color("#FFC107")
	colorInfo    = lipgloss.Color("#2196F3")
	colorSuccess = lipgloss.Color("#8BC34A")
	colorMuted   = lipgloss.Color("#8a94a6")
)

// Styles used for terminal output. Colors are dropped automatically when the
// output is not a terminal.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the standard styles.
func DefaultStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(colorInfo),
		Success: lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	}
}

func severityStyle(s *Styles, sev diagnostic.DiagnosticSeverity) lipgloss.Style {
	switch sev {
	case diagnostic.DiagnosticError:
		return s.Error
	case diagnostic.DiagnosticWarning:
		return s.Warning
	case diagnostic.DiagnosticInfo:
		return s.Info
	default:
		return s.Muted
	}
}
