package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so everything goes through lipgloss.AdaptiveColor. "Faint" styling is only
// applied on dark backgrounds; faint text on light terminals often becomes
// illegible.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted   lipgloss.TerminalColor = ac("240", "243")
	colorAccent  lipgloss.TerminalColor = ac("27", "62") // blue
	colorDone    lipgloss.TerminalColor = ac("28", "77") // green
	colorOverdue lipgloss.TerminalColor = ac("124", "203")
	colorWarn    lipgloss.TerminalColor = ac("130", "214")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorBoxBorder  lipgloss.TerminalColor = ac("250", "243")
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	accentStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(colorDone)
	overdueStyle = lipgloss.NewStyle().Foreground(colorOverdue).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarn)

	selectedStyle = lipgloss.NewStyle().
			Background(colorSelectedBg).
			Foreground(colorSelectedFg)

	timerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBoxBorder).
			Padding(0, 2)
)

// applyColorProfile sets the lipgloss color profile before the program
// starts. Only NO_COLOR is honored explicitly; otherwise we follow the
// terminal's detected capabilities.
func applyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
