package config

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// lipglossColor maps a configured colour (ANSI index like "212" or hex like
// "#ff5f87") to a terminal colour.
func lipglossColor(raw string) lipgloss.TerminalColor {
	return lipgloss.Color(strings.TrimSpace(raw))
}
