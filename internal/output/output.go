// Package output prints status lines for CLI commands.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	keyStyle     = lipgloss.NewStyle().Bold(true)
)

// Stdout and Stderr are the writers status lines go to.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Success prints a success message
func Success(format string, args ...any) {
	fmt.Fprintln(Stdout, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Error prints an error message to stderr
func Error(format string, args ...any) {
	fmt.Fprintln(Stderr, errorStyle.Render("ERROR: "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning to stderr
func Warning(format string, args ...any) {
	fmt.Fprintln(Stderr, warningStyle.Render("WARNING: "+fmt.Sprintf(format, args...)))
}

// KeyValue prints an aligned "key  value" line.
func KeyValue(key string, value any) {
	fmt.Fprintf(Stdout, "%s  %v\n", keyStyle.Render(fmt.Sprintf("%-16s", key)), value)
}
