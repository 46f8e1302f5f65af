package otp

import "github.com/charmbracelet/lipgloss"

// Font selects text attributes. Terminals have no font families, so a font is
// just the attributes the cell text is drawn with.
type Font struct {
	Bold      bool
	Italic    bool
	Underline bool
}

// Style is the cosmetic configuration applied uniformly to every box.
type Style struct {
	Background       lipgloss.TerminalColor
	Text             lipgloss.TerminalColor
	BorderColor      lipgloss.TerminalColor
	FocusBorderColor lipgloss.TerminalColor
	Muted            lipgloss.TerminalColor
	Font             Font
	CornerRadius     int // > 0 selects rounded corners
	BorderWidth      int // 0 none, 1 normal, >= 2 thick
	Spacing          int // blank columns between boxes
	CellWidth        int // inner width of a box
}

// Default palette (256-colour codes).
var (
	primaryColor = lipgloss.Color("212")
	borderColor  = lipgloss.Color("240")
	mutedColor   = lipgloss.Color("241")
	textColor    = lipgloss.Color("252")
)

// DefaultStyle returns rounded, normal-width boxes one column apart.
func DefaultStyle() Style {
	return Style{
		Background:       lipgloss.NoColor{},
		Text:             textColor,
		BorderColor:      borderColor,
		FocusBorderColor: primaryColor,
		Muted:            mutedColor,
		Font:             Font{Bold: true},
		CornerRadius:     1,
		BorderWidth:      1,
		Spacing:          1,
		CellWidth:        3,
	}
}

func (s Style) border() (lipgloss.Border, bool) {
	switch {
	case s.BorderWidth <= 0:
		return lipgloss.Border{}, false
	case s.BorderWidth >= 2:
		return lipgloss.ThickBorder(), true
	case s.CornerRadius > 0:
		return lipgloss.RoundedBorder(), true
	default:
		return lipgloss.NormalBorder(), true
	}
}

// textStyle is the style of the characters inside a box.
func (s Style) textStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.Text).
		Background(s.Background).
		Bold(s.Font.Bold).
		Italic(s.Font.Italic).
		Underline(s.Font.Underline)
}

// cellStyle is the style of a whole box in the given state.
func (s Style) cellStyle(focused, interactive bool) lipgloss.Style {
	st := lipgloss.NewStyle().
		Width(max(s.CellWidth, 1)).
		Align(lipgloss.Center).
		Background(s.Background)

	if !interactive {
		st = st.Foreground(s.Muted)
	}

	if b, ok := s.border(); ok {
		c := s.BorderColor
		if focused {
			c = s.FocusBorderColor
		}
		st = st.Border(b).BorderForeground(c).BorderBackground(s.Background)
	}
	return st
}
