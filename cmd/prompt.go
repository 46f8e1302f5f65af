package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/otpbox/internal/config"
	"github.com/marcus/otpbox/pkg/otp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// promptSettings is the fully resolved configuration for one prompt run.
// Precedence: flags > environment > config file > defaults.
type promptSettings struct {
	Boxes   int
	Kind    otp.Kind
	Once    bool
	Mask    bool
	Title   string
	LogFile string
	Style   otp.Style
}

func addPromptFlags(f *pflag.FlagSet) {
	f.IntP("boxes", "n", config.DefaultBoxes, "number of boxes")
	f.StringP("filter", "f", config.DefaultFilter, "allowed characters: digits, letters, word, any")
	f.Bool("once", false, "report completion only once")
	f.Bool("mask", false, "hide typed characters")
	f.StringP("title", "t", "Enter code", "title shown above the boxes")
	f.String("log-file", "", "write debug logs to this file")
}

func resolveSettings(cfg *config.Config, f *pflag.FlagSet) (promptSettings, error) {
	s := promptSettings{
		Boxes: cfg.BoxCount(),
		Once:  cfg.Once,
		Mask:  cfg.Mask,
		Style: cfg.Style(),
	}

	kind, err := cfg.Kind()
	if err != nil {
		return s, err
	}
	s.Kind = kind

	if f.Changed("boxes") {
		s.Boxes, _ = f.GetInt("boxes")
	}
	if f.Changed("filter") {
		raw, _ := f.GetString("filter")
		if s.Kind, err = otp.ParseKind(raw); err != nil {
			return s, err
		}
	}
	if f.Changed("once") {
		s.Once, _ = f.GetBool("once")
	}
	if f.Changed("mask") {
		s.Mask, _ = f.GetBool("mask")
	}
	s.Title, _ = f.GetString("title")
	s.LogFile, _ = f.GetString("log-file")

	if s.Boxes <= 0 || s.Boxes > otp.MaxBoxes {
		return s, fmt.Errorf("%w: %d (want 1..%d)", otp.ErrInvalidBoxCount, s.Boxes, otp.MaxBoxes)
	}
	return s, nil
}

func (s promptSettings) widgetOptions() []otp.Option {
	mode := otp.CompletionEvery
	if s.Once {
		mode = otp.CompletionOnce
	}
	return []otp.Option{
		otp.WithKind(s.Kind),
		otp.WithCompletion(mode),
		otp.WithMask(s.Mask),
		otp.WithStyle(s.Style),
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// promptModel hosts the widget inline, without the alternate screen. The last
// reported code is submitted with enter, so edits after a completion can be
// reported again under CompletionEvery.
type promptModel struct {
	widget      *otp.Widget
	title       string
	code        string
	completions int
	submitted   bool
	aborted     bool
}

func newPromptModel(w *otp.Widget, title string) promptModel {
	// title line plus one blank line sit above the boxes
	w.SetOrigin(0, 2)
	return promptModel{widget: w, title: title}
}

func (m promptModel) Init() tea.Cmd {
	return m.widget.Init()
}

// ready reports whether the boxes still hold the last reported code.
func (m promptModel) ready() bool {
	return m.code != "" && m.code == m.widget.CombinedCode()
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if !m.ready() {
				return m, nil
			}
			m.submitted = true
			return m, tea.Quit
		case "ctrl+r":
			m.code = ""
			return m, m.widget.Reset()
		}
	case otp.CompletedMsg:
		m.code = msg.Code
		m.completions++
		return m, nil
	}

	_, cmd := m.widget.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.submitted || m.aborted {
		return ""
	}
	return titleStyle.Render(m.title) + "\n\n" +
		m.widget.View() + "\n\n" +
		hintStyle.Render(m.hint()) + "\n"
}

func (m promptModel) hint() string {
	switch {
	case m.ready():
		return "enter: submit • backspace: edit • esc: cancel"
	case m.code != "":
		// boxes changed since the last completion
		return "backspace: previous box • ctrl+r: start over • esc: cancel"
	default:
		return "backspace: previous box • esc: cancel"
	}
}

func runPrompt(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(getBaseDir())
	if err != nil {
		return err
	}
	warnConfig(cfg)
	settings, err := resolveSettings(cfg, cmd.Flags())
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(settings.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("stdin is not a terminal")
	}

	w := otp.New(append(settings.widgetOptions(), otp.WithLogger(logger))...)
	if err := w.SetBoxCount(settings.Boxes); err != nil {
		return err
	}

	// The UI draws on stderr so stdout carries only the code.
	p := tea.NewProgram(newPromptModel(w, settings.Title),
		tea.WithOutput(os.Stderr),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run prompt: %w", err)
	}

	result, ok := final.(promptModel)
	if !ok || !result.submitted {
		logger.Info("prompt aborted")
		return errAborted
	}

	logger.Info("code entered", "boxes", settings.Boxes, "filter", settings.Kind, "completions", result.completions)
	fmt.Fprintln(cmd.OutOrStdout(), result.code)
	return nil
}
