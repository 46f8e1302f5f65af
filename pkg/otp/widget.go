package otp

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MaxBoxes bounds SetBoxCount.
const MaxBoxes = 64

// ErrInvalidBoxCount is returned by SetBoxCount for counts outside 1..MaxBoxes.
var ErrInvalidBoxCount = errors.New("invalid box count")

// CompletionMode controls how often the completion notification fires.
type CompletionMode int

const (
	// CompletionEvery fires each time the last box is filled.
	CompletionEvery CompletionMode = iota
	// CompletionOnce fires at most once until Reset or SetBoxCount.
	CompletionOnce
)

// CompletedMsg is emitted through the returned tea.Cmd when the last box is
// filled.
type CompletedMsg struct {
	Code string
}

// Option configures a Widget.
type Option func(*Widget)

// WithKind sets the filter kind used for boxes built by SetBoxCount.
func WithKind(k Kind) Option {
	return func(w *Widget) { w.kind = k }
}

// WithCompletion sets the completion mode.
func WithCompletion(mode CompletionMode) Option {
	return func(w *Widget) { w.completion = mode }
}

// WithMask renders typed characters as bullets.
func WithMask(mask bool) Option {
	return func(w *Widget) { w.mask = mask }
}

// WithStyle replaces the default style.
func WithStyle(s Style) Option {
	return func(w *Widget) { w.style = s }
}

// WithKeyMap replaces the default editing keys.
func WithKeyMap(km KeyMap) Option {
	return func(w *Widget) { w.keys = km }
}

// WithLogger sets the logger transitions are reported to at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(w *Widget) {
		if l != nil {
			w.logger = l
		}
	}
}

// Widget is a row of single-character boxes that behaves like one cursor
// sliding left to right. Only boxes[current] is interactive.
type Widget struct {
	boxes   []*Box
	current int
	focused bool

	kind       Kind
	mask       bool
	completion CompletionMode
	completed  bool
	onComplete func(code string)

	style   Style
	keys    KeyMap
	originX int
	originY int
	logger  *slog.Logger

	// cmds queued by box notifications during Update
	pending []tea.Cmd
}

// New returns a focused widget with no boxes. Call SetBoxCount to build the
// row.
func New(opts ...Option) *Widget {
	w := &Widget{
		focused: true,
		kind:    KindDigits,
		style:   DefaultStyle(),
		keys:    DefaultKeyMap(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnComplete registers the completion callback. It is invoked synchronously
// with the combined code.
func (w *Widget) OnComplete(fn func(code string)) {
	w.onComplete = fn
}

// SetBoxCount discards the current row and builds n fresh boxes, each with
// its own one-character policy. Only box 0 is interactive and it takes focus.
// Out-of-range counts leave the row untouched.
func (w *Widget) SetBoxCount(n int) error {
	if n <= 0 || n > MaxBoxes {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidBoxCount, n, MaxBoxes)
	}

	for _, b := range w.boxes {
		b.detach()
	}

	w.boxes = make([]*Box, n)
	for i := range w.boxes {
		b := NewBox()
		b.SetPolicy(NewPolicy(w.kind, 1, b))
		b.SetKeyMap(w.keys)
		b.SetDeleteListener(w)
		b.OnChange(w.boxChanged)
		b.SetInteractive(i == 0)
		if w.mask {
			b.input.EchoMode = textinput.EchoPassword
			b.input.EchoCharacter = '•'
		}
		w.boxes[i] = b
	}
	w.applyStyle()

	w.current = 0
	w.completed = false
	w.pending = nil
	w.queue(w.focusBox(0))

	w.logger.Debug("otp: configured", "boxes", n, "filter", w.kind)
	return nil
}

// Reset clears every box and returns to the initial state without rebuilding.
func (w *Widget) Reset() tea.Cmd {
	for i, b := range w.boxes {
		b.SetValue("")
		b.SetInteractive(i == 0)
	}
	w.current = 0
	w.completed = false
	return w.focusBox(0)
}

// Len returns the number of boxes.
func (w *Widget) Len() int {
	return len(w.boxes)
}

// Box returns the box at index i, or nil if i is out of range.
func (w *Widget) Box(i int) *Box {
	if i < 0 || i >= len(w.boxes) {
		return nil
	}
	return w.boxes[i]
}

// Current returns the index of the box eligible for input, or -1 when the
// row is empty.
func (w *Widget) Current() int {
	if len(w.boxes) == 0 {
		return -1
	}
	return w.current
}

// CombinedCode concatenates every box's content in order. It returns "" if
// any box is missing.
func (w *Widget) CombinedCode() string {
	var sb strings.Builder
	for _, b := range w.boxes {
		if b == nil {
			return ""
		}
		sb.WriteString(b.Value())
	}
	return sb.String()
}

// Focus gives the widget keyboard focus, which lands on the current box.
func (w *Widget) Focus() tea.Cmd {
	w.focused = true
	return w.focusBox(w.current)
}

// Blur removes keyboard focus from the widget. A blurred widget ignores keys.
func (w *Widget) Blur() {
	w.focused = false
	w.pending = nil
	for _, b := range w.boxes {
		b.Blur()
	}
}

// Focused reports whether the widget holds keyboard focus.
func (w *Widget) Focused() bool {
	return w.focused
}

// SetOrigin tells the widget where its top-left corner is drawn, so mouse
// coordinates can be mapped to boxes.
func (w *Widget) SetOrigin(x, y int) {
	w.originX, w.originY = x, y
}

// DeleteAtEmpty implements DeleteListener. It moves the cursor back one box,
// clearing the box it lands on. Notifications from boxes other than the
// current one are ignored.
func (w *Widget) DeleteAtEmpty(b *Box) {
	i := w.indexOf(b)
	if i < 0 || i != w.current {
		return
	}
	if i == 0 {
		return
	}

	b.SetInteractive(false)
	prev := w.boxes[i-1]
	prev.SetValue("")
	prev.SetInteractive(true)
	w.current = i - 1
	w.queue(w.focusBox(i - 1))

	w.logger.Debug("otp: retreat", "from", i, "to", i-1)
}

// boxChanged is the observer for accepted user edits.
func (w *Widget) boxChanged(b *Box) {
	if b.Value() == "" {
		return
	}
	i := w.indexOf(b)
	if i < 0 {
		return
	}

	last := len(w.boxes) - 1
	if i == last {
		w.complete()
		return
	}
	if i <= last-1 {
		next := w.boxes[i+1]
		next.SetInteractive(true)
		b.SetInteractive(false)
		w.current = i + 1
		w.queue(w.focusBox(i + 1))
		w.logger.Debug("otp: advance", "from", i, "to", i+1)
	}
}

func (w *Widget) complete() {
	if w.completion == CompletionOnce && w.completed {
		w.logger.Debug("otp: completion suppressed")
		return
	}
	w.completed = true

	code := w.CombinedCode()
	w.logger.Debug("otp: complete", "length", len(w.boxes))
	if w.onComplete != nil {
		w.onComplete(code)
	}
	w.queue(func() tea.Msg { return CompletedMsg{Code: code} })
}

// focusBox moves keyboard focus to box i when the widget itself is focused.
func (w *Widget) focusBox(i int) tea.Cmd {
	target := w.Box(i)
	if target == nil {
		return nil
	}
	for _, b := range w.boxes {
		if b != target {
			b.Blur()
		}
	}
	if !w.focused {
		return nil
	}
	return target.Focus()
}

func (w *Widget) indexOf(b *Box) int {
	for i, candidate := range w.boxes {
		if candidate == b {
			return i
		}
	}
	return -1
}

func (w *Widget) queue(cmd tea.Cmd) {
	if cmd != nil {
		w.pending = append(w.pending, cmd)
	}
}

func (w *Widget) flush(cmd tea.Cmd) tea.Cmd {
	cmds := append(w.pending, cmd)
	w.pending = nil
	return tea.Batch(cmds...)
}

// Init starts the cursor blinking and delivers any focus change queued by
// SetBoxCount.
func (w *Widget) Init() tea.Cmd {
	return w.flush(textinput.Blink)
}

// Update routes key input to the current box and mouse clicks to the box
// under the pointer. Commands queued outside Update, such as the refocus after
// a direct DeleteAtEmpty call, are returned with the next message of any kind.
func (w *Widget) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !w.focused {
			return w, nil
		}
		b := w.Box(w.current)
		if b == nil {
			return w, nil
		}
		before := b.Value()
		cmd := b.Update(msg)
		if msg.Type == tea.KeyRunes && b.Value() == before {
			w.logger.Debug("otp: rejected edit", "box", w.current)
		}
		return w, w.flush(cmd)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return w, w.flush(nil)
		}
		return w, w.flush(w.Click(msg.X-w.originX, msg.Y-w.originY))
	}

	b := w.Box(w.current)
	if b == nil {
		return w, w.flush(nil)
	}
	return w, w.flush(b.Update(msg))
}

// Click handles a press at widget-relative coordinates. Only the interactive
// box can be focused this way.
func (w *Widget) Click(x, y int) tea.Cmd {
	i := w.BoxAt(x, y)
	if i < 0 || !w.boxes[i].Interactive() {
		return nil
	}
	return w.Focus()
}

// BoxAt returns the index of the box drawn at widget-relative (x, y), or -1.
func (w *Widget) BoxAt(x, y int) int {
	if x < 0 || y < 0 {
		return -1
	}
	spacing := max(w.style.Spacing, 0)
	left := 0
	for i, b := range w.boxes {
		cell := w.renderBox(i, b)
		width := lipgloss.Width(cell)
		if x >= left && x < left+width && y < lipgloss.Height(cell) {
			return i
		}
		left += width + spacing
	}
	return -1
}

// View renders the row.
func (w *Widget) View() string {
	if len(w.boxes) == 0 {
		return ""
	}
	spacer := strings.Repeat(" ", max(w.style.Spacing, 0))
	cells := make([]string, 0, len(w.boxes)*2)
	for i, b := range w.boxes {
		if i > 0 && spacer != "" {
			cells = append(cells, spacer)
		}
		cells = append(cells, w.renderBox(i, b))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (w *Widget) renderBox(i int, b *Box) string {
	focused := w.focused && i == w.current && b.Interactive()
	return w.style.cellStyle(focused, b.Interactive()).Render(b.View())
}

// applyStyle pushes the text style down into every box's input.
func (w *Widget) applyStyle() {
	ts := w.style.textStyle()
	for _, b := range w.boxes {
		b.input.TextStyle = ts
		b.input.PlaceholderStyle = ts
	}
}

// SetBackgroundColor sets the background of every box.
func (w *Widget) SetBackgroundColor(c lipgloss.TerminalColor) {
	w.style.Background = c
	w.applyStyle()
}

// SetTextColor sets the text colour of every box.
func (w *Widget) SetTextColor(c lipgloss.TerminalColor) {
	w.style.Text = c
	w.applyStyle()
}

// SetFont sets the text attributes of every box.
func (w *Widget) SetFont(f Font) {
	w.style.Font = f
	w.applyStyle()
}

// SetCornerRadius selects rounded corners for r > 0.
func (w *Widget) SetCornerRadius(r int) {
	w.style.CornerRadius = r
}

// SetBorder sets border weight and colour. Width 0 removes the border.
func (w *Widget) SetBorder(width int, c lipgloss.TerminalColor) {
	w.style.BorderWidth = width
	w.style.BorderColor = c
}

// SetBoxSpacing sets the number of blank columns between boxes.
func (w *Widget) SetBoxSpacing(s int) {
	w.style.Spacing = max(s, 0)
}

// Style returns the current cosmetic configuration.
func (w *Widget) Style() Style {
	return w.style
}
