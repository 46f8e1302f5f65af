package otp

import (
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// DeleteListener is notified when backspace arrives at an empty box.
type DeleteListener interface {
	DeleteAtEmpty(b *Box)
}

// Box is a single-character input cell. It wraps a text input and routes
// every user edit through its filter policy.
type Box struct {
	input       textinput.Model
	interactive bool
	policy      Policy
	keys        KeyMap

	// Neither is owned by the box.
	listener DeleteListener
	onChange func(*Box)
}

// NewBox returns an interactive, unfocused box with an unrestricted policy.
func NewBox() *Box {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.KeyMap = inputKeyMap()

	b := &Box{
		input:       ti,
		interactive: true,
		keys:        DefaultKeyMap(),
	}
	b.policy = NewPolicy(KindAny, 0, b)
	return b
}

// Value returns the box content.
func (b *Box) Value() string {
	return b.input.Value()
}

// SetValue replaces the content without notifying the change observer.
func (b *Box) SetValue(s string) {
	b.input.SetValue(s)
	b.input.CursorEnd()
}

// Policy returns the box's filter policy.
func (b *Box) Policy() Policy {
	return b.policy
}

// SetPolicy replaces the filter policy. A nil policy restores an
// unrestricted one bound to this box.
func (b *Box) SetPolicy(p Policy) {
	if p == nil {
		p = NewPolicy(KindAny, 0, b)
	}
	b.policy = p
}

// SetDeleteListener registers the listener for delete-at-empty events.
func (b *Box) SetDeleteListener(l DeleteListener) {
	b.listener = l
}

// OnChange registers the observer called after each accepted user edit.
func (b *Box) OnChange(fn func(*Box)) {
	b.onChange = fn
}

// SetKeyMap replaces the editing key bindings.
func (b *Box) SetKeyMap(km KeyMap) {
	b.keys = km
}

// Interactive reports whether the box currently accepts focus and edits.
func (b *Box) Interactive() bool {
	return b.interactive
}

// SetInteractive gates focus and edits. Disabling a box also blurs it.
func (b *Box) SetInteractive(v bool) {
	b.interactive = v
	if !v {
		b.input.Blur()
	}
}

// Focus gives the box keyboard focus if it is interactive.
func (b *Box) Focus() tea.Cmd {
	if !b.interactive {
		return nil
	}
	return b.input.Focus()
}

// Blur removes keyboard focus.
func (b *Box) Blur() {
	b.input.Blur()
}

// Focused reports whether the box holds keyboard focus.
func (b *Box) Focused() bool {
	return b.input.Focused()
}

// Insert proposes inserting s at the cursor. It reports whether the policy
// accepted the edit.
func (b *Box) Insert(s string) bool {
	if s == "" {
		return false
	}
	return b.edit(Range{Start: b.input.Position()}, s)
}

// DeleteBackward handles a backspace. On empty content the listener is told
// first and the default deletion is a no-op.
func (b *Box) DeleteBackward() {
	if b.Value() == "" {
		if b.listener != nil {
			b.listener.DeleteAtEmpty(b)
		}
		return
	}
	pos := b.input.Position()
	if pos == 0 {
		return
	}
	b.edit(Range{Start: pos - 1, Length: 1}, "")
}

// DeleteForward removes the rune under the cursor, if any.
func (b *Box) DeleteForward() {
	pos := b.input.Position()
	if pos >= utf8.RuneCountInString(b.Value()) {
		return
	}
	b.edit(Range{Start: pos, Length: 1}, "")
}

func (b *Box) edit(r Range, replacement string) bool {
	if !b.policy.Allow(r, replacement) {
		return false
	}
	b.input.SetValue(applyEdit(b.Value(), r, replacement))
	b.input.SetCursor(r.Start + utf8.RuneCountInString(replacement))
	if b.onChange != nil {
		b.onChange(b)
	}
	return true
}

// Update handles key input for the box. Non-interactive boxes ignore keys.
func (b *Box) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if !b.interactive {
			return nil
		}
		switch {
		case key.Matches(keyMsg, b.keys.DeleteBackward):
			b.DeleteBackward()
			return nil
		case key.Matches(keyMsg, b.keys.DeleteForward):
			b.DeleteForward()
			return nil
		case keyMsg.Type == tea.KeyRunes, keyMsg.Type == tea.KeySpace:
			b.Insert(string(keyMsg.Runes))
			return nil
		}
	}

	before := b.Value()
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	if b.Value() != before {
		// the text input must never edit behind the policy's back
		b.SetValue(before)
	}
	return cmd
}

// View renders the box content, or a dot when it is empty and unfocused.
func (b *Box) View() string {
	if b.Value() == "" && !b.Focused() {
		return "·"
	}
	return b.input.View()
}

// detach severs the box from its container.
func (b *Box) detach() {
	b.listener = nil
	b.onChange = nil
	b.SetInteractive(false)
}
