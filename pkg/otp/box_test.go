package otp

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runesKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func backspaceKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyBackspace}
}

type deleteRecorder struct {
	calls []*Box
}

func (r *deleteRecorder) DeleteAtEmpty(b *Box) {
	r.calls = append(r.calls, b)
}

func newDigitBox() *Box {
	b := NewBox()
	b.SetPolicy(NewPolicy(KindDigits, 1, b))
	return b
}

func TestBoxInsertUsesPolicy(t *testing.T) {
	b := newDigitBox()
	changes := 0
	b.OnChange(func(*Box) { changes++ })

	b.Update(runesKey("a"))
	if b.Value() != "" {
		t.Fatalf("letter should be rejected, got %q", b.Value())
	}
	if changes != 0 {
		t.Fatalf("rejected edit fired %d change notifications", changes)
	}

	b.Update(runesKey("7"))
	if b.Value() != "7" {
		t.Fatalf("digit should be accepted, got %q", b.Value())
	}
	if changes != 1 {
		t.Fatalf("changes = %d, want 1", changes)
	}

	b.Update(runesKey("8"))
	if b.Value() != "7" {
		t.Fatalf("second digit should be rejected by max length, got %q", b.Value())
	}
	if changes != 1 {
		t.Fatalf("changes = %d after rejected edit, want 1", changes)
	}
}

func TestBoxPasteRejected(t *testing.T) {
	b := newDigitBox()
	b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("12"), Paste: true})
	if b.Value() != "" {
		t.Errorf("multi-character paste should be rejected, got %q", b.Value())
	}
}

func TestBoxDeleteAtEmptyNotifiesListener(t *testing.T) {
	b := newDigitBox()
	rec := &deleteRecorder{}
	b.SetDeleteListener(rec)

	b.Update(backspaceKey())
	if len(rec.calls) != 1 || rec.calls[0] != b {
		t.Fatalf("expected one DeleteAtEmpty call from the box, got %d", len(rec.calls))
	}
}

func TestBoxBackspaceDeletesContent(t *testing.T) {
	b := newDigitBox()
	rec := &deleteRecorder{}
	b.SetDeleteListener(rec)
	var changed []string
	b.OnChange(func(b *Box) { changed = append(changed, b.Value()) })

	b.Update(runesKey("3"))
	b.Update(backspaceKey())

	if b.Value() != "" {
		t.Fatalf("backspace should clear the box, got %q", b.Value())
	}
	if len(rec.calls) != 0 {
		t.Fatalf("backspace on non-empty box must not notify the listener")
	}
	if len(changed) != 2 || changed[1] != "" {
		t.Fatalf("change notifications = %v, want [3 \"\"]", changed)
	}

	// second backspace now hits an empty box
	b.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	if len(rec.calls) != 1 {
		t.Fatalf("ctrl+h at empty should notify listener once, got %d", len(rec.calls))
	}
}

func TestBoxDeleteForward(t *testing.T) {
	b := newDigitBox()
	rec := &deleteRecorder{}
	b.SetDeleteListener(rec)

	b.Focus()
	b.SetValue("5")
	b.Update(tea.KeyMsg{Type: tea.KeyHome})
	b.Update(tea.KeyMsg{Type: tea.KeyDelete})
	if b.Value() != "" {
		t.Fatalf("forward delete should remove the digit, got %q", b.Value())
	}

	b.Update(tea.KeyMsg{Type: tea.KeyDelete})
	if len(rec.calls) != 0 {
		t.Fatalf("forward delete at empty must not notify the listener")
	}
}

func TestBoxNonInteractiveIgnoresKeys(t *testing.T) {
	b := newDigitBox()
	rec := &deleteRecorder{}
	b.SetDeleteListener(rec)
	b.SetInteractive(false)

	b.Update(runesKey("1"))
	b.Update(backspaceKey())

	if b.Value() != "" {
		t.Errorf("non-interactive box accepted input %q", b.Value())
	}
	if len(rec.calls) != 0 {
		t.Errorf("non-interactive box notified listener")
	}
	if b.Focus() != nil || b.Focused() {
		t.Errorf("non-interactive box should not take focus")
	}
}

func TestBoxSetValueIsSilent(t *testing.T) {
	b := newDigitBox()
	changes := 0
	b.OnChange(func(*Box) { changes++ })

	b.SetValue("9")
	b.SetValue("")
	if changes != 0 {
		t.Errorf("programmatic SetValue fired %d change notifications", changes)
	}
}

func TestBoxSetPolicyNilIsUnrestricted(t *testing.T) {
	b := newDigitBox()
	b.SetPolicy(nil)
	if b.Policy().Kind() != KindAny {
		t.Fatalf("nil policy should become unrestricted, got %v", b.Policy().Kind())
	}
	b.Update(runesKey("x"))
	b.Update(runesKey("y"))
	if b.Value() != "xy" {
		t.Errorf("unrestricted box value = %q, want %q", b.Value(), "xy")
	}
}

func TestBoxInputKeysCannotBypassPolicy(t *testing.T) {
	b := newDigitBox()
	b.Focus()
	b.SetValue("4")

	// ctrl+u and ctrl+w are editing shortcuts of the wrapped text input
	b.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	b.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	if b.Value() != "4" {
		t.Errorf("text input shortcut edited the box: %q", b.Value())
	}
}
