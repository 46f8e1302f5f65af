package otp

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
)

// KeyMap defines the editing keys a box reacts to. Cursor movement is left to
// the wrapped text input.
type KeyMap struct {
	DeleteBackward key.Binding
	DeleteForward  key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		DeleteBackward: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("backspace", "delete"),
		),
		DeleteForward: key.NewBinding(
			key.WithKeys("delete", "ctrl+d"),
			key.WithHelp("del", "delete forward"),
		),
	}
}

// inputKeyMap is the text input's own key map with every binding that edits
// content switched off. All edits go through the box so its policy sees them.
func inputKeyMap() textinput.KeyMap {
	km := textinput.DefaultKeyMap
	km.DeleteWordBackward.SetEnabled(false)
	km.DeleteWordForward.SetEnabled(false)
	km.DeleteAfterCursor.SetEnabled(false)
	km.DeleteBeforeCursor.SetEnabled(false)
	km.DeleteCharacterBackward.SetEnabled(false)
	km.DeleteCharacterForward.SetEnabled(false)
	km.Paste.SetEnabled(false)
	km.AcceptSuggestion.SetEnabled(false)
	return km
}
