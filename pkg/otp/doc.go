// Package otp provides a one-time-passcode entry widget for Bubble Tea: a row
// of single-character boxes that behaves like one cursor sliding across them.
//
// Typing an accepted character moves focus to the next box and disables the
// one just filled. Backspace on an empty box clears the previous box and moves
// focus back to it. Filling the last box reports the combined code.
//
// # Quick Start
//
//	w := otp.New(otp.WithKind(otp.KindDigits))
//	if err := w.SetBoxCount(6); err != nil {
//	    return err
//	}
//	w.OnComplete(func(code string) { verify(code) })
//
//	// In Update():
//	_, cmd := w.Update(msg)
//	if done, ok := msg.(otp.CompletedMsg); ok {
//	    return m, submit(done.Code)
//	}
//
//	// In View():
//	content := w.View()
//
// # Filter Policies
//
// Every box owns a Policy deciding whether an edit may be applied:
//
//   - KindDigits - 0-9 only
//   - KindLetters - Unicode letters
//   - KindWord - ASCII letters, digits and underscore
//   - KindAny - anything
//
// Boxes built by SetBoxCount hold at most one character.
//
// # Completion
//
// By default the completion callback and CompletedMsg fire every time the last
// box is filled. WithCompletion(CompletionOnce) limits that to once per Reset
// or SetBoxCount.
package otp
