package otp

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{input: "digits", want: KindDigits},
		{input: "Letters", want: KindLetters},
		{input: " word ", want: KindWord},
		{input: "any", want: KindAny},
		{input: "hex", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseKind(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseKind(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestKindStringRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindDigits, KindLetters, KindWord, KindAny} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", k.String(), got, err, k)
		}
	}
	if got := Kind(42).String(); got != "kind(42)" {
		t.Errorf("Kind(42).String() = %q", got)
	}
}

func TestDigitPolicySingleCharacter(t *testing.T) {
	p := NewPolicy(KindDigits, 1, nil)

	tests := []struct {
		name        string
		current     string
		r           Range
		replacement string
		want        bool
	}{
		{name: "digit into empty", current: "", r: Range{}, replacement: "7", want: true},
		{name: "zero", current: "", r: Range{}, replacement: "0", want: true},
		{name: "nine", current: "", r: Range{}, replacement: "9", want: true},
		{name: "letter rejected", current: "", r: Range{}, replacement: "a", want: false},
		{name: "symbol rejected", current: "", r: Range{}, replacement: "#", want: false},
		{name: "space rejected", current: "", r: Range{}, replacement: " ", want: false},
		{name: "arabic-indic digit rejected", current: "", r: Range{}, replacement: "٣", want: false},
		{name: "two digits rejected", current: "", r: Range{}, replacement: "12", want: false},
		{name: "append to full box rejected", current: "4", r: Range{Start: 1}, replacement: "5", want: false},
		{name: "replace existing digit", current: "4", r: Range{Start: 0, Length: 1}, replacement: "5", want: true},
		{name: "deletion accepted", current: "4", r: Range{Start: 0, Length: 1}, replacement: "", want: true},
		{name: "empty edit on empty box", current: "", r: Range{}, replacement: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Accept(tt.current, tt.r, tt.replacement); got != tt.want {
				t.Errorf("Accept(%q, %+v, %q) = %v, want %v", tt.current, tt.r, tt.replacement, got, tt.want)
			}
		})
	}
}

func TestPolicyCharacterClasses(t *testing.T) {
	tests := []struct {
		kind        Kind
		replacement string
		want        bool
	}{
		{KindLetters, "a", true},
		{KindLetters, "Z", true},
		{KindLetters, "é", true},
		{KindLetters, "ж", true},
		{KindLetters, "1", false},
		{KindLetters, "_", false},
		{KindWord, "a", true},
		{KindWord, "Q", true},
		{KindLetters, "e\u0301", true},
		{KindLetters, "\u0301", true},
		{KindWord, "5", true},
		{KindWord, "_", true},
		{KindWord, "-", false},
		{KindWord, "é", false},
		{KindAny, "-", true},
		{KindAny, " ", true},
		{KindAny, "é", true},
		{KindDigits, "5", true},
		{KindDigits, "x", false},
	}

	for _, tt := range tests {
		p := NewPolicy(tt.kind, 1, nil)
		if got := p.Accept("", Range{}, tt.replacement); got != tt.want {
			t.Errorf("%v policy Accept(%q) = %v, want %v", tt.kind, tt.replacement, got, tt.want)
		}
	}
}

func TestPolicyLengthLimit(t *testing.T) {
	p := NewPolicy(KindAny, 3, nil)

	if !p.Accept("ab", Range{Start: 2}, "c") {
		t.Error("expected edit reaching max length to be accepted")
	}
	if p.Accept("abc", Range{Start: 3}, "d") {
		t.Error("expected edit exceeding max length to be rejected")
	}
	if !p.Accept("abc", Range{Start: 1, Length: 2}, "xy") {
		t.Error("expected same-length replacement to be accepted")
	}

	// A base letter plus combining accent is one character.
	letters := NewPolicy(KindLetters, 1, nil)
	if !letters.Accept("", Range{}, "e\u0301") {
		t.Error("expected decomposed letter to fit a one-character letters box")
	}
	if !letters.Accept("e", Range{Start: 1}, "\u0301") {
		t.Error("expected combining mark appended to a letter to stay one character")
	}
	if letters.Accept("e", Range{Start: 1}, "x") {
		t.Error("expected second letter to exceed a one-character letters box")
	}
	if !NewPolicy(KindAny, 1, nil).Accept("", Range{}, "é") {
		t.Error("expected a single grapheme cluster to fit a one-character box")
	}
}

func TestPolicyNoLimit(t *testing.T) {
	p := NewPolicy(KindDigits, 0, nil)
	if !p.Accept("123456789", Range{Start: 9}, "0") {
		t.Error("maxLength 0 should disable the length check")
	}
	if p.MaxLength() != 0 || p.Kind() != KindDigits {
		t.Errorf("unexpected configuration: kind=%v max=%d", p.Kind(), p.MaxLength())
	}
}

type staticText string

func (s staticText) Value() string { return string(s) }

func TestPolicyAllowReadsTarget(t *testing.T) {
	p := NewPolicy(KindDigits, 1, staticText("3"))
	if p.Allow(Range{Start: 1}, "4") {
		t.Error("Allow should see the target's current text and reject the append")
	}
	if !p.Allow(Range{Start: 0, Length: 1}, "4") {
		t.Error("Allow should accept replacing the target's only character")
	}

	unbound := NewPolicy(KindDigits, 1, nil)
	if !unbound.Allow(Range{}, "4") {
		t.Error("a policy without a target should treat the text as empty")
	}
}

func TestApplyEdit(t *testing.T) {
	tests := []struct {
		s           string
		r           Range
		replacement string
		want        string
	}{
		{"", Range{}, "1", "1"},
		{"ab", Range{Start: 1}, "X", "aXb"},
		{"ab", Range{Start: 0, Length: 1}, "", "b"},
		{"abc", Range{Start: 1, Length: 5}, "", "a"},
		{"abc", Range{Start: -3, Length: 1}, "", "bc"},
		{"abc", Range{Start: 10}, "d", "abcd"},
		{"héllo", Range{Start: 1, Length: 1}, "e", "hello"},
	}

	for _, tt := range tests {
		if got := applyEdit(tt.s, tt.r, tt.replacement); got != tt.want {
			t.Errorf("applyEdit(%q, %+v, %q) = %q, want %q", tt.s, tt.r, tt.replacement, got, tt.want)
		}
	}
}
