package otp

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Kind identifies the character class a Policy admits.
type Kind int

const (
	KindDigits  Kind = iota // 0-9
	KindLetters             // any Unicode letter
	KindWord                // A-Z, a-z, 0-9 and underscore
	KindAny                 // unrestricted
)

var kindNames = map[Kind]string{
	KindDigits:  "digits",
	KindLetters: "letters",
	KindWord:    "word",
	KindAny:     "any",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a kind name (as printed by Kind.String) back to a Kind.
func ParseKind(s string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == normalized {
			return k, nil
		}
	}
	return KindDigits, fmt.Errorf("unknown filter %q (known: digits, letters, word, any)", s)
}

// Range is a span of runes within a box's current text.
type Range struct {
	Start  int
	Length int
}

// TextSource is read by a policy to learn the text an edit applies to.
type TextSource interface {
	Value() string
}

// Policy decides whether a proposed edit may be applied to a box.
type Policy interface {
	// Accept reports whether replacing r in current with replacement is allowed.
	Accept(current string, r Range, replacement string) bool
	// Allow evaluates Accept against the policy's bound text source.
	Allow(r Range, replacement string) bool
	Kind() Kind
	MaxLength() int
}

// NewPolicy builds a policy of the given kind bound to target. target is only
// read, never retained as an owner; a nil target reads as empty text.
// maxLength <= 0 disables the length check.
func NewPolicy(kind Kind, maxLength int, target TextSource) Policy {
	return &classPolicy{kind: kind, maxLength: maxLength, target: target}
}

type classPolicy struct {
	kind      Kind
	maxLength int
	target    TextSource
}

func (p *classPolicy) Kind() Kind     { return p.kind }
func (p *classPolicy) MaxLength() int { return p.maxLength }

func (p *classPolicy) Accept(current string, r Range, replacement string) bool {
	for _, c := range replacement {
		if !p.admits(c) {
			return false
		}
	}
	if p.maxLength <= 0 {
		return true
	}
	return uniseg.GraphemeClusterCount(applyEdit(current, r, replacement)) <= p.maxLength
}

func (p *classPolicy) Allow(r Range, replacement string) bool {
	current := ""
	if p.target != nil {
		current = p.target.Value()
	}
	return p.Accept(current, r, replacement)
}

func (p *classPolicy) admits(c rune) bool {
	switch p.kind {
	case KindDigits:
		return c >= '0' && c <= '9'
	case KindLetters:
		return unicode.IsLetter(c) || unicode.IsMark(c)
	case KindWord:
		return c == '_' ||
			(c >= '0' && c <= '9') ||
			(c >= 'a' && c <= 'z') ||
			(c >= 'A' && c <= 'Z')
	case KindAny:
		return true
	default:
		return false
	}
}

// applyEdit replaces the rune range r of s with replacement. The range is
// clamped to s.
func applyEdit(s string, r Range, replacement string) string {
	runes := []rune(s)
	start := clamp(r.Start, 0, len(runes))
	end := clamp(start+max(r.Length, 0), start, len(runes))
	return string(runes[:start]) + replacement + string(runes[end:])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
