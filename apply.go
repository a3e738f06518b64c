package ot

import (
	"strings"
	"unicode/utf8"
)

// Apply walks the operation against s, producing the transformed string.
// s must have exactly BaseLength code points; any Retain that would run
// past the end of s, or ops that leave the cursor short of the end, fail
// with LengthMismatch.
func (t *TextOperation) Apply(s string) (string, error) {
	runes := []rune(s)
	if len(runes) != t.baseLength {
		return "", newErr(LengthMismatch, "base length must equal string length")
	}

	var out strings.Builder
	idx := 0
	for _, op := range t.ops {
		switch v := op.(type) {
		case Retain:
			if idx+v.N > len(runes) {
				return "", newErr(LengthMismatch, "retain past end")
			}
			out.WriteString(string(runes[idx : idx+v.N]))
			idx += v.N
		case Delete:
			idx += v.N
		case Insert:
			out.WriteString(v.Text)
		}
	}

	if idx != len(runes) {
		return "", newErr(LengthMismatch, "didn't operate on whole string")
	}
	return out.String(), nil
}

// Invert computes the operation that undoes t, given the same s that t
// would be applied to:
//   - Retain(n) -> Retain(n)
//   - Insert(s) -> Delete(len(s))
//   - Delete(n) -> Insert(the n characters being deleted)
//
// invert.Apply(t.Apply(s)) reproduces s.
func (t *TextOperation) Invert(s string) *TextOperation {
	runes := []rune(s)
	inverse := New()
	idx := 0

	for _, op := range t.ops {
		switch v := op.(type) {
		case Retain:
			inverse.Retain(v.N)
			idx += v.N
		case Insert:
			inverse.Delete(utf8.RuneCountInString(v.Text))
		case Delete:
			inverse.Insert(string(runes[idx : idx+v.N]))
			idx += v.N
		}
	}

	return inverse
}
