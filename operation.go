// Package ot implements the core algebra of text Operational Transformation:
// a TextOperation value type plus Apply, Invert, Compose, and Transform over
// pairs of such values.
//
// The engine is a pure in-memory library: no I/O, no global state, and no
// concurrent mutation of a single TextOperation while it is being built.
// See DESIGN.md for the ported-from lineage.
package ot

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Op is the closed set of retain/insert/delete variants a TextOperation is
// built from. The unexported marker method keeps it a sum type: callers
// outside the package cannot add a fourth variant.
type Op interface {
	isOp()
}

// Retain advances the cursor N runes, copying them to the output.
type Retain struct{ N int }

// Insert emits Text into the output; the cursor in the source is unchanged.
type Insert struct{ Text string }

// Delete advances the cursor N runes, discarding them.
type Delete struct{ N int }

func (Retain) isOp() {}
func (Insert) isOp() {}
func (Delete) isOp() {}

// IsRetain reports whether op is a Retain.
func IsRetain(op Op) bool { _, ok := op.(Retain); return ok }

// IsInsert reports whether op is an Insert.
func IsInsert(op Op) bool { _, ok := op.(Insert); return ok }

// IsDelete reports whether op is a Delete.
func IsDelete(op Op) bool { _, ok := op.(Delete); return ok }

// TextOperation is an ordered sequence of Ops plus the base/target lengths
// they imply. Build one with New or NewWithID, grow it with Retain, Insert,
// and Delete, then treat it as an immutable value: Apply, Invert, Compose,
// and Transform never mutate their receivers or arguments.
type TextOperation struct {
	ops          []Op
	baseLength   int
	targetLength int

	// Meta is an opaque payload the engine never inspects. Compose carries
	// the left operand's Meta forward; Apply, Invert, and Transform ignore
	// it. See WithMeta and NewWithID.
	Meta any
}

// New returns an empty TextOperation, the identity for Compose and Transform.
func New() *TextOperation {
	return &TextOperation{}
}

// NewWithID returns an empty TextOperation tagged with a fresh UUID in Meta,
// a convenience for embedders correlating operations across a wider system
// this package does not itself define.
func NewWithID() *TextOperation {
	return &TextOperation{Meta: newOperationID()}
}

// WithMeta attaches an arbitrary payload to the operation and returns the
// same value for chaining.
func (t *TextOperation) WithMeta(meta any) *TextOperation {
	t.Meta = meta
	return t
}

// BaseLength is the length of any string this operation can be applied to.
func (t *TextOperation) BaseLength() int { return t.baseLength }

// TargetLength is the length of the string Apply produces.
func (t *TextOperation) TargetLength() int { return t.targetLength }

// Ops returns the underlying op slice. Callers must not mutate it.
func (t *TextOperation) Ops() []Op { return t.ops }

// IsNoop reports whether the operation has no observable effect: no ops, or
// a single Retain.
func (t *TextOperation) IsNoop() bool {
	if len(t.ops) == 0 {
		return true
	}
	if len(t.ops) == 1 {
		return IsRetain(t.ops[0])
	}
	return false
}

// Retain advances the cursor n runes. n must be non-negative; it merges
// with a trailing Retain and returns the receiver for chaining.
func (t *TextOperation) Retain(n int) *TextOperation {
	if n < 0 {
		panic(newErr(TypeError, "retain requires a non-negative integer"))
	}
	if n == 0 {
		return t
	}
	t.baseLength += n
	t.targetLength += n
	if l := len(t.ops); l > 0 {
		if r, ok := t.ops[l-1].(Retain); ok {
			t.ops[l-1] = Retain{N: r.N + n}
			return t
		}
	}
	t.ops = append(t.ops, Retain{N: n})
	return t
}

// Insert emits s at the cursor. Placement follows the insert-before-delete
// invariant: it merges into a trailing Insert, or into an Insert just before
// a trailing Delete, or is placed immediately before a trailing Delete — an
// Insert is never appended directly after a Delete.
func (t *TextOperation) Insert(s string) *TextOperation {
	if s == "" {
		return t
	}
	t.targetLength += utf8.RuneCountInString(s)

	n := len(t.ops)
	if n == 0 {
		t.ops = append(t.ops, Insert{Text: s})
		return t
	}
	if last, ok := t.ops[n-1].(Insert); ok {
		t.ops[n-1] = Insert{Text: last.Text + s}
		return t
	}
	if del, ok := t.ops[n-1].(Delete); ok {
		if n >= 2 {
			if prev, ok := t.ops[n-2].(Insert); ok {
				t.ops[n-2] = Insert{Text: prev.Text + s}
				return t
			}
		}
		t.ops[n-1] = Insert{Text: s}
		t.ops = append(t.ops, del)
		return t
	}
	t.ops = append(t.ops, Insert{Text: s})
	return t
}

// Delete advances the cursor, discarding runes. n is either an int
// (its absolute value is the count) or a string (its rune length is the
// count); any other kind panics with a TypeError.
func (t *TextOperation) Delete(n any) *TextOperation {
	var k int
	switch v := n.(type) {
	case int:
		if v < 0 {
			k = -v
		} else {
			k = v
		}
	case string:
		k = utf8.RuneCountInString(v)
	default:
		panic(newErr(TypeError, fmt.Sprintf("delete requires an int or string, got %T", n)))
	}
	if k == 0 {
		return t
	}
	t.baseLength += k
	if l := len(t.ops); l > 0 {
		if d, ok := t.ops[l-1].(Delete); ok {
			t.ops[l-1] = Delete{N: d.N + k}
			return t
		}
	}
	t.ops = append(t.ops, Delete{N: k})
	return t
}

// Equal reports whether t and other have identical base/target lengths and
// op-wise equal ops. Because of the insert-before-delete invariant, two
// operations with the same effect on any valid input compare equal.
func (t *TextOperation) Equal(other *TextOperation) bool {
	if other == nil {
		return false
	}
	if t.baseLength != other.baseLength || t.targetLength != other.targetLength {
		return false
	}
	if len(t.ops) != len(other.ops) {
		return false
	}
	for i, op := range t.ops {
		if op != other.ops[i] {
			return false
		}
	}
	return true
}

// String renders a diagnostic, comma-joined form such as
// "retain 2, insert 'lorem', delete 5, retain 5".
func (t *TextOperation) String() string {
	parts := make([]string, len(t.ops))
	for i, op := range t.ops {
		switch v := op.(type) {
		case Retain:
			parts[i] = fmt.Sprintf("retain %d", v.N)
		case Insert:
			parts[i] = fmt.Sprintf("insert '%s'", v.Text)
		case Delete:
			parts[i] = fmt.Sprintf("delete %d", v.N)
		}
	}
	return strings.Join(parts, ", ")
}
