package ot

// simpleForm is the "single edit with surrounding retains" shape ComposeWith
// and ComposeWithInverted reason about: start is the cursor position the
// edit begins at, op is the one non-Retain Op.
type simpleForm struct {
	start int
	op    Op
}

// simple extracts the simpleForm of t, if t matches one of the three
// canonical patterns: a lone non-Retain Op, a Retain followed by (or
// preceded by) one non-Retain Op, or Retain, X, Retain. Any other shape —
// including a lone Retain, which is a noop rather than a simple edit —
// reports ok=false.
func simple(t *TextOperation) (form simpleForm, ok bool) {
	switch len(t.ops) {
	case 1:
		if IsRetain(t.ops[0]) {
			return simpleForm{}, false
		}
		return simpleForm{start: 0, op: t.ops[0]}, true
	case 2:
		if r, isRetain := t.ops[0].(Retain); isRetain {
			return simpleForm{start: r.N, op: t.ops[1]}, true
		}
		if _, isRetain := t.ops[1].(Retain); isRetain {
			return simpleForm{start: 0, op: t.ops[0]}, true
		}
		return simpleForm{}, false
	case 3:
		first, firstOK := t.ops[0].(Retain)
		_, lastOK := t.ops[2].(Retain)
		if firstOK && lastOK {
			return simpleForm{start: first.N, op: t.ops[1]}, true
		}
		return simpleForm{}, false
	default:
		return simpleForm{}, false
	}
}

// opLen is the length.magnitude of a simple op: the rune count of an
// Insert's text, or an N for Retain/Delete.
func opLen(op Op) int {
	switch v := op.(type) {
	case Insert:
		return runeLen(v.Text)
	case Delete:
		return v.N
	case Retain:
		return v.N
	}
	return 0
}

// ComposeWith answers whether two operations the same user produced in
// sequence should be merged into a single undo step: contiguous forward
// typing, or a held backspace/delete key.
func (a *TextOperation) ComposeWith(b *TextOperation) bool {
	if a.IsNoop() || b.IsNoop() {
		return true
	}
	sa, okA := simple(a)
	sb, okB := simple(b)
	if !okA || !okB {
		return false
	}

	switch sa.op.(type) {
	case Insert:
		if !IsInsert(sb.op) {
			return false
		}
		return sa.start+opLen(sa.op) == sb.start
	case Delete:
		if !IsDelete(sb.op) {
			return false
		}
		return sb.start-opLen(sb.op) == sa.start || sa.start == sb.start
	default:
		return false
	}
}

// ComposeWithInverted mirrors ComposeWith for the inverted undo stack:
// ComposeWith(a, b) == ComposeWithInverted(Invert(b, ...), Invert(a, ...))
// for the strings those inversions are taken against. Inverting flips each
// operand's kind (Insert <-> Delete), which is why the branch conditions
// below are not a copy of ComposeWith's — they're what the two conditions
// of ComposeWith's Delete case, and the one condition of its Insert case,
// become once kinds are swapped and the argument order is reversed.
func (a *TextOperation) ComposeWithInverted(b *TextOperation) bool {
	if a.IsNoop() || b.IsNoop() {
		return true
	}
	sa, okA := simple(a)
	sb, okB := simple(b)
	if !okA || !okB {
		return false
	}

	switch sa.op.(type) {
	case Insert:
		if !IsInsert(sb.op) {
			return false
		}
		return sa.start-opLen(sa.op) == sb.start || sa.start == sb.start
	case Delete:
		if !IsDelete(sb.op) {
			return false
		}
		return sb.start+opLen(sb.op) == sa.start
	default:
		return false
	}
}
