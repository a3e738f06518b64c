package ot

// Transform takes two concurrent operations that both apply to the same
// base string and produces a pair (aPrime, bPrime) such that
//
//	bPrime.Apply(a.Apply(S)) == aPrime.Apply(b.Apply(S))
//
// for every valid S — the convergence property OT exists to provide. a and
// b must share BaseLength.
//
// The walk keeps an invariant: the two imaginary cursors into the common
// source string stay at the same position. Per the dispatch table, when
// both sides are an Insert, a's insert is always consumed first — there is
// no payload comparison to break the tie, a is simply given priority.
func (a *TextOperation) Transform(b *TextOperation) (*TextOperation, *TextOperation, error) {
	if a.baseLength != b.baseLength {
		return nil, nil, newErr(LengthMismatch, "both operations must have the same base length")
	}

	aPrime := New()
	bPrime := New()

	it1 := newOpIter(a.ops)
	it2 := newOpIter(b.ops)
	op1 := it1.next()
	op2 := it2.next()

	for {
		if op1 == nil && op2 == nil {
			return aPrime, bPrime, nil
		}

		// Rule 1: an Insert on a's side consumes no source position; a is
		// preferred whenever both sides present an Insert.
		if ins, ok := op1.(Insert); ok {
			aPrime.Insert(ins.Text)
			bPrime.Retain(runeLen(ins.Text))
			op1 = it1.next()
			continue
		}

		// Rule 2: otherwise an Insert on b's side.
		if ins, ok := op2.(Insert); ok {
			aPrime.Retain(runeLen(ins.Text))
			bPrime.Insert(ins.Text)
			op2 = it2.next()
			continue
		}

		// Rule 3: exhaustion with only one side absent is a length bug.
		if op1 == nil || op2 == nil {
			return nil, nil, newErr(LengthMismatch, "operations have incompatible lengths")
		}

		switch v1 := op1.(type) {
		case Retain:
			// Rule 4: Retain vs Retain — both sides retain the shared span.
			if v2, ok := op2.(Retain); ok {
				m := min(v1.N, v2.N)
				aPrime.Retain(m)
				bPrime.Retain(m)
				switch {
				case v1.N < v2.N:
					op2 = Retain{N: v2.N - m}
					op1 = it1.next()
				case v1.N == v2.N:
					op1 = it1.next()
					op2 = it2.next()
				default:
					op1 = Retain{N: v1.N - m}
					op2 = it2.next()
				}
				continue
			}
			// Rule 7: Retain vs Delete — b deletes the span, a' sees nothing.
			if v2, ok := op2.(Delete); ok {
				m := min(v1.N, v2.N)
				bPrime.Delete(m)
				switch {
				case v1.N < v2.N:
					op2 = Delete{N: v2.N - m}
					op1 = it1.next()
				case v1.N == v2.N:
					op1 = it1.next()
					op2 = it2.next()
				default:
					op1 = Retain{N: v1.N - m}
					op2 = it2.next()
				}
				continue
			}
		case Delete:
			// Rule 5: Delete vs Delete — both delete the same span, emit nothing.
			if v2, ok := op2.(Delete); ok {
				m := min(v1.N, v2.N)
				switch {
				case v1.N < v2.N:
					op2 = Delete{N: v2.N - m}
					op1 = it1.next()
				case v1.N == v2.N:
					op1 = it1.next()
					op2 = it2.next()
				default:
					op1 = Delete{N: v1.N - m}
					op2 = it2.next()
				}
				continue
			}
			// Rule 6: Delete vs Retain — a deletes the span, b' sees nothing.
			if v2, ok := op2.(Retain); ok {
				m := min(v1.N, v2.N)
				aPrime.Delete(m)
				switch {
				case v1.N < v2.N:
					op2 = Retain{N: v2.N - m}
					op1 = it1.next()
				case v1.N == v2.N:
					op1 = it1.next()
					op2 = it2.next()
				default:
					op1 = Delete{N: v1.N - m}
					op2 = it2.next()
				}
				continue
			}
		}

		// Rule 8: every other pairing is impossible by construction.
		return nil, nil, newErr(Internal, "transform: operations not compatible")
	}
}
