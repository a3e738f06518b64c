package ot

// Compose merges two consecutive operations into one equivalent operation:
// for any string S, compose(a, b).Apply(S) == b.Apply(a.Apply(S)). a's
// TargetLength must equal b's BaseLength.
//
// The merge is a two-pointer walk over both op streams; each iteration
// applies exactly one rule from the dispatch table below and advances at
// least one cursor.
func (a *TextOperation) Compose(b *TextOperation) (*TextOperation, error) {
	if a.targetLength != b.baseLength {
		return nil, newErr(LengthMismatch, "base length of other operation must equal target length of this operation")
	}

	result := New()
	result.Meta = a.Meta

	it1 := newOpIter(a.ops)
	it2 := newOpIter(b.ops)
	op1 := it1.next()
	op2 := it2.next()

	for {
		if op1 == nil && op2 == nil {
			return result, nil
		}

		// Rule 1: a Delete on the left has no preimage in b's domain.
		if d, ok := op1.(Delete); ok {
			result.Delete(d.N)
			op1 = it1.next()
			continue
		}

		// Rule 2: an Insert on the right has no preimage in a's domain.
		if ins, ok := op2.(Insert); ok {
			result.Insert(ins.Text)
			op2 = it2.next()
			continue
		}

		// Rule 3: exhaustion with only one side absent is a length bug.
		if op1 == nil || op2 == nil {
			return nil, newErr(LengthMismatch, "first operation too short or too long")
		}

		switch v1 := op1.(type) {
		case Retain:
			// Rule 4: Retain vs Retain.
			if v2, ok := op2.(Retain); ok {
				m := min(v1.N, v2.N)
				result.Retain(m)
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
			// Rule 7: Retain vs Delete.
			if v2, ok := op2.(Delete); ok {
				m := min(v1.N, v2.N)
				result.Delete(m)
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
		case Insert:
			// Rule 5: Insert vs Delete — the inserted text is being deleted.
			if v2, ok := op2.(Delete); ok {
				insLen := runeLen(v1.Text)
				switch {
				case insLen > v2.N:
					op1 = Insert{Text: dropRunes(v1.Text, v2.N)}
					op2 = it2.next()
				case insLen == v2.N:
					op1 = it1.next()
					op2 = it2.next()
				default:
					op2 = Delete{N: v2.N - insLen}
					op1 = it1.next()
				}
				continue
			}
			// Rule 6: Insert vs Retain.
			if v2, ok := op2.(Retain); ok {
				insLen := runeLen(v1.Text)
				m := min(insLen, v2.N)
				result.Insert(takeRunes(v1.Text, m))
				switch {
				case insLen < v2.N:
					op2 = Retain{N: v2.N - insLen}
					op1 = it1.next()
				case insLen == v2.N:
					op1 = it1.next()
					op2 = it2.next()
				default:
					op1 = Insert{Text: dropRunes(v1.Text, v2.N)}
					op2 = it2.next()
				}
				continue
			}
		}

		// Rule 8: every other pairing is impossible by construction.
		return nil, newErr(Internal, "compose: unreachable operation pairing")
	}
}
