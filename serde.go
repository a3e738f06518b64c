package ot

import (
	"encoding/json"
	"fmt"
)

// ToSequence renders the operation as the flat wire/storage form spec.md §4.3
// describes: each Retain(n) becomes +n, each Delete(n) becomes -n, and each
// Insert(s) becomes s itself.
func (t *TextOperation) ToSequence() []any {
	seq := make([]any, len(t.ops))
	for i, op := range t.ops {
		switch v := op.(type) {
		case Retain:
			seq[i] = v.N
		case Delete:
			seq[i] = -v.N
		case Insert:
			seq[i] = v.Text
		}
	}
	return seq
}

// FromSequence rebuilds a TextOperation from the flat form ToSequence
// produces: a positive int is a Retain, a negative int is a Delete of the
// magnitude, and a string is an Insert. A float64 (the type encoding/json
// decodes numbers into) is truncated to an int and handled the same way.
// Any other element — nil, a structured value, any other numeric type —
// fails with ParseError.
func FromSequence(seq []any) (*TextOperation, error) {
	t := New()
	for _, item := range seq {
		switch v := item.(type) {
		case string:
			t.Insert(v)
		case int:
			if v >= 0 {
				t.Retain(v)
			} else {
				t.Delete(-v)
			}
		case float64:
			n := int(v)
			if n >= 0 {
				t.Retain(n)
			} else {
				t.Delete(-n)
			}
		default:
			return nil, newErr(ParseError, fmt.Sprintf("unknown operation: %v", item))
		}
	}
	return t, nil
}

// MarshalJSON renders the ToSequence form as a JSON array, e.g.
// [5, "hello", -3, 10].
func (t *TextOperation) MarshalJSON() ([]byte, error) {
	if t == nil {
		return json.Marshal([]any{})
	}
	return json.Marshal(t.ToSequence())
}

// UnmarshalJSON parses a JSON array in the ToSequence form produced above.
func (t *TextOperation) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromSequence(raw)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}
