package ot

import "github.com/sergi/go-diff/diffmatchpatch"

// FromDiff builds the TextOperation that transforms oldText into newText,
// using a Myers diff followed by semantic cleanup to find a
// retain/insert/delete sequence rather than requiring the caller to compute
// one by hand. The cleanup favours readable edit boundaries, so the result
// is not always the minimal sequence. It supplements
// the builders of §4.2: most production OT cores offer exactly this
// before/after convenience alongside manual construction.
//
// FromDiff(a, b).Apply(a) always equals b, and the result always satisfies
// the same canonicalisation invariants as an operation built through
// Retain/Insert/Delete — it simply calls them in the order the diff dictates.
func FromDiff(oldText, newText string) *TextOperation {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	op := New()
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op.Retain(runeLen(d.Text))
		case diffmatchpatch.DiffDelete:
			op.Delete(d.Text)
		case diffmatchpatch.DiffInsert:
			op.Insert(d.Text)
		}
	}
	return op
}
