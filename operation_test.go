package ot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderMerging(t *testing.T) {
	// Scenario A: adjacent same-variant ops merge.
	op := New()
	op.Retain(2).Retain(3)
	assert.Equal(t, []Op{Retain{N: 5}}, op.Ops())

	op.Insert("abc").Insert("xyz")
	assert.Equal(t, []Op{Retain{N: 5}, Insert{Text: "abcxyz"}}, op.Ops())

	op.Delete("d").Delete("d")
	assert.Equal(t, []Op{Retain{N: 5}, Insert{Text: "abcxyz"}, Delete{N: 2}}, op.Ops())
}

func TestInsertBeforeDeleteCanonicalisation(t *testing.T) {
	// Scenario B.
	a := New().Delete(1).Insert("lo").Retain(2).Retain(3)
	b := New().Delete(1).Insert("l").Insert("o").Retain(5)

	require.True(t, a.Equal(b))
	assert.Equal(t, []Op{Insert{Text: "lo"}, Delete{N: 1}, Retain{N: 5}}, a.Ops())
	assert.Equal(t, a.Ops(), b.Ops())
}

func TestToStringRendering(t *testing.T) {
	// Scenario C.
	op := New().Retain(2).Insert("lorem").Delete("ipsum").Retain(5)
	assert.Equal(t, "retain 2, insert 'lorem', delete 5, retain 5", op.String())
}

func TestNoop(t *testing.T) {
	// Scenario F.
	assert.True(t, New().IsNoop())

	retainOnly := New().Retain(5)
	assert.True(t, retainOnly.IsNoop())

	retainOnly.Insert("x")
	assert.False(t, retainOnly.IsNoop())
}

func TestRetainRejectsNegative(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		otErr, ok := r.(*Error)
		require.True(t, ok)
		assert.Equal(t, TypeError, otErr.Kind)
	}()
	New().Retain(-1)
}

func TestDeleteRejectsUnsupportedKind(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		otErr, ok := r.(*Error)
		require.True(t, ok)
		assert.Equal(t, TypeError, otErr.Kind)
	}()
	New().Delete(3.5)
}

func TestZeroLengthOpsAreIgnored(t *testing.T) {
	op := New()
	op.Retain(0).Insert("").Delete(0)
	assert.Empty(t, op.Ops())
	assert.Equal(t, 0, op.BaseLength())
	assert.Equal(t, 0, op.TargetLength())
}

func TestLengths(t *testing.T) {
	op := New()
	assert.Equal(t, 0, op.BaseLength())
	assert.Equal(t, 0, op.TargetLength())

	op.Retain(5)
	assert.Equal(t, 5, op.BaseLength())
	assert.Equal(t, 5, op.TargetLength())

	op.Insert("abc")
	assert.Equal(t, 5, op.BaseLength())
	assert.Equal(t, 8, op.TargetLength())

	op.Retain(2)
	assert.Equal(t, 7, op.BaseLength())
	assert.Equal(t, 10, op.TargetLength())

	op.Delete(2)
	assert.Equal(t, 9, op.BaseLength())
	assert.Equal(t, 10, op.TargetLength())
}

func TestEqualityIgnoresConstructionPath(t *testing.T) {
	a := New().Retain(2).Retain(3)
	b := New().Retain(5)
	assert.True(t, a.Equal(b))

	c := New().Retain(5).Insert("x")
	assert.False(t, a.Equal(c))
}

func TestFromSequence(t *testing.T) {
	// Scenario D.
	op, err := FromSequence([]any{2, -1, -1, "cde"})
	require.NoError(t, err)
	assert.Len(t, op.Ops(), 3)
	assert.Equal(t, 4, op.BaseLength())
	assert.Equal(t, 5, op.TargetLength())

	_, err = FromSequence([]any{2, -1, -1, "cde", map[string]string{"insert": "x"}})
	require.Error(t, err)
	var otErr *Error
	require.ErrorAs(t, err, &otErr)
	assert.Equal(t, ParseError, otErr.Kind)
	assert.Contains(t, otErr.Error(), "unknown operation: ")

	_, err = FromSequence([]any{2, -1, -1, "cde", nil})
	require.Error(t, err)
	require.ErrorAs(t, err, &otErr)
	assert.Equal(t, ParseError, otErr.Kind)
}

func TestSequenceRoundTrip(t *testing.T) {
	op := New().Retain(2).Insert("lorem").Delete(3).Retain(7)
	seq := op.ToSequence()

	rebuilt, err := FromSequence(seq)
	require.NoError(t, err)
	assert.True(t, op.Equal(rebuilt))
}

func TestJSONRoundTrip(t *testing.T) {
	// Insert is canonicalised before the trailing Delete, so the wire form
	// reflects [Retain, Insert, Delete] rather than construction order.
	op := New().Retain(1).Delete(1).Insert("abc")
	assert.Equal(t, []Op{Retain{N: 1}, Insert{Text: "abc"}, Delete{N: 1}}, op.Ops())

	data, err := op.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[1,"abc",-1]`, string(data))

	var rebuilt TextOperation
	require.NoError(t, rebuilt.UnmarshalJSON(data))
	assert.True(t, op.Equal(&rebuilt))
}
