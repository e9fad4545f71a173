package parsec

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapTransformsOnlyInEmitMode(t *testing.T) {
	cur, _ := richCur("a")
	p := Map(Just[rune, struct{}, RichError]('a'), func(r rune) string { return string(r) + "!" })
	out, ok := p.execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, "a!", out)

	cur2, _ := richCur("a")
	out2, ok2 := p.execute(Check, cur2)
	require.True(t, ok2)
	require.Equal(t, "", out2)
}

func TestThenVariants(t *testing.T) {
	cur, _ := richCur("ab")
	out, ok := Then[rune, struct{}, RichError, rune, rune](
		Just[rune, struct{}, RichError]('a'), Just[rune, struct{}, RichError]('b'),
	).execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, Pair[rune, rune]{'a', 'b'}, out)

	cur2, _ := richCur("ab")
	b, ok2 := IgnoreThen[rune, struct{}, RichError, rune, rune](
		Just[rune, struct{}, RichError]('a'), Just[rune, struct{}, RichError]('b'),
	).execute(Emit, cur2)
	require.True(t, ok2)
	require.Equal(t, 'b', b)

	cur3, _ := richCur("ab")
	a, ok3 := ThenIgnore[rune, struct{}, RichError, rune, rune](
		Just[rune, struct{}, RichError]('a'), Just[rune, struct{}, RichError]('b'),
	).execute(Emit, cur3)
	require.True(t, ok3)
	require.Equal(t, 'a', a)
}

func TestAndIsPositiveLookaheadKeepsSelfOffset(t *testing.T) {
	cur, _ := richCur("ab")
	p := AndIs[rune, struct{}, RichError, rune, rune](
		Just[rune, struct{}, RichError]('a'),
		Just[rune, struct{}, RichError]('b'),
	)
	// lookahead runs from self's *starting* offset, so it re-sees 'a', not 'b'.
	_, ok := p.execute(Emit, cur)
	require.False(t, ok)

	cur2, _ := richCur("ab")
	q := AndIs[rune, struct{}, RichError, rune, rune](
		Just[rune, struct{}, RichError]('a'),
		Just[rune, struct{}, RichError]('a'),
	)
	out, ok2 := q.execute(Emit, cur2)
	require.True(t, ok2)
	require.Equal(t, 'a', out)
	require.Equal(t, Offset(1), cur2.Offset())
}

func TestNotSucceedsIffChildFailsAndNeverMoves(t *testing.T) {
	cur, _ := richCur("a")
	_, ok := Not(Just[rune, struct{}, RichError]('a')).execute(Emit, cur)
	require.False(t, ok)
	require.Equal(t, Offset(0), cur.Offset())

	cur2, _ := richCur("a")
	_, ok2 := Not(Just[rune, struct{}, RichError]('b')).execute(Emit, cur2)
	require.True(t, ok2)
	require.Equal(t, Offset(0), cur2.Offset())
}

func TestOrNotNeverFailsAndRewindsOnMismatch(t *testing.T) {
	cur, _ := richCur("z")
	out, ok := OrNot(Just[rune, struct{}, RichError]('a')).execute(Emit, cur)
	require.True(t, ok)
	require.Nil(t, out)
	require.Equal(t, Offset(0), cur.Offset())

	cur2, _ := richCur("a")
	out2, ok2 := OrNot(Just[rune, struct{}, RichError]('a')).execute(Emit, cur2)
	require.True(t, ok2)
	require.NotNil(t, out2)
	require.Equal(t, 'a', *out2)
}

func TestRewindRestoresOffsetOnSuccess(t *testing.T) {
	cur, _ := richCur("ab")
	out, ok := Rewind[rune, struct{}, RichError, rune](Just[rune, struct{}, RichError]('a')).execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, 'a', out)
	require.Equal(t, Offset(0), cur.Offset())
}

func TestLazyConsumesTrailingInputAsLongestPrefix(t *testing.T) {
	cur, _ := richCur("a???")
	out, ok := Lazy[rune, struct{}, RichError, rune](Just[rune, struct{}, RichError]('a')).execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, 'a', out)
	require.True(t, cur.AtEnd())
}

func TestDelimitedByFailsOnMissingCloser(t *testing.T) {
	open, closeP := Just[rune, struct{}, RichError]('('), Just[rune, struct{}, RichError](')')
	cur, _ := richCur("(a")
	_, ok := DelimitedBy[rune, struct{}, RichError, rune, rune, rune](
		Just[rune, struct{}, RichError]('a'), open, closeP,
	).execute(Emit, cur)
	require.False(t, ok)

	cur2, _ := richCur("(a)")
	out, ok2 := DelimitedBy[rune, struct{}, RichError, rune, rune, rune](
		Just[rune, struct{}, RichError]('a'), open, closeP,
	).execute(Emit, cur2)
	require.True(t, ok2)
	require.Equal(t, 'a', out)
}

func TestFilterRejectsAndRestoresEvenInCheckMode(t *testing.T) {
	isVowel := func(r rune) bool { return r == 'a' || r == 'e' || r == 'i' || r == 'o' || r == 'u' }
	p := Filter(Any[rune, struct{}, RichError](), isVowel)

	cur, _ := richCur("b")
	_, ok := p.execute(Emit, cur)
	require.False(t, ok)
	require.Equal(t, Offset(0), cur.Offset())

	cur2, _ := richCur("b")
	_, ok2 := p.execute(Check, cur2)
	require.False(t, ok2, "Filter must agree on success/failure across modes even though it forces Emit internally")
}

func TestTryMapFailsWithUserErrorAndFailErrAttachesCause(t *testing.T) {
	cause := errors.New("boom")
	p := TryMap(Any[rune, struct{}, RichError](), func(r rune, span Span) (int, error) {
		return 0, cause
	})
	cur, _ := richCur("x")
	_, ok := p.execute(Emit, cur)
	require.False(t, ok)
	e, has := cur.AltError()
	require.True(t, has)
	require.ErrorIs(t, e, cause)
}

func TestValidateNeverFailsButCanEmit(t *testing.T) {
	p := Validate(Any[rune, struct{}, RichError](), func(r rune, span Span, em Emitter[rune, struct{}, RichError]) rune {
		if r == 'x' {
			em.Emit(RichError{At: span, Msg: "discouraged token x"})
		}
		return r
	})
	cur, _ := richCur("x")
	out, ok := p.execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, 'x', out)
	require.Len(t, cur.Emitted(), 1)
}

func TestSliceReturnsBorrowedSubInput(t *testing.T) {
	cur, _ := richCur("abc")
	p := Slice[rune, struct{}, RichError, Pair[rune, rune]](
		Then[rune, struct{}, RichError, rune, rune](
			Just[rune, struct{}, RichError]('a'), Just[rune, struct{}, RichError]('b'),
		),
	)
	out, ok := p.execute(Emit, cur)
	require.True(t, ok)
	sub := out.(*StringInput)
	require.Equal(t, "ab", sub.Raw(sub.Span(sub.StartOffset(), sub.StartOffset()+2)))
}

func TestLabelledRewritesExpectedOnFailure(t *testing.T) {
	cur, _ := richCur("z")
	p := Labelled[rune, struct{}, RichError, rune](Just[rune, struct{}, RichError]('a'), "the letter a")
	_, ok := p.execute(Emit, cur)
	require.False(t, ok)
	e, has := cur.AltError()
	require.True(t, has)
	require.Equal(t, "the letter a", e.Label)
	require.Contains(t, fmt.Sprint(e), "the letter a")
}
