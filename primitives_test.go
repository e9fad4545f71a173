package parsec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func richCur(s string) (*Cursor[rune, struct{}, RichError], *StringInput) {
	in := NewStringInput(s)
	factory := NewRichFactory[rune](func(r rune) string { return string(r) })
	return newCursor[rune, struct{}, RichError](in, new(struct{}), nil, factory), in
}

func TestEmptySucceedsWithoutConsuming(t *testing.T) {
	cur, _ := richCur("abc")
	out, ok := Empty[rune, struct{}, RichError]().execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, struct{}{}, out)
	require.Equal(t, Offset(0), cur.Offset())
}

func TestEndSucceedsOnlyAtEOF(t *testing.T) {
	cur, _ := richCur("")
	_, ok := End[rune, struct{}, RichError]().execute(Emit, cur)
	require.True(t, ok)

	cur2, _ := richCur("a")
	_, ok2 := End[rune, struct{}, RichError]().execute(Emit, cur2)
	require.False(t, ok2)
	_, has := cur2.AltError()
	require.True(t, has)
}

func TestAnyConsumesOneTokenAndFailsAtEOF(t *testing.T) {
	cur, _ := richCur("a")
	r, ok := Any[rune, struct{}, RichError]().execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, 'a', r)
	require.True(t, cur.AtEnd())

	_, ok2 := Any[rune, struct{}, RichError]().execute(Emit, cur)
	require.False(t, ok2)
}

func TestJustMatchesExactTokenAndFailsWithoutAdvancing(t *testing.T) {
	cur, _ := richCur("xy")
	_, ok := Just[rune, struct{}, RichError]('a').execute(Emit, cur)
	require.False(t, ok)
	require.Equal(t, Offset(0), cur.Offset())

	out, ok2 := Just[rune, struct{}, RichError]('x').execute(Emit, cur)
	require.True(t, ok2)
	require.Equal(t, 'x', out)
	require.Equal(t, Offset(1), cur.Offset())
}

func TestOneOfAndNoneOf(t *testing.T) {
	cur, _ := richCur("b")
	_, ok := OneOf[rune, struct{}, RichError]('a', 'b', 'c').execute(Emit, cur)
	require.True(t, ok)

	cur2, _ := richCur("z")
	_, ok2 := OneOf[rune, struct{}, RichError]('a', 'b', 'c').execute(Emit, cur2)
	require.False(t, ok2)

	cur3, _ := richCur("z")
	_, ok3 := NoneOf[rune, struct{}, RichError]('a', 'b', 'c').execute(Emit, cur3)
	require.True(t, ok3)
}

func TestSelectAppliesPredicateAndTransform(t *testing.T) {
	cur, _ := richCur("7")
	digit := Select[rune, struct{}, RichError, int](func(r rune) (int, bool) {
		if r < '0' || r > '9' {
			return 0, false
		}
		return int(r - '0'), true
	})
	out, ok := digit.execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, 7, out)
}

func TestChoiceTriesInOrderAndRestoresOnFailure(t *testing.T) {
	cur, _ := richCur("b")
	p := Choice[rune, struct{}, RichError, rune](
		Just[rune, struct{}, RichError]('a'),
		Just[rune, struct{}, RichError]('b'),
	)
	out, ok := p.execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, 'b', out)
}

func TestChoiceFailsWithMergedErrorsWhenAllFail(t *testing.T) {
	cur, _ := richCur("z")
	p := Choice[rune, struct{}, RichError, rune](
		Just[rune, struct{}, RichError]('a'),
		Just[rune, struct{}, RichError]('b'),
	)
	_, ok := p.execute(Emit, cur)
	require.False(t, ok)
	e, has := cur.AltError()
	require.True(t, has)
	require.ElementsMatch(t, []string{"97", "98"}, e.Expected)
}

func TestGroup2And3StopAtFirstFailure(t *testing.T) {
	cur, _ := richCur("ab")
	g := Group2[rune, struct{}, RichError, rune, rune](
		Just[rune, struct{}, RichError]('a'),
		Just[rune, struct{}, RichError]('b'),
	)
	out, ok := g.execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, Pair[rune, rune]{First: 'a', Second: 'b'}, out)

	cur2, _ := richCur("ax")
	g2 := Group3[rune, struct{}, RichError, rune, rune, rune](
		Just[rune, struct{}, RichError]('a'),
		Just[rune, struct{}, RichError]('b'),
		Just[rune, struct{}, RichError]('c'),
	)
	_, ok2 := g2.execute(Emit, cur2)
	require.False(t, ok2)
}

func TestCheckModeNeverMaterializesOutput(t *testing.T) {
	cur, _ := richCur("x")
	p := Just[rune, struct{}, RichError]('x')
	out, ok := p.execute(Check, cur)
	require.True(t, ok)
	require.Equal(t, rune(0), out)
	require.Equal(t, Offset(1), cur.Offset())
}
