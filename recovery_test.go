package parsec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecoverWithEmitsOriginalErrorAndUsesStrategy(t *testing.T) {
	digit := Select[rune, struct{}, RichError, rune](func(r rune) (rune, bool) {
		return r, r >= '0' && r <= '9'
	})
	strategy := To[rune, struct{}, RichError, rune, rune](Any[rune, struct{}, RichError](), '?')
	p := RecoverWith(digit, ViaParser(strategy))

	cur, _ := richCur("x")
	out, ok := p.execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, '?', out)
	require.Len(t, cur.Emitted(), 1, "the original digit failure must be recorded as a non-fatal emitted error")
	require.Equal(t, Offset(1), cur.Offset())
}

func TestRecoverWithPropagatesFailureWhenStrategyAlsoFails(t *testing.T) {
	digit := Select[rune, struct{}, RichError, rune](func(r rune) (rune, bool) {
		return r, r >= '0' && r <= '9'
	})
	p := RecoverWith(digit, ViaParser(Just[rune, struct{}, RichError]('!')))
	cur, _ := richCur("x")
	_, ok := p.execute(Emit, cur)
	require.False(t, ok)
}

func TestSkipUntilAdvancesThenRewindsBeforeMatch(t *testing.T) {
	p := SkipUntil[rune, struct{}, RichError, string, rune](Just[rune, struct{}, RichError](';'), "recovered")
	cur, _ := richCur("abc;d")
	out, ok := p.execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, "recovered", out)
	require.Equal(t, Offset(3), cur.Offset(), "the matched delimiter itself must be left unconsumed")
}

func TestSkipUntilFailsAtEndOfInputWithoutMatch(t *testing.T) {
	p := SkipUntil[rune, struct{}, RichError, string, rune](Just[rune, struct{}, RichError](';'), "recovered")
	cur, _ := richCur("abc")
	_, ok := p.execute(Emit, cur)
	require.False(t, ok)
}

func TestNestedDelimitersTracksNestingAndStopsAtMatchingClose(t *testing.T) {
	open := Ignored[rune, struct{}, RichError, rune](Just[rune, struct{}, RichError]('('))
	closeP := Ignored[rune, struct{}, RichError, rune](Just[rune, struct{}, RichError](')'))
	p := NestedDelimiters[rune, struct{}, RichError, int](open, closeP, nil, func() int { return 42 })

	// "(...)" already consumed by caller; body is "a(b)c)rest" — the
	// first ')' closes the inner '(' the body itself opened, and the
	// second ')' closes the outer frame NestedDelimiters was entered for.
	cur, _ := richCur("a(b)c)rest")
	out, ok := p.execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, 42, out)
	require.Equal(t, Offset(6), cur.Offset())
}
