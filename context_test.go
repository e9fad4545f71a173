package parsec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithCtxInstallsAndRestoresContext(t *testing.T) {
	read := Custom(func(cur *Cursor[rune, struct{}, RichError]) (any, bool) {
		return cur.Context(), true
	})
	cur, _ := richCur("a")
	require.Nil(t, cur.Context())

	out, ok := WithCtx[rune, struct{}, RichError, any]("inner", read).execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, "inner", out)
	require.Nil(t, cur.Context(), "context must be restored after WithCtx returns")
}

func TestConfigureReadsContextFreshPerExecute(t *testing.T) {
	p := Configure[rune, struct{}, RichError, rune](func(ctx any) Parser[rune, struct{}, RichError, rune] {
		return Just[rune, struct{}, RichError](ctx.(rune))
	})
	cur, _ := richCur("xx")
	out, ok := WithCtx[rune, struct{}, RichError, rune]('x', p).execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, 'x', out)
}

func TestThenWithCtxInstallsFirstsOutputForNext(t *testing.T) {
	openDigit := Select[rune, struct{}, RichError, rune](func(r rune) (rune, bool) {
		return r, r >= '1' && r <= '9'
	})
	matchClosingSameDigit := Configure[rune, struct{}, RichError, rune](func(ctx any) Parser[rune, struct{}, RichError, rune] {
		return Just[rune, struct{}, RichError](ctx.(rune))
	})
	p := ThenWithCtx[rune, struct{}, RichError, rune, rune](openDigit, matchClosingSameDigit)

	cur, _ := richCur("33")
	out, ok := p.execute(Emit, cur)
	require.True(t, ok)
	require.Equal(t, '3', out)

	cur2, _ := richCur("34")
	_, ok2 := p.execute(Emit, cur2)
	require.False(t, ok2, "the second digit must match the first's installed context value")
}

func TestThenWithCtxForcesFirstToEmitEvenInCheckMode(t *testing.T) {
	openDigit := Select[rune, struct{}, RichError, rune](func(r rune) (rune, bool) {
		return r, r >= '1' && r <= '9'
	})
	matchClosingSameDigit := Configure[rune, struct{}, RichError, rune](func(ctx any) Parser[rune, struct{}, RichError, rune] {
		return Just[rune, struct{}, RichError](ctx.(rune))
	})
	p := ThenWithCtx[rune, struct{}, RichError, rune, rune](openDigit, matchClosingSameDigit)

	cur, _ := richCur("34")
	_, ok := p.execute(Check, cur)
	require.False(t, ok, "Check mode must still fail when the installed context wouldn't actually match")
}
