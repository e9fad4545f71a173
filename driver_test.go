package parsec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSessionAnchorsToEndOfInput(t *testing.T) {
	root := Just[rune, struct{}, RichError]('a')
	factory := NewRichFactory[rune](func(r rune) string { return string(r) })
	sess := NewSession[rune, struct{}, RichError, rune](root, factory)

	out, errs, ok := sess.Parse(NewStringInput("a"))
	require.True(t, ok)
	require.Equal(t, 'a', out)
	require.Empty(t, errs)

	_, errs2, ok2 := sess.Parse(NewStringInput("ab"))
	require.False(t, ok2, "trailing input must fail via the driver's implicit then_ignore(end())")
	require.NotEmpty(t, errs2)
}

func TestParseSessionCheckReportsOkWithoutOutput(t *testing.T) {
	root := Just[rune, struct{}, RichError]('a')
	factory := NewRichFactory[rune](func(r rune) string { return string(r) })
	sess := NewSession[rune, struct{}, RichError, rune](root, factory)

	errs, ok := sess.Check(NewStringInput("a"))
	require.True(t, ok)
	require.Empty(t, errs)
}

func TestParseSessionSurfacesEmittedErrorsAlongsideOutput(t *testing.T) {
	digit := Select[rune, struct{}, RichError, rune](func(r rune) (rune, bool) {
		return r, r >= '0' && r <= '9'
	})
	strategy := To[rune, struct{}, RichError, rune, rune](Any[rune, struct{}, RichError](), '?')
	root := RecoverWith(digit, ViaParser(strategy))
	factory := NewRichFactory[rune](func(r rune) string { return string(r) })
	sess := NewSession[rune, struct{}, RichError, rune](root, factory)

	out, errs, ok := sess.Parse(NewStringInput("x"))
	require.True(t, ok, "a rescued recovery still counts as an overall success")
	require.Equal(t, '?', out)
	require.Len(t, errs, 1)
}

func TestJoinErrorsFoldsSliceIntoOneError(t *testing.T) {
	require.Nil(t, JoinErrors[RichError](nil))

	errs := []RichError{
		{At: Span{Start: 0, End: 1}, Msg: "first"},
		{At: Span{Start: 1, End: 2}, Msg: "second"},
	}
	joined := JoinErrors(errs)
	require.Error(t, joined)
	require.Contains(t, joined.Error(), "first")
	require.Contains(t, joined.Error(), "second")
}
