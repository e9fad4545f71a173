// Package demo builds the three grammars cmd/parsec runs, taken straight
// from spec.md §8's testable scenarios so every scenario in the spec is
// runnable from the command line, not just exercised in go test.
package demo

import (
	"github.com/bashepherdson/parsec"
	"github.com/bashepherdson/parsec/text"
)

// St is the (empty) user-state type every demo grammar threads; none of
// the three scenarios need mutable state.
type St = struct{}

// DigitList builds the §8 scenario 1 grammar: digits padded, separated by
// ',' with an optional trailing separator, delimited by '[' ']',
// collected as integers. `"[122 , 23,43, 4, ]"` parses to [122 23 43 4].
func DigitList() parsec.Parser[rune, St, parsec.RichError, []int] {
	elem := text.Padded[parsec.RichError](text.Int[parsec.RichError]())
	comma := parsec.Just[rune, St, parsec.RichError](',')
	open := parsec.Just[rune, St, parsec.RichError]('[')
	// Padded so a trailing separator's own surrounding whitespace (e.g.
	// "4, ]") is absorbed before the literal close token is matched,
	// the same way elem absorbs whitespace around every digit.
	closeB := text.Padded[parsec.RichError, rune](parsec.Just[rune, St, parsec.RichError](']'))

	list := parsec.NewSeparatedBy[rune, St, parsec.RichError, int, rune](elem, comma).AllowTrailing()
	return parsec.DelimitedBy[rune, St, parsec.RichError, []int, rune, rune](list, open, closeB)
}

// Expr builds the §8 scenario 2 grammar: `expr = expr "+" expr | ident`,
// left-recursive and cut via Memoized. Output is the concatenation of the
// identifiers visited, e.g. `"a+b+c"` parses to `"abc"`.
func Expr() parsec.Parser[rune, St, parsec.RichError, string] {
	ident := parsec.Select[rune, St, parsec.RichError, string](func(r rune) (string, bool) {
		return string(r), r >= 'a' && r <= 'z'
	})
	plus := parsec.Just[rune, St, parsec.RichError]('+')

	rec := parsec.NewRecursive[rune, St, parsec.RichError, string]()
	leftRecursive := parsec.Memoized(parsec.Map(
		parsec.Group3[rune, St, parsec.RichError, string, rune, string](rec, plus, rec),
		func(p parsec.Triple[string, rune, string]) string { return p.First + p.Third },
	))
	rec.Define(parsec.Choice[rune, St, parsec.RichError, string](leftRecursive, ident))
	return rec
}

// ListResult is one bracketed integer list from the §8 scenario 3
// grammar: either the list of ints it actually parsed to, or a recovery
// placeholder when a non-integer element forced recovery.
type ListResult struct {
	Ints  []int
	IsErr bool
}

// BracketRecoveryList builds the §8 scenario 3 grammar: a bracketed list
// of bracketed integer lists, where a malformed inner list (e.g.
// containing a bare word instead of a digit) is recovered by skipping to
// its matching close bracket and substituting a ListResult{IsErr: true},
// emitting one non-fatal error per recovered list. `"[[1, two], [3,
// four]]"` parses to two recovered ListResults with two emitted errors.
func BracketRecoveryList() parsec.Parser[rune, St, parsec.RichError, []ListResult] {
	open := parsec.Just[rune, St, parsec.RichError]('[')
	closeB := parsec.Just[rune, St, parsec.RichError](']')
	comma := parsec.Just[rune, St, parsec.RichError](',')

	intElem := text.Padded[parsec.RichError](text.Int[parsec.RichError]())
	innerInts := parsec.NewSeparatedBy[rune, St, parsec.RichError, int, rune](intElem, comma)
	innerList := parsec.DelimitedBy[rune, St, parsec.RichError, []int, rune, rune](innerInts, open, closeB)

	skipToMatchingBracket := parsec.IgnoreThen[rune, St, parsec.RichError, rune, ListResult](
		open,
		parsec.NestedDelimiters[rune, St, parsec.RichError, ListResult](
			parsec.Ignored[rune, St, parsec.RichError, rune](open),
			parsec.Ignored[rune, St, parsec.RichError, rune](closeB),
			nil,
			func() ListResult { return ListResult{IsErr: true} },
		),
	)

	inner := parsec.RecoverWith(
		parsec.Map(innerList, func(ints []int) ListResult { return ListResult{Ints: ints} }),
		parsec.ViaParser(skipToMatchingBracket),
	)
	// Padded the same way intElem is, so whitespace around the outer
	// commas (between bracketed sublists) doesn't need its own handling.
	paddedInner := text.Padded[parsec.RichError, ListResult](inner)

	outer := parsec.NewSeparatedBy[rune, St, parsec.RichError, ListResult, rune](paddedInner, comma)
	return parsec.DelimitedBy[rune, St, parsec.RichError, []ListResult, rune, rune](outer, open, closeB)
}
