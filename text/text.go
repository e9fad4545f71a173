// Package text collects character-input conveniences (spec.md §1:
// "text-level conveniences over a character stream are thin clients of
// this core, not part of it"). Every parser here is built from the core
// parsec package's primitives and combinators; none of it has special
// access to Cursor internals.
package text

import (
	"strings"
	"unicode"

	"github.com/bashepherdson/parsec"
)

// NoState is the user-state type these helpers are parameterized over. It
// is an alias for struct{}, not a distinct named type, so that callers
// whose own grammar uses a `type St = struct{}` alias (as internal/demo
// does) get back exactly the same instantiation of parsec.Parser these
// functions produce, rather than a merely identical-underlying-but-distinct
// generic instantiation the Go type system would otherwise reject at call
// sites that mix the two.
type NoState = struct{}

// Digit matches one decimal digit and returns it.
func Digit[E parsec.Error]() parsec.Parser[rune, NoState, E, rune] {
	return parsec.Select[rune, NoState, E, rune](func(r rune) (rune, bool) {
		return r, unicode.IsDigit(r)
	})
}

// Whitespace matches one Unicode whitespace rune.
func Whitespace[E parsec.Error]() parsec.Parser[rune, NoState, E, rune] {
	return parsec.Select[rune, NoState, E, rune](func(r rune) (rune, bool) {
		return r, unicode.IsSpace(r)
	})
}

// IdentStart matches one rune valid as the first character of an
// identifier: a Unicode letter or underscore.
func IdentStart[E parsec.Error]() parsec.Parser[rune, NoState, E, rune] {
	return parsec.Select[rune, NoState, E, rune](func(r rune) (rune, bool) {
		return r, unicode.IsLetter(r) || r == '_'
	})
}

// IdentCont matches one rune valid as a non-first character of an
// identifier: a Unicode letter, digit, or underscore.
func IdentCont[E parsec.Error]() parsec.Parser[rune, NoState, E, rune] {
	return parsec.Select[rune, NoState, E, rune](func(r rune) (rune, bool) {
		return r, unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
	})
}

// Ident matches a full identifier (IdentStart followed by zero or more
// IdentCont) and collects it into a string.
func Ident[E parsec.Error]() parsec.Parser[rune, NoState, E, string] {
	return parsec.Foldl(
		parsec.Map(IdentStart[E](), func(r rune) string { return string(r) }),
		parsec.NewRepeated(IdentCont[E]()),
		func(acc string, r rune) string {
			var b strings.Builder
			b.WriteString(acc)
			b.WriteRune(r)
			return b.String()
		},
	)
}

// Int matches one or more decimal digits and parses them as a base-10 int.
// Grounded on the "digit list" scenario in spec.md §8, which collects
// digits into integers.
func Int[E parsec.Error]() parsec.Parser[rune, NoState, E, int] {
	digits := parsec.Collect[rune, NoState, E, rune, string](
		parsec.NewRepeated(Digit[E]()).AtLeast(1),
		func() parsec.Container[rune, string] { return parsec.NewStringContainer() },
	)
	return parsec.TryMap(digits, func(s string, span parsec.Span) (int, error) {
		n := 0
		for _, r := range s {
			n = n*10 + int(r-'0')
		}
		return n, nil
	})
}

// Padded strips surrounding Unicode whitespace around p (spec.md §4.3
// "padded — for character inputs, whitespace* -> self -> whitespace*").
func Padded[E parsec.Error, O any](p parsec.Parser[rune, NoState, E, O]) parsec.Parser[rune, NoState, E, O] {
	ws := parsec.Ignored[rune, NoState, E, []rune](parsec.NewRepeated(Whitespace[E]()))
	return parsec.DelimitedBy(p, ws, ws)
}
