// Package parsec is a parser combinator core: small, statically-typed
// parsers compose into larger ones over a generic input stream, sharing a
// single cursor, threading user state, and producing structured output
// alongside a list of source-spanned errors.
//
// A Parser[T, S, E, O] consumes tokens of type T, may read and mutate user
// state of type S, reports errors of type E, and on success produces an O.
// Combinators in this package wrap parsers to build new parsers: Map, Then,
// Or, Repeated, SeparatedBy, RecoverWith, and so on. Every parser runs in one of two modes
// (Emit or Check, see mode.go) against a *Cursor, which owns the advancing
// offset, the error accumulator, and the memoization table for the
// duration of one parse.
//
// The driver entry points, ParseSession.Parse and ParseSession.Check (built
// with NewSession from a root parser and a user error factory), run against
// an Input and return the final (output, errors) pair.
package parsec
