package parsec

import (
	"fmt"
	"sort"
	"strings"
)

// Error is the algebraic contract a user-chosen error payload must satisfy
// (spec.md §7, §6 item 2). The core never inspects an Error beyond this one
// operation, so callers may plug in any representation: a single string, a
// rich span+labels+message struct, or nothing at all (CheapError). Merge
// combines two errors that apply at the same offset (e.g. unioning their
// expected-token sets) and must be commutative and idempotent (spec.md §9,
// "open questions" leaves the exact payload-merge rules to the
// implementation; the core only relies on these two properties).
type Error interface {
	error
	Merge(other Error) Error
}

// LabelError is implemented by an Error type that supports label rewriting
// (spec.md §4.3 labelled, §7). Errors that don't implement it simply pass
// through Labelled unchanged.
type LabelError interface {
	Error
	// WithLabel returns a copy of the error rewritten to "expected label",
	// replacing whatever expected-set it previously carried.
	WithLabel(label string) Error
}

// ErrorFactory constructs Error values from the two situations the core
// itself needs to report: a token that didn't match what was expected, and
// an arbitrary user message raised by validate/try_map/custom. A
// ParseSession is parameterized by one ErrorFactory[T, E] and uses it for
// every Error it constructs on the caller's behalf.
type ErrorFactory[T any, E Error] interface {
	// ExpectedFound builds an error at span reporting that one of the
	// descriptions in expected was wanted, but found (nil at EOF) was
	// seen instead.
	ExpectedFound(expected []string, found *T, span Span) E

	// Message builds an error at span carrying a free-form message.
	Message(msg string, span Span) E
}

// --- CheapError -------------------------------------------------------

// CheapError is the smallest possible error: it only remembers that a
// failure happened and where. Mirrors chumsky's Cheap error (spec.md §6
// item 2) and psec's lack of any payload beyond a location, for callers
// who don't care about diagnostic quality.
type CheapError struct {
	At Span
}

func (e CheapError) Error() string { return fmt.Sprintf("parse error at %d", e.At.Start) }

func (e CheapError) Merge(other Error) Error {
	if o, ok := other.(CheapError); ok && o.At.Start > e.At.Start {
		return o
	}
	return e
}

// cheapFactory is the ErrorFactory for CheapError over any token type.
type cheapFactory[T any] struct{}

// NewCheapFactory returns an ErrorFactory producing CheapError values,
// ignoring both the expected set and the message.
func NewCheapFactory[T any]() ErrorFactory[T, CheapError] { return cheapFactory[T]{} }

func (cheapFactory[T]) ExpectedFound(_ []string, _ *T, span Span) CheapError {
	return CheapError{At: span}
}

func (cheapFactory[T]) Message(_ string, span Span) CheapError { return CheapError{At: span} }

// --- SimpleError --------------------------------------------------------

// SimpleError records the offending span and a human-readable rendering of
// what was found, without an expected-token set. Mirrors chumsky's Simple.
type SimpleError struct {
	At    Span
	Found string // "" means end of input
	Msg   string
}

func (e SimpleError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%d: %s", e.At.Start, e.Msg)
	}
	if e.Found == "" {
		return fmt.Sprintf("%d: unexpected end of input", e.At.Start)
	}
	return fmt.Sprintf("%d: unexpected %s", e.At.Start, e.Found)
}

func (e SimpleError) Merge(other Error) Error {
	if o, ok := other.(SimpleError); ok && o.At.Start > e.At.Start {
		return o
	}
	return e
}

type simpleFactory[T any] struct {
	render func(T) string
}

// NewSimpleFactory returns an ErrorFactory producing SimpleError values,
// rendering found tokens with render (e.g. fmt.Sprintf("%v", t)).
func NewSimpleFactory[T any](render func(T) string) ErrorFactory[T, SimpleError] {
	return simpleFactory[T]{render: render}
}

func (f simpleFactory[T]) ExpectedFound(_ []string, found *T, span Span) SimpleError {
	if found == nil {
		return SimpleError{At: span}
	}
	return SimpleError{At: span, Found: f.render(*found)}
}

func (f simpleFactory[T]) Message(msg string, span Span) SimpleError {
	return SimpleError{At: span, Msg: msg}
}

// --- RichError ------------------------------------------------------------

// RichError is the full-fidelity built-in: a span, a de-duplicated, sorted
// set of expected-token descriptions, an optional label that supersedes the
// expected set when rendering, and an optional free-form message. Mirrors
// chumsky's Rich error and satisfies LabelError.
type RichError struct {
	At       Span
	Expected []string
	Found    string // "" means end of input
	Label    string
	Msg      string
	Cause    error // non-nil when raised from a failed try_map conversion
}

// Unwrap exposes Cause so callers can use errors.Is/errors.As against the
// original Go error a try_map callback returned (spec.md §A.1).
func (e RichError) Unwrap() error { return e.Cause }

// WithCause returns a copy of e carrying err, letting Cursor.FailErr attach
// the original try_map error without every ErrorFactory needing to know
// about causes.
func (e RichError) WithCause(err error) Error { e.Cause = err; return e }

// causeSetter is implemented by Error types (like RichError) that can
// carry the original Go error behind a try_map failure.
type causeSetter interface {
	WithCause(err error) Error
}

func (e RichError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%d: %s", e.At.Start, e.Msg)
	}
	wanted := e.Label
	if wanted == "" {
		wanted = strings.Join(e.Expected, " or ")
	}
	found := e.Found
	if found == "" {
		found = "end of input"
	}
	if wanted == "" {
		return fmt.Sprintf("%d: unexpected %s", e.At.Start, found)
	}
	return fmt.Sprintf("%d: expected %s, found %s", e.At.Start, wanted, found)
}

// Merge unions the expected sets of two RichErrors that apply at the same
// offset; at differing offsets the later one wins (spec.md §7 "Merging").
// Ties between a labelled and unlabelled error favour the labelled one, so
// a labelled() boundary's rewrite survives merging with a child error at
// the same offset.
func (e RichError) Merge(otherErr Error) Error {
	other, ok := otherErr.(RichError)
	if !ok {
		return e
	}
	if other.At.Start > e.At.Start {
		return other
	}
	if other.At.Start < e.At.Start {
		return e
	}
	if e.Label != "" || other.Label != "" {
		if e.Label != "" {
			return e
		}
		return other
	}
	set := make(map[string]struct{}, len(e.Expected)+len(other.Expected))
	for _, x := range e.Expected {
		set[x] = struct{}{}
	}
	for _, x := range other.Expected {
		set[x] = struct{}{}
	}
	merged := make([]string, 0, len(set))
	for x := range set {
		merged = append(merged, x)
	}
	sort.Strings(merged)
	e.Expected = merged
	return e
}

func (e RichError) WithLabel(label string) Error {
	e.Label = label
	e.Expected = nil
	return e
}

type richFactory[T any] struct {
	render func(T) string
}

// NewRichFactory returns an ErrorFactory producing RichError values.
func NewRichFactory[T any](render func(T) string) ErrorFactory[T, RichError] {
	return richFactory[T]{render: render}
}

func (f richFactory[T]) ExpectedFound(expected []string, found *T, span Span) RichError {
	e := RichError{At: span, Expected: append([]string(nil), expected...)}
	if found != nil {
		e.Found = f.render(*found)
	}
	return e
}

func (f richFactory[T]) Message(msg string, span Span) RichError {
	return RichError{At: span, Msg: msg}
}
