package parsec

import "unicode/utf8"

// Offset is an opaque cursor position into an Input. Offsets are comparable
// and totally ordered (a later offset always compares greater), but callers
// must not assume any particular numeric meaning beyond that.
type Offset int

// Span identifies a subrange of an Input by its start and end offsets.
type Span struct {
	Start Offset
	End   Offset
}

// Contains reports whether o falls within [s.Start, s.End).
func (s Span) Contains(o Offset) bool {
	return o >= s.Start && o < s.End
}

// Union returns the smallest span covering both s and other.
func (s Span) Union(other Span) Span {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Input is the minimal capability every input stream provides: a starting
// offset, a way to fetch the next token and advance, and span construction.
// Grounded on bshepherdson-psec's Stream interface (Head/Tail/Loc), widened
// to a generic token type and an explicit Offset instead of an immutable
// linked Stream value, so a single Cursor can own the advancing position
// instead of every combinator threading a new Stream value through.
type Input[T any] interface {
	// StartOffset returns the offset of the first token.
	StartOffset() Offset

	// Next returns the token at off and the offset just past it. ok is
	// false at end of input, in which case the returned token is the zero
	// value and neither it nor the returned offset must be used.
	Next(off Offset) (tok T, next Offset, ok bool)

	// Span builds a Span from two offsets produced by this Input.
	Span(start, end Offset) Span
}

// Sliceable inputs can yield a subrange as a single borrowed sub-input,
// required by NestedIn and MapSlice/Slice (spec.md §4.3). Implementations
// must preserve the parent's absolute Offset coordinates in the returned
// sub-input, so that errors raised while parsing the slice still carry
// spans meaningful in the outer input (spec.md §4.3 nested_in: "errors
// spans remain in the outer input's coordinate system").
type Sliceable[T any] interface {
	Input[T]

	// Slice returns a borrowed sub-input over [start, end).
	Slice(start, end Offset) Input[T]
}

// Borrowable inputs can yield a stable reference to a token rather than a
// copy, for select_ref-style predicates that want to avoid copying large
// tokens.
type Borrowable[T any] interface {
	Input[T]

	NextRef(off Offset) (tok *T, next Offset, ok bool)
}

// ExactSizeInput inputs know their own length up front.
type ExactSizeInput interface {
	Len() int
}

// SliceInput adapts a Go slice into an Input, with zero-copy, offset-
// preserving Slice support. This is the workhorse input for token-stream
// grammars (as opposed to raw text); see StringInput for character-level
// parsing.
type SliceInput[T any] struct {
	toks []T
	base Offset // offset of toks[0] in the root input's coordinate system
}

// NewSliceInput wraps toks as an Input[T]. The slice is never mutated.
func NewSliceInput[T any](toks []T) *SliceInput[T] {
	return &SliceInput[T]{toks: toks}
}

func (s *SliceInput[T]) StartOffset() Offset { return s.base }

func (s *SliceInput[T]) Next(off Offset) (T, Offset, bool) {
	var zero T
	i := int(off - s.base)
	if i < 0 || i >= len(s.toks) {
		return zero, off, false
	}
	return s.toks[i], off + 1, true
}

func (s *SliceInput[T]) NextRef(off Offset) (*T, Offset, bool) {
	i := int(off - s.base)
	if i < 0 || i >= len(s.toks) {
		return nil, off, false
	}
	return &s.toks[i], off + 1, true
}

func (s *SliceInput[T]) Span(start, end Offset) Span { return Span{Start: start, End: end} }

func (s *SliceInput[T]) Slice(start, end Offset) Input[T] {
	lo, hi := int(start-s.base), int(end-s.base)
	if lo < 0 {
		lo = 0
	}
	if hi > len(s.toks) {
		hi = len(s.toks)
	}
	if hi < lo {
		hi = lo
	}
	return &SliceInput[T]{toks: s.toks[lo:hi], base: s.base + Offset(lo)}
}

func (s *SliceInput[T]) Len() int { return len(s.toks) }

// StringInput adapts a Go string into an Input[rune], decoding UTF-8 one
// rune at a time. Offsets are byte offsets into the original string, so
// Span results can be used to slice the original string directly.
type StringInput struct {
	s    string
	base Offset
}

// NewStringInput wraps s as an Input[rune].
func NewStringInput(s string) *StringInput { return &StringInput{s: s} }

func (s *StringInput) StartOffset() Offset { return s.base }

func (s *StringInput) Next(off Offset) (rune, Offset, bool) {
	i := int(off - s.base)
	if i < 0 || i >= len(s.s) {
		return 0, off, false
	}
	r, size := utf8.DecodeRuneInString(s.s[i:])
	return r, off + Offset(size), true
}

func (s *StringInput) Span(start, end Offset) Span { return Span{Start: start, End: end} }

func (s *StringInput) Slice(start, end Offset) Input[rune] {
	lo, hi := int(start-s.base), int(end-s.base)
	if lo < 0 {
		lo = 0
	}
	if hi > len(s.s) {
		hi = len(s.s)
	}
	if hi < lo {
		hi = lo
	}
	return &StringInput{s: s.s[lo:hi], base: s.base + Offset(lo)}
}

func (s *StringInput) Len() int { return len(s.s) }

// Raw exposes the underlying string for a span, e.g. for MapSlice callers
// that want the literal substring rather than a []rune.
func (s *StringInput) Raw(span Span) string {
	lo, hi := int(span.Start-s.base), int(span.End-s.base)
	if lo < 0 {
		lo = 0
	}
	if hi > len(s.s) {
		hi = len(s.s)
	}
	if hi < lo {
		hi = lo
	}
	return s.s[lo:hi]
}
