package parsec

// Cursor is the mutable per-parse state every parser receives by exclusive
// borrow at each execute call (spec.md §3 "Cursor (InputRef)"). It owns the
// current offset, a pointer to user state, the surrounding context value,
// the error accumulator (alt + emitted queue), and the memoization table.
// Grounded on bshepherdson-psec's Stream, but inverted: psec threads a new
// immutable Stream value through every call; Cursor instead is the single
// mutable party, matching spec.md §5's "cursor exclusively owns the
// advancing position" and letting Save/Restore be a cheap offset copy
// instead of a Stream allocation.
type Cursor[T any, S any, E Error] struct {
	input Input[T]
	off   Offset
	end   Offset // not set or read by any Cursor method; AtEnd probes the input instead

	state *S
	ctx   any

	factory ErrorFactory[T, E]

	hasAlt    bool
	alt       E
	altOffset Offset

	emitted []E

	memo map[memoKey]*memoCell

	// depth guards against runaway recursion in ungoverned recursive
	// grammars (spec.md §5 "recursion uses the host call stack").
	depth    int
	maxDepth int
}

type memoKey struct {
	id  int64
	off Offset
}

type memoCell struct {
	inProgress bool
	done       bool
	ok         bool
	output     any
	newOffset  Offset
	emitted    []any // []E for the owning parser's E, boxed
	failErr    any   // E captured at the moment of failure, for replay
}

func newCursor[T any, S any, E Error](input Input[T], state *S, ctx any, factory ErrorFactory[T, E]) *Cursor[T, S, E] {
	return &Cursor[T, S, E]{
		input:    input,
		off:      input.StartOffset(),
		state:    state,
		ctx:      ctx,
		factory:  factory,
		memo:     make(map[memoKey]*memoCell),
		maxDepth: 10000,
	}
}

// Offset returns the cursor's current position.
func (c *Cursor[T, S, E]) Offset() Offset { return c.off }

// State returns the mutable user state pointer threaded through the parse.
func (c *Cursor[T, S, E]) State() *S { return c.state }

// Context returns the current contextual-configuration value, or nil if
// none has been established by WithCtx/ThenWithCtx.
func (c *Cursor[T, S, E]) Context() any { return c.ctx }

// Next advances past one token, returning it. ok is false at end of input
// and the cursor is left unmoved.
func (c *Cursor[T, S, E]) Next() (tok T, ok bool) {
	t, next, ok := c.input.Next(c.off)
	if !ok {
		return t, false
	}
	c.off = next
	return t, true
}

// Peek reports the next token without advancing.
func (c *Cursor[T, S, E]) Peek() (tok T, ok bool) {
	t, _, ok := c.input.Next(c.off)
	return t, ok
}

// AtEnd reports whether the cursor is at the end of the input.
func (c *Cursor[T, S, E]) AtEnd() bool {
	_, ok := c.Peek()
	return !ok
}

// Save snapshots the current offset for later Restore; callers needing
// backtracking must do this before a speculative child call (spec.md §4.1
// contract 2: "the cursor offset on failure is unspecified").
func (c *Cursor[T, S, E]) Save() Offset { return c.off }

// Restore rewinds the cursor to a previously Saved offset.
func (c *Cursor[T, S, E]) Restore(off Offset) { c.off = off }

// Span builds a Span from start to the cursor's current offset.
func (c *Cursor[T, S, E]) Span(start Offset) Span { return c.input.Span(start, c.off) }

// Fail records an ExpectedFound-style error candidate at the cursor's
// current offset into the alt slot (merging per spec.md §7). It returns
// nothing; the calling combinator returns its own zero value/false pair.
func (c *Cursor[T, S, E]) Fail(expected []string) {
	tok, ok := c.Peek()
	var found *T
	if ok {
		found = &tok
	}
	e := c.factory.ExpectedFound(expected, found, c.Span(c.off))
	c.mergeAlt(e)
}

// FailMessage records a free-form message error at the cursor's current
// offset, merging it into the alt slot like Fail does.
func (c *Cursor[T, S, E]) FailMessage(msg string, span Span) {
	c.mergeAlt(c.factory.Message(msg, span))
}

// FailErr records a Go error raised by try_map as a message error: if
// the configured ErrorFactory's E also implements causeSetter, the
// original err is attached so callers can recover it via errors.As. Unlike
// FailMessage it does not merge: it replaces any alt recorded at or before
// the cursor's current offset, and only an alt at a later offset is kept.
func (c *Cursor[T, S, E]) FailErr(err error, span Span) {
	e := c.factory.Message(err.Error(), span)
	var base Error = e
	if cs, ok := base.(causeSetter); ok {
		e = cs.WithCause(err).(E)
	}
	if c.hasAlt && c.altOffset > c.off {
		return
	}
	c.hasAlt = true
	c.alt = e
	c.altOffset = c.off
}

// FailAt is like Fail but records the error at a caller-supplied span
// rather than the cursor's current position; used by combinators that
// fail based on a lookahead that must not itself move the cursor.
func (c *Cursor[T, S, E]) FailAt(expected []string, found *T, span Span) {
	c.mergeAlt(c.factory.ExpectedFound(expected, found, span))
}

// mergeAlt implements the later-offset-wins, equal-offset-merges policy
// from spec.md §7, recording e as if it applied at the cursor's current
// offset.
func (c *Cursor[T, S, E]) mergeAlt(e E) {
	c.recordAlt(e, c.off)
}

// recordAlt is mergeAlt generalized to an explicit offset, for callers
// (Labelled) re-recording an error that was captured earlier at a
// different cursor position than the offset active right now.
func (c *Cursor[T, S, E]) recordAlt(e E, offset Offset) {
	if !c.hasAlt {
		c.hasAlt = true
		c.alt = e
		c.altOffset = offset
		return
	}
	switch {
	case offset > c.altOffset:
		c.alt = e
		c.altOffset = offset
	case offset == c.altOffset:
		merged := c.alt.Merge(e)
		c.alt = merged.(E)
	}
	// offset < c.altOffset: existing alt already explains failure better.
}

// Emit appends a non-fatal error to the emitted queue (spec.md §7 "Emitted
// (soft) error"). Used by validate and recovery.
func (c *Cursor[T, S, E]) Emit(e E) {
	c.emitted = append(c.emitted, e)
}

// Emitted returns the accumulated non-fatal error queue.
func (c *Cursor[T, S, E]) Emitted() []E { return c.emitted }

// AltError returns the best-so-far primary error, if any was recorded.
func (c *Cursor[T, S, E]) AltError() (E, bool) { return c.alt, c.hasAlt }

// enterRecursion and exitRecursion guard the host call stack against
// ungoverned (non-memoized, non-terminating) recursive grammars.
func (c *Cursor[T, S, E]) enterRecursion() bool {
	c.depth++
	return c.depth <= c.maxDepth
}

func (c *Cursor[T, S, E]) exitRecursion() { c.depth-- }
