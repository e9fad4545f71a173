package parsec

// Map applies a pure transform to a successful parser's output (spec.md
// §4.3 map). f is never called in Check mode.
func Map[T any, S any, E Error, O any, U any](p Parser[T, S, E, O], f func(O) U) Parser[T, S, E, U] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (U, bool) {
		out, ok := p.execute(m, cur)
		var zero U
		if !ok {
			return zero, false
		}
		if m == Check {
			return zero, true
		}
		return f(out), true
	})
}

// MapWithSpan is like Map but also passes the Span the child parser
// consumed (spec.md §4.3 map_with_span).
func MapWithSpan[T any, S any, E Error, O any, U any](p Parser[T, S, E, O], f func(O, Span) U) Parser[T, S, E, U] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (U, bool) {
		start := cur.Save()
		out, ok := p.execute(m, cur)
		var zero U
		if !ok {
			return zero, false
		}
		if m == Check {
			return zero, true
		}
		return f(out, cur.Span(start)), true
	})
}

// MapWithState is like Map but also passes the threaded user state
// (spec.md §4.3 map_with_state).
func MapWithState[T any, S any, E Error, O any, U any](p Parser[T, S, E, O], f func(O, *S) U) Parser[T, S, E, U] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (U, bool) {
		out, ok := p.execute(m, cur)
		var zero U
		if !ok {
			return zero, false
		}
		if m == Check {
			return zero, true
		}
		return f(out, cur.State()), true
	})
}

// To replaces a successful parser's output with v, regardless of what the
// parser actually produced (spec.md §4.3 to).
func To[T any, S any, E Error, O any, U any](p Parser[T, S, E, O], v U) Parser[T, S, E, U] {
	return Map(p, func(O) U { return v })
}

// Ignored replaces a successful parser's output with struct{}{}, fusing
// with repetition to avoid allocating unwanted output (spec.md §4.3
// ignored).
func Ignored[T any, S any, E Error, O any](p Parser[T, S, E, O]) Parser[T, S, E, struct{}] {
	return To(p, struct{}{})
}

// Then sequences two parsers, producing a Pair of their outputs (spec.md
// §4.3 then). Equivalent to Group2.
func Then[T any, S any, E Error, A any, B any](pa Parser[T, S, E, A], pb Parser[T, S, E, B]) Parser[T, S, E, Pair[A, B]] {
	return Group2(pa, pb)
}

// IgnoreThen sequences two parsers, keeping only the second's output
// (spec.md §4.3 ignore_then).
func IgnoreThen[T any, S any, E Error, A any, B any](pa Parser[T, S, E, A], pb Parser[T, S, E, B]) Parser[T, S, E, B] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (B, bool) {
		var zero B
		if _, ok := pa.execute(m, cur); !ok {
			return zero, false
		}
		return pb.execute(m, cur)
	})
}

// ThenIgnore sequences two parsers, keeping only the first's output
// (spec.md §4.3 then_ignore).
func ThenIgnore[T any, S any, E Error, A any, B any](pa Parser[T, S, E, A], pb Parser[T, S, E, B]) Parser[T, S, E, A] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (A, bool) {
		var zero A
		a, ok := pa.execute(m, cur)
		if !ok {
			return zero, false
		}
		if _, ok := pb.execute(m, cur); !ok {
			return zero, false
		}
		return a, true
	})
}

// AndIs runs self, then re-runs lookahead from self's *starting* offset as
// a pure lookahead (always in Check mode, since only its success matters);
// self's output is kept only if lookahead also succeeds there. The cursor
// after success is the cursor after self — lookahead is always rewound
// (spec.md §4.3 and_is).
func AndIs[T any, S any, E Error, A any, B any](self Parser[T, S, E, A], lookahead Parser[T, S, E, B]) Parser[T, S, E, A] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (A, bool) {
		var zero A
		start := cur.Save()
		a, ok := self.execute(m, cur)
		if !ok {
			return zero, false
		}
		after := cur.Save()
		cur.Restore(start)
		_, lookOk := lookahead.execute(Check, cur)
		cur.Restore(after)
		if !lookOk {
			return zero, false
		}
		return a, true
	})
}

// Not succeeds with struct{}{} iff p fails at the current offset; the
// cursor is always left unmoved (spec.md §4.3 not). Used together with
// AndIs to express negative lookahead: AndIs(self, Not(p)).
func Not[T any, S any, E Error, O any](p Parser[T, S, E, O]) Parser[T, S, E, struct{}] {
	return newParser(func(_ Mode, cur *Cursor[T, S, E]) (struct{}, bool) {
		start := cur.Save()
		_, ok := p.execute(Check, cur)
		cur.Restore(start)
		if ok {
			cur.Fail([]string{"not the following"})
			return struct{}{}, false
		}
		return struct{}{}, true
	})
}

// Or tries p, then q at the same starting offset, keeping the first to
// succeed; equivalent to Choice(p, q) (spec.md §4.3 or).
func Or[T any, S any, E Error, O any](p, q Parser[T, S, E, O]) Parser[T, S, E, O] {
	return Choice(p, q)
}

// OrNot wraps p's output as an optional: *O non-nil on success, nil
// (rewound) on failure; OrNot itself never fails, though p's error stays in
// the cursor's alt slot as a candidate explanation (spec.md §4.3 or_not).
func OrNot[T any, S any, E Error, O any](p Parser[T, S, E, O]) Parser[T, S, E, *O] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (*O, bool) {
		start := cur.Save()
		out, ok := p.execute(m, cur)
		if !ok {
			cur.Restore(start)
			return nil, true
		}
		if m == Check {
			return nil, true
		}
		v := out
		return &v, true
	})
}

// Rewind runs p; on success, resets the cursor to the starting offset and
// yields p's output — positive lookahead (spec.md §4.3 rewind).
func Rewind[T any, S any, E Error, O any](p Parser[T, S, E, O]) Parser[T, S, E, O] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (O, bool) {
		start := cur.Save()
		out, ok := p.execute(m, cur)
		if !ok {
			var zero O
			return zero, false
		}
		cur.Restore(start)
		return out, true
	})
}

// Lazy makes p succeed on the longest prefix it accepts, consuming (and
// discarding) everything after: equivalent to ThenIgnore(p,
// Any().Repeated()) (spec.md §4.3 lazy). Useful at the top of a grammar
// that only cares about a prefix and doesn't want the driver's implicit
// end-of-input check to fail on trailing input.
func Lazy[T any, S any, E Error, O any](p Parser[T, S, E, O]) Parser[T, S, E, O] {
	rest := Ignored[T, S, E, []T](NewRepeated(Any[T, S, E]()).AtLeast(0))
	return ThenIgnore(p, rest)
}

// DelimitedBy runs open, then self, then close, returning self's output;
// fails wherever the first failing child fails (spec.md §4.3
// delimited_by).
func DelimitedBy[T any, S any, E Error, O any, OO any, CO any](
	self Parser[T, S, E, O], open Parser[T, S, E, OO], closeP Parser[T, S, E, CO],
) Parser[T, S, E, O] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (O, bool) {
		var zero O
		if _, ok := open.execute(m, cur); !ok {
			return zero, false
		}
		out, ok := self.execute(m, cur)
		if !ok {
			return zero, false
		}
		if _, ok := closeP.execute(m, cur); !ok {
			return zero, false
		}
		return out, true
	})
}

// PaddedBy runs pad, then self, then pad again, returning self's output
// (spec.md §4.3 padded_by).
func PaddedBy[T any, S any, E Error, O any, PO any](self Parser[T, S, E, O], pad Parser[T, S, E, PO]) Parser[T, S, E, O] {
	return DelimitedBy(self, pad, pad)
}

// Filter fails (rewinding) when pred returns false for p's output,
// otherwise behaves like p (spec.md §4.3 filter). Unlike Map, Filter must
// force its child to Emit even when called in Check mode, because success
// itself depends on the value, not merely on whether the child succeeded —
// this keeps Check/Emit success agreement (spec.md §8 "mode agreement")
// while still letting Filter itself discard output in Check mode.
func Filter[T any, S any, E Error, O any](p Parser[T, S, E, O], pred func(O) bool) Parser[T, S, E, O] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (O, bool) {
		var zero O
		start := cur.Save()
		out, ok := p.execute(Emit, cur)
		if !ok {
			return zero, false
		}
		if !pred(out) {
			cur.Restore(start)
			cur.FailAt([]string{"value satisfying filter"}, nil, cur.Span(start))
			return zero, false
		}
		if m == Check {
			return zero, true
		}
		return out, true
	})
}

// TryMap applies f, which may itself fail with a plain error; on failure
// the returned error's message is recorded at the consumed span and the
// parser fails there — a fatal, non-merging failure for this branch
// (spec.md §4.3 try_map, §7 "Fatal user error"). Like Filter, the child is
// always run in Emit mode so f has a real value to inspect.
func TryMap[T any, S any, E Error, O any, U any](p Parser[T, S, E, O], f func(O, Span) (U, error)) Parser[T, S, E, U] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (U, bool) {
		var zero U
		start := cur.Save()
		out, ok := p.execute(Emit, cur)
		if !ok {
			return zero, false
		}
		span := cur.Span(start)
		u, err := f(out, span)
		if err != nil {
			cur.FailErr(err, span)
			return zero, false
		}
		if m == Check {
			return zero, true
		}
		return u, true
	})
}

// TryMapWithState is TryMap with the threaded user state also passed to f
// (spec.md §4.3 try_map_with_state).
func TryMapWithState[T any, S any, E Error, O any, U any](p Parser[T, S, E, O], f func(O, Span, *S) (U, error)) Parser[T, S, E, U] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (U, bool) {
		var zero U
		start := cur.Save()
		out, ok := p.execute(Emit, cur)
		if !ok {
			return zero, false
		}
		span := cur.Span(start)
		u, err := f(out, span, cur.State())
		if err != nil {
			cur.FailErr(err, span)
			return zero, false
		}
		if m == Check {
			return zero, true
		}
		return u, true
	})
}

// Validate applies f, which may record additional non-fatal errors via the
// Emitter without failing the parser (spec.md §4.3 validate, §7 "Emitted
// error").
func Validate[T any, S any, E Error, O any, U any](p Parser[T, S, E, O], f func(O, Span, Emitter[T, S, E]) U) Parser[T, S, E, U] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (U, bool) {
		var zero U
		start := cur.Save()
		out, ok := p.execute(Emit, cur)
		if !ok {
			return zero, false
		}
		u := f(out, cur.Span(start), Emitter[T, S, E]{cur: cur})
		if m == Check {
			return zero, true
		}
		return u, true
	})
}

// Slice captures the input subrange p consumed and returns it as a
// borrowed Input[T] (requires a Sliceable input; spec.md §4.3 slice).
// Unlike Filter/TryMap/Validate, Slice needs only success/failure from its
// child, so it runs the child in Check mode regardless of the outer mode —
// a cheaper, and still mode-agreement-preserving, special case.
func Slice[T any, S any, E Error, O any](p Parser[T, S, E, O]) Parser[T, S, E, Input[T]] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (Input[T], bool) {
		start := cur.Save()
		if _, ok := p.execute(Check, cur); !ok {
			return nil, false
		}
		if m == Check {
			return nil, true
		}
		sl, ok := cur.input.(Sliceable[T])
		if !ok {
			panic("parsec: Slice requires a Sliceable input")
		}
		return sl.Slice(start, cur.Save()), true
	})
}

// MapSlice is Slice followed by f (spec.md §4.3 map_slice).
func MapSlice[T any, S any, E Error, O any, U any](p Parser[T, S, E, O], f func(Input[T]) U) Parser[T, S, E, U] {
	return Map(Slice(p), f)
}

// NestedIn runs sub to obtain a sub-input, then runs self against it to
// end-of-sub-input, splicing self's emitted errors back into the outer
// cursor. Error spans from inside stay meaningful in the outer coordinate
// system because Sliceable.Slice preserves absolute offsets (spec.md §4.3
// nested_in).
func NestedIn[T any, S any, E Error, O any](self Parser[T, S, E, O], sub Parser[T, S, E, Input[T]]) Parser[T, S, E, O] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (O, bool) {
		var zero O
		subInput, ok := sub.execute(Emit, cur)
		if !ok {
			return zero, false
		}
		inner := newCursor[T, S, E](subInput, cur.state, cur.ctx, cur.factory)
		inner.memo = cur.memo
		inner.depth = cur.depth
		inner.maxDepth = cur.maxDepth
		wrapped := ThenIgnore(self, End[T, S, E]())
		out, innerOK := wrapped.execute(m, inner)
		for _, e := range inner.emitted {
			cur.Emit(e)
		}
		if !innerOK {
			if e, has := inner.AltError(); has {
				cur.recordAlt(e, inner.altOffset)
			}
			return zero, false
		}
		return out, true
	})
}

// Labelled attaches a label so that any error escaping self at the point
// self was tried is rewritten to "expected label"; it never changes
// success semantics (spec.md §4.3 labelled). Requires the caller's Error
// type to implement LabelError; if it doesn't, Labelled is a no-op wrapper.
func Labelled[T any, S any, E Error, O any](self Parser[T, S, E, O], label string) Parser[T, S, E, O] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (O, bool) {
		savedHas, savedAlt, savedOff := cur.hasAlt, cur.alt, cur.altOffset
		cur.hasAlt = false

		out, ok := self.execute(m, cur)

		newHas, newAlt, newOff := cur.hasAlt, cur.alt, cur.altOffset
		cur.hasAlt, cur.alt, cur.altOffset = savedHas, savedAlt, savedOff
		if newHas {
			if le, lok := any(newAlt).(LabelError); lok {
				newAlt = le.WithLabel(label).(E)
			}
			cur.recordAlt(newAlt, newOff)
		}
		return out, ok
	})
}
