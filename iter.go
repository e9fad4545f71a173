package parsec

// Repeated is the builder for the `repeated` family of combinators
// (spec.md §4.4): invoke child repeatedly until it fails or Max is
// reached. On failure before Min successes, the whole combinator fails. On
// failure at or after Min, it succeeds and the cursor is rewound to the
// position just before the failing attempt — greedy, no backtracking
// across iterations except that implicit one-step rewind.
//
// Repeated itself satisfies Parser[T, S, E, []O] (the default "collect to
// an ordered sequence" behavior); Collect, CollectExactly, and Count adapt
// it to other output shapes via the Container sink (spec.md §4.4), and
// Enumerate builds its own slice of index/output pairs.
type Repeated[T any, S any, E Error, O any] struct {
	child Parser[T, S, E, O]
	min   int
	max   int // -1 means unbounded
}

// NewRepeated builds a Repeated with no bounds (equivalent to "zero or
// more").
func NewRepeated[T any, S any, E Error, O any](child Parser[T, S, E, O]) *Repeated[T, S, E, O] {
	return &Repeated[T, S, E, O]{child: child, max: -1}
}

// RepeatedOf is a short alias for NewRepeated, read as "child.repeated()".
func RepeatedOf[T any, S any, E Error, O any](child Parser[T, S, E, O]) *Repeated[T, S, E, O] {
	return NewRepeated(child)
}

// AtLeast sets the minimum number of successful iterations required.
func (r *Repeated[T, S, E, O]) AtLeast(n int) *Repeated[T, S, E, O] {
	out := *r
	out.min = n
	return &out
}

// AtMost sets the maximum number of iterations attempted; pass -1 for
// unbounded (the default).
func (r *Repeated[T, S, E, O]) AtMost(n int) *Repeated[T, S, E, O] {
	out := *r
	out.max = n
	return &out
}

// Exactly requires precisely n iterations.
func (r *Repeated[T, S, E, O]) Exactly(n int) *Repeated[T, S, E, O] {
	out := *r
	out.min, out.max = n, n
	return &out
}

func (r *Repeated[T, S, E, O]) execute(m Mode, cur *Cursor[T, S, E]) ([]O, bool) {
	return repeatInto[T, S, E, O, []O](r, m, cur, NewSliceContainer[O](0))
}

// repeatInto is the one place the repetition loop, the min/max bound
// check, and the debug zero-width invariant (spec.md §4.4 "an iterating
// parser whose child consumes zero input and succeeds is a programmer
// error") live; Collect, CollectExactly, Count, and the default []O
// execute above all funnel through it with different sinks.
func repeatInto[T any, S any, E Error, O any, C any](r *Repeated[T, S, E, O], m Mode, cur *Cursor[T, S, E], sink Container[O, C]) (C, bool) {
	var zero C
	count := 0
	for r.max < 0 || count < r.max {
		start := cur.Save()
		out, ok := r.child.execute(m, cur)
		if !ok {
			cur.Restore(start)
			break
		}
		if cur.Save() == start {
			panic("parsec: repeated combinator's child consumed no input; would loop forever")
		}
		if m == Emit {
			sink.Push(out)
		}
		count++
	}
	if count < r.min {
		return zero, false
	}
	if m == Check {
		return zero, true
	}
	return sink.Finish(), true
}

// Collect adapts r into a parser that pushes each iteration's output into
// a fresh sink built by newSink and returns its Finish() value (spec.md
// §4.4 collect). newSink is called once per execute so the same compiled
// Repeated parser can run any number of times without sharing mutable sink
// state across calls.
func Collect[T any, S any, E Error, O any, C any](r *Repeated[T, S, E, O], newSink func() Container[O, C]) Parser[T, S, E, C] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (C, bool) {
		return repeatInto[T, S, E, O, C](r, m, cur, newSink())
	})
}

// CollectExactly is Collect constrained to exactly n iterations, failing
// the whole parser if the count differs (spec.md §4.4 collect_exactly).
func CollectExactly[T any, S any, E Error, O any](r *Repeated[T, S, E, O], n int) Parser[T, S, E, []O] {
	exact := r.Exactly(n)
	return newParser(func(m Mode, cur *Cursor[T, S, E]) ([]O, bool) {
		return repeatInto[T, S, E, O, []O](exact, m, cur, NewSliceContainer[O](n))
	})
}

// Count adapts r into a parser that discards each iteration's output and
// returns only how many iterations succeeded (spec.md §4.4 count).
func Count[T any, S any, E Error, O any](r *Repeated[T, S, E, O]) Parser[T, S, E, int] {
	return Collect[T, S, E, O, int](r, func() Container[O, int] { return NewCountContainer[O]() })
}

// Enumerate adapts r into a parser that pairs each output with its
// zero-based iteration index (spec.md §4.4 enumerate).
func Enumerate[T any, S any, E Error, O any](r *Repeated[T, S, E, O]) Parser[T, S, E, []Pair[int, O]] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) ([]Pair[int, O], bool) {
		var zero []Pair[int, O]
		var items []Pair[int, O]
		count := 0
		for r.max < 0 || count < r.max {
			start := cur.Save()
			out, ok := r.child.execute(m, cur)
			if !ok {
				cur.Restore(start)
				break
			}
			if cur.Save() == start {
				panic("parsec: repeated combinator's child consumed no input; would loop forever")
			}
			if m == Emit {
				items = append(items, Pair[int, O]{First: count, Second: out})
			}
			count++
		}
		if count < r.min {
			return zero, false
		}
		if m == Check {
			return nil, true
		}
		return items, true
	})
}

// SeparatedBy is the builder for the `separated_by` family (spec.md §4.4):
// zero or more of elem, separated by sep, with optional leading/trailing
// separator acceptance. The separator's own output is always discarded;
// only elem's outputs are returned.
type SeparatedBy[T any, S any, E Error, O any, SO any] struct {
	elem Parser[T, S, E, O]
	sep  Parser[T, S, E, SO]

	min, max      int // max == -1 means unbounded
	allowLeading  bool
	allowTrailing bool
}

// NewSeparatedBy builds a SeparatedBy with no bounds and neither leading
// nor trailing separators allowed.
func NewSeparatedBy[T any, S any, E Error, O any, SO any](elem Parser[T, S, E, O], sep Parser[T, S, E, SO]) *SeparatedBy[T, S, E, O, SO] {
	return &SeparatedBy[T, S, E, O, SO]{elem: elem, sep: sep, max: -1}
}

// AtLeast sets the minimum number of elements required.
func (sb *SeparatedBy[T, S, E, O, SO]) AtLeast(n int) *SeparatedBy[T, S, E, O, SO] {
	out := *sb
	out.min = n
	return &out
}

// AtMost sets the maximum number of elements accepted; -1 is unbounded.
func (sb *SeparatedBy[T, S, E, O, SO]) AtMost(n int) *SeparatedBy[T, S, E, O, SO] {
	out := *sb
	out.max = n
	return &out
}

// AllowLeading permits (but does not require) a separator before the
// first element.
func (sb *SeparatedBy[T, S, E, O, SO]) AllowLeading() *SeparatedBy[T, S, E, O, SO] {
	out := *sb
	out.allowLeading = true
	return &out
}

// AllowTrailing permits (but does not require) a separator after the last
// element.
func (sb *SeparatedBy[T, S, E, O, SO]) AllowTrailing() *SeparatedBy[T, S, E, O, SO] {
	out := *sb
	out.allowTrailing = true
	return &out
}

func (sb *SeparatedBy[T, S, E, O, SO]) execute(m Mode, cur *Cursor[T, S, E]) ([]O, bool) {
	var zero []O
	var items []O

	if sb.allowLeading {
		start := cur.Save()
		if _, ok := sb.sep.execute(Check, cur); !ok {
			cur.Restore(start)
		}
	}

	count := 0
	if sb.max != 0 {
		start := cur.Save()
		out, ok := sb.elem.execute(m, cur)
		if !ok {
			cur.Restore(start)
		} else {
			if m == Emit {
				items = append(items, out)
			}
			count++
		}
	}

	for count > 0 && (count < sb.max || sb.max < 0) {
		sepStart := cur.Save()
		if _, ok := sb.sep.execute(Check, cur); !ok {
			cur.Restore(sepStart)
			break
		}
		afterSep := cur.Save()
		if sb.max >= 0 && count >= sb.max {
			cur.Restore(sepStart)
			break
		}
		out, ok := sb.elem.execute(m, cur)
		if !ok {
			if sb.allowTrailing {
				// The separator itself matched legitimately; only the
				// failed element attempt needs undoing, so the consumed
				// trailing separator is kept (e.g. so a following close
				// delimiter still sees the right next token).
				cur.Restore(afterSep)
				break
			}
			cur.Restore(sepStart)
			return zero, false
		}
		if m == Emit {
			items = append(items, out)
		}
		count++
	}

	if count < sb.min {
		return zero, false
	}
	if m == Check {
		return nil, true
	}
	return items, true
}

// Foldl parses a seed, then folds each subsequent iteration's output into
// an accumulator left-associatively: f(f(f(seed, x1), x2), x3) (spec.md
// §4.4 foldl).
func Foldl[T any, S any, E Error, A any, O any](seed Parser[T, S, E, A], rest *Repeated[T, S, E, O], f func(A, O) A) Parser[T, S, E, A] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (A, bool) {
		var zero A
		acc, ok := seed.execute(m, cur)
		if !ok {
			return zero, false
		}
		count := 0
		for rest.max < 0 || count < rest.max {
			start := cur.Save()
			out, ok := rest.child.execute(m, cur)
			if !ok {
				cur.Restore(start)
				break
			}
			if cur.Save() == start {
				panic("parsec: repeated combinator's child consumed no input; would loop forever")
			}
			if m == Emit {
				acc = f(acc, out)
			}
			count++
		}
		if count < rest.min {
			return zero, false
		}
		return acc, true
	})
}

// Foldr parses a zero-or-more prefix and a single tail, then folds from
// right to left: f(x1, f(x2, ... f(xk, tail))) (spec.md §4.4 foldr).
func Foldr[T any, S any, E Error, O any, A any](prefix *Repeated[T, S, E, O], tail Parser[T, S, E, A], f func(O, A) A) Parser[T, S, E, A] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (A, bool) {
		var zero A
		var items []O
		count := 0
		for prefix.max < 0 || count < prefix.max {
			start := cur.Save()
			out, ok := prefix.child.execute(m, cur)
			if !ok {
				cur.Restore(start)
				break
			}
			if cur.Save() == start {
				panic("parsec: repeated combinator's child consumed no input; would loop forever")
			}
			if m == Emit {
				items = append(items, out)
			}
			count++
		}
		if count < prefix.min {
			return zero, false
		}
		acc, ok := tail.execute(m, cur)
		if !ok {
			return zero, false
		}
		if m == Emit {
			for i := len(items) - 1; i >= 0; i-- {
				acc = f(items[i], acc)
			}
		}
		return acc, true
	})
}
