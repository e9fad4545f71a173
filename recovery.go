package parsec

// RecoverWith composes a recovery strategy onto p (spec.md §4.5
// recover_with). On p's failure: its alt error is copied into the cursor's
// non-fatal emitted queue, the cursor is rewound to where p started, and
// strategy runs from there. If strategy succeeds, RecoverWith succeeds
// with strategy's substitute output; if strategy also fails, the original
// failure stands.
func RecoverWith[T any, S any, E Error, O any](p Parser[T, S, E, O], strategy Parser[T, S, E, O]) Parser[T, S, E, O] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (O, bool) {
		start := cur.Save()
		out, ok := p.execute(m, cur)
		if ok {
			return out, true
		}
		if e, has := cur.AltError(); has {
			cur.Emit(e)
		}
		cur.Restore(start)
		return strategy.execute(m, cur)
	})
}

// ViaParser runs an arbitrary parser as the recovery body (spec.md §4.5
// via_parser). It exists as a named identity so call sites read
// `RecoverWith(p, ViaParser(bracketSkip))` the way the spec's combinator
// names suggest, rather than passing bracketSkip bare.
func ViaParser[T any, S any, E Error, O any](p Parser[T, S, E, O]) Parser[T, S, E, O] {
	return p
}

// SkipUntil advances token-by-token until pattern is recognized, then
// rewinds so the recognized delimiter is left unconsumed, and yields
// fallback (spec.md §4.5 skip_until).
func SkipUntil[T any, S any, E Error, O any, PO any](pattern Parser[T, S, E, PO], fallback O) Parser[T, S, E, O] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (O, bool) {
		for {
			start := cur.Save()
			if _, ok := pattern.execute(Check, cur); ok {
				cur.Restore(start)
				if m == Check {
					var zero O
					return zero, true
				}
				return fallback, true
			}
			cur.Restore(start)
			if _, ok := cur.Next(); !ok {
				var zero O
				cur.Fail([]string{"recovery pattern"})
				return zero, false
			}
		}
	})
}

// SkipThenRetryUntil advances token-by-token until until is recognized
// (without consuming it), then makes one attempt at retry from that
// position (spec.md §4.5 skip_then_retry_until).
func SkipThenRetryUntil[T any, S any, E Error, O any, UO any](retry Parser[T, S, E, O], until Parser[T, S, E, UO]) Parser[T, S, E, O] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (O, bool) {
		for {
			start := cur.Save()
			if _, ok := until.execute(Check, cur); ok {
				cur.Restore(start)
				break
			}
			cur.Restore(start)
			if _, ok := cur.Next(); !ok {
				var zero O
				cur.Fail([]string{"recovery until-pattern"})
				return zero, false
			}
		}
		return retry.execute(m, cur)
	})
}

// DelimiterPair names an (open, close) token pair NestedDelimiters should
// also track the nesting of while skipping, so that e.g. parentheses
// inside a bracketed list being recovered don't confuse bracket matching.
// Both sides discard their output (wrap a richer parser in Ignored first).
type DelimiterPair[T any, S any, E Error] struct {
	Open  Parser[T, S, E, struct{}]
	Close Parser[T, S, E, struct{}]
}

// NestedDelimiters tracks nesting depth of open/close starting just past
// an already-consumed open, skipping over any nested fallbacks pairs
// wholesale, and yields makeOutput() at the matching close (spec.md §4.5
// nested_delimiters).
func NestedDelimiters[T any, S any, E Error, O any](
	open Parser[T, S, E, struct{}],
	closeP Parser[T, S, E, struct{}],
	fallbacks []DelimiterPair[T, S, E],
	makeOutput func() O,
) Parser[T, S, E, O] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (O, bool) {
		depth := 1
		for {
			var zero O
			if _, ok := closeP.execute(Check, cur); ok {
				depth--
				if depth == 0 {
					if m == Check {
						return zero, true
					}
					return makeOutput(), true
				}
				continue
			}
			if _, ok := open.execute(Check, cur); ok {
				depth++
				continue
			}
			if skipNestedFallback(cur, fallbacks) {
				continue
			}
			if _, ok := cur.Next(); !ok {
				cur.Fail([]string{"matching delimiter"})
				return zero, false
			}
		}
	})
}

// skipNestedFallback consumes one whole fallback-delimited group (tracking
// its own nesting) if one of fallbacks opens at the cursor's current
// position, reporting whether it did so.
func skipNestedFallback[T any, S any, E Error](cur *Cursor[T, S, E], fallbacks []DelimiterPair[T, S, E]) bool {
	for _, fb := range fallbacks {
		start := cur.Save()
		if _, ok := fb.Open.execute(Check, cur); !ok {
			cur.Restore(start)
			continue
		}
		depth := 1
		for depth > 0 {
			if _, ok := fb.Close.execute(Check, cur); ok {
				depth--
				continue
			}
			if _, ok := fb.Open.execute(Check, cur); ok {
				depth++
				continue
			}
			if _, ok := cur.Next(); !ok {
				return true
			}
		}
		return true
	}
	return false
}
