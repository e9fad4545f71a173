package parsec

// Memoized wraps p with a packrat cache keyed by (parser identity, offset)
// on the cursor (spec.md §3 "Memoization cell", §4.7). It is the mechanism
// that turns naive infinite left recursion into the bounded form described
// in §4.7: the first attempt at a left-recursive alternative hits its own
// in-progress cell and fails immediately, letting a non-recursive
// alternative commit; a subsequent outer invocation then replays the
// committed seed instead of re-descending.
//
// The identity half of the cache key is assigned once, at the Memoized
// call itself, via nextParserID — so a Recursive handle should normally
// wrap its recursive alternative in Memoized exactly once, not rebuild it
// per execute.
func Memoized[T any, S any, E Error, O any](p Parser[T, S, E, O]) Parser[T, S, E, O] {
	id := nextParserID()
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (O, bool) {
		var zero O
		key := memoKey{id: id, off: cur.off}

		if cell, ok := cur.memo[key]; ok {
			if cell.inProgress {
				cur.Fail([]string{"non-left-recursive alternative"})
				return zero, false
			}
			for _, boxed := range cell.emitted {
				cur.Emit(boxed.(E))
			}
			if !cell.ok {
				if cell.failErr != nil {
					cur.mergeAlt(cell.failErr.(E))
				}
				return zero, false
			}
			cur.Restore(cell.newOffset)
			if m == Check {
				return zero, true
			}
			return cell.output.(O), true
		}

		cell := &memoCell{inProgress: true}
		cur.memo[key] = cell

		emittedBefore := len(cur.emitted)
		// Run the body in Emit regardless of m: a cache hit may be
		// replayed in either mode later, and the cell needs a real output
		// value to hand back when that happens.
		out, ok := p.execute(Emit, cur)

		cell.inProgress = false
		cell.done = true
		cell.ok = ok
		cell.newOffset = cur.off

		fresh := cur.emitted[emittedBefore:]
		boxedEmitted := make([]any, len(fresh))
		for i, e := range fresh {
			boxedEmitted[i] = e
		}
		cell.emitted = boxedEmitted

		if ok {
			cell.output = out
		} else if e, has := cur.AltError(); has {
			cell.failErr = e
		}

		if !ok {
			return zero, false
		}
		if m == Check {
			return zero, true
		}
		return out, true
	})
}
