package parsec

// Configure derives a parser from the surrounding parse context on every
// execute (spec.md §4.8 configure). The context itself is read via
// Cursor.Context — not part of Configure's signature — because it is an
// `any` value established further out by WithCtx/ThenWithCtx.
//
// Config is resolved fresh per execute and is deliberately not folded into
// a parser's identity: a Configure result must never be wrapped in
// Memoized, since two executions with different context would otherwise
// share a cache cell (spec.md §4.8 "not part of the parser's identity for
// memoization purposes").
func Configure[T any, S any, E Error, O any](build func(ctx any) Parser[T, S, E, O]) Parser[T, S, E, O] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (O, bool) {
		return build(cur.Context()).execute(m, cur)
	})
}

// WithCtx runs child with the context temporarily replaced by ctx,
// restoring the previous context afterward regardless of outcome (spec.md
// §4.8 with_ctx).
func WithCtx[T any, S any, E Error, O any](ctx any, child Parser[T, S, E, O]) Parser[T, S, E, O] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (O, bool) {
		prev := cur.ctx
		cur.ctx = ctx
		out, ok := child.execute(m, cur)
		cur.ctx = prev
		return out, ok
	})
}

// ThenWithCtx runs first, then runs next with first's output installed as
// the context, restoring the previous context afterward (spec.md §4.8
// then_with_ctx). first always executes in Emit mode internally, since
// next's context must be the real value in both of the outer combinator's
// modes, not a zero placeholder in Check mode — the same reasoning Filter
// and TryMap apply to their value-dependent child.
func ThenWithCtx[T any, S any, E Error, A any, O any](first Parser[T, S, E, A], next Parser[T, S, E, O]) Parser[T, S, E, O] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (O, bool) {
		var zero O
		a, ok := first.execute(Emit, cur)
		if !ok {
			return zero, false
		}
		prev := cur.ctx
		cur.ctx = a
		out, ok := next.execute(m, cur)
		cur.ctx = prev
		return out, ok
	})
}
