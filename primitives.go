package parsec

import "fmt"

// Empty succeeds without advancing the cursor; its output is struct{}{}
// (spec.md §4.2 empty).
func Empty[T any, S any, E Error]() Parser[T, S, E, struct{}] {
	return newParser(func(_ Mode, _ *Cursor[T, S, E]) (struct{}, bool) {
		return struct{}{}, true
	})
}

// End succeeds iff the cursor is at the end of input; fails with "expected
// end of input" otherwise (spec.md §4.2 end).
func End[T any, S any, E Error]() Parser[T, S, E, struct{}] {
	return newParser(func(_ Mode, cur *Cursor[T, S, E]) (struct{}, bool) {
		if cur.AtEnd() {
			return struct{}{}, true
		}
		cur.Fail([]string{"end of input"})
		return struct{}{}, false
	})
}

// Any consumes and returns one token, failing at end of input (spec.md
// §4.2 any).
func Any[T any, S any, E Error]() Parser[T, S, E, T] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (T, bool) {
		var zero T
		tok, ok := cur.Next()
		if !ok {
			cur.Fail([]string{"any token"})
			return zero, false
		}
		if m == Check {
			return zero, true
		}
		return tok, true
	})
}

// Just consumes one token equal to want, by Go == equality (spec.md §4.2
// just). Fails, without advancing, if the next token differs or the input
// is at end.
func Just[T comparable, S any, E Error](want T) Parser[T, S, E, T] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (T, bool) {
		var zero T
		tok, ok := cur.Peek()
		if !ok || tok != want {
			cur.Fail([]string{fmt.Sprintf("%v", want)})
			return zero, false
		}
		cur.Next()
		if m == Check {
			return zero, true
		}
		return tok, true
	})
}

// OneOf consumes one token that is a member of set, by Go == equality
// (spec.md §4.2 one_of).
func OneOf[T comparable, S any, E Error](set ...T) Parser[T, S, E, T] {
	members := make(map[T]struct{}, len(set))
	expected := make([]string, len(set))
	for i, s := range set {
		members[s] = struct{}{}
		expected[i] = fmt.Sprintf("%v", s)
	}
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (T, bool) {
		var zero T
		tok, ok := cur.Peek()
		if !ok {
			cur.Fail(expected)
			return zero, false
		}
		if _, in := members[tok]; !in {
			cur.Fail(expected)
			return zero, false
		}
		cur.Next()
		if m == Check {
			return zero, true
		}
		return tok, true
	})
}

// NoneOf consumes one token that is NOT a member of set (spec.md §4.2
// none_of).
func NoneOf[T comparable, S any, E Error](set ...T) Parser[T, S, E, T] {
	members := make(map[T]struct{}, len(set))
	for _, s := range set {
		members[s] = struct{}{}
	}
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (T, bool) {
		var zero T
		tok, ok := cur.Peek()
		if !ok {
			cur.Fail([]string{"any token not excluded"})
			return zero, false
		}
		if _, excluded := members[tok]; excluded {
			cur.Fail([]string{"token not in excluded set"})
			return zero, false
		}
		cur.Next()
		if m == Check {
			return zero, true
		}
		return tok, true
	})
}

// Select consumes one token, applying f; succeeds with the U f returns
// when ok is true (spec.md §4.2 select). The intended use is a predicate
// generated by a grammar-author-facing pattern-matching macro (out of
// scope for this core, per spec.md §1) — f itself fully determines
// acceptance here.
func Select[T any, S any, E Error, U any](f func(T) (U, bool)) Parser[T, S, E, U] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (U, bool) {
		var zero U
		tok, ok := cur.Peek()
		if !ok {
			cur.Fail([]string{"matching token"})
			return zero, false
		}
		u, matched := f(tok)
		if !matched {
			cur.Fail([]string{"matching token"})
			return zero, false
		}
		cur.Next()
		if m == Check {
			return zero, true
		}
		return u, true
	})
}

// SelectRef is like Select but applies f to a reference to the token
// rather than a copy, for Borrowable inputs with large token values
// (spec.md §4.2 select_ref).
func SelectRef[T any, S any, E Error, U any](f func(*T) (U, bool)) Parser[T, S, E, U] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (U, bool) {
		var zero U
		br, ok := cur.input.(Borrowable[T])
		if !ok {
			tok, ok := cur.Peek()
			if !ok {
				cur.Fail([]string{"matching token"})
				return zero, false
			}
			u, matched := f(&tok)
			if !matched {
				cur.Fail([]string{"matching token"})
				return zero, false
			}
			cur.Next()
			if m == Check {
				return zero, true
			}
			return u, true
		}
		ref, next, ok := br.NextRef(cur.off)
		if !ok {
			cur.Fail([]string{"matching token"})
			return zero, false
		}
		u, matched := f(ref)
		if !matched {
			cur.Fail([]string{"matching token"})
			return zero, false
		}
		cur.Restore(next)
		if m == Check {
			return zero, true
		}
		return u, true
	})
}

// Custom delegates execution entirely to f, the escape hatch named in
// spec.md §4.2. f receives the cursor directly and is responsible for its
// own Fail/advance discipline.
func Custom[T any, S any, E Error, O any](f func(cur *Cursor[T, S, E]) (O, bool)) Parser[T, S, E, O] {
	return newParser(func(_ Mode, cur *Cursor[T, S, E]) (O, bool) {
		return f(cur)
	})
}

// Todo always fails and panics to signal "unimplemented" (spec.md §4.2
// todo, §7 "Programmer error"). It is meant as a placeholder while
// building a grammar incrementally, never something reachable from valid
// input in a finished grammar.
func Todo[T any, S any, E Error, O any]() Parser[T, S, E, O] {
	return newParser(func(_ Mode, _ *Cursor[T, S, E]) (O, bool) {
		panic("parsec: Todo() parser invoked")
	})
}

// Choice is n-ary ordered alternation: the first child that succeeds at
// the starting offset wins; errors from all tried children are merged
// into the cursor's alt (spec.md §4.2 choice).
func Choice[T any, S any, E Error, O any](parsers ...Parser[T, S, E, O]) Parser[T, S, E, O] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (O, bool) {
		start := cur.Save()
		var zero O
		for _, p := range parsers {
			out, ok := p.execute(m, cur)
			if ok {
				return out, true
			}
			cur.Restore(start)
		}
		return zero, false
	})
}

// Pair is the output of a 2-ary Group/Then.
type Pair[A any, B any] struct {
	First  A
	Second B
}

// Triple is the output of a 3-ary Group.
type Triple[A any, B any, C any] struct {
	First  A
	Second B
	Third  C
}

// Quad is the output of a 4-ary Group.
type Quad[A any, B any, C any, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// Group2 is a fixed-arity sequence of two parsers; fails on the first
// child's failure, otherwise returns both outputs as a Pair (spec.md §4.2
// group).
func Group2[T any, S any, E Error, A any, B any](pa Parser[T, S, E, A], pb Parser[T, S, E, B]) Parser[T, S, E, Pair[A, B]] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (Pair[A, B], bool) {
		var zero Pair[A, B]
		a, ok := pa.execute(m, cur)
		if !ok {
			return zero, false
		}
		b, ok := pb.execute(m, cur)
		if !ok {
			return zero, false
		}
		return Pair[A, B]{First: a, Second: b}, true
	})
}

// Group3 is the 3-ary form of Group2.
func Group3[T any, S any, E Error, A any, B any, C any](
	pa Parser[T, S, E, A], pb Parser[T, S, E, B], pc Parser[T, S, E, C],
) Parser[T, S, E, Triple[A, B, C]] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (Triple[A, B, C], bool) {
		var zero Triple[A, B, C]
		a, ok := pa.execute(m, cur)
		if !ok {
			return zero, false
		}
		b, ok := pb.execute(m, cur)
		if !ok {
			return zero, false
		}
		c, ok := pc.execute(m, cur)
		if !ok {
			return zero, false
		}
		return Triple[A, B, C]{First: a, Second: b, Third: c}, true
	})
}

// Group4 is the 4-ary form of Group2.
func Group4[T any, S any, E Error, A any, B any, C any, D any](
	pa Parser[T, S, E, A], pb Parser[T, S, E, B], pc Parser[T, S, E, C], pd Parser[T, S, E, D],
) Parser[T, S, E, Quad[A, B, C, D]] {
	return newParser(func(m Mode, cur *Cursor[T, S, E]) (Quad[A, B, C, D], bool) {
		var zero Quad[A, B, C, D]
		a, ok := pa.execute(m, cur)
		if !ok {
			return zero, false
		}
		b, ok := pb.execute(m, cur)
		if !ok {
			return zero, false
		}
		c, ok := pc.execute(m, cur)
		if !ok {
			return zero, false
		}
		d, ok := pd.execute(m, cur)
		if !ok {
			return zero, false
		}
		return Quad[A, B, C, D]{First: a, Second: b, Third: c, Fourth: d}, true
	})
}
