package parsec

// Boxed is a type-erased parser value (spec.md §4.3 boxed, §9 "dynamic
// dispatch"): wrapping a parser in Boxed collapses its static type down to
// a single named type, letting heterogeneous combinator trees that share
// the same T/S/E/O be stored in one slice, struct field, or Recursive body
// without the concrete combinator tree leaking into the type signature.
//
// spec.md §9 asks for "an erased-parser container backed by reference
// counting for cheap cloning" — that's a borrow-checker concern with no Go
// analogue: a Parser value here is already an ordinary interface handle
// managed by the garbage collector, so Boxed is just a struct around one,
// and copying a Boxed value shares the same underlying parser the way
// copying any other interface value does.
type Boxed[T any, S any, E Error, O any] struct {
	inner Parser[T, S, E, O]
}

// Box wraps p, erasing its concrete type. Boxing an already-Boxed parser
// returns it unchanged rather than adding another layer of indirection
// (spec.md §9 "double-boxing is a no-op").
func Box[T any, S any, E Error, O any](p Parser[T, S, E, O]) *Boxed[T, S, E, O] {
	if b, ok := p.(*Boxed[T, S, E, O]); ok {
		return b
	}
	return &Boxed[T, S, E, O]{inner: p}
}

func (b *Boxed[T, S, E, O]) execute(m Mode, cur *Cursor[T, S, E]) (O, bool) {
	return b.inner.execute(m, cur)
}
