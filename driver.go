package parsec

import (
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// ParseSession is the library's sole entry point (spec.md §6 item 1): it
// owns a Cursor for the duration of one parse, wraps the root parser so
// callers never need to remember end-of-input anchoring themselves, and
// turns the cursor's alt/emitted slots into the final (output, errors)
// pair.
//
// O is fixed per session (Go methods cannot introduce type parameters
// beyond their receiver's), so a session is built once per top-level
// grammar's output type — the natural granularity anyway, since
// grounded on bshepherdson-psec's top-level Parse function, which
// likewise owns stream construction and a single entry call for one
// grammar. ParseSession widens that to carry optional user state, a
// context value, and an optional logger via functional options, in the
// style of hemanta212-scaf/cmd/scaf-lsp's server setup.
type ParseSession[T any, S any, E Error, O any] struct {
	factory ErrorFactory[T, E]
	root    Parser[T, S, E, O]
	state   *S
	ctx     any
	log     *zap.Logger
}

// SessionOption configures a ParseSession.
type SessionOption[T any, S any, E Error, O any] func(*ParseSession[T, S, E, O])

// WithState installs the initial user state pointer threaded through the
// parse via Cursor.State.
func WithState[T any, S any, E Error, O any](state *S) SessionOption[T, S, E, O] {
	return func(ps *ParseSession[T, S, E, O]) { ps.state = state }
}

// WithContext installs the initial context value threaded via Cursor.Context.
func WithContext[T any, S any, E Error, O any](ctx any) SessionOption[T, S, E, O] {
	return func(ps *ParseSession[T, S, E, O]) { ps.ctx = ctx }
}

// WithLogger attaches a zap logger; one Debug record is emitted per
// Parse/Check call (input length if known, elapsed time, error count).
// Without this option, or with a nil logger, the session logs to
// zap.NewNop() and nothing is written (spec.md §A.2).
func WithLogger[T any, S any, E Error, O any](log *zap.Logger) SessionOption[T, S, E, O] {
	return func(ps *ParseSession[T, S, E, O]) { ps.log = log }
}

// NewSession builds a ParseSession around root, using factory to construct
// every Error the core itself raises (spec.md §6 item 2).
func NewSession[T any, S any, E Error, O any](root Parser[T, S, E, O], factory ErrorFactory[T, E], opts ...SessionOption[T, S, E, O]) *ParseSession[T, S, E, O] {
	ps := &ParseSession[T, S, E, O]{factory: factory, root: root, log: zap.NewNop()}
	for _, opt := range opts {
		opt(ps)
	}
	if ps.log == nil {
		ps.log = zap.NewNop()
	}
	return ps
}

// Parse runs the session's root parser against input in Emit mode,
// anchored to end-of-input (spec.md §6 item 1: "a parser that leaves
// trailing input is wrapped in then_ignore(end()) by the driver"). The
// returned output is present (ok) iff no fatal error occurred; the error
// slice may still be non-empty alongside a present output when a recovery
// strategy rescued the parse.
func (ps *ParseSession[T, S, E, O]) Parse(input Input[T]) (output O, errs []E, ok bool) {
	return ps.run(Emit, input)
}

// Check is Parse's Check-mode counterpart: it reports success/failure and
// the accumulated errors without materializing an output.
func (ps *ParseSession[T, S, E, O]) Check(input Input[T]) (errs []E, ok bool) {
	_, errs, ok = ps.run(Check, input)
	return errs, ok
}

func (ps *ParseSession[T, S, E, O]) run(m Mode, input Input[T]) (O, []E, bool) {
	start := time.Now()
	cur := newCursor[T, S, E](input, ps.state, ps.ctx, ps.factory)

	anchored := ThenIgnore(ps.root, End[T, S, E]())
	out, ok := anchored.execute(m, cur)

	var errs []E
	if !ok {
		if e, has := cur.AltError(); has {
			errs = append(errs, e)
		}
	}
	errs = append(errs, cur.Emitted()...)

	ps.logCompletion(input, time.Since(start), len(errs), ok)

	return out, errs, ok
}

func (ps *ParseSession[T, S, E, O]) logCompletion(input Input[T], elapsed time.Duration, errCount int, ok bool) {
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int("error_count", errCount),
		zap.Bool("ok", ok),
	}
	if sized, isSized := input.(ExactSizeInput); isSized {
		fields = append(fields, zap.Int("input_len", sized.Len()))
	}
	ps.log.Debug("parse complete", fields...)
}

// JoinErrors folds a (possibly empty) error list into a single joined
// error via go-multierror, for callers at a CLI boundary that want a
// plain `error` instead of a typed slice (spec.md §A.1, §A.5).
func JoinErrors[E Error](errs []E) error {
	if len(errs) == 0 {
		return nil
	}
	var joined *multierror.Error
	for _, e := range errs {
		joined = multierror.Append(joined, e)
	}
	return joined.ErrorOrNil()
}
