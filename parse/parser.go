package parse

import (
	"log/slog"
	"sync"

	"github.com/ardnew/combin/log"
)

// kind discriminates the five primitive parser forms.
type kind uint8

const (
	kindItem kind = iota
	kindZero
	kindConst
	kindBind
	kindAlt
)

// String returns the primitive form's name for tracing.
func (k kind) String() string {
	switch k {
	case kindItem:
		return "item"
	case kindZero:
		return "zero"
	case kindConst:
		return "const"
	case kindBind:
		return "bind"
	case kindAlt:
		return "alt"
	default:
		return "unknown"
	}
}

// Parser is a composable parsing computation over inputs of element type T.
//
// A Parser is a closed tagged variant over five primitive forms (item,
// zero, const, bind, alt); every derived combinator composes these forms
// and adds no new run-time semantics. Parser trees are constructed once
// per grammar and are immutable afterward: [Parser.Run] is a pure tree
// walk carrying no per-invocation state, so a single tree may be run any
// number of times, from any number of goroutines, against different
// inputs.
//
// Values flow through a grammar as `any`. Bind continuations may return
// either a *Parser[T] or a raw value; raw values are wrapped as [Const]
// by a single explicit conversion at the combinator boundary.
type Parser[T comparable] struct {
	kind kind

	// kindConst
	value any

	// kindBind
	base  *Parser[T]
	cont  func(any) any
	probe bool
	cell  *probeCell[T]

	// kindAlt
	left  *Parser[T]
	right *Parser[T]

	// applied by Parse, not Run
	transform func(any) any
	logger    log.Logger
}

// probeCell memoizes the probe-path continuation of a bind node.
//
// The probe path always invokes the continuation with the same empty
// value, so the resolved parser is a constant of the node. The once guard
// makes concurrent first use converge without observably re-invoking the
// factory, which is what allows Lazy parsers to be shared between
// goroutines.
type probeCell[T comparable] struct {
	once     sync.Once
	resolved *Parser[T]
}

// Item returns a parser that consumes exactly one input element,
// producing one pair (head, tail) on non-empty input and no pairs
// otherwise.
func Item[T comparable]() *Parser[T] {
	return &Parser[T]{kind: kindItem}
}

// Zero returns the always-fail parser: its result is empty on every
// input. Zero is the identity of Plus.
func Zero[T comparable]() *Parser[T] {
	return &Parser[T]{kind: kindZero}
}

// Const returns a parser that always succeeds with value v without
// consuming input.
func Const[T comparable](v any) *Parser[T] {
	return &Parser[T]{kind: kindConst, value: v}
}

// Lazy returns a parser that defers resolving fn's parser until first
// use, enabling self-referential grammar definitions that would otherwise
// recurse infinitely at construction time. Resolution happens at most
// once per Lazy node; the resolved parser is cached behind a
// single-assignment cell.
//
// Lazy panics with [ErrNilFactory] if fn is nil.
func Lazy[T comparable](fn func() *Parser[T]) *Parser[T] {
	if fn == nil {
		panic(ErrNilFactory)
	}

	return bindParser(Zero[T](), func(any) any { return fn() }, true)
}

// Bind sequences p with a continuation: every value produced by p is fed
// to f, whose returned parser runs against that value's remaining input,
// and all nested results are concatenated in pair order. If f returns a
// raw value instead of a *Parser[T], it is wrapped as [Const].
//
// If p produces no pairs, the bind produces no pairs (the monadic
// short-circuit). See [Parser.BindProbe] for the probing variant.
//
// Bind panics with [ErrNilContinuation] if f is nil.
func (p *Parser[T]) Bind(f func(any) any) *Parser[T] {
	return bindParser(p, f, false)
}

// BindProbe is Bind with the empty-result probe enabled: when p produces
// no pairs, the continuation is invoked once with a nil value as if p had
// matched empty, and the resulting parser runs against the original
// input. This is the mechanism that lets recursive parsers built via
// [Lazy] be probed for their shape without requiring an actual first
// match, and that lets sequence matching accept a shorter-than-expected
// remainder (see [StartsWith]).
func (p *Parser[T]) BindProbe(f func(any) any) *Parser[T] {
	return bindParser(p, f, true)
}

func bindParser[T comparable](
	p *Parser[T],
	f func(any) any,
	probe bool,
) *Parser[T] {
	if p == nil {
		panic(ErrNilParser)
	}

	if f == nil {
		panic(ErrNilContinuation)
	}

	return &Parser[T]{
		kind:  kindBind,
		base:  p,
		cont:  f,
		probe: probe,
		cell:  &probeCell[T]{},
	}
}

// Plus returns the alternation of p with alt: both are run against the
// same input and their results are concatenated, p's pairs strictly
// first. This is exhaustive backtracking, not first-match-wins. If alt is
// not a *Parser[T], it is coerced to a [Const] parser of that value.
//
// Plus panics with [ErrNilAlternative] if alt is nil.
func (p *Parser[T]) Plus(alt any) *Parser[T] {
	if p == nil {
		panic(ErrNilParser)
	}

	if alt == nil {
		panic(ErrNilAlternative)
	}

	q := coerce[T](alt)
	if q == nil {
		panic(ErrNilAlternative)
	}

	return &Parser[T]{kind: kindAlt, left: p, right: q}
}

// coerce is the single conversion point between raw values and parsers.
// Every combinator boundary that accepts "a parser or a value" funnels
// through it: Plus operands, bind continuation returns, and operator
// table values.
func coerce[T comparable](v any) *Parser[T] {
	if p, ok := v.(*Parser[T]); ok {
		return p
	}

	return Const[T](v)
}

// Run evaluates the parser against in, producing every interpretation in
// discovery order. Run is pure: it never mutates the parser tree or the
// input, and re-running the same tree against the same input yields a
// structurally identical Result.
func (p *Parser[T]) Run(in Input[T]) Result[T] {
	switch p.kind {
	case kindItem:
		head, ok := in.Head()
		if !ok {
			return nil
		}

		return Singleton[T](head, in.Tail())

	case kindZero:
		return nil

	case kindConst:
		return Singleton(p.value, in)

	case kindBind:
		return p.runBind(in)

	case kindAlt:
		return p.left.Run(in).Concat(p.right.Run(in))

	default:
		return nil
	}
}

// runBind implements the bind contract: sequence on success, short-circuit
// or probe on failure.
func (p *Parser[T]) runBind(in Input[T]) Result[T] {
	base := p.base.Run(in)

	if base.Empty() {
		if !p.probe {
			return nil
		}

		// Probe: pretend base matched empty and run the continuation
		// against the original input.
		return p.resolveProbe().Run(in)
	}

	var out Result[T]

	for _, pair := range base {
		next := coerce[T](p.cont(pair.Value))
		out = append(out, next.Run(pair.Rest)...)
	}

	return out
}

// resolveProbe resolves the probe-path continuation exactly once per node.
func (p *Parser[T]) resolveProbe() *Parser[T] {
	p.cell.once.Do(func() {
		p.cell.resolved = coerce[T](p.cont(nil))
	})

	return p.cell.resolved
}

// Parse is the caller-facing entry point: it runs the parser and applies
// the value transform configured with [Parser.WithTransform], if any, to
// every successful value.
func (p *Parser[T]) Parse(in Input[T]) Result[T] {
	r := p.Run(in)

	if p.transform != nil {
		r = r.MapValues(p.transform)
	}

	p.logger.Trace("parse complete",
		slog.String("kind", p.kind.String()),
		slog.Int("pairs", len(r)),
		slog.Int("input_len", in.Len()),
	)

	return r
}

// WithTransform returns a copy of the parser whose Parse applies f to
// every successful value. The receiver is not modified.
//
// WithTransform panics with [ErrNilTransform] if f is nil.
func (p *Parser[T]) WithTransform(f func(any) any) *Parser[T] {
	if f == nil {
		panic(ErrNilTransform)
	}

	q := *p
	q.transform = f

	return &q
}

// WithLogger returns a copy of the parser that traces Parse calls with
// the given logger. The zero-value logger discards all messages.
func (p *Parser[T]) WithLogger(logger log.Logger) *Parser[T] {
	q := *p
	q.logger = logger

	return &q
}
