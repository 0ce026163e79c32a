package parse

import "slices"

// Pair is one successful interpretation: the value produced by the parser
// and the unconsumed suffix of the input.
type Pair[T comparable] struct {
	Value any
	Rest  Input[T]
}

// Result is an ordered sequence of interpretations discovered by a parser.
//
// Order reflects discovery order: for an alternation, every pair from the
// left branch precedes every pair from the right branch, each preserving
// its branch's internal order. This ordering is an observable contract;
// operator chaining relies on it to report the longest fold first.
//
// An empty Result means "no match". There is no error value.
type Result[T comparable] []Pair[T]

// Singleton returns a Result holding exactly one interpretation.
func Singleton[T comparable](value any, rest Input[T]) Result[T] {
	return Result[T]{{Value: value, Rest: rest}}
}

// Empty reports whether the Result holds no interpretations.
func (r Result[T]) Empty() bool { return len(r) == 0 }

// Concat returns the ordered union of two Results: all of r's pairs
// followed by all of o's pairs. The empty Result is the identity and
// Concat is associative, making Result a monoid. Neither operand is
// modified.
func (r Result[T]) Concat(o Result[T]) Result[T] {
	if len(r) == 0 {
		return o
	}

	if len(o) == 0 {
		return r
	}

	return slices.Concat(r, o)
}

// MapValues returns a new Result with f applied to every value.
// Remaining inputs are untouched.
func (r Result[T]) MapValues(f func(any) any) Result[T] {
	if len(r) == 0 {
		return r
	}

	out := make(Result[T], len(r))
	for i, p := range r {
		out[i] = Pair[T]{Value: f(p.Value), Rest: p.Rest}
	}

	return out
}

// First returns the first interpretation, or false if there is none.
func (r Result[T]) First() (Pair[T], bool) {
	if len(r) == 0 {
		return Pair[T]{}, false
	}

	return r[0], true
}

// Values returns the value of every interpretation in discovery order.
func (r Result[T]) Values() []any {
	if len(r) == 0 {
		return nil
	}

	out := make([]any, len(r))
	for i, p := range r {
		out[i] = p.Value
	}

	return out
}
