package parse

import "slices"

// Input is an immutable window over a sequence of input elements.
//
// All operations reslice the underlying array; none of them mutate it.
// Every parser step produces a new Input referencing the unconsumed suffix,
// so sharing an Input between parsers or goroutines is safe.
type Input[T comparable] []T

// Text wraps a string as rune input for character-level grammars.
func Text(s string) Input[rune] {
	return Input[rune]([]rune(s))
}

// Tokens wraps a sequence of arbitrary tokens as input.
func Tokens[T comparable](toks ...T) Input[T] {
	return Input[T](toks)
}

// Empty reports whether no elements remain.
func (in Input[T]) Empty() bool { return len(in) == 0 }

// Len returns the number of remaining elements.
func (in Input[T]) Len() int { return len(in) }

// Head returns the first element, or false if the input is empty.
func (in Input[T]) Head() (T, bool) {
	if len(in) == 0 {
		var zero T

		return zero, false
	}

	return in[0], true
}

// Tail returns the input with its first element removed.
// The tail of an empty input is empty.
func (in Input[T]) Tail() Input[T] {
	if len(in) == 0 {
		return in
	}

	return in[1:]
}

// Slice returns the first n elements, or the whole input if fewer remain.
func (in Input[T]) Slice(n int) Input[T] {
	if n < 0 {
		n = 0
	}

	if n > len(in) {
		n = len(in)
	}

	return in[:n]
}

// Equal reports element-wise equality with another input.
func (in Input[T]) Equal(other Input[T]) bool {
	return slices.Equal(in, other)
}
