package parse

// Combine is a binary value-combining function yielded by operator
// parsers and folded over operands by [Parser.Chain] and
// [Parser.ChainRight].
type Combine func(x, y any) any

// ErrNotCombiner reports an operator parser that yielded a value which is
// not a combining function. This is a grammar-construction mistake
// surfaced at the first parse that reaches the operator.
var ErrNotCombiner = NewError("operator value is not a combining function")

// cons prepends head onto a tail list, flattening nested accumulations so
// repetition combinators always yield a flat []any.
func cons(head, tail any) []any {
	switch t := tail.(type) {
	case nil:
		return []any{head}
	case []any:
		out := make([]any, 0, len(t)+1)
		out = append(out, head)

		return append(out, t...)
	default:
		return []any{head, tail}
	}
}

// asCombine extracts a combining function from an operator value.
func asCombine(v any) Combine {
	switch f := v.(type) {
	case Combine:
		return f
	case func(x, y any) any:
		return f
	default:
		panic(ErrNotCombiner)
	}
}

// Satisfy returns a parser that succeeds with the same value iff pred
// holds for it, and contributes no pairs otherwise.
//
// Satisfy panics with [ErrNilPredicate] if pred is nil.
func (p *Parser[T]) Satisfy(pred func(any) bool) *Parser[T] {
	if pred == nil {
		panic(ErrNilPredicate)
	}

	return p.Bind(func(v any) any {
		if pred(v) {
			return Const[T](v)
		}

		return Zero[T]()
	})
}

// Map returns a parser producing f applied to every value p produces.
//
// Map panics with [ErrNilTransform] if f is nil.
func (p *Parser[T]) Map(f func(any) any) *Parser[T] {
	if f == nil {
		panic(ErrNilTransform)
	}

	return p.Bind(func(v any) any {
		return Const[T](f(v))
	})
}

// AtLeastOne matches one or more occurrences of p, producing the matched
// values as a flat []any with the longest run first.
//
// Termination relies on p consuming at least one element per match: the
// recursive repetition is hidden behind a bind continuation, so each
// nested invocation runs on strictly shorter input. Composing AtLeastOne
// (or [Parser.Many]) over a parser that can succeed without consuming is
// a caller error and will not terminate.
func (p *Parser[T]) AtLeastOne() *Parser[T] {
	return p.Bind(func(head any) any {
		return p.Many(nil).Bind(func(tail any) any {
			return Const[T](cons(head, tail))
		})
	})
}

// Many matches zero or more occurrences of p. One or more matches yield a
// flat []any per [Parser.AtLeastOne]; zero matches yield exactly one pair
// holding the configured empty value and the untouched input.
//
// See [Parser.AtLeastOne] for the termination contract.
func (p *Parser[T]) Many(empty any) *Parser[T] {
	return p.AtLeastOne().Plus(Const[T](empty))
}

// FirstIs returns a parser that consumes one element equal to tok.
func FirstIs[T comparable](tok T) *Parser[T] {
	return Item[T]().Satisfy(func(v any) bool {
		return v == any(tok)
	})
}

// StartsWith returns a parser matching seq element by element, producing
// the matched span as an [Input] value.
//
// In exact mode (partial false) the whole of seq must match or the parse
// fails. With partial true, the longest matched non-empty prefix is
// produced even when input ends or diverges before seq is exhausted; the
// first element must still match.
//
// An empty seq always fails: the construction bottoms out at [Zero]
// before any element parser exists. This mirrors the behavior of the
// recursive definition rather than a deliberate policy; callers wanting
// "match empty prefix" should use [Const].
func StartsWith[T comparable](seq []T, partial bool) *Parser[T] {
	if len(seq) == 0 {
		return Zero[T]()
	}

	return startsWithAt(seq, 0, partial)
}

// startsWithAt matches seq[i:], with probe-enabled binds allowing the
// remainder match to come up short.
func startsWithAt[T comparable](seq []T, i int, partial bool) *Parser[T] {
	head := FirstIs(seq[i])

	if i == len(seq)-1 {
		return head.Bind(func(any) any {
			return Const[T](Input[T](seq))
		})
	}

	return head.Bind(func(any) any {
		rest := startsWithAt(seq, i+1, partial)

		// Probe: when the remainder fails, treat it as having matched
		// empty so the span accumulated so far can be judged.
		return rest.BindProbe(func(tail any) any {
			if tail == nil {
				if !partial {
					return Zero[T]()
				}

				return Const[T](Input[T](seq[:i+1]))
			}

			// The deeper level already produced the full span.
			return Const[T](tail)
		})
	})
}

// SepBy matches one or more occurrences of p separated by sep, collecting
// the occurrence values as a flat []any (separator values are discarded).
// Zero occurrences fall back to a single pair holding empty.
//
// SepBy panics with [ErrNilParser] if sep is nil.
func (p *Parser[T]) SepBy(sep *Parser[T], empty any) *Parser[T] {
	if sep == nil {
		panic(ErrNilParser)
	}

	next := sep.Bind(func(any) any { return p })

	return p.Bind(func(head any) any {
		return next.Many(nil).Bind(func(tail any) any {
			return Const[T](cons(head, tail))
		})
	}).Plus(Const[T](empty))
}

// Between matches left, then p, then right, producing only p's value.
// If right is omitted it defaults to left.
//
// Between panics with [ErrNilParser] if a surrounding parser is nil.
func (p *Parser[T]) Between(left *Parser[T], right ...*Parser[T]) *Parser[T] {
	if left == nil {
		panic(ErrNilParser)
	}

	end := left
	if len(right) > 0 {
		if right[0] == nil {
			panic(ErrNilParser)
		}

		end = right[0]
	}

	return left.Bind(func(any) any {
		return p.Bind(func(v any) any {
			return end.Bind(func(any) any {
				return Const[T](v)
			})
		})
	})
}

// Chain folds p over op left-associatively: operand, then repeated
// (operator, operand) pairs, combining as it goes. op must yield
// [Combine] values. The Plus fallback terminates the fold with the last
// accumulated value, and result ordering reports the longest fold first.
//
// Chain panics with [ErrNilParser] if op is nil.
func (p *Parser[T]) Chain(op *Parser[T]) *Parser[T] {
	if op == nil {
		panic(ErrNilParser)
	}

	return p.Bind(func(x any) any {
		return chainRest(p, op, x)
	})
}

// chainRest is the left fold: try another (operator, operand) pair, or
// stop with the accumulated value.
func chainRest[T comparable](p, op *Parser[T], x any) *Parser[T] {
	return op.Bind(func(f any) any {
		combine := asCombine(f)

		return p.Bind(func(y any) any {
			return chainRest(p, op, combine(x, y))
		})
	}).Plus(Const[T](x))
}

// ChainRight folds p over op right-associatively: the right operand of
// each operator is the fold of the entire remaining chain. op must yield
// [Combine] values.
//
// ChainRight panics with [ErrNilParser] if op is nil.
func (p *Parser[T]) ChainRight(op *Parser[T]) *Parser[T] {
	if op == nil {
		panic(ErrNilParser)
	}

	return p.Bind(func(x any) any {
		return op.Bind(func(f any) any {
			combine := asCombine(f)

			return p.ChainRight(op).Bind(func(y any) any {
				return Const[T](combine(x, y))
			})
		}).Plus(Const[T](x))
	})
}

// Operator pairs a matcher with the value its match produces, typically a
// [Combine] function for use with [Parser.Chain].
type Operator[T comparable] struct {
	Match *Parser[T]
	Value any
}

// Operators builds an alternation over the given operator table: each
// matcher's result is discarded and replaced by its paired value, and the
// alternatives are folded with Plus in list order. First listed has no
// precedence beyond the ordering of Result pairs. An empty table yields
// [Zero].
//
// Operators panics with [ErrNilOperator] if a matcher is nil.
func Operators[T comparable](ops ...Operator[T]) *Parser[T] {
	if len(ops) == 0 {
		return Zero[T]()
	}

	acc := operatorParser(ops[0])
	for _, op := range ops[1:] {
		acc = acc.Plus(operatorParser(op))
	}

	return acc
}

func operatorParser[T comparable](op Operator[T]) *Parser[T] {
	if op.Match == nil {
		panic(ErrNilOperator)
	}

	value := op.Value

	return op.Match.Bind(func(any) any {
		return value
	})
}
