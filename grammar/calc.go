package grammar

import (
	"unicode"

	"github.com/ardnew/combin/parse"
)

// Digit consumes a single decimal digit rune.
func Digit() *parse.Parser[rune] {
	return parse.Item[rune]().Satisfy(func(v any) bool {
		r, ok := v.(rune)

		return ok && unicode.IsDigit(r)
	})
}

// Number folds one or more digits into an int value.
// The fold is greedy-first: the longest run of digits produces the first
// interpretation, shorter prefixes follow.
func Number() *parse.Parser[rune] {
	return Digit().AtLeastOne().Map(func(v any) any {
		n := 0
		for _, d := range v.([]any) {
			n = n*10 + int(d.(rune)-'0')
		}

		return n
	})
}

// addOps yields the additive combining functions for '+' and '-'.
func addOps() *parse.Parser[rune] {
	return parse.Operators(
		parse.Operator[rune]{
			Match: parse.FirstIs('+'),
			Value: parse.Combine(func(x, y any) any {
				return x.(int) + y.(int)
			}),
		},
		parse.Operator[rune]{
			Match: parse.FirstIs('-'),
			Value: parse.Combine(func(x, y any) any {
				return x.(int) - y.(int)
			}),
		},
	)
}

// mulOps yields the multiplicative combining functions for '*' and '/'.
// Division is integer division; a zero divisor yields zero rather than
// panicking mid-parse.
func mulOps() *parse.Parser[rune] {
	return parse.Operators(
		parse.Operator[rune]{
			Match: parse.FirstIs('*'),
			Value: parse.Combine(func(x, y any) any {
				return x.(int) * y.(int)
			}),
		},
		parse.Operator[rune]{
			Match: parse.FirstIs('/'),
			Value: parse.Combine(func(x, y any) any {
				if y.(int) == 0 {
					return 0
				}

				return x.(int) / y.(int)
			}),
		},
	)
}

// Calc returns an evaluating arithmetic grammar:
//
//	expr   : term ((+|-) term)*
//	term   : factor ((*|/) factor)*
//	factor : number | '(' expr ')'
//
// Values are ints; precedence falls out of the chain nesting, and both
// operator levels fold left-associatively. The grammar accepts no
// whitespace.
func Calc() *parse.Parser[rune] {
	var expr *parse.Parser[rune]

	factor := parse.Lazy(func() *parse.Parser[rune] {
		return Number().Plus(
			expr.Between(parse.FirstIs('('), parse.FirstIs(')')),
		)
	})

	term := factor.Chain(mulOps())
	expr = term.Chain(addOps())

	return expr
}

// Power returns a right-associative exponentiation grammar over numbers:
// 2^3^2 parses as 2^(3^2).
func Power() *parse.Parser[rune] {
	pow := parse.Operators(parse.Operator[rune]{
		Match: parse.FirstIs('^'),
		Value: parse.Combine(func(x, y any) any {
			n := 1
			for range y.(int) {
				n *= x.(int)
			}

			return n
		}),
	})

	return Number().ChainRight(pow)
}
