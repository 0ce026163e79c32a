// Package parse is a backtracking parser-combinator kernel: a small algebra
// of composable parsers over an ordered, nondeterministic result type.
//
// A grammar is a tree of [Parser] values assembled from the primitive
// constructors ([Item], [Zero], [Const]) and the derived combinators
// (Bind, Plus, Satisfy, Many, SepBy, Between, Chain, and friends).
// Running a parser against an [Input] walks the tree and produces a
// [Result]: an ordered sequence of (value, remaining-input) pairs, one per
// successful interpretation. An empty Result is the only failure signal;
// there is no error channel at parse time.
//
// # Basics
//
// Parsers are generic over the input element type. Character grammars use
// Input[rune] via [Text]:
//
//	digit := parse.Item[rune]().Satisfy(func(v any) bool {
//		r, ok := v.(rune)
//		return ok && unicode.IsDigit(r)
//	})
//	result := digit.AtLeastOne().Parse(parse.Text("42!"))
//	// result[0].Value = []any{'4', '2'}, result[0].Rest = "!"
//
// Alternation explores every branch: p.Plus(q) runs both p and q against
// the same input and concatenates their results, p's pairs first. Callers
// choose what to do with multiple interpretations; the kernel imposes no
// first-match policy.
//
// # Recursive grammars
//
// Self-referential grammars are tied together with [Lazy], which defers
// resolving its factory until the parser is first run:
//
//	var expr *parse.Parser[rune]
//	factor := parse.Lazy(func() *parse.Parser[rune] {
//		return number.Plus(expr.Between(parse.FirstIs('('), parse.FirstIs(')')))
//	})
//	expr = factor.Chain(addOps)
//
// Parser trees are immutable once constructed and safe for concurrent use;
// Lazy resolution is memoized behind a single-assignment cell.
package parse
