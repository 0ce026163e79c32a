package grammar

import "github.com/ardnew/combin/parse"

// Literal matches the given string exactly, producing it as a string
// value. An empty literal always fails.
func Literal(s string) *parse.Parser[rune] {
	return parse.StartsWith([]rune(s), false).Map(func(v any) any {
		return string(v.(parse.Input[rune]))
	})
}

// Prefix matches the longest non-empty prefix of s present in the input,
// producing it as a string value.
func Prefix(s string) *parse.Parser[rune] {
	return parse.StartsWith([]rune(s), true).Map(func(v any) any {
		return string(v.(parse.Input[rune]))
	})
}

// Bool matches the literals "true" and "false", producing a bool value.
func Bool() *parse.Parser[rune] {
	return Literal("true").Map(func(any) any { return true }).
		Plus(Literal("false").Map(func(any) any { return false }))
}

// joinRunes folds a flat []any of runes into a string.
func joinRunes(v any) any {
	runes := v.([]any)

	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = r.(rune)
	}

	return string(out)
}

// bareField matches one or more runes that are not field or record
// delimiters.
func bareField() *parse.Parser[rune] {
	return parse.Item[rune]().Satisfy(func(v any) bool {
		r, ok := v.(rune)

		return ok && r != ',' && r != '"' && r != '\n' && r != '\r'
	}).AtLeastOne().Map(joinRunes)
}

// quotedField matches a double-quoted field, producing its unquoted
// content. Quotes may surround any runes except a double quote.
func quotedField() *parse.Parser[rune] {
	content := parse.Item[rune]().Satisfy(func(v any) bool {
		r, ok := v.(rune)

		return ok && r != '"'
	}).Many("").Map(func(v any) any {
		if s, ok := v.(string); ok {
			return s // zero-content field
		}

		return joinRunes(v)
	})

	return content.Between(parse.FirstIs('"'))
}

// Record matches one or more comma-separated fields, quoted or bare,
// producing the field strings as a []any. Zero fields produce an empty
// list.
func Record() *parse.Parser[rune] {
	field := quotedField().Plus(bareField())

	return field.SepBy(parse.FirstIs(','), []any{})
}
