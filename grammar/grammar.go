// Package grammar provides small demonstration grammars built with the
// combinator kernel in [github.com/ardnew/combin/parse]. They back the
// CLI run and repl commands and double as integration coverage for the
// kernel.
package grammar

import (
	"sync"

	"github.com/ardnew/combin/parse"
)

// Grammar pairs a named character-level parser with its description.
type Grammar struct {
	Name        string
	Description string
	Parser      *parse.Parser[rune]
}

// registry builds the grammar table once; parser trees are immutable and
// safe to share between callers.
//
//nolint:gochecknoglobals
var registry = sync.OnceValue(func() []Grammar {
	return []Grammar{
		{
			Name:        "calc",
			Description: "Integer arithmetic with + - * /, parentheses, left-associative",
			Parser:      Calc(),
		},
		{
			Name:        "power",
			Description: "Integer exponentiation with ^, right-associative",
			Parser:      Power(),
		},
		{
			Name:        "csv",
			Description: "Comma-separated fields with optional double quotes",
			Parser:      Record(),
		},
		{
			Name:        "bool",
			Description: "Boolean literals true and false",
			Parser:      Bool(),
		},
	}
})

// All returns every registered grammar in display order.
func All() []Grammar {
	return registry()
}

// Names returns the registered grammar names in display order.
func Names() []string {
	all := All()

	names := make([]string, len(all))
	for i, g := range all {
		names[i] = g.Name
	}

	return names
}

// Lookup retrieves a grammar by name.
// Returns (zero, false) if the name is not registered.
func Lookup(name string) (Grammar, bool) {
	for _, g := range All() {
		if g.Name == name {
			return g, true
		}
	}

	return Grammar{}, false
}
