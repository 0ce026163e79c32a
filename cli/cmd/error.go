package cmd

import (
	"log/slog"

	"github.com/ardnew/combin/parse"
)

// Sentinel errors.
var (
	ErrUnknownGrammar = parse.NewError("unknown grammar")
	ErrNoMatch        = parse.NewError("input does not match grammar")
)

// unknownGrammar decorates ErrUnknownGrammar with the offending name.
func unknownGrammar(name string) error {
	return ErrUnknownGrammar.With(slog.String("grammar", name))
}
