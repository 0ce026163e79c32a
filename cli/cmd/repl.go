package cmd

import (
	"context"

	"github.com/ardnew/combin/cli/cmd/repl"
	"github.com/ardnew/combin/grammar"
	"github.com/ardnew/combin/log"
)

// Repl starts an interactive parsing session.
type Repl struct {
	Grammar string `arg:"" default:"calc" help:"Initial grammar identifier" name:"grammar" optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	if _, ok := grammar.Lookup(r.Grammar); !ok {
		return unknownGrammar(r.Grammar)
	}

	return repl.Run(ctx, r.Grammar, cacheDirFrom(ctx), log.Default())
}
