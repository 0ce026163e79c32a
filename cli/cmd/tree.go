package cmd

import (
	"context"

	"github.com/ardnew/combin/grammar"
)

// Tree lists the registered grammars.
type Tree struct {
	Format string `default:"yaml" enum:"yaml,json" help:"Output format" short:"o"`
}

// grammarInfo is one registry entry prepared for output rendering.
type grammarInfo struct {
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) error {
	all := grammar.All()

	info := make([]grammarInfo, len(all))
	for i, g := range all {
		info[i] = grammarInfo{Name: g.Name, Description: g.Description}
	}

	return render(stdout(ctx), t.Format, info)
}
