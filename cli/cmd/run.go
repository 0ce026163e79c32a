package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/combin/grammar"
	"github.com/ardnew/combin/log"
	"github.com/ardnew/combin/parse"
)

// Run parses input text with a named grammar and prints every
// interpretation.
type Run struct {
	Grammar string `arg:"" help:"Grammar identifier (see tree command)" name:"grammar"`
	Input   string `arg:"" help:"Input text or '-' for stdin"           name:"input"    optional:""`

	Format   string `default:"yaml" enum:"yaml,json" help:"Output format" short:"o"`
	Complete bool   `help:"Keep only interpretations that consume all input" short:"c"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	g, ok := grammar.Lookup(r.Grammar)
	if !ok {
		return unknownGrammar(r.Grammar)
	}

	input := r.Input
	if input == "-" {
		buf, err := io.ReadAll(os.Stdin)
		if err != nil {
			return parse.WrapError(err).
				With(slog.String("command", "run"))
		}

		input = strings.TrimRight(string(buf), "\r\n")
	}

	log.DebugContext(ctx, "run parse",
		slog.String("grammar", g.Name),
		slog.Int("input_len", len(input)),
	)

	result := g.Parser.Parse(parse.Text(input))
	if r.Complete {
		result = completeOnly(result)
	}

	if result.Empty() {
		return ErrNoMatch.With(
			slog.String("grammar", g.Name),
			slog.String("input", input),
		)
	}

	return render(stdout(ctx), r.Format, Interpretations(result))
}

// completeOnly filters a result down to the interpretations with no
// remaining input, preserving order.
func completeOnly(result parse.Result[rune]) parse.Result[rune] {
	var out parse.Result[rune]

	for _, pair := range result {
		if pair.Rest.Empty() {
			out = append(out, pair)
		}
	}

	return out
}

// render encodes v to w in the requested output format.
func render(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(v)

	default:
		return yaml.NewEncoder(w).Encode(v)
	}
}

// stdout returns the output writer bound by kong, or os.Stdout when the
// command runs outside a kong context.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil {
		return ktx.Stdout
	}

	return os.Stdout
}
