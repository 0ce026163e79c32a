// Package cmd provides the run, tree, and repl subcommands for the combin
// command line interface.
package cmd

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/combin/parse"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// cacheDirKey is used to store the runtime cache directory path in
// [context.Context].
type cacheDirKey struct{}

// WithCacheDir returns a new context.Context containing the runtime cache
// directory path.
func WithCacheDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, cacheDirKey{}, dir)
}

func cacheDirFrom(ctx context.Context) string {
	dir, _ := ctx.Value(cacheDirKey{}).(string)

	return dir
}

// Interpretation is one parse interpretation prepared for output rendering.
type Interpretation struct {
	Value any    `json:"value" yaml:"value"`
	Rest  string `json:"rest"  yaml:"rest"`
}

// Interpretations converts a raw parse result into renderable form.
// Rune-typed values and inputs are rendered as strings.
func Interpretations(result parse.Result[rune]) []Interpretation {
	out := make([]Interpretation, len(result))
	for i, pair := range result {
		out[i] = Interpretation{
			Value: display(pair.Value),
			Rest:  string(pair.Rest),
		}
	}

	return out
}

// display converts parser values into forms that render cleanly as YAML or
// JSON. Runes become one-rune strings, rune slices become strings, and
// composite values convert element-wise.
func display(v any) any {
	switch t := v.(type) {
	case rune:
		return string(t)

	case parse.Input[rune]:
		return string(t)

	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = display(e)
		}

		return out

	default:
		return v
	}
}
