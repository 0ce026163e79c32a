package cmd

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/ardnew/combin/grammar"
	"github.com/ardnew/combin/parse"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"rune to string", 'x', "x"},
		{"input to string", parse.Text("abc"), "abc"},
		{"int unchanged", 42, 42},
		{"string unchanged", "done", "done"},
		{
			"nested slice",
			[]any{'a', []any{'b', 'c'}, 7},
			[]any{"a", []any{"b", "c"}, 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := display(tt.value); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("display(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestInterpretations(t *testing.T) {
	result := parse.Result[rune]{
		{Value: 5, Rest: parse.Text("+2")},
		{Value: 'q', Rest: parse.Text("")},
	}

	got := Interpretations(result)

	want := []Interpretation{
		{Value: 5, Rest: "+2"},
		{Value: "q", Rest: ""},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCompleteOnly(t *testing.T) {
	result := parse.Result[rune]{
		{Value: 12, Rest: parse.Text("")},
		{Value: 1, Rest: parse.Text("2")},
		{Value: 3, Rest: parse.Text("")},
	}

	got := completeOnly(result)

	if len(got) != 2 || got[0].Value != 12 || got[1].Value != 3 {
		t.Errorf("expected complete interpretations [12 3], got %v", got)
	}

	if got := completeOnly(nil); !got.Empty() {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer

	input := []Interpretation{{Value: 6, Rest: ""}}
	if err := render(&buf, "json", input); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	var decoded []Interpretation
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(decoded) != 1 || decoded[0].Value != float64(6) {
		t.Errorf("unexpected decoded output: %v", decoded)
	}
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer

	input := []Interpretation{{Value: 6, Rest: "x"}}
	if err := render(&buf, "yaml", input); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "value: 6") ||
		!strings.Contains(output, "rest: x") {
		t.Errorf("unexpected YAML output: %s", output)
	}
}

func TestRun_UnknownGrammar(t *testing.T) {
	r := Run{Grammar: "nope", Input: "1"}

	err := r.Run(t.Context())
	if err == nil {
		t.Fatal("expected error for unknown grammar")
	}
}

func TestRun_NoMatch(t *testing.T) {
	r := Run{Grammar: "calc", Input: "abc"}

	err := r.Run(t.Context())
	if err == nil {
		t.Fatal("expected error for unmatched input")
	}
}

func TestTree_ListsEveryGrammar(t *testing.T) {
	var buf bytes.Buffer

	all := grammar.All()

	if err := render(&buf, "yaml", func() []grammarInfo {
		info := make([]grammarInfo, len(all))
		for i, g := range all {
			info[i] = grammarInfo{Name: g.Name, Description: g.Description}
		}

		return info
	}()); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	output := buf.String()

	for _, g := range all {
		if !strings.Contains(output, g.Name) {
			t.Errorf("output missing grammar %q: %s", g.Name, output)
		}
	}
}
