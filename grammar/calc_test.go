package grammar

import (
	"testing"

	"github.com/ardnew/combin/parse"
)

// firstComplete returns the value of the first interpretation that
// consumed the entire input, or (nil, false) if there is none.
func firstComplete(p *parse.Parser[rune], input string) (any, bool) {
	for _, pair := range p.Parse(parse.Text(input)) {
		if pair.Rest.Empty() {
			return pair.Value, true
		}
	}

	return nil, false
}

func TestCalc(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"single number", "42", 42},
		{"addition", "1+2+3", 6},
		{"subtraction is left-associative", "10-3-2", 5},
		{"precedence", "2+3*4", 14},
		{"parentheses", "(2+3)*4", 20},
		{"nested parentheses", "((1+2))*(3+4)", 21},
		{"division", "8/2/2", 2},
		{"division by zero yields zero", "5/0", 0},
		{"mixed", "1+2*3-4/2", 5},
	}

	calc := Calc()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstComplete(calc, tt.input)
			if !ok {
				t.Fatalf("no complete parse of %q", tt.input)
			}

			if got != tt.want {
				t.Errorf("expected %d, got %v", tt.want, got)
			}
		})
	}
}

func TestCalc_NoMatch(t *testing.T) {
	calc := Calc()

	for _, input := range []string{"", "abc", "+1", "(1", "()"} {
		if _, ok := firstComplete(calc, input); ok {
			t.Errorf("expected no complete parse of %q", input)
		}
	}
}

func TestCalc_LongestFoldFirst(t *testing.T) {
	// The first pair is always the longest fold, so a trailing operator
	// surfaces as leftover input rather than a failure.
	got := Calc().Parse(parse.Text("1+2+"))

	first, ok := got.First()
	if !ok {
		t.Fatal("expected at least one interpretation")
	}

	if first.Value != 3 {
		t.Errorf("expected 3, got %v", first.Value)
	}

	if rest := string(first.Rest); rest != "+" {
		t.Errorf("expected rest %q, got %q", "+", rest)
	}
}

func TestPower_RightAssociative(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"single", "7", 7},
		{"simple", "2^10", 1024},
		{"right associativity", "2^3^2", 512},
	}

	power := Power()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstComplete(power, tt.input)
			if !ok {
				t.Fatalf("no complete parse of %q", tt.input)
			}

			if got != tt.want {
				t.Errorf("expected %d, got %v", tt.want, got)
			}
		})
	}
}

func TestCalc_ReusableAcrossInputs(t *testing.T) {
	// One tree, many inputs: no state drifts between parses.
	calc := Calc()

	for range 3 {
		if got, _ := firstComplete(calc, "6*7"); got != 42 {
			t.Fatalf("expected 42, got %v", got)
		}

		if _, ok := firstComplete(calc, "nope"); ok {
			t.Fatal("expected no complete parse")
		}
	}
}

func FuzzCalc(f *testing.F) {
	for _, seed := range []string{
		"1+2+3", "(2+3)*4", "10-3-2", "8/0", "((((1))))", "9*9*9", "",
	} {
		f.Add(seed)
	}

	calc := Calc()

	f.Fuzz(func(t *testing.T, input string) {
		// Ambiguous grammars multiply interpretations; keep fuzz inputs
		// short so exhaustive backtracking stays tractable.
		if len(input) > 24 {
			t.Skip()
		}

		result := calc.Parse(parse.Text(input))

		for _, pair := range result {
			if _, ok := pair.Value.(int); !ok {
				t.Errorf("non-int value %v for input %q", pair.Value, input)
			}
		}
	})
}

func BenchmarkCalc(b *testing.B) {
	calc := Calc()
	input := parse.Text("1+2*(3+4)-5/5")

	b.ReportAllocs()

	for b.Loop() {
		calc.Parse(input)
	}
}
