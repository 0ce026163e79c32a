package parse

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
)

// equalResults compares two results pair by pair: values structurally,
// remaining inputs element-wise.
func equalResults[T comparable](t *testing.T, got, want Result[T]) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %d pairs, got %d: %v", len(want), len(got), got)
	}

	for i := range want {
		if !reflect.DeepEqual(got[i].Value, want[i].Value) {
			t.Errorf("pair %d: expected value %v, got %v",
				i, want[i].Value, got[i].Value)
		}

		if !got[i].Rest.Equal(want[i].Rest) {
			t.Errorf("pair %d: expected rest %v, got %v",
				i, want[i].Rest, got[i].Rest)
		}
	}
}

func TestItem(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Result[rune]
	}{
		{
			name:  "empty input fails",
			input: "",
			want:  nil,
		},
		{
			name:  "single element",
			input: "a",
			want:  Singleton[rune]('a', Text("")),
		},
		{
			name:  "consumes exactly one",
			input: "abc",
			want:  Singleton[rune]('a', Text("bc")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equalResults(t, Item[rune]().Run(Text(tt.input)), tt.want)
		})
	}
}

func TestZero(t *testing.T) {
	for _, input := range []string{"", "abc"} {
		if got := Zero[rune]().Run(Text(input)); !got.Empty() {
			t.Errorf("Zero on %q: expected empty result, got %v", input, got)
		}
	}
}

func TestConst(t *testing.T) {
	got := Const[rune]("hello").Run(Text("abc"))
	equalResults(t, got, Singleton[rune]("hello", Text("abc")))
}

func TestBind_ShortCircuit(t *testing.T) {
	called := false

	p := Zero[rune]().Bind(func(any) any {
		called = true

		return Const[rune]("unreachable")
	})

	if got := p.Run(Text("abc")); !got.Empty() {
		t.Errorf("expected empty result, got %v", got)
	}

	if called {
		t.Error("continuation invoked despite empty base result")
	}
}

func TestBindProbe_RunsOnOriginalInput(t *testing.T) {
	p := Zero[rune]().BindProbe(func(v any) any {
		if v != nil {
			t.Errorf("probe value: expected nil, got %v", v)
		}

		return Item[rune]()
	})

	got := p.Run(Text("abc"))
	equalResults(t, got, Singleton[rune]('a', Text("bc")))
}

func TestBind_RawValueCoercion(t *testing.T) {
	// A continuation returning a raw value is wrapped as Const.
	p := Item[rune]().Bind(func(v any) any {
		return string(v.(rune)) + "!"
	})

	got := p.Run(Text("xy"))
	equalResults(t, got, Singleton[rune]("x!", Text("y")))
}

func TestMonadLaws(t *testing.T) {
	input := Text("abc")

	f := func(v any) any {
		return Item[rune]().Map(func(w any) any {
			return []any{v, w}
		})
	}
	g := func(v any) any {
		return Const[rune](len(v.([]any)))
	}

	t.Run("left identity", func(t *testing.T) {
		lhs := Const[rune]('q').Bind(f).Run(input)
		rhs := coerce[rune](f(any('q'))).Run(input)
		equalResults(t, lhs, rhs)
	})

	t.Run("right identity", func(t *testing.T) {
		p := Item[rune]()
		lhs := p.Bind(func(v any) any { return Const[rune](v) }).Run(input)
		rhs := p.Run(input)
		equalResults(t, lhs, rhs)
	})

	t.Run("associativity", func(t *testing.T) {
		p := Item[rune]()
		lhs := p.Bind(f).Bind(g).Run(input)
		rhs := p.Bind(func(x any) any {
			return coerce[rune](f(x)).Bind(g)
		}).Run(input)
		equalResults(t, lhs, rhs)
	})
}

func TestPlus_Ordering(t *testing.T) {
	// Left branch pairs strictly precede right branch pairs.
	p := Const[rune]("left").Plus(Const[rune]("right"))

	got := p.Run(Text("in"))
	equalResults(t, got, Result[rune]{
		{Value: "left", Rest: Text("in")},
		{Value: "right", Rest: Text("in")},
	})
}

func TestPlus_BothBranchesAlwaysRun(t *testing.T) {
	// Exhaustive backtracking: the right branch contributes even when the
	// left already succeeded.
	p := Item[rune]().Plus(Const[rune]("empty"))

	got := p.Run(Text("ab"))
	equalResults(t, got, Result[rune]{
		{Value: 'a', Rest: Text("b")},
		{Value: "empty", Rest: Text("ab")},
	})
}

func TestPlus_ValueCoercion(t *testing.T) {
	got := Zero[rune]().Plus("fallback").Run(Text("abc"))
	equalResults(t, got, Singleton[rune]("fallback", Text("abc")))
}

func TestLazy_RecursiveGrammar(t *testing.T) {
	// nested : '(' nested ')' | 'x' — classic self-reference that would
	// recurse forever without deferred construction.
	var nested *Parser[rune]

	nested = Lazy(func() *Parser[rune] {
		return Lazy(func() *Parser[rune] { return nested }).
			Between(FirstIs('('), FirstIs(')')).
			Plus(FirstIs('x'))
	})

	tests := []struct {
		name  string
		input string
		want  Result[rune]
	}{
		{"bare", "x", Singleton[rune]('x', Text(""))},
		{"one level", "(x)", Singleton[rune]('x', Text(""))},
		{"three levels", "(((x)))", Singleton[rune]('x', Text(""))},
		{"unbalanced", "((x)", nil},
		{"no match", "y", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equalResults(t, nested.Run(Text(tt.input)), tt.want)
		})
	}
}

func TestLazy_ResolvesOnce(t *testing.T) {
	var calls atomic.Int32

	p := Lazy(func() *Parser[rune] {
		calls.Add(1)

		return Item[rune]()
	})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 100 {
				p.Run(Text("abc"))
			}
		}()
	}

	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("expected factory resolved once, got %d", n)
	}
}

func TestRun_Idempotent(t *testing.T) {
	p := Item[rune]().AtLeastOne().Plus(Const[rune]("none"))
	input := Text("abc")

	first := p.Run(input)
	second := p.Run(input)

	equalResults(t, second, first)
}

func TestParse_AppliesTransform(t *testing.T) {
	p := Item[rune]().WithTransform(func(v any) any {
		return string(v.(rune))
	})

	// Run is untouched by the transform.
	equalResults(t, p.Run(Text("ab")), Singleton[rune]('a', Text("b")))

	// Parse maps every value.
	equalResults(t, p.Parse(Text("ab")), Singleton[rune]("a", Text("b")))
}

func TestConstructionErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func()
		want  *Error
	}{
		{
			name:  "nil bind continuation",
			build: func() { Item[rune]().Bind(nil) },
			want:  ErrNilContinuation,
		},
		{
			name:  "nil probe continuation",
			build: func() { Item[rune]().BindProbe(nil) },
			want:  ErrNilContinuation,
		},
		{
			name:  "nil alternative",
			build: func() { Item[rune]().Plus(nil) },
			want:  ErrNilAlternative,
		},
		{
			name:  "nil lazy factory",
			build: func() { Lazy[rune](nil) },
			want:  ErrNilFactory,
		},
		{
			name:  "nil satisfy predicate",
			build: func() { Item[rune]().Satisfy(nil) },
			want:  ErrNilPredicate,
		},
		{
			name:  "nil transform",
			build: func() { Item[rune]().WithTransform(nil) },
			want:  ErrNilTransform,
		},
		{
			name:  "nil operator matcher",
			build: func() { Operators(Operator[rune]{Match: nil, Value: 1}) },
			want:  ErrNilOperator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected construction panic")
				}

				err, ok := r.(error)
				if !ok {
					t.Fatalf("panic value is not an error: %v", r)
				}

				if !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			}()

			tt.build()
		})
	}
}

func BenchmarkRun_Alternation(b *testing.B) {
	p := Item[rune]().AtLeastOne().Plus(Const[rune](""))
	input := Text("abcdefghijklmnop")

	b.ReportAllocs()

	for b.Loop() {
		p.Run(input)
	}
}
