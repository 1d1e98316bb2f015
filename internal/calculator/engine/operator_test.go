package engine

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		op   Operator
		want float64
	}{
		{name: "add", a: 2, b: 3, op: Add, want: 5},
		{name: "subtract", a: 2, b: 3, op: Subtract, want: -1},
		{name: "multiply", a: 2, b: 3, op: Multiply, want: 6},
		{name: "divide", a: 3, b: 2, op: Divide, want: 1.5},
		{name: "modulo", a: 7, b: 3, op: Modulo, want: 1},
		{name: "modulo follows dividend sign", a: -7, b: 3, op: Modulo, want: -1},
		{name: "power", a: 2, b: 10, op: Power, want: 1024},
		{name: "divide by zero", a: 1, b: 0, op: Divide, want: math.Inf(1)},
		{name: "negative divide by zero", a: -1, b: 0, op: Divide, want: math.Inf(-1)},
		{name: "invalid operator returns right operand", a: 1, b: 9, op: 0, want: 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Apply(tc.a, tc.b, tc.op); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestApplyNaNCases(t *testing.T) {
	if got := Apply(0, 0, Divide); !math.IsNaN(got) {
		t.Fatalf("0/0: expected NaN, got %v", got)
	}
	if got := Apply(5, 0, Modulo); !math.IsNaN(got) {
		t.Fatalf("5 mod 0: expected NaN, got %v", got)
	}
}

func TestParseOperator(t *testing.T) {
	tests := map[string]Operator{
		"add": Add, "+": Add,
		"subtract": Subtract, "-": Subtract,
		"multiply": Multiply, "*": Multiply, "×": Multiply,
		"divide": Divide, "/": Divide, "÷": Divide,
		"modulo": Modulo, "%": Modulo,
		"power": Power, "^": Power,
		"  Add ": Add,
	}

	for in, want := range tests {
		got, err := ParseOperator(in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}

	if _, err := ParseOperator("sqrt"); !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("expected ErrUnknownOperator, got %v", err)
	}
}

func TestOperatorSymbols(t *testing.T) {
	want := map[Operator]string{
		Add: "+", Subtract: "-", Multiply: "×", Divide: "÷", Modulo: "%", Power: "^",
	}
	for _, op := range Operators() {
		if got := op.Symbol(); got != want[op] {
			t.Fatalf("%v: expected symbol %q, got %q", op, want[op], got)
		}
	}
	if got := Operator(0).Symbol(); got != "" {
		t.Fatalf("expected empty symbol for invalid operator, got %q", got)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		fn   Function
		x    float64
		want float64
	}{
		{fn: Sin, x: 90, want: 1},
		{fn: Sin, x: 30, want: 0.5},
		{fn: Cos, x: 0, want: 1},
		{fn: Cos, x: 60, want: 0.5},
		{fn: Tan, x: 45, want: 1},
		{fn: Log, x: 1000, want: 3},
		{fn: Ln, x: math.E, want: 1},
		{fn: Sqrt, x: 16, want: 4},
		{fn: Square, x: -3, want: 9},
		{fn: Cube, x: -2, want: -8},
		{fn: Inverse, x: 4, want: 0.25},
		{fn: Abs, x: -7.5, want: 7.5},
	}

	for _, tc := range tests {
		t.Run(tc.fn.String(), func(t *testing.T) {
			got := Evaluate(tc.fn, tc.x)
			if math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("%s(%v): expected %v, got %v", tc.fn, tc.x, tc.want, got)
			}
		})
	}
}

func TestFactorial(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "zero", x: 0, want: 1},
		{name: "one", x: 1, want: 1},
		{name: "ten", x: 10, want: 3628800},
		{name: "truncates fractions", x: 4.9, want: 24},
		{name: "negative is empty product", x: -5, want: 1},
		{name: "beyond float range", x: MaxFactorial + 1, want: math.Inf(1)},
		{name: "huge input does not loop", x: 1e18, want: math.Inf(1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(Factorial, tc.x); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	if got := Evaluate(Factorial, MaxFactorial); math.IsInf(got, 0) {
		t.Fatalf("expected %d! to be finite", MaxFactorial)
	}
}

func TestParseFunction(t *testing.T) {
	for _, fn := range Functions() {
		got, err := ParseFunction(fn.String())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", fn, err)
		}
		if got != fn {
			t.Fatalf("expected %v, got %v", fn, got)
		}
	}

	if _, err := ParseFunction("cosh"); !errors.Is(err, ErrUnknownFunction) {
		t.Fatalf("expected ErrUnknownFunction, got %v", err)
	}
}

func TestTokenJSON(t *testing.T) {
	var tokens []Token
	body := `[{"type":"digit","digit":7},{"type":"operator","operator":"×"},{"type":"function","function":"sqrt"},{"type":"equals"}]`
	if err := json.Unmarshal([]byte(body), &tokens); err != nil {
		t.Fatalf("decoding tokens: %v", err)
	}

	want := []Token{DigitToken(7), OperatorToken(Multiply), FunctionToken(Sqrt), {Kind: TokenEquals}}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v", i, want[i], tokens[i])
		}
	}

	if err := json.Unmarshal([]byte(`{"type":"operator","operator":"root"}`), new(Token)); !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("expected ErrUnknownOperator, got %v", err)
	}
}

func TestKeyToken(t *testing.T) {
	tests := map[string]Token{
		"0":         DigitToken(0),
		"9":         DigitToken(9),
		".":         {Kind: TokenDecimal},
		"+":         OperatorToken(Add),
		"-":         OperatorToken(Subtract),
		"*":         OperatorToken(Multiply),
		"/":         OperatorToken(Divide),
		"%":         OperatorToken(Modulo),
		"^":         OperatorToken(Power),
		"Enter":     {Kind: TokenEquals},
		"=":         {Kind: TokenEquals},
		"Escape":    {Kind: TokenClear},
		"Delete":    {Kind: TokenClearEntry},
		"Backspace": {Kind: TokenBackspace},
	}

	for key, want := range tests {
		got, err := KeyToken(key)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", key, err)
		}
		if got != want {
			t.Fatalf("%q: expected %v, got %v", key, want, got)
		}
	}

	for _, key := range []string{"a", "12", "Tab", ""} {
		if _, err := KeyToken(key); !errors.Is(err, ErrUnknownKey) {
			t.Fatalf("%q: expected ErrUnknownKey, got %v", key, err)
		}
	}
}
