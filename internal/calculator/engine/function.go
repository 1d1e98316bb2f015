package engine

import (
	"fmt"
	"math"
	"strings"
)

// Function is a unary scientific function applied to the display.
type Function uint8

const (
	Sin Function = iota + 1
	Cos
	Tan
	Log
	Ln
	Sqrt
	Square
	Cube
	Factorial
	Inverse
	Abs
)

// MaxFactorial is the largest argument whose factorial is finite in
// float64. Larger arguments yield +Inf without iterating.
const MaxFactorial = 170

var functionNames = [...]string{
	Sin:       "sin",
	Cos:       "cos",
	Tan:       "tan",
	Log:       "log",
	Ln:        "ln",
	Sqrt:      "sqrt",
	Square:    "square",
	Cube:      "cube",
	Factorial: "factorial",
	Inverse:   "inverse",
	Abs:       "abs",
}

// Functions lists every scientific function.
func Functions() []Function {
	return []Function{Sin, Cos, Tan, Log, Ln, Sqrt, Square, Cube, Factorial, Inverse, Abs}
}

func (fn Function) Valid() bool {
	return fn >= Sin && fn <= Abs
}

func (fn Function) String() string {
	if !fn.Valid() {
		return fmt.Sprintf("Function(%d)", uint8(fn))
	}
	return functionNames[fn]
}

// ParseFunction looks a function up by name, case-insensitively.
func ParseFunction(name string) (Function, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, fn := range Functions() {
		if functionNames[fn] == want {
			return fn, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
}

func (fn Function) MarshalText() ([]byte, error) {
	if !fn.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFunction, uint8(fn))
	}
	return []byte(fn.String()), nil
}

func (fn *Function) UnmarshalText(text []byte) error {
	parsed, err := ParseFunction(string(text))
	if err != nil {
		return err
	}
	*fn = parsed
	return nil
}

// Evaluate applies fn to x. Trigonometric functions take degrees. Domain
// errors are not reported: they surface as NaN or ±Inf.
func Evaluate(fn Function, x float64) float64 {
	switch fn {
	case Sin:
		return math.Sin(degreesToRadians(x))
	case Cos:
		return math.Cos(degreesToRadians(x))
	case Tan:
		return math.Tan(degreesToRadians(x))
	case Log:
		return math.Log10(x)
	case Ln:
		return math.Log(x)
	case Sqrt:
		return math.Sqrt(x)
	case Square:
		return math.Pow(x, 2)
	case Cube:
		return math.Pow(x, 3)
	case Factorial:
		return factorial(x)
	case Inverse:
		return 1 / x
	case Abs:
		return math.Abs(x)
	default:
		return x
	}
}

func degreesToRadians(x float64) float64 {
	return x * math.Pi / 180
}

// factorial multiplies 2×3×…×floor(x). Arguments below 2, including
// negatives and NaN, give the empty product 1.
func factorial(x float64) float64 {
	if x > MaxFactorial {
		return math.Inf(1)
	}

	result := 1.0
	for i := 2.0; i <= x; i++ {
		result *= i
	}
	return result
}
