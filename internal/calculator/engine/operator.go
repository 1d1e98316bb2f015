package engine

import (
	"fmt"
	"math"
	"strings"
)

// Operator is a binary operator. The zero value means "no operator".
type Operator uint8

const (
	Add Operator = iota + 1
	Subtract
	Multiply
	Divide
	Modulo
	Power
)

var operatorNames = [...]string{
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Divide:   "divide",
	Modulo:   "modulo",
	Power:    "power",
}

var operatorSymbols = [...]string{
	Add:      "+",
	Subtract: "-",
	Multiply: "×",
	Divide:   "÷",
	Modulo:   "%",
	Power:    "^",
}

// Operators lists every valid operator in display order.
func Operators() []Operator {
	return []Operator{Add, Subtract, Multiply, Divide, Modulo, Power}
}

// Valid reports whether op names a real operator.
func (op Operator) Valid() bool {
	return op >= Add && op <= Power
}

// String returns the operator name, e.g. "multiply".
func (op Operator) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Operator(%d)", uint8(op))
	}
	return operatorNames[op]
}

// Symbol returns the operator as shown on the display, e.g. "×".
func (op Operator) Symbol() string {
	if !op.Valid() {
		return ""
	}
	return operatorSymbols[op]
}

// ParseOperator accepts an operator name, its display symbol, or the ASCII
// key that produces it ("*" and "/").
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "+":
		return Add, nil
	case "subtract", "-":
		return Subtract, nil
	case "multiply", "×", "*":
		return Multiply, nil
	case "divide", "÷", "/":
		return Divide, nil
	case "modulo", "%":
		return Modulo, nil
	case "power", "^":
		return Power, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

func (op Operator) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperator, uint8(op))
	}
	return []byte(op.String()), nil
}

func (op *Operator) UnmarshalText(text []byte) error {
	parsed, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}

// Apply computes a op b with plain float64 semantics: division by zero
// and similar cases produce ±Inf or NaN. Modulo takes the sign of a.
// An invalid operator returns b unchanged.
func Apply(a, b float64, op Operator) float64 {
	switch op {
	case Add:
		return a + b
	case Subtract:
		return a - b
	case Multiply:
		return a * b
	case Divide:
		return a / b
	case Modulo:
		return math.Mod(a, b)
	case Power:
		return math.Pow(a, b)
	default:
		return b
	}
}
