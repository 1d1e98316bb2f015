// Package engine implements the calculator's input state machine.
//
// A State is an immutable value. Every input (digit, decimal point,
// operator, function, equals, clear, clear entry, backspace) is a method
// that returns the next State and leaves the receiver untouched, so a
// caller can keep, compare or discard snapshots freely.
//
// Operators chain strictly left to right with no precedence: choosing a
// new operator while one is pending resolves the pending one first, so
// "3 + 4 × 2 =" yields 14.
//
// Arithmetic follows float64 semantics. Division by zero, square roots of
// negative numbers and similar cases are not errors; the display simply
// shows NaN, Infinity or -Infinity.
package engine

import "slices"

// State is one snapshot of the calculator.
type State struct {
	display  Numeral
	previous float64
	operator Operator
	// waiting means the next digit starts a fresh number.
	waiting bool
	// entered means a right operand was supplied since the last operator,
	// so choosing another operator must resolve the pending one first.
	entered bool
	history History
}

// New returns the initial state: display "0", nothing pending, empty
// history.
func New() State {
	return State{display: zeroNumeral}
}

// Display returns the text currently shown.
func (s State) Display() string {
	return s.display.String()
}

// Value returns the display parsed as a number.
func (s State) Value() float64 {
	return s.display.Value()
}

// Pending returns the stored left operand and operator. ok is false when
// no operation is pending.
func (s State) Pending() (previous float64, op Operator, ok bool) {
	if !s.operator.Valid() {
		return 0, 0, false
	}
	return s.previous, s.operator, true
}

// WaitingForOperand reports whether the next digit replaces the display.
func (s State) WaitingForOperand() bool {
	return s.waiting
}

// History returns a copy of the history, most recent first.
func (s State) History() History {
	return slices.Clone(s.history)
}

// InputDigit enters d (0-9). Out-of-range digits are ignored.
func (s State) InputDigit(d int) State {
	if d < 0 || d > 9 {
		return s
	}

	if s.waiting {
		s.display = Numeral("").AppendDigit(d)
		s.waiting = false
	} else {
		s.display = s.display.AppendDigit(d)
	}
	s.entered = true
	return s
}

// InputDecimal enters a decimal point. A second point in the same number
// is ignored.
func (s State) InputDecimal() State {
	if s.waiting {
		s.display = zeroNumeral.AppendDecimal()
		s.waiting = false
	} else {
		s.display = s.display.AppendDecimal()
	}
	s.entered = true
	return s
}

// ChooseOperator stores op as the pending operator. If an operation is
// already pending and a new operand was entered since, that operation is
// resolved first and its result becomes the left operand. A scientific
// function applied after the last operator counts as an entered operand.
func (s State) ChooseOperator(op Operator) State {
	if !op.Valid() {
		return s
	}

	input := s.display.Value()

	switch {
	case !s.operator.Valid():
		s.previous = input
	case s.entered:
		result := Apply(s.previous, input, s.operator)
		s.display = NumeralOf(result)
		s.previous = result
	}

	s.operator = op
	s.waiting = true
	s.entered = false
	return s
}

// Equals resolves the pending operation and records it in the history.
// Without a pending operation it is a no-op.
func (s State) Equals() State {
	if !s.operator.Valid() {
		return s
	}

	input := s.display.Value()
	result := Apply(s.previous, input, s.operator)

	s.history = s.history.Prepend(HistoryEntry{
		Left:     s.previous,
		Operator: s.operator,
		Right:    input,
		Result:   result,
	})
	s.display = NumeralOf(result)
	s.previous = 0
	s.operator = 0
	s.waiting = true
	s.entered = false
	return s
}

// ScientificFunction replaces the display with fn applied to it. The
// pending operation is left alone, so the result serves as its right
// operand.
func (s State) ScientificFunction(fn Function) State {
	if !fn.Valid() {
		return s
	}

	s.display = NumeralOf(Evaluate(fn, s.display.Value()))
	s.waiting = true
	s.entered = true
	return s
}

// Clear resets everything except the history.
func (s State) Clear() State {
	return State{display: zeroNumeral, history: s.history}
}

// ClearEntry resets the display only; a pending operation survives.
func (s State) ClearEntry() State {
	s.display = zeroNumeral
	return s
}

// Backspace removes the last character of the display.
func (s State) Backspace() State {
	s.display = s.display.Backspace()
	return s
}

// Snapshot is the render view of a State.
type Snapshot struct {
	Display           string   `json:"display"`
	Previous          string   `json:"previous,omitempty"`
	Operator          string   `json:"operator,omitempty"`
	Pending           string   `json:"pending,omitempty"`
	WaitingForOperand bool     `json:"waiting_for_operand"`
	History           []string `json:"history"`
}

// Snapshot returns the render view of s. Pending holds the secondary
// display line "{previous} {symbol}" while an operator is set.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		Display:           s.Display(),
		WaitingForOperand: s.waiting,
		History:           s.history.Strings(),
	}

	if previous, op, ok := s.Pending(); ok {
		snap.Previous = FormatNumber(previous)
		snap.Operator = op.Symbol()
		snap.Pending = snap.Previous + " " + snap.Operator
	}

	return snap
}
