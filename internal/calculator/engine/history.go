package engine

import "fmt"

// HistoryLimit caps the number of remembered computations.
const HistoryLimit = 10

// HistoryEntry records one resolved computation.
type HistoryEntry struct {
	Left     float64
	Operator Operator
	Right    float64
	Result   float64
}

// String formats the entry as "{left} {symbol} {right} = {result}".
func (e HistoryEntry) String() string {
	return fmt.Sprintf("%s %s %s = %s",
		FormatNumber(e.Left),
		e.Operator.Symbol(),
		FormatNumber(e.Right),
		FormatNumber(e.Result),
	)
}

// History is an ordered log of computations, most recent first. Values
// are never modified in place, so a History can be shared between states.
type History []HistoryEntry

// Prepend returns a new history with e in front, dropping the oldest entry
// once HistoryLimit is exceeded.
func (h History) Prepend(e HistoryEntry) History {
	keep := min(len(h), HistoryLimit-1)

	out := make(History, 0, keep+1)
	out = append(out, e)
	return append(out, h[:keep]...)
}

// Strings formats every entry, most recent first.
func (h History) Strings() []string {
	out := make([]string, len(h))
	for i, e := range h {
		out[i] = e.String()
	}
	return out
}
