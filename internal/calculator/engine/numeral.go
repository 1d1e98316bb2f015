package engine

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Numeral is the display buffer: a decimal number in the process of being
// typed. The zero value behaves like "0".
type Numeral string

const zeroNumeral Numeral = "0"

// numericPrefix matches the longest leading run of text that reads as a
// number: optional sign, then Infinity or a decimal with optional exponent.
var numericPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// NumeralOf renders v the way it is shown on the display.
func NumeralOf(v float64) Numeral {
	return Numeral(FormatNumber(v))
}

func (n Numeral) String() string {
	if n == "" {
		return string(zeroNumeral)
	}
	return string(n)
}

// AppendDigit adds d to the end of the numeral. A lone "0" is replaced
// rather than extended. Digits outside 0-9 leave the numeral unchanged.
func (n Numeral) AppendDigit(d int) Numeral {
	if d < 0 || d > 9 {
		return n
	}

	digit := Numeral(strconv.Itoa(d))
	if n == "" || n == zeroNumeral {
		return digit
	}
	return n + digit
}

// AppendDecimal adds a decimal point unless the numeral already has one.
func (n Numeral) AppendDecimal() Numeral {
	if n.HasDecimal() {
		return n
	}
	return Numeral(n.String() + ".")
}

// HasDecimal reports whether the numeral already contains a decimal point.
func (n Numeral) HasDecimal() bool {
	return strings.Contains(string(n), ".")
}

// Backspace drops the last character, falling back to "0" instead of an
// empty display.
func (n Numeral) Backspace() Numeral {
	if len(n) <= 1 {
		return zeroNumeral
	}
	return n[:len(n)-1]
}

// Value parses the numeral. Partial input such as "1." or "2e" reads as
// its numeric prefix; text with no numeric prefix is NaN.
func (n Numeral) Value() float64 {
	return ParseNumber(n.String())
}

// ParseNumber reads the longest numeric prefix of s. Values beyond the
// float64 range saturate to ±Inf.
func ParseNumber(s string) float64 {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

// FormatNumber renders v as the shortest text that round-trips. Plain
// notation is used between 1e-6 and 1e21; exponent form outside it.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + exp[:1] + digits
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
