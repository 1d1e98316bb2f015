package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrUnknownOperator = errors.New("unknown operator")
	ErrUnknownFunction = errors.New("unknown function")
	ErrUnknownKey      = errors.New("unknown key")
)

// TokenKind identifies the input a Token carries.
type TokenKind string

const (
	TokenDigit      TokenKind = "digit"
	TokenDecimal    TokenKind = "decimal"
	TokenOperator   TokenKind = "operator"
	TokenFunction   TokenKind = "function"
	TokenEquals     TokenKind = "equals"
	TokenClear      TokenKind = "clear"
	TokenClearEntry TokenKind = "clear_entry"
	TokenBackspace  TokenKind = "backspace"
)

// Token is one discrete input event.
type Token struct {
	Kind     TokenKind `json:"type"`
	Digit    int       `json:"digit,omitempty"`
	Operator Operator  `json:"operator,omitempty"`
	Function Function  `json:"function,omitempty"`
}

func DigitToken(d int) Token {
	return Token{Kind: TokenDigit, Digit: d}
}

func OperatorToken(op Operator) Token {
	return Token{Kind: TokenOperator, Operator: op}
}

func FunctionToken(fn Function) Token {
	return Token{Kind: TokenFunction, Function: fn}
}

func (t Token) String() string {
	switch t.Kind {
	case TokenDigit:
		return fmt.Sprintf("digit(%d)", t.Digit)
	case TokenOperator:
		return fmt.Sprintf("operator(%s)", t.Operator)
	case TokenFunction:
		return fmt.Sprintf("function(%s)", t.Function)
	default:
		return string(t.Kind)
	}
}

// Validate reports whether the token can be applied.
func (t Token) Validate() error {
	switch t.Kind {
	case TokenDigit:
		if t.Digit < 0 || t.Digit > 9 {
			return fmt.Errorf("%w: digit %d out of range", ErrInvalidToken, t.Digit)
		}
	case TokenOperator:
		if !t.Operator.Valid() {
			return fmt.Errorf("%w: operator token without operator", ErrInvalidToken)
		}
	case TokenFunction:
		if !t.Function.Valid() {
			return fmt.Errorf("%w: function token without function", ErrInvalidToken)
		}
	case TokenDecimal, TokenEquals, TokenClear, TokenClearEntry, TokenBackspace:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidToken, t.Kind)
	}
	return nil
}

// Step applies a single token to s.
func Step(s State, t Token) (State, error) {
	if err := t.Validate(); err != nil {
		return s, err
	}

	switch t.Kind {
	case TokenDigit:
		return s.InputDigit(t.Digit), nil
	case TokenDecimal:
		return s.InputDecimal(), nil
	case TokenOperator:
		return s.ChooseOperator(t.Operator), nil
	case TokenFunction:
		return s.ScientificFunction(t.Function), nil
	case TokenEquals:
		return s.Equals(), nil
	case TokenClear:
		return s.Clear(), nil
	case TokenClearEntry:
		return s.ClearEntry(), nil
	default:
		return s.Backspace(), nil
	}
}

// Run applies tokens in order. It is all or nothing: on the first invalid
// token the input state is returned together with the error.
func Run(s State, tokens ...Token) (State, error) {
	next := s
	for i, t := range tokens {
		var err error
		next, err = Step(next, t)
		if err != nil {
			return s, fmt.Errorf("token %d: %w", i, err)
		}
	}
	return next, nil
}

// KeyToken maps a keyboard key to its token: digits, ".", "+ - * / % ^",
// "Enter" or "=", "Escape", "Backspace" and "Delete" (clear entry).
func KeyToken(key string) (Token, error) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return DigitToken(int(key[0] - '0')), nil
	}

	switch key {
	case ".":
		return Token{Kind: TokenDecimal}, nil
	case "+", "-", "*", "/", "%", "^":
		op, err := ParseOperator(key)
		if err != nil {
			return Token{}, err
		}
		return OperatorToken(op), nil
	case "Enter", "=":
		return Token{Kind: TokenEquals}, nil
	case "Escape":
		return Token{Kind: TokenClear}, nil
	case "Delete":
		return Token{Kind: TokenClearEntry}, nil
	case "Backspace":
		return Token{Kind: TokenBackspace}, nil
	}
	return Token{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// KeyTokens maps a sequence of keys, failing on the first unknown one.
func KeyTokens(keys ...string) ([]Token, error) {
	tokens := make([]Token, 0, len(keys))
	for _, k := range keys {
		t, err := KeyToken(k)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}
