// Package token defines the lexical tokens of momentum-twistor notation.
//
// An expression is built from twistor variables (Z1, Z2, ...), dual twistors
// (W1, W2, ...), the infinity twistor I, numeric literals, four-index bracket
// contractions (<1,2,3,4> and [1,2,3,4]), arithmetic operators, and
// parentheses for grouping.
package token

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	NUMBER // 123, 45.67, 1e10

	// Twistor variables
	TWISTOR     // Z1
	DUALTWISTOR // W1
	INFINITY    // I

	// Four-index bracket contractions
	ANGLE  // <1,2,3,4>
	SQUARE // [1,2,3,4]

	// Operators
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /
	CARET // ^

	// Grouping and punctuation
	LPAREN // (
	RPAREN // )
	DOT    // . (reserved; not consumed by the grammar)
)

// tokenNames maps token types to their display names.
var tokenNames = map[TokenType]string{
	EOF:         "EOF",
	ILLEGAL:     "ILLEGAL",
	NUMBER:      "NUMBER",
	TWISTOR:     "TWISTOR",
	DUALTWISTOR: "DUAL_TWISTOR",
	INFINITY:    "INFINITY_TWISTOR",
	ANGLE:       "ANGLE_BRACKET",
	SQUARE:      "SQUARE_BRACKET",
	PLUS:        "+",
	MINUS:       "-",
	STAR:        "*",
	SLASH:       "/",
	CARET:       "^",
	LPAREN:      "(",
	RPAREN:      ")",
	DOT:         ".",
}

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int32(t))
}

// IsOperator returns true for the arithmetic operator tokens.
func (t TokenType) IsOperator() bool {
	switch t {
	case PLUS, MINUS, STAR, SLASH, CARET:
		return true
	}
	return false
}

// Token represents a single lexical token.
//
// Indices carries the particle labels attached to the token: exactly one for
// TWISTOR and DUALTWISTOR, exactly four for ANGLE and SQUARE, nil otherwise.
// Tokens are immutable once produced by the lexer.
type Token struct {
	Type    TokenType
	Literal string
	Indices []int
	Pos     Position
}

// String returns a compact representation like TWISTOR(Z1[1]).
func (t Token) String() string {
	if len(t.Indices) > 0 {
		parts := make([]string, len(t.Indices))
		for i, idx := range t.Indices {
			parts[i] = strconv.Itoa(idx)
		}
		return fmt.Sprintf("%s(%s[%s])", t.Type, t.Literal, strings.Join(parts, " "))
	}
	return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
}
