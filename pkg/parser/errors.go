package parser

import (
	"fmt"

	"github.com/twistorlab/mtx/pkg/token"
)

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     token.Position
	Lexeme  string
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// ParseError represents a grammar violation with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken     = "unexpected token %s, expected %s"
	ErrUnexpectedChar      = "unrecognized character %q"
	ErrUnexpectedLexeme    = "unrecognized lexeme %q"
	ErrEmptyExpression     = "empty expression"
	ErrTrailingToken       = "unexpected token %s after complete expression"
	ErrBracketIndexCount   = "bracket contraction requires exactly 4 indices, found %d"
	ErrMismatchedBracket   = "bracket opened with %q but closed with %q"
	ErrUnterminatedBracket = "unterminated bracket contraction"
	ErrBracketIndex        = "expected index in bracket contraction, found %q"
)
