package parser

import (
	"fmt"
	"strconv"

	"github.com/twistorlab/mtx/pkg/token"
)

// Lexer tokenizes momentum-twistor expression input.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	prev token.TokenType // last emitted token type, for sign folding
	err  *LexError       // first lexical error encountered
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// Err returns the first lexical error encountered, if any.
func (l *Lexer) Err() error {
	if l.err != nil {
		return l.err
	}
	return nil
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token. On an unrecognized lexeme it records a
// LexError (retrievable via Err) and returns an ILLEGAL token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	pos := l.currentPos()

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Pos: pos}
	case l.ch == '<':
		return l.emit(l.readBracket(token.ANGLE, '>', pos))
	case l.ch == '[':
		return l.emit(l.readBracket(token.SQUARE, ']', pos))
	case l.ch == 'Z':
		return l.emit(l.readTwistor(token.TWISTOR, pos))
	case l.ch == 'W':
		return l.emit(l.readTwistor(token.DUALTWISTOR, pos))
	case l.ch == 'I':
		return l.emit(l.readInfinity(pos))
	case isDigit(l.ch):
		return l.emit(token.Token{Type: token.NUMBER, Literal: l.readNumber(), Pos: pos})
	case (l.ch == '+' || l.ch == '-') && isDigit(l.peekChar()) && l.signContext():
		// A sign folds into the literal only where a binary operator
		// cannot appear: start of input, after an operator, or after '('.
		return l.emit(token.Token{Type: token.NUMBER, Literal: l.readNumber(), Pos: pos})
	}

	var tok token.Token
	switch l.ch {
	case '+':
		tok = l.newToken(token.PLUS, "+")
	case '-':
		tok = l.newToken(token.MINUS, "-")
	case '*':
		tok = l.newToken(token.STAR, "*")
	case '/':
		tok = l.newToken(token.SLASH, "/")
	case '^':
		tok = l.newToken(token.CARET, "^")
	case '(':
		tok = l.newToken(token.LPAREN, "(")
	case ')':
		tok = l.newToken(token.RPAREN, ")")
	case '.':
		tok = l.newToken(token.DOT, ".")
	default:
		return l.errorToken(pos, string(l.ch), fmt.Sprintf(ErrUnexpectedChar, l.ch))
	}

	l.readChar()
	return l.emit(tok)
}

// signContext reports whether a leading '+' or '-' belongs to a numeric
// literal rather than acting as a binary operator.
func (l *Lexer) signContext() bool {
	return l.prev == token.EOF || l.prev.IsOperator() || l.prev == token.LPAREN
}

// emit records the emitted token type for sign-folding context.
func (l *Lexer) emit(tok token.Token) token.Token {
	l.prev = tok.Type
	return tok
}

// newToken creates a new token at the current position.
func (l *Lexer) newToken(tokenType token.TokenType, literal string) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Pos: l.currentPos()}
}

// errorToken records the first lexical error and returns an ILLEGAL token.
func (l *Lexer) errorToken(pos token.Position, lexeme, msg string) token.Token {
	if l.err == nil {
		l.err = &LexError{Pos: pos, Lexeme: lexeme, Message: msg}
	}
	return token.Token{Type: token.ILLEGAL, Literal: lexeme, Pos: pos}
}

// skipWhitespace skips whitespace between tokens.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readTwistor reads a twistor or dual twistor token. Both the compact form
// (Z1) and the canonical rendered form (Z_{1}) are accepted, so re-parsing
// an expression's String() output reproduces the same tree.
func (l *Lexer) readTwistor(tt token.TokenType, pos token.Position) token.Token {
	start := l.pos
	l.readChar() // consume 'Z' or 'W'

	braced := false
	if l.ch == '_' && l.peekChar() == '{' {
		braced = true
		l.readChar() // consume '_'
		l.readChar() // consume '{'
	}

	if !isDigit(l.ch) {
		lexeme := l.input[start:l.pos] + l.readIdentTail()
		return l.errorToken(pos, lexeme, fmt.Sprintf(ErrUnexpectedLexeme, lexeme))
	}

	digitStart := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	idx, _ := strconv.Atoi(l.input[digitStart:l.pos])

	if braced {
		if l.ch != '}' {
			lexeme := l.input[start:l.pos]
			return l.errorToken(pos, lexeme, fmt.Sprintf(ErrUnexpectedLexeme, lexeme))
		}
		l.readChar() // consume '}'
	}

	return token.Token{
		Type:    tt,
		Literal: l.input[start:l.pos],
		Indices: []int{idx},
		Pos:     pos,
	}
}

// readInfinity reads the infinity twistor marker I. An I followed by further
// identifier characters is not a valid lexeme.
func (l *Lexer) readInfinity(pos token.Position) token.Token {
	start := l.pos
	l.readChar() // consume 'I'

	if isIdentChar(l.ch) {
		lexeme := l.input[start:l.pos] + l.readIdentTail()
		return l.errorToken(pos, lexeme, fmt.Sprintf(ErrUnexpectedLexeme, lexeme))
	}

	return token.Token{Type: token.INFINITY, Literal: "I", Pos: pos}
}

// readIdentTail consumes and returns the remaining identifier characters.
// Used only to build error messages for malformed identifiers.
func (l *Lexer) readIdentTail() string {
	start := l.pos
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readBracket reads a four-index bracket contraction such as <1,2,3,4> or
// [1 2 3 4]. Indices are separated by commas and/or whitespace.
func (l *Lexer) readBracket(tt token.TokenType, closer byte, pos token.Position) token.Token {
	startOffset := l.pos
	opener := l.ch
	l.readChar() // consume '<' or '['

	var indices []int
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == ',' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == 0 {
			return l.errorToken(pos, l.input[startOffset:l.pos], ErrUnterminatedBracket)
		}

		if l.ch == '>' || l.ch == ']' {
			if l.ch != closer {
				lexeme := l.input[startOffset : l.pos+1]
				return l.errorToken(pos, lexeme, fmt.Sprintf(ErrMismatchedBracket, opener, l.ch))
			}
			l.readChar() // consume closer
			break
		}

		if !isDigit(l.ch) {
			return l.errorToken(pos, string(l.ch), fmt.Sprintf(ErrBracketIndex, l.ch))
		}

		digitStart := l.pos
		for isDigit(l.ch) {
			l.readChar()
		}
		idx, _ := strconv.Atoi(l.input[digitStart:l.pos])
		indices = append(indices, idx)
	}

	if len(indices) != 4 {
		lexeme := l.input[startOffset:l.pos]
		return l.errorToken(pos, lexeme, fmt.Sprintf(ErrBracketIndexCount, len(indices)))
	}

	return token.Token{
		Type:    tt,
		Literal: l.input[startOffset:l.pos],
		Indices: indices,
		Pos:     pos,
	}
}

// readNumber reads a numeric literal (integer, decimal, or scientific),
// including a leading sign when the caller has already validated it.
func (l *Lexer) readNumber() string {
	start := l.pos

	if l.ch == '+' || l.ch == '-' {
		l.readChar()
	}

	// Read integer part
	for isDigit(l.ch) {
		l.readChar()
	}

	// Read decimal part
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Read exponent part (e.g., 1e10, 1E-5). An 'e' with no digits after it
	// (or after its sign) is not part of the literal.
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		signed := next == '+' || next == '-'
		if isDigit(next) || (signed && l.readPos+1 < len(l.input) && isDigit(l.input[l.readPos+1])) {
			l.readChar() // skip 'e' or 'E'
			if signed {
				l.readChar() // skip sign
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return l.input[start:l.pos]
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isIdentChar returns true if ch can appear in an identifier.
func isIdentChar(ch byte) bool {
	return ch == '_' || isDigit(ch) ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// Tokenize scans the whole input and returns its token sequence, excluding
// the terminating EOF token. The first unrecognized lexeme aborts the scan
// with a *LexError.
func Tokenize(input string) ([]token.Token, error) {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			return nil, l.err
		}
		if tok.Type == token.EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
