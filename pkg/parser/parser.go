// Package parser turns textual momentum-twistor notation into an expression
// tree and renders trees back to canonical infix and prefix forms.
//
// # Usage
//
//	expr, err := parser.Parse("<1,2,3,4> * Z1 + 2")
//	if err != nil {
//	    // handle *parser.LexError or *parser.ParseError
//	}
//	fmt.Println(expr.String())
//	fmt.Println(expr.PrefixNotation())
//
// # Grammar Overview
//
// The parser implements a recursive descent parser for the expression
// grammar (lowest to highest precedence, '^' right-associative):
//
//	expr    → term (('+' | '-') term)*
//	term    → factor (('*' | '/') factor)*
//	factor  → primary ('^' factor)?
//	primary → NUMBER | TWISTOR | DUAL_TWISTOR | INFINITY_TWISTOR
//	        | ANGLE_BRACKET | SQUARE_BRACKET
//	        | '(' expr ')'
//
// Chains of '+' and '*' collapse into a single variadic node; '-', '/', and
// '^' build binary nodes. Bracket contractions are atomic primaries, and a
// parenthesized group produces no node of its own.
package parser

import (
	"fmt"

	"github.com/twistorlab/mtx/pkg/token"
)

// Parser builds an expression tree from a token stream.
type Parser struct {
	lexer  *Lexer
	token  token.Token // current token
	errors []error
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	p.nextToken()
	return p
}

// Parse tokenizes and parses the input, returning the root of the expression
// tree. Failures return a *LexError or *ParseError; no partial tree is
// returned.
func Parse(input string) (Expr, error) {
	p := NewParser(input)

	if p.check(token.EOF) {
		if err := p.lexer.Err(); err != nil {
			return nil, err
		}
		return nil, &ParseError{Pos: p.token.Pos, Message: ErrEmptyExpression}
	}

	expr := p.parseExpression()

	// A lexical error is the root cause of any cascading parse errors.
	if err := p.lexer.Err(); err != nil {
		return nil, err
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	if !p.check(token.EOF) {
		return nil, &ParseError{
			Pos:     p.token.Pos,
			Message: fmt.Sprintf(ErrTrailingToken, p.token.Type),
		}
	}
	return expr, nil
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, t))
	return false
}

// addError adds a parse error at the current token.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// ---------- Grammar Productions ----------

// parseExpression parses a '+'/'-' chain of terms.
func (p *Parser) parseExpression() Expr {
	left := p.parseTerm()
	if left == nil {
		return nil
	}

	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := p.token.Type
		p.nextToken()
		right := p.parseTerm()
		if right == nil {
			return nil
		}
		if op == token.PLUS {
			left = foldChain(left, OpAdd, right)
		} else {
			left = &OperatorExpr{Op: OpSub, Operands: []Expr{left, right}}
		}
	}
	return left
}

// parseTerm parses a '*'/'/' chain of factors.
func (p *Parser) parseTerm() Expr {
	left := p.parseFactor()
	if left == nil {
		return nil
	}

	for p.check(token.STAR) || p.check(token.SLASH) {
		op := p.token.Type
		p.nextToken()
		right := p.parseFactor()
		if right == nil {
			return nil
		}
		if op == token.STAR {
			left = foldChain(left, OpMul, right)
		} else {
			left = &OperatorExpr{Op: OpDiv, Operands: []Expr{left, right}}
		}
	}
	return left
}

// parseFactor parses exponentiation, which associates to the right:
// 2^3^2 is pow(2, pow(3, 2)).
func (p *Parser) parseFactor() Expr {
	base := p.parsePrimary()
	if base == nil {
		return nil
	}

	if p.match(token.CARET) {
		exponent := p.parseFactor()
		if exponent == nil {
			return nil
		}
		return &OperatorExpr{Op: OpPow, Operands: []Expr{base, exponent}}
	}
	return base
}

// parsePrimary parses a leaf or a parenthesized subexpression.
func (p *Parser) parsePrimary() Expr {
	tok := p.token

	switch tok.Type {
	case token.NUMBER:
		p.nextToken()
		return &NumberExpr{Literal: tok.Literal}

	case token.TWISTOR:
		p.nextToken()
		return &TwistorExpr{Index: tok.Indices[0]}

	case token.DUALTWISTOR:
		p.nextToken()
		return &DualTwistorExpr{Index: tok.Indices[0]}

	case token.INFINITY:
		p.nextToken()
		return &InfinityExpr{}

	case token.ANGLE:
		p.nextToken()
		return p.bracketNode(BracketAngle, tok.Indices)

	case token.SQUARE:
		p.nextToken()
		return p.bracketNode(BracketSquare, tok.Indices)

	case token.LPAREN:
		p.nextToken()
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		return expr

	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, tok.Type, "an operand"))
		return nil
	}
}

// bracketNode builds a bracket leaf from a lexed contraction token.
func (p *Parser) bracketNode(kind BracketKind, indices []int) Expr {
	b, err := NewBracketExpr(kind, indices)
	if err != nil {
		p.addError(err.Error())
		return nil
	}
	return b
}

// foldChain extends a left-associative chain of a variadic operator,
// flattening consecutive operands into a single n-ary node.
func foldChain(left Expr, op OpType, right Expr) Expr {
	if node, ok := left.(*OperatorExpr); ok && node.Op == op {
		node.Operands = append(node.Operands, right)
		return node
	}
	return &OperatorExpr{Op: op, Operands: []Expr{left, right}}
}
