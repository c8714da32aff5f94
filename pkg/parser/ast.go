package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr represents a node in a momentum-twistor expression tree.
//
// Trees are immutable after parsing and safe for concurrent readers. Every
// node kind implements both serializations, so adding a kind without them is
// a compile error.
type Expr interface {
	// String renders the node in canonical infix notation.
	String() string
	// PrefixNotation returns the flat prefix (Polish) encoding of the
	// subtree: one operator tag per internal node followed by its operands,
	// one token per leaf.
	PrefixNotation() []string
}

// OpType identifies an operator node's operation.
type OpType string

// Operator tags. Add and Mul are variadic (2+ operands, flattened from
// left-associative chains); Sub, Div, and Pow are strictly binary.
const (
	OpAdd OpType = "add"
	OpSub OpType = "sub"
	OpMul OpType = "mul"
	OpDiv OpType = "div"
	OpPow OpType = "pow"
)

// Variadic returns true for operators that accept more than two operands.
func (op OpType) Variadic() bool {
	return op == OpAdd || op == OpMul
}

// OperatorExpr is an internal tree node applying an operator to its operands.
// The node owns its operands exclusively; trees share no subtrees.
type OperatorExpr struct {
	Op       OpType
	Operands []Expr
}

func (e *OperatorExpr) PrefixNotation() []string {
	result := []string{string(e.Op)}
	for _, operand := range e.Operands {
		result = append(result, operand.PrefixNotation()...)
	}
	return result
}

func (e *OperatorExpr) String() string {
	switch e.Op {
	case OpAdd:
		return "(" + strings.Join(e.operandStrings(), " + ") + ")"
	case OpSub:
		return fmt.Sprintf("(%s - %s)", e.Operands[0], e.Operands[1])
	case OpMul:
		return strings.Join(e.operandStrings(), " * ")
	case OpDiv:
		return fmt.Sprintf("(%s / %s)", e.Operands[0], groupedString(e.Operands[1]))
	case OpPow:
		return fmt.Sprintf("(%s^%s)", groupedString(e.Operands[0]), groupedString(e.Operands[1]))
	default:
		return fmt.Sprintf("%s(%s)", e.Op, strings.Join(e.operandStrings(), ", "))
	}
}

// groupedString renders an operand, parenthesizing a bare mul chain so its
// rendering does not rebind under a tighter-binding operator when re-parsed.
// Only mul needs this: every other operator form carries its own parentheses.
func groupedString(e Expr) string {
	if node, ok := e.(*OperatorExpr); ok && node.Op == OpMul {
		return "(" + node.String() + ")"
	}
	return e.String()
}

func (e *OperatorExpr) operandStrings() []string {
	parts := make([]string, len(e.Operands))
	for i, operand := range e.Operands {
		parts[i] = operand.String()
	}
	return parts
}

// TwistorExpr is a leaf node for a twistor variable Z_i.
type TwistorExpr struct {
	Index int // 1-based particle label
}

func (e *TwistorExpr) PrefixNotation() []string {
	return []string{"Z" + strconv.Itoa(e.Index)}
}

func (e *TwistorExpr) String() string {
	return fmt.Sprintf("Z_{%d}", e.Index)
}

// DualTwistorExpr is a leaf node for a dual twistor variable W_i.
type DualTwistorExpr struct {
	Index int // 1-based particle label
}

func (e *DualTwistorExpr) PrefixNotation() []string {
	return []string{"W" + strconv.Itoa(e.Index)}
}

func (e *DualTwistorExpr) String() string {
	return fmt.Sprintf("W_{%d}", e.Index)
}

// NumberExpr is a leaf node for a numeric constant. The literal text is
// preserved as written; Value parses it on demand.
type NumberExpr struct {
	Literal string
}

// Value parses the literal into a floating-point value.
func (e *NumberExpr) Value() (float64, error) {
	return strconv.ParseFloat(e.Literal, 64)
}

func (e *NumberExpr) PrefixNotation() []string {
	return []string{e.Literal}
}

func (e *NumberExpr) String() string {
	return e.Literal
}

// BracketKind distinguishes angle from square bracket contractions.
type BracketKind string

// Bracket contraction kinds.
const (
	BracketAngle  BracketKind = "angle"
	BracketSquare BracketKind = "square"
)

// BracketExpr is a leaf node for a four-point momentum-twistor invariant,
// <i,j,k,l> or [i,j,k,l].
type BracketExpr struct {
	Kind    BracketKind
	Indices [4]int
}

// NewBracketExpr builds a bracket node, enforcing the four-index invariant.
func NewBracketExpr(kind BracketKind, indices []int) (*BracketExpr, error) {
	if len(indices) != 4 {
		return nil, &LexError{Message: fmt.Sprintf(ErrBracketIndexCount, len(indices))}
	}
	b := &BracketExpr{Kind: kind}
	copy(b.Indices[:], indices)
	return b, nil
}

func (e *BracketExpr) PrefixNotation() []string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	for _, idx := range e.Indices {
		sb.WriteString(strconv.Itoa(idx))
	}
	return []string{sb.String()}
}

func (e *BracketExpr) String() string {
	parts := make([]string, len(e.Indices))
	for i, idx := range e.Indices {
		parts[i] = strconv.Itoa(idx)
	}
	body := strings.Join(parts, ", ")
	if e.Kind == BracketSquare {
		return "[" + body + "]"
	}
	return "<" + body + ">"
}

// InfinityExpr is the leaf node for the infinity twistor marker I.
type InfinityExpr struct{}

func (e *InfinityExpr) PrefixNotation() []string {
	return []string{"I"}
}

func (e *InfinityExpr) String() string {
	return "I"
}
