package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twistorlab/mtx/pkg/parser"
)

func TestParseSimpleAdd(t *testing.T) {
	expr, err := parser.Parse("Z1 + Z2")
	require.NoError(t, err)

	op, ok := expr.(*parser.OperatorExpr)
	require.True(t, ok)
	assert.Equal(t, parser.OpAdd, op.Op)
	require.Len(t, op.Operands, 2)
	assert.Equal(t, &parser.TwistorExpr{Index: 1}, op.Operands[0])
	assert.Equal(t, &parser.TwistorExpr{Index: 2}, op.Operands[1])

	assert.Equal(t, "(Z_{1} + Z_{2})", expr.String())
}

func TestParsePrecedence(t *testing.T) {
	// '*' binds tighter than '+'.
	expr, err := parser.Parse("1 + 2 * 3")
	require.NoError(t, err)

	add, ok := expr.(*parser.OperatorExpr)
	require.True(t, ok)
	require.Equal(t, parser.OpAdd, add.Op)
	require.Len(t, add.Operands, 2)

	mul, ok := add.Operands[1].(*parser.OperatorExpr)
	require.True(t, ok)
	assert.Equal(t, parser.OpMul, mul.Op)
}

func TestParseParenGrouping(t *testing.T) {
	// Parenthesized grouping overrides default precedence without
	// introducing a node of its own.
	expr, err := parser.Parse("(1 + 2) * 3")
	require.NoError(t, err)

	mul, ok := expr.(*parser.OperatorExpr)
	require.True(t, ok)
	require.Equal(t, parser.OpMul, mul.Op)
	require.Len(t, mul.Operands, 2)

	add, ok := mul.Operands[0].(*parser.OperatorExpr)
	require.True(t, ok)
	assert.Equal(t, parser.OpAdd, add.Op)

	assert.Equal(t, "(1 + 2) * 3", expr.String())
}

func TestParsePowRightAssociative(t *testing.T) {
	expr, err := parser.Parse("2^3^2")
	require.NoError(t, err)

	outer, ok := expr.(*parser.OperatorExpr)
	require.True(t, ok)
	require.Equal(t, parser.OpPow, outer.Op)
	require.Len(t, outer.Operands, 2)
	assert.Equal(t, &parser.NumberExpr{Literal: "2"}, outer.Operands[0])

	inner, ok := outer.Operands[1].(*parser.OperatorExpr)
	require.True(t, ok)
	assert.Equal(t, parser.OpPow, inner.Op)
	assert.Equal(t, &parser.NumberExpr{Literal: "3"}, inner.Operands[0])
	assert.Equal(t, &parser.NumberExpr{Literal: "2"}, inner.Operands[1])

	assert.Equal(t, []string{"pow", "2", "pow", "3", "2"}, expr.PrefixNotation())
}

func TestParseVariadicChains(t *testing.T) {
	// '+' and '*' chains collapse into a single n-ary node.
	expr, err := parser.Parse("1 + 2 + 3 + 4")
	require.NoError(t, err)

	add, ok := expr.(*parser.OperatorExpr)
	require.True(t, ok)
	assert.Equal(t, parser.OpAdd, add.Op)
	assert.Len(t, add.Operands, 4)

	expr, err = parser.Parse("Z1 * Z2 * Z3")
	require.NoError(t, err)

	mul, ok := expr.(*parser.OperatorExpr)
	require.True(t, ok)
	assert.Equal(t, parser.OpMul, mul.Op)
	assert.Len(t, mul.Operands, 3)
}

func TestParseMixedAddSub(t *testing.T) {
	// Subtraction stays binary inside a chain: 1 - 2 + 3 is add(sub(1,2), 3).
	expr, err := parser.Parse("1 - 2 + 3")
	require.NoError(t, err)

	add, ok := expr.(*parser.OperatorExpr)
	require.True(t, ok)
	require.Equal(t, parser.OpAdd, add.Op)
	require.Len(t, add.Operands, 2)

	sub, ok := add.Operands[0].(*parser.OperatorExpr)
	require.True(t, ok)
	assert.Equal(t, parser.OpSub, sub.Op)
	require.Len(t, sub.Operands, 2)
}

func TestParseBracketPrimary(t *testing.T) {
	expr, err := parser.Parse("<1,2,3,4>")
	require.NoError(t, err)

	bracket, ok := expr.(*parser.BracketExpr)
	require.True(t, ok)
	assert.Equal(t, parser.BracketAngle, bracket.Kind)
	assert.Equal(t, [4]int{1, 2, 3, 4}, bracket.Indices)
	assert.Equal(t, []string{"angle1234"}, expr.PrefixNotation())
	assert.Equal(t, "<1, 2, 3, 4>", expr.String())

	expr, err = parser.Parse("[5,6,7,8]")
	require.NoError(t, err)
	assert.Equal(t, []string{"square5678"}, expr.PrefixNotation())
	assert.Equal(t, "[5, 6, 7, 8]", expr.String())
}

func TestParseInfinityTwistor(t *testing.T) {
	expr, err := parser.Parse("I * <1,2,3,4>")
	require.NoError(t, err)

	mul, ok := expr.(*parser.OperatorExpr)
	require.True(t, ok)
	require.Len(t, mul.Operands, 2)
	assert.Equal(t, &parser.InfinityExpr{}, mul.Operands[0])
}

func TestParseRoundTrip(t *testing.T) {
	// Re-parsing the canonical rendering reproduces the same tree shape.
	inputs := []string{
		"Z1 + Z2",
		"Z1 + Z2 * <1,2,3,4>",
		"2^3^2",
		"(1 + 2) * 3",
		"[1,2,3,4] / W5 - I",
		"1 + 2 + 3",
		"Z1 * W2 * I",
		"<1,2,3,4> ^ 2 / (Z1 - 4.5)",
		"2^(Z1 * Z2)",
		"(Z1 * Z2)^2",
		"Z1 / (Z2 * Z3)",
		"(Z1 * Z2) ^ (W1 * W2 * W3)",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := parser.Parse(input)
			require.NoError(t, err)

			second, err := parser.Parse(first.String())
			require.NoError(t, err, "canonical form %q must re-parse", first.String())
			assert.Equal(t, first, second)
		})
	}
}

func TestParseRoundTripMulUnderTighterOperator(t *testing.T) {
	// A bare mul chain under pow or on the right of div must render inside
	// parentheses, or re-parsing the canonical form would rebind the root.
	expr, err := parser.Parse("2^(Z1*Z2)")
	require.NoError(t, err)
	assert.Equal(t, "(2^(Z_{1} * Z_{2}))", expr.String())

	again, err := parser.Parse(expr.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"pow", "2", "mul", "Z1", "Z2"}, again.PrefixNotation())

	expr, err = parser.Parse("Z1 / (Z2 * Z3)")
	require.NoError(t, err)
	assert.Equal(t, "(Z_{1} / (Z_{2} * Z_{3}))", expr.String())

	again, err = parser.Parse(expr.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"div", "Z1", "mul", "Z2", "Z3"}, again.PrefixNotation())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty input", "", "empty expression"},
		{"whitespace only", "  \t ", "empty expression"},
		{"missing right operand", "Z1 +", "expected an operand"},
		{"missing left operand", "* Z1", "expected an operand"},
		{"double operator", "1 + * 2", "expected an operand"},
		{"trailing operand", "1 2", "after complete expression"},
		{"unbalanced open paren", "(1 + 2", "expected )"},
		{"unbalanced close paren", "1 + 2)", "after complete expression"},
		{"bare close paren", ")", "expected an operand"},
		{"empty parens", "()", "expected an operand"},
		{"dot not consumed", "1 . 2", "after complete expression"},
		{"missing exponent", "2 ^", "expected an operand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.input)
			require.Error(t, err)

			var parseErr *parser.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseSurfacesLexError(t *testing.T) {
	_, err := parser.Parse("Z1 $ Z2")
	require.Error(t, err)

	var lexErr *parser.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 4, lexErr.Pos.Column)

	// The lexical error wins over any cascading parse errors.
	_, err = parser.Parse("<1,2,3> + Z1")
	require.ErrorAs(t, err, &lexErr)
	assert.Contains(t, err.Error(), "exactly 4 indices")
}

func TestParseNoPartialTree(t *testing.T) {
	expr, err := parser.Parse("Z1 + ")
	require.Error(t, err)
	assert.Nil(t, expr)
}
