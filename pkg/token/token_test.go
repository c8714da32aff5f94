package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twistorlab/mtx/pkg/token"
)

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "TWISTOR", token.TWISTOR.String())
	assert.Equal(t, "DUAL_TWISTOR", token.DUALTWISTOR.String())
	assert.Equal(t, "ANGLE_BRACKET", token.ANGLE.String())
	assert.Equal(t, "+", token.PLUS.String())
	assert.Equal(t, "EOF", token.EOF.String())
}

func TestTokenTypeIsOperator(t *testing.T) {
	for _, op := range []token.TokenType{token.PLUS, token.MINUS, token.STAR, token.SLASH, token.CARET} {
		assert.True(t, op.IsOperator(), op.String())
	}
	assert.False(t, token.NUMBER.IsOperator())
	assert.False(t, token.LPAREN.IsOperator())
}

func TestTokenString(t *testing.T) {
	tok := token.Token{Type: token.TWISTOR, Literal: "Z12", Indices: []int{12}}
	assert.Equal(t, "TWISTOR(Z12[12])", tok.String())

	tok = token.Token{Type: token.ANGLE, Literal: "<1,2,3,4>", Indices: []int{1, 2, 3, 4}}
	assert.Equal(t, "ANGLE_BRACKET(<1,2,3,4>[1 2 3 4])", tok.String())

	tok = token.Token{Type: token.PLUS, Literal: "+"}
	assert.Equal(t, "+(+)", tok.String())
}

func TestPosition(t *testing.T) {
	p := token.Position{Line: 1, Column: 5, Offset: 4}
	assert.True(t, p.IsValid())
	assert.Equal(t, "1:5", p.String())
	assert.False(t, token.Position{}.IsValid())
}
