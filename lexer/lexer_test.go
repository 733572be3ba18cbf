package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skx/cc/token"
)

func TestParseNumbersAndPunctuation(t *testing.T) {
	input := `int main() { return 400; }`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.INT, "int"},
		{token.IDENT, "main"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RETURN, "return"},
		{token.NUMBER, "400"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		require.Equalf(t, tt.expectedType, tok.Type, "tests[%d]", i)
		require.Equalf(t, tt.expectedLiteral, tok.Literal, "tests[%d]", i)
	}
}

func TestParseOperators(t *testing.T) {
	input := `+ - * / % ~ ! -- & | ^ << >> < <= > >= == != && ||`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.ASTERISK, "*"},
		{token.SLASH, "/"},
		{token.PERCENT, "%"},
		{token.TILDE, "~"},
		{token.BANG, "!"},
		{token.MINUSMINUS, "--"},
		{token.AMP, "&"},
		{token.PIPE, "|"},
		{token.CARET, "^"},
		{token.SHL, "<<"},
		{token.SHR, ">>"},
		{token.LT, "<"},
		{token.LE, "<="},
		{token.GT, ">"},
		{token.GE, ">="},
		{token.EQ, "=="},
		{token.NE, "!="},
		{token.AMPAMP, "&&"},
		{token.PIPEPIPE, "||"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		require.Equalf(t, tt.expectedType, tok.Type, "tests[%d]", i)
		require.Equalf(t, tt.expectedLiteral, tok.Literal, "tests[%d]", i)
	}
}

func TestParseBogus(t *testing.T) {
	input := `@ 3`

	l := New(input)
	tok := l.NextToken()
	require.Equal(t, token.Type(token.ERROR), tok.Type)

	tok = l.NextToken()
	require.Equal(t, token.Type(token.NUMBER), tok.Type)
	require.Equal(t, "3", tok.Literal)
}

func TestPositions(t *testing.T) {
	input := "int\nmain"

	l := New(input)
	tok := l.NextToken()
	require.Equal(t, 1, tok.Pos.Line)

	tok = l.NextToken()
	require.Equal(t, 2, tok.Pos.Line)
}
