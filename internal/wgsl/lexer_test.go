package wgsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := NewLexer(source).Tokenize()
	require.NoError(t, err)
	return tokens
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexerBasicTokens(t *testing.T) {
	tokens := tokenize(t, "fn main() -> f32 { return 1.0; }")

	assert.Equal(t, []TokenKind{
		TokenFn, TokenIdent, TokenLeftParen, TokenRightParen, TokenArrow,
		TokenIdent, TokenLeftBrace, TokenReturn, TokenFloatLiteral,
		TokenSemicolon, TokenRightBrace, TokenEOF,
	}, kinds(tokens))
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   TokenKind
		lexeme string
	}{
		{"plain int", "42", TokenIntLiteral, "42"},
		{"int with i suffix", "42i", TokenIntLiteral, "42i"},
		{"int with u suffix", "42u", TokenIntLiteral, "42u"},
		{"simple float", "1.5", TokenFloatLiteral, "1.5"},
		{"trailing dot float", "1.", TokenFloatLiteral, "1."},
		{"float with f suffix", "1f", TokenFloatLiteral, "1f"},
		{"float with h suffix", "2h", TokenFloatLiteral, "2h"},
		{"exponent without dot", "1e3", TokenFloatLiteral, "1e3"},
		{"exponent with sign", "1.5e-2", TokenFloatLiteral, "1.5e-2"},
		{"hex int", "0x1F", TokenIntLiteral, "0x1F"},
		{"hex float", "0x1.8p3", TokenFloatLiteral, "0x1.8p3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := tokenize(t, tt.source)
			require.Len(t, tokens, 2) // literal + EOF
			assert.Equal(t, tt.kind, tokens[0].Kind)
			assert.Equal(t, tt.lexeme, tokens[0].Lexeme)
		})
	}
}

func TestLexerMemberAccessOnInt(t *testing.T) {
	// "1.x" must not lex the dot into a float literal
	tokens := tokenize(t, "v1.x")
	assert.Equal(t, []TokenKind{TokenIdent, TokenDot, TokenIdent, TokenEOF}, kinds(tokens))
}

func TestLexerCompoundOperators(t *testing.T) {
	tokens := tokenize(t, "a += b; c <<= d; e >>= f; g++;")

	assert.Equal(t, []TokenKind{
		TokenIdent, TokenPlusEqual, TokenIdent, TokenSemicolon,
		TokenIdent, TokenLessLessEqual, TokenIdent, TokenSemicolon,
		TokenIdent, TokenGreaterGreaterEqual, TokenIdent, TokenSemicolon,
		TokenIdent, TokenPlusPlus, TokenSemicolon, TokenEOF,
	}, kinds(tokens))
}

func TestLexerKeywordsAndBools(t *testing.T) {
	tokens := tokenize(t, "var let const override true false loop continuing")

	assert.Equal(t, []TokenKind{
		TokenVar, TokenLet, TokenConst, TokenOverride,
		TokenBoolLiteral, TokenBoolLiteral, TokenLoop, TokenContinuing, TokenEOF,
	}, kinds(tokens))
}

func TestLexerComments(t *testing.T) {
	t.Run("line comments are collected, not tokenized", func(t *testing.T) {
		lexer := NewLexer("// wgsl\nvar x: f32;")
		tokens, err := lexer.Tokenize()
		require.NoError(t, err)

		assert.Equal(t, TokenVar, tokens[0].Kind)

		comments := lexer.Comments()
		require.Len(t, comments, 1)
		assert.Equal(t, "wgsl", comments[0].Text)
	})

	t.Run("block comments nest", func(t *testing.T) {
		lexer := NewLexer("/* outer /* inner */ still outer */ var x: f32;")
		tokens, err := lexer.Tokenize()
		require.NoError(t, err)

		assert.Equal(t, TokenVar, tokens[0].Kind)
		require.Len(t, lexer.Comments(), 1)
	})

	t.Run("block comment text is trimmed", func(t *testing.T) {
		lexer := NewLexer("/*  wgsl  */")
		_, err := lexer.Tokenize()
		require.NoError(t, err)

		comments := lexer.Comments()
		require.Len(t, comments, 1)
		assert.Equal(t, "wgsl", comments[0].Text)
	})
}

func TestLexerSpans(t *testing.T) {
	source := "var foo"
	tokens := tokenize(t, source)

	assert.Equal(t, 0, tokens[0].Start)
	assert.Equal(t, 3, tokens[0].End)
	assert.Equal(t, 4, tokens[1].Start)
	assert.Equal(t, 7, tokens[1].End)
	assert.Equal(t, "foo", source[tokens[1].Start:tokens[1].End])
}

func TestLexerLineAndColumn(t *testing.T) {
	tokens := tokenize(t, "var x;\nlet y;")

	// let is the fourth token, first on line 2
	letTok := tokens[3]
	assert.Equal(t, TokenLet, letTok.Kind)
	assert.Equal(t, 2, letTok.Line)
	assert.Equal(t, 1, letTok.Column)
}
