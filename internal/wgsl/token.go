// Package wgsl provides WGSL (WebGPU Shading Language) lexing and parsing
// for the formatter. The AST it produces is source-faithful: every node
// carries the byte span it was parsed from, so the printer can fall back to
// re-emitting the original slice for constructs it does not model.
package wgsl

// TokenKind represents the type of token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenBoolLiteral

	// Operators
	TokenPlus                // +
	TokenMinus               // -
	TokenStar                // *
	TokenSlash               // /
	TokenPercent             // %
	TokenAmpersand           // &
	TokenPipe                // |
	TokenCaret               // ^
	TokenTilde               // ~
	TokenBang                // !
	TokenEqual               // =
	TokenLess                // <
	TokenGreater             // >
	TokenDot                 // .
	TokenComma               // ,
	TokenColon               // :
	TokenSemicolon           // ;
	TokenAt                  // @
	TokenArrow               // ->
	TokenPlusPlus            // ++
	TokenMinusMinus          // --
	TokenEqualEqual          // ==
	TokenBangEqual           // !=
	TokenLessEqual           // <=
	TokenGreaterEqual        // >=
	TokenAmpAmp              // &&
	TokenPipePipe            // ||
	TokenLessLess            // <<
	TokenGreaterGreater      // >>
	TokenPlusEqual           // +=
	TokenMinusEqual          // -=
	TokenStarEqual           // *=
	TokenSlashEqual          // /=
	TokenPercentEqual        // %=
	TokenAmpEqual            // &=
	TokenPipeEqual           // |=
	TokenCaretEqual          // ^=
	TokenLessLessEqual       // <<=
	TokenGreaterGreaterEqual // >>=

	// Delimiters
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftBracket  // [
	TokenRightBracket // ]

	// Keywords
	TokenAlias
	TokenBitcast
	TokenBreak
	TokenCase
	TokenConst
	TokenConstAssert
	TokenContinue
	TokenContinuing
	TokenDefault
	TokenDiagnostic
	TokenDiscard
	TokenElse
	TokenEnable
	TokenFn
	TokenFor
	TokenIf
	TokenLet
	TokenLoop
	TokenOverride
	TokenRequires
	TokenReturn
	TokenStruct
	TokenSwitch
	TokenVar
	TokenWhile
)

var tokenNames = map[TokenKind]string{
	TokenEOF:                 "EOF",
	TokenError:               "Error",
	TokenIdent:               "Ident",
	TokenIntLiteral:          "IntLiteral",
	TokenFloatLiteral:        "FloatLiteral",
	TokenBoolLiteral:         "BoolLiteral",
	TokenPlus:                "+",
	TokenMinus:               "-",
	TokenStar:                "*",
	TokenSlash:               "/",
	TokenPercent:             "%",
	TokenAmpersand:           "&",
	TokenPipe:                "|",
	TokenCaret:               "^",
	TokenTilde:               "~",
	TokenBang:                "!",
	TokenEqual:               "=",
	TokenLess:                "<",
	TokenGreater:             ">",
	TokenDot:                 ".",
	TokenComma:               ",",
	TokenColon:               ":",
	TokenSemicolon:           ";",
	TokenAt:                  "@",
	TokenArrow:               "->",
	TokenPlusPlus:            "++",
	TokenMinusMinus:          "--",
	TokenEqualEqual:          "==",
	TokenBangEqual:           "!=",
	TokenLessEqual:           "<=",
	TokenGreaterEqual:        ">=",
	TokenAmpAmp:              "&&",
	TokenPipePipe:            "||",
	TokenLessLess:            "<<",
	TokenGreaterGreater:      ">>",
	TokenPlusEqual:           "+=",
	TokenMinusEqual:          "-=",
	TokenStarEqual:           "*=",
	TokenSlashEqual:          "/=",
	TokenPercentEqual:        "%=",
	TokenAmpEqual:            "&=",
	TokenPipeEqual:           "|=",
	TokenCaretEqual:          "^=",
	TokenLessLessEqual:       "<<=",
	TokenGreaterGreaterEqual: ">>=",
	TokenLeftParen:           "(",
	TokenRightParen:          ")",
	TokenLeftBrace:           "{",
	TokenRightBrace:          "}",
	TokenLeftBracket:         "[",
	TokenRightBracket:        "]",
	TokenAlias:               "alias",
	TokenBitcast:             "bitcast",
	TokenBreak:               "break",
	TokenCase:                "case",
	TokenConst:               "const",
	TokenConstAssert:         "const_assert",
	TokenContinue:            "continue",
	TokenContinuing:          "continuing",
	TokenDefault:             "default",
	TokenDiagnostic:          "diagnostic",
	TokenDiscard:             "discard",
	TokenElse:                "else",
	TokenEnable:              "enable",
	TokenFn:                  "fn",
	TokenFor:                 "for",
	TokenIf:                  "if",
	TokenLet:                 "let",
	TokenLoop:                "loop",
	TokenOverride:            "override",
	TokenRequires:            "requires",
	TokenReturn:              "return",
	TokenStruct:              "struct",
	TokenSwitch:              "switch",
	TokenVar:                 "var",
	TokenWhile:               "while",
}

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token represents a lexical token. Start and End are byte offsets into the
// source; the lexeme is always source[Start:End].
type Token struct {
	Kind   TokenKind
	Lexeme string
	Start  int
	End    int
	Line   int
	Column int
}

// Span represents a half-open byte range [Start, End) in the source.
type Span struct {
	Start int
	End   int
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}
