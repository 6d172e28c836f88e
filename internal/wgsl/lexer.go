package wgsl

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes WGSL source code.
type Lexer struct {
	source   string
	pos      int
	line     int
	column   int
	start    int
	tokens   []Token
	comments []Comment
}

// Comment records a comment's trimmed text and byte span. Comments are not
// tokens; the parser never sees them, but the embedding scanner inspects
// them for pragma markers.
type Comment struct {
	Text string // trimmed interior text, markers stripped
	Span Span
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source string) *Lexer {
	estTokens := len(source) / 6
	if estTokens < 16 {
		estTokens = 16
	}
	return &Lexer{
		source: source,
		line:   1,
		column: 1,
		tokens: make([]Token, 0, estTokens),
	}
}

// Tokenize returns all tokens from the source.
func (l *Lexer) Tokenize() ([]Token, error) {
	for !l.isAtEnd() {
		l.start = l.pos
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}

	l.tokens = append(l.tokens, Token{
		Kind:   TokenEOF,
		Start:  l.pos,
		End:    l.pos,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens, nil
}

// Comments returns the comments collected during Tokenize, in source order.
func (l *Lexer) Comments() []Comment {
	return l.comments
}

func (l *Lexer) scanToken() error {
	r := l.advance()

	switch r {
	case '(':
		l.addToken(TokenLeftParen)
	case ')':
		l.addToken(TokenRightParen)
	case '{':
		l.addToken(TokenLeftBrace)
	case '}':
		l.addToken(TokenRightBrace)
	case '[':
		l.addToken(TokenLeftBracket)
	case ']':
		l.addToken(TokenRightBracket)
	case ',':
		l.addToken(TokenComma)
	case '.':
		l.addToken(TokenDot)
	case ':':
		l.addToken(TokenColon)
	case ';':
		l.addToken(TokenSemicolon)
	case '@':
		l.addToken(TokenAt)
	case '~':
		l.addToken(TokenTilde)
	case '%':
		if l.match('=') {
			l.addToken(TokenPercentEqual)
		} else {
			l.addToken(TokenPercent)
		}
	case '^':
		if l.match('=') {
			l.addToken(TokenCaretEqual)
		} else {
			l.addToken(TokenCaret)
		}
	case '+':
		if l.match('+') {
			l.addToken(TokenPlusPlus)
		} else if l.match('=') {
			l.addToken(TokenPlusEqual)
		} else {
			l.addToken(TokenPlus)
		}
	case '-':
		if l.match('-') {
			l.addToken(TokenMinusMinus)
		} else if l.match('=') {
			l.addToken(TokenMinusEqual)
		} else if l.match('>') {
			l.addToken(TokenArrow)
		} else {
			l.addToken(TokenMinus)
		}
	case '*':
		if l.match('=') {
			l.addToken(TokenStarEqual)
		} else {
			l.addToken(TokenStar)
		}
	case '/':
		if l.match('/') {
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
			l.addComment("//")
		} else if l.match('*') {
			l.blockComment()
			l.addComment("/*")
		} else if l.match('=') {
			l.addToken(TokenSlashEqual)
		} else {
			l.addToken(TokenSlash)
		}
	case '=':
		if l.match('=') {
			l.addToken(TokenEqualEqual)
		} else {
			l.addToken(TokenEqual)
		}
	case '!':
		if l.match('=') {
			l.addToken(TokenBangEqual)
		} else {
			l.addToken(TokenBang)
		}
	case '<':
		if l.match('<') {
			if l.match('=') {
				l.addToken(TokenLessLessEqual)
			} else {
				l.addToken(TokenLessLess)
			}
		} else if l.match('=') {
			l.addToken(TokenLessEqual)
		} else {
			l.addToken(TokenLess)
		}
	case '>':
		if l.match('>') {
			if l.match('=') {
				l.addToken(TokenGreaterGreaterEqual)
			} else {
				l.addToken(TokenGreaterGreater)
			}
		} else if l.match('=') {
			l.addToken(TokenGreaterEqual)
		} else {
			l.addToken(TokenGreater)
		}
	case '&':
		if l.match('&') {
			l.addToken(TokenAmpAmp)
		} else if l.match('=') {
			l.addToken(TokenAmpEqual)
		} else {
			l.addToken(TokenAmpersand)
		}
	case '|':
		if l.match('|') {
			l.addToken(TokenPipePipe)
		} else if l.match('=') {
			l.addToken(TokenPipeEqual)
		} else {
			l.addToken(TokenPipe)
		}

	case ' ', '\r', '\t':
		// Ignore whitespace
	case '\n':
		l.line++
		l.column = 1

	default:
		if isDigit(r) {
			l.number()
		} else if isAlpha(r) || r == '_' {
			l.identifier()
		} else {
			l.addToken(TokenError)
		}
	}

	return nil
}

func (l *Lexer) blockComment() {
	depth := 1
	for depth > 0 && !l.isAtEnd() {
		if l.peek() == '/' && l.peekNext() == '*' {
			l.advance()
			l.advance()
			depth++
		} else if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			depth--
		} else {
			if l.peek() == '\n' {
				l.line++
				l.column = 0
			}
			l.advance()
		}
	}
}

func (l *Lexer) addComment(marker string) {
	raw := l.source[l.start:l.pos]
	var text string
	if marker == "//" {
		text = strings.TrimPrefix(raw, "//")
	} else {
		text = strings.TrimPrefix(raw, "/*")
		text = strings.TrimSuffix(text, "*/")
	}
	l.comments = append(l.comments, Comment{
		Text: strings.TrimSpace(text),
		Span: Span{Start: l.start, End: l.pos},
	})
}

func (l *Lexer) number() {
	// Hex literals, including hex floats (0x1.8p3)
	if l.source[l.start] == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		l.advance()
		for isHexDigit(l.peek()) {
			l.advance()
		}
		isFloat := false
		if l.peek() == '.' {
			isFloat = true
			l.advance()
			for isHexDigit(l.peek()) {
				l.advance()
			}
		}
		if l.peek() == 'p' || l.peek() == 'P' {
			isFloat = true
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for isDigit(l.peek()) {
				l.advance()
			}
		}
		if l.peek() == 'f' || l.peek() == 'h' {
			isFloat = true
			l.advance()
		} else if l.peek() == 'i' || l.peek() == 'u' {
			l.advance()
		}
		if isFloat {
			l.addToken(TokenFloatLiteral)
		} else {
			l.addToken(TokenIntLiteral)
		}
		return
	}

	for isDigit(l.peek()) {
		l.advance()
	}

	// "1." and "1.5" are floats; "1.x" is member access on an int.
	nextAfterDot := l.peekNext()
	if l.peek() == '.' && !isAlpha(nextAfterDot) && nextAfterDot != '_' {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
		if l.peek() == 'e' || l.peek() == 'E' {
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for isDigit(l.peek()) {
				l.advance()
			}
		}
		if l.peek() == 'f' || l.peek() == 'h' {
			l.advance()
		}
		l.addToken(TokenFloatLiteral)
		return
	}

	// Exponent without decimal point
	if l.peek() == 'e' || l.peek() == 'E' {
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) {
			l.advance()
		}
		if l.peek() == 'f' || l.peek() == 'h' {
			l.advance()
		}
		l.addToken(TokenFloatLiteral)
		return
	}

	// 1f and 1h are float literals
	if l.peek() == 'f' || l.peek() == 'h' {
		l.advance()
		l.addToken(TokenFloatLiteral)
		return
	}

	if l.peek() == 'i' || l.peek() == 'u' {
		l.advance()
	}

	l.addToken(TokenIntLiteral)
}

func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	text := l.source[l.start:l.pos]
	l.addToken(lookupKeyword(text))
}

var keywords = map[string]TokenKind{
	"alias":        TokenAlias,
	"bitcast":      TokenBitcast,
	"break":        TokenBreak,
	"case":         TokenCase,
	"const":        TokenConst,
	"const_assert": TokenConstAssert,
	"continue":     TokenContinue,
	"continuing":   TokenContinuing,
	"default":      TokenDefault,
	"diagnostic":   TokenDiagnostic,
	"discard":      TokenDiscard,
	"else":         TokenElse,
	"enable":       TokenEnable,
	"fn":           TokenFn,
	"for":          TokenFor,
	"if":           TokenIf,
	"let":          TokenLet,
	"loop":         TokenLoop,
	"override":     TokenOverride,
	"requires":     TokenRequires,
	"return":       TokenReturn,
	"struct":       TokenStruct,
	"switch":       TokenSwitch,
	"var":          TokenVar,
	"while":        TokenWhile,
}

func lookupKeyword(text string) TokenKind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	if text == "true" || text == "false" {
		return TokenBoolLiteral
	}
	return TokenIdent
}

func (l *Lexer) addToken(kind TokenKind) {
	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Lexeme: l.source[l.start:l.pos],
		Start:  l.start,
		End:    l.pos,
		Line:   l.line,
		Column: l.column - (l.pos - l.start),
	})
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	l.column++
	return r
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.pos:])
	r, _ := utf8.DecodeRuneInString(l.source[l.pos+size:])
	return r
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() {
		return false
	}
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	if r != expected {
		return false
	}
	l.pos += size
	l.column++
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isAlpha(r rune) bool {
	return unicode.IsLetter(r)
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
