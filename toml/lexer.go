package toml

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// punctuation maps single-rune delimiters to their token types
var punctuation = map[rune]TokenType{
	'=': TokenEqual,
	'.': TokenDot,
	',': TokenComma,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
}

// Lexer splits TOML input into tokens. Comments never reach the parser.
type Lexer struct {
	input []byte
	pos   int // byte offset of the next rune
	line  int
	col   int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// NextToken returns the next token in the stream
func (l *Lexer) NextToken() Token {
	l.skipBlank()
	if l.peek() == '#' {
		for l.pos < len(l.input) && l.peek() != '\n' {
			l.advance()
		}
	}

	at := Position{Line: l.line, Col: l.col}
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: at}
	}

	ch := l.peek()
	if ch == '\n' {
		l.advance()
		return Token{Type: TokenNewline, Literal: "\n", Pos: at}
	}
	if typ, ok := punctuation[ch]; ok {
		l.advance()
		return Token{Type: typ, Literal: string(ch), Pos: at}
	}

	switch {
	case ch == '"':
		return l.readBasicString(at)
	case ch == '\'':
		return l.readLiteralString(at)
	case isBareChar(ch) || ch == '+':
		return l.readBare(at)
	}

	l.advance()
	return errorToken(at, "unexpected character %q", ch)
}

func errorToken(at Position, format string, args ...any) Token {
	return Token{Type: TokenError, Literal: fmt.Sprintf(format, args...), Pos: at}
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, w := utf8.DecodeRune(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

func (l *Lexer) skipBlank() {
	for l.pos < len(l.input) {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) readBasicString(at Position) Token {
	if strings.HasPrefix(string(l.input[l.pos:min(l.pos+3, len(l.input))]), `"""`) {
		return errorToken(at, "multi-line strings are not supported")
	}
	l.advance() // opening quote

	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.advance()
		switch ch {
		case '\n':
			return errorToken(at, "newline in string")
		case '"':
			return Token{Type: TokenString, Literal: sb.String(), Pos: at}
		case '\\':
			r, err := l.readEscape()
			if err != nil {
				return errorToken(at, "%v", err)
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(ch)
		}
	}
	return errorToken(at, "unterminated string")
}

// readEscape decodes the sequence following a backslash
func (l *Lexer) readEscape() (rune, error) {
	ch := l.advance()
	switch ch {
	case 'b':
		return '\b', nil
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'f':
		return '\f', nil
	case 'r':
		return '\r', nil
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case 'u', 'U':
		n := 4
		if ch == 'U' {
			n = 8
		}
		if l.pos+n > len(l.input) {
			return 0, fmt.Errorf("short \\%c escape", ch)
		}
		hex := string(l.input[l.pos : l.pos+n])
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			return 0, fmt.Errorf("invalid escape \\%c%s", ch, hex)
		}
		for i := 0; i < n; i++ {
			l.advance()
		}
		return rune(v), nil
	}
	return 0, fmt.Errorf("invalid escape \\%c", ch)
}

func (l *Lexer) readLiteralString(at Position) Token {
	l.advance() // opening quote
	start := l.pos
	for l.pos < len(l.input) {
		switch l.peek() {
		case '\n':
			return errorToken(at, "newline in string")
		case '\'':
			lit := string(l.input[start:l.pos])
			l.advance()
			return Token{Type: TokenString, Literal: lit, Pos: at}
		}
		l.advance()
	}
	return errorToken(at, "unterminated string")
}

// readBare consumes a bare key or a scalar literal. A '.' continues the
// literal only when it started as a number, so dotted keys still split.
func (l *Lexer) readBare(at Position) Token {
	start := l.pos
	numeric := isDigit(l.peek()) || l.peek() == '+' || l.peek() == '-'

	for l.pos < len(l.input) {
		ch := l.peek()
		if isBareChar(ch) || ch == '+' || (ch == '.' && numeric) {
			l.advance()
			continue
		}
		break
	}
	lit := string(l.input[start:l.pos])

	switch {
	case lit == "true" || lit == "false":
		return Token{Type: TokenBool, Literal: lit, Pos: at}
	case isSpecialFloat(lit):
		return Token{Type: TokenFloat, Literal: lit, Pos: at}
	case !numeric:
		return Token{Type: TokenIdent, Literal: lit, Pos: at}
	case isFloatLiteral(lit):
		return Token{Type: TokenFloat, Literal: lit, Pos: at}
	}
	return Token{Type: TokenInteger, Literal: lit, Pos: at}
}

func isFloatLiteral(lit string) bool {
	digits := strings.TrimLeft(lit, "+-")
	if len(digits) > 1 && digits[0] == '0' && strings.ContainsAny(digits[1:2], "xXoObB") {
		return false
	}
	return strings.ContainsAny(lit, ".eE")
}

func isSpecialFloat(lit string) bool {
	switch strings.TrimLeft(lit, "+-") {
	case "inf", "nan":
		return true
	}
	return false
}

func isBareChar(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_' || r == '-'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
