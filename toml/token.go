package toml

import (
	"fmt"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	TokenError TokenType = iota
	TokenEOF

	// Literals
	TokenIdent   // bare key
	TokenString  // "basic" or 'literal'
	TokenInteger // 123, 0x1f, 1_000
	TokenFloat   // 1.5, 1e3, inf
	TokenBool    // true/false

	// Delimiters
	TokenEqual    // =
	TokenDot      // .
	TokenComma    // ,
	TokenLBracket // [
	TokenRBracket // ]
	TokenLBrace   // {
	TokenRBrace   // }
	TokenNewline  // \n
)

// Position is a 1-based line and column in the input
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "error: " + t.Literal
	case TokenNewline:
		return "newline"
	}
	if len(t.Literal) > 20 {
		return fmt.Sprintf("%q...", t.Literal[:20])
	}
	return fmt.Sprintf("%q", t.Literal)
}

// isKey reports whether t can name a key; TOML permits bare integers and booleans as keys
func (t Token) isKey() bool {
	switch t.Type {
	case TokenIdent, TokenString, TokenInteger, TokenBool:
		return true
	}
	return false
}
