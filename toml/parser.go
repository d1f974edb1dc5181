package toml

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports malformed input with its position
type ParseError struct {
	Pos Position
	Msg string
}

func (e *ParseError) Error() string {
	return "toml: " + e.Pos.String() + ": " + e.Msg
}

// Parser builds a map[string]any tree from TOML tokens.
// Tables are map[string]any and arrays of tables are []map[string]any.
type Parser struct {
	lexer   *Lexer
	cur     Token
	peek    Token
	root    map[string]any
	scope   map[string]any  // table receiving key/value pairs
	defined map[string]bool // explicitly declared [table] paths
}

func NewParser(input []byte) *Parser {
	p := &Parser{
		lexer:   NewLexer(input),
		root:    make(map[string]any),
		defined: make(map[string]bool),
	}
	p.next()
	p.next()
	p.scope = p.root
	return p
}

// Parse parses a whole document
func Parse(data []byte) (map[string]any, error) {
	return NewParser(data).Parse()
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Pos: p.cur.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) Parse() (map[string]any, error) {
	for p.cur.Type != TokenEOF {
		if p.cur.Type == TokenNewline {
			p.next()
			continue
		}
		if err := p.parseStatement(); err != nil {
			return nil, err
		}
		// Every statement ends the line
		if p.cur.Type != TokenNewline && p.cur.Type != TokenEOF {
			return nil, p.errorf("expected end of line, got %s", p.cur)
		}
	}
	return p.root, nil
}

func (p *Parser) parseStatement() error {
	switch {
	case p.cur.Type == TokenLBracket:
		return p.parseTableHeader()
	case p.cur.isKey():
		return p.parseKeyValue(p.scope)
	case p.cur.Type == TokenError:
		return p.errorf("%s", p.cur.Literal)
	}
	return p.errorf("unexpected %s", p.cur)
}

// parseTableHeader handles [a.b] and [[a.b]]
func (p *Parser) parseTableHeader() error {
	array := p.peek.Type == TokenLBracket
	p.next()
	if array {
		p.next()
	}

	keys, err := p.parseKey()
	if err != nil {
		return err
	}

	for i := 0; i < 1+boolToInt(array); i++ {
		if p.cur.Type != TokenRBracket {
			return p.errorf("expected ']' to close table header")
		}
		p.next()
	}

	return p.openTable(keys, array)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// openTable makes the table named by keys the current scope. Header paths
// always start from the root; an array of tables on the way resolves to its last element.
func (p *Parser) openTable(keys []string, array bool) error {
	m := p.root
	for _, key := range keys[:len(keys)-1] {
		child, err := descend(m, key)
		if err != nil {
			return p.errorf("%v", err)
		}
		m = child
	}

	last := keys[len(keys)-1]
	if array {
		var list []map[string]any
		switch v := m[last].(type) {
		case nil:
		case []map[string]any:
			list = v
		default:
			return p.errorf("key %q is not an array of tables", last)
		}
		table := make(map[string]any)
		m[last] = append(list, table)
		p.scope = table
		return nil
	}

	path := strings.Join(keys, ".")
	if p.defined[path] {
		return p.errorf("table [%s] defined twice", path)
	}
	p.defined[path] = true

	table, err := descend(m, last)
	if err != nil {
		return p.errorf("%v", err)
	}
	p.scope = table
	return nil
}

// descend returns the table under key, creating it when absent
func descend(m map[string]any, key string) (map[string]any, error) {
	switch v := m[key].(type) {
	case nil:
		child := make(map[string]any)
		m[key] = child
		return child, nil
	case map[string]any:
		return v, nil
	case []map[string]any:
		if len(v) == 0 {
			return nil, fmt.Errorf("array of tables %q is empty", key)
		}
		return v[len(v)-1], nil
	}
	return nil, fmt.Errorf("key %q is not a table", key)
}

func (p *Parser) parseKeyValue(scope map[string]any) error {
	keys, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.cur.Type != TokenEqual {
		return p.errorf("expected '=' after key, got %s", p.cur)
	}
	p.next()

	at := p.cur.Pos
	val, err := p.parseValue()
	if err != nil {
		return err
	}

	m := scope
	for _, key := range keys[:len(keys)-1] {
		if m, err = descend(m, key); err != nil {
			return &ParseError{Pos: at, Msg: err.Error()}
		}
	}
	last := keys[len(keys)-1]
	if _, exists := m[last]; exists {
		return &ParseError{Pos: at, Msg: fmt.Sprintf("duplicate key %q", last)}
	}
	m[last] = val
	return nil
}

// parseKey reads a possibly dotted key
func (p *Parser) parseKey() ([]string, error) {
	var keys []string
	for {
		if !p.cur.isKey() {
			return nil, p.errorf("expected key, got %s", p.cur)
		}
		keys = append(keys, p.cur.Literal)
		p.next()

		if p.cur.Type != TokenDot {
			return keys, nil
		}
		p.next()
	}
}

func (p *Parser) parseValue() (any, error) {
	tok := p.cur
	switch tok.Type {
	case TokenString:
		p.next()
		return tok.Literal, nil
	case TokenInteger:
		v, err := parseInteger(tok.Literal)
		if err != nil {
			return nil, p.errorf("invalid integer %q", tok.Literal)
		}
		p.next()
		return v, nil
	case TokenFloat:
		v, err := strconv.ParseFloat(strings.ReplaceAll(tok.Literal, "_", ""), 64)
		if err != nil {
			return nil, p.errorf("invalid float %q", tok.Literal)
		}
		p.next()
		return v, nil
	case TokenBool:
		p.next()
		return tok.Literal == "true", nil
	case TokenLBracket:
		return p.parseArray()
	case TokenLBrace:
		return p.parseInlineTable()
	case TokenError:
		return nil, p.errorf("%s", tok.Literal)
	}
	return nil, p.errorf("expected value, got %s", tok)
}

// parseInteger accepts decimal with underscores and 0x/0o/0b prefixes; leading zeros are rejected
func parseInteger(lit string) (int64, error) {
	digits := strings.TrimLeft(lit, "+-")
	if len(digits) > 1 && digits[0] == '0' && isDigit(rune(digits[1])) {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(lit, 0, 64)
}

func (p *Parser) skipNewlines() {
	for p.cur.Type == TokenNewline {
		p.next()
	}
}

func (p *Parser) parseArray() ([]any, error) {
	p.next() // [
	arr := make([]any, 0)

	for {
		p.skipNewlines()
		if p.cur.Type == TokenRBracket {
			break
		}

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)

		p.skipNewlines()
		if p.cur.Type == TokenComma {
			p.next()
			continue
		}
		if p.cur.Type != TokenRBracket {
			return nil, p.errorf("expected ',' or ']' in array, got %s", p.cur)
		}
	}
	p.next() // ]
	return arr, nil
}

func (p *Parser) parseInlineTable() (map[string]any, error) {
	p.next() // {
	m := make(map[string]any)

	for p.cur.Type != TokenRBrace {
		if err := p.parseKeyValue(m); err != nil {
			return nil, err
		}
		switch p.cur.Type {
		case TokenComma:
			p.next()
		case TokenRBrace:
		default:
			return nil, p.errorf("expected ',' or '}' in inline table, got %s", p.cur)
		}
	}
	p.next() // }
	return m, nil
}
